package types

// CreateClassReq 创建自定义等级请求体
type CreateClassReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	// 积分规则，负数在落库前拒绝
	WelcomePoints  *int64 `json:"welcome_points"`
	ReferrerPoints *int64 `json:"referrer_points"`
	ReferredPoints *int64 `json:"referred_points"`

	PointsMultiplier   *float64 `json:"points_multiplier"`
	DiscountPercentage *int     `json:"discount_percentage"`
	FreeDelivery       *bool    `json:"free_delivery"`
	PriorityService    *bool    `json:"priority_service"`
}

// UpdateClassReq 部分更新；永久等级的 name/description 会被拒绝
type UpdateClassReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`

	WelcomePoints  *int64 `json:"welcome_points"`
	ReferrerPoints *int64 `json:"referrer_points"`
	ReferredPoints *int64 `json:"referred_points"`

	PointsMultiplier   *float64 `json:"points_multiplier"`
	DiscountPercentage *int     `json:"discount_percentage"`
	FreeDelivery       *bool    `json:"free_delivery"`
	PriorityService    *bool    `json:"priority_service"`
}
