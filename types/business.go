package types

// CreateBusinessReq 创建商家请求体
type CreateBusinessReq struct {
	OwnerID               string `json:"owner_id" binding:"required"` // 店主账号ID（外部身份系统）
	Name                  string `json:"name" binding:"required"`     // 商家名称
	ContactEmail          string `json:"contact_email"`
	ContactPhone          string `json:"contact_phone"`
	Address               string `json:"address"`
	AllowPublicMembership *bool  `json:"allow_public_membership"` // 缺省为 true
}

// UpdateBusinessSettingsReq 商家配置更新（积分汇率字段会被固定值覆盖）
type UpdateBusinessSettingsReq struct {
	AllowCustomClasses     *bool   `json:"allow_custom_classes"`
	DefaultReferralRouting *string `json:"default_referral_routing" binding:"omitempty,oneof=referral_class referrer_class custom"`
	CustomReferralClassID  *string `json:"custom_referral_class_id"`
	AllowPublicMembership  *bool   `json:"allow_public_membership"`
	PointsToCurrencyRate   *int    `json:"points_to_currency_rate"` // 接收但忽略，永远写回常量
}
