package models

import (
	"time"

	"gorm.io/datatypes"
)

// ClassType 等级类型
type ClassType string

const (
	ClassTypePermanent ClassType = "permanent" // 建店时生成的 General / Referral，名称不可改
	ClassTypeCustom    ClassType = "custom"    // 商家自建等级
)

// 永久等级名称
const (
	ClassNameGeneral  = "General"
	ClassNameReferral = "Referral"
)

// ClassBenefits 等级权益，整体存 JSON 列
type ClassBenefits struct {
	PointsMultiplier   float64 `json:"points_multiplier"`   // >= 0
	DiscountPercentage int     `json:"discount_percentage"` // [0, 100]
	FreeDelivery       bool    `json:"free_delivery"`
	PriorityService    bool    `json:"priority_service"`
}

// DefaultBenefits 新建等级的默认权益
func DefaultBenefits() ClassBenefits {
	return ClassBenefits{PointsMultiplier: 1}
}

// CustomerClass 客户等级定义 + 积分规则 + 聚合统计。
// analytics 计数列走增量更新，total_customers 另有全量重算兜底。
type CustomerClass struct {
	ID          string    `gorm:"primaryKey;column:id;size:32" json:"id"`
	BusinessID  string    `gorm:"column:business_id;size:32;not null;index:idx_business_id" json:"business_id"`
	Name        string    `gorm:"column:name;size:64;not null" json:"name"`
	Description string    `gorm:"column:description;size:255" json:"description"`
	Type        ClassType `gorm:"column:type;size:16;not null;default:custom" json:"type"`
	Active      bool      `gorm:"column:active;default:true" json:"active"`

	// 积分规则，都必须 >= 0
	WelcomePoints  int64 `gorm:"column:welcome_points;default:0" json:"welcome_points"`
	ReferrerPoints int64 `gorm:"column:referrer_points;default:0" json:"referrer_points"`
	ReferredPoints int64 `gorm:"column:referred_points;default:0" json:"referred_points"`

	Benefits datatypes.JSONType[ClassBenefits] `gorm:"column:benefits" json:"benefits"`

	// 聚合统计（可由流水重算，增量只是优化）
	TotalCustomers           int64      `gorm:"column:total_customers;default:0" json:"total_customers"`
	TotalPointsDistributed   int64      `gorm:"column:total_points_distributed;default:0" json:"total_points_distributed"`
	TotalWelcomePointsGiven  int64      `gorm:"column:total_welcome_points_given;default:0" json:"total_welcome_points_given"`
	TotalReferrerPointsGiven int64      `gorm:"column:total_referrer_points_given;default:0" json:"total_referrer_points_given"`
	TotalReferredPointsGiven int64      `gorm:"column:total_referred_points_given;default:0" json:"total_referred_points_given"`
	AnalyticsUpdatedAt       *time.Time `gorm:"column:analytics_updated_at" json:"analytics_updated_at"`

	// 报名链接与二维码制品
	SignupURL string `gorm:"column:signup_url;size:512" json:"signup_url"`
	QrURL     string `gorm:"column:qr_url;size:512" json:"qr_url"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CustomerClass) TableName() string {
	return "customer_classes"
}

// IsPermanent 永久等级的名称和描述不允许修改
func (c *CustomerClass) IsPermanent() bool {
	return c.Type == ClassTypePermanent
}
