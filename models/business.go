package models

import (
	"time"

	"gorm.io/datatypes"
)

// PointsToCurrencyRate 积分兑换货币的固定汇率（10 积分 = 1 元）。
// 虽然每个商家的 settings 里也存了一份，但该值是进程级常量，
// 任何更新路径都必须用它覆盖调用方传入的值。
const PointsToCurrencyRate = 10

// ReferralRouting 推荐落位策略：被推荐客户应归入哪个等级
type ReferralRouting string

const (
	RoutingReferralClass ReferralRouting = "referral_class" // 固定落入"推荐"永久等级
	RoutingReferrerClass ReferralRouting = "referrer_class" // 跟随推荐人所在等级
	RoutingCustom        ReferralRouting = "custom"         // 商家自定义等级
)

func (r ReferralRouting) Valid() bool {
	switch r {
	case RoutingReferralClass, RoutingReferrerClass, RoutingCustom:
		return true
	default:
		return false
	}
}

// BusinessSettings 商家配置，整体存 JSON 列
type BusinessSettings struct {
	PointsToCurrencyRate   int             `json:"points_to_currency_rate"` // 固定值，见 PointsToCurrencyRate
	AllowCustomClasses     bool            `json:"allow_custom_classes"`
	DefaultReferralRouting ReferralRouting `json:"default_referral_routing"`
	CustomReferralClassID  string          `json:"custom_referral_class_id,omitempty"`
}

// Business 商家主表。只做软停用，不做物理删除
type Business struct {
	ID                    string                               `gorm:"primaryKey;column:id;size:32" json:"id"` // 人类可读短码，见 pkg/idgen
	OwnerID               string                               `gorm:"column:owner_id;size:64;not null;index:idx_owner_id" json:"owner_id"`
	Name                  string                               `gorm:"column:name;size:128;not null" json:"name"`
	ContactEmail          string                               `gorm:"column:contact_email;size:128" json:"contact_email"`
	ContactPhone          string                               `gorm:"column:contact_phone;size:32" json:"contact_phone"`
	Address               string                               `gorm:"column:address;size:255" json:"address"`
	Active                bool                                 `gorm:"column:active;default:true" json:"active"`
	AllowPublicMembership bool                                 `gorm:"column:allow_public_membership;default:true" json:"allow_public_membership"`
	Settings              datatypes.JSONType[BusinessSettings] `gorm:"column:settings" json:"settings"`
	CreatedAt             time.Time                            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}
