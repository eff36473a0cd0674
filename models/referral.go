package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReferralStatus 推荐记录状态机：pending -> completed（或 failed），不可回退
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralCompleted ReferralStatus = "completed"
	ReferralFailed    ReferralStatus = "failed"
)

func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralPending, ReferralCompleted, ReferralFailed:
		return true
	default:
		return false
	}
}

// CanTransition 状态只允许从 pending 往前走
func (s ReferralStatus) CanTransition(to ReferralStatus) bool {
	return s == ReferralPending && (to == ReferralCompleted || to == ReferralFailed)
}

// PointsDistributed 完成时的发放快照
type PointsDistributed struct {
	ReferrerReceived int64     `json:"referrer_received"`
	ReferredReceived int64     `json:"referred_received"`
	DistributedAt    time.Time `json:"distributed_at"`
}

// Referral 一次推荐。completed 是幂等边界：
// 已完成的推荐再次发放必须被拒绝，绝不允许重复加分。
type Referral struct {
	ID              int64           `gorm:"primaryKey;column:id" json:"id"` // snowflake
	BusinessID      string          `gorm:"column:business_id;size:32;not null;index:idx_business_id" json:"business_id"`
	ReferrerID      string          `gorm:"column:referrer_id;size:64;not null;index:idx_referrer_id" json:"referrer_id"`
	ReferredID      string          `gorm:"column:referred_id;size:64;not null;index:idx_referred_id" json:"referred_id"`
	ReferrerClassID string          `gorm:"column:referrer_class_id;size:32" json:"referrer_class_id"`
	AssignedClassID string          `gorm:"column:assigned_class_id;size:32" json:"assigned_class_id"`
	Routing         ReferralRouting `gorm:"column:routing;size:16" json:"routing"`
	Status          ReferralStatus  `gorm:"column:status;size:16;not null;default:pending" json:"status"`

	Distributed datatypes.JSONType[*PointsDistributed] `gorm:"column:points_distributed" json:"points_distributed"`

	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Referral) TableName() string {
	return "referrals"
}

// ReferralLink 客户在某商家下的分享链接，带聚合计数。
// 首次入会时懒创建，客户迁移等级时同步 customer_class_id。
type ReferralLink struct {
	ID              int64  `gorm:"primaryKey;column:id" json:"id"` // snowflake
	CustomerID      string `gorm:"column:customer_id;size:64;not null;uniqueIndex:idx_link_customer_business" json:"customer_id"`
	BusinessID      string `gorm:"column:business_id;size:32;not null;uniqueIndex:idx_link_customer_business" json:"business_id"`
	CustomerClassID string `gorm:"column:customer_class_id;size:32" json:"customer_class_id"`
	Code            string `gorm:"column:code;size:32;uniqueIndex:idx_link_code" json:"code"` // hashids 短码
	URL             string `gorm:"column:url;size:512" json:"url"`
	QrURL           string `gorm:"column:qr_url;size:512" json:"qr_url"`

	TotalReferrals      int64 `gorm:"column:total_referrals;default:0" json:"total_referrals"`
	TotalReferralPoints int64 `gorm:"column:total_referral_points;default:0" json:"total_referral_points"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ReferralLink) TableName() string {
	return "referral_links"
}
