package models

import (
	"time"

	"gorm.io/datatypes"
)

// MembershipStatus 会员关系状态
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipInactive  MembershipStatus = "inactive" // 退出后置为 inactive，不物理删除
	MembershipSuspended MembershipStatus = "suspended"
)

// 入会 / 迁移原因
const (
	JoinReasonSignup   = "initial_signup"
	JoinReasonReferral = "referral"
)

// ClassHistoryEntry 等级履历中的一段：迁出时补 MigratedAt，新开一段
type ClassHistoryEntry struct {
	ClassID    string     `json:"class_id"`
	JoinedAt   time.Time  `json:"joined_at"`
	MigratedAt *time.Time `json:"migrated_at,omitempty"`
	Reason     string     `json:"reason"`
}

// Membership 客户↔商家关系的权威记录。
// (customer_id, business_id) 全局唯一，重复创建直接报冲突。
// 积分三个字段满足 total = earned - redeemed，且与流水表求和一致，
// 不一致时以流水表为准做修复。
type Membership struct {
	ID              int64            `gorm:"primaryKey;column:id" json:"id"` // snowflake
	CustomerID      string           `gorm:"column:customer_id;size:64;not null;uniqueIndex:idx_customer_business" json:"customer_id"`
	BusinessID      string           `gorm:"column:business_id;size:32;not null;uniqueIndex:idx_customer_business;index:idx_business_id" json:"business_id"`
	CustomerClassID string           `gorm:"column:customer_class_id;size:32;not null;index:idx_class_id" json:"customer_class_id"`
	Status          MembershipStatus `gorm:"column:status;size:16;not null;default:active" json:"status"`
	JoinedAt        time.Time        `gorm:"column:joined_at" json:"joined_at"`

	TotalPoints         int64   `gorm:"column:total_points;default:0" json:"total_points"`
	TotalPointsEarned   int64   `gorm:"column:total_points_earned;default:0" json:"total_points_earned"`
	TotalPointsRedeemed int64   `gorm:"column:total_points_redeemed;default:0" json:"total_points_redeemed"`
	TotalPointsValue    float64 `gorm:"column:total_points_value;default:0" json:"total_points_value"` // total_points / 固定汇率

	TotalVisits int64      `gorm:"column:total_visits;default:0" json:"total_visits"`
	LastVisitAt *time.Time `gorm:"column:last_visit_at" json:"last_visit_at"`

	// 推荐来源（可空）
	ReferrerID        string     `gorm:"column:referrer_id;size:64;index:idx_referrer_id" json:"referrer_id,omitempty"`
	ReferredByClassID string     `gorm:"column:referred_by_class_id;size:32" json:"referred_by_class_id,omitempty"`
	ReferralDate      *time.Time `gorm:"column:referral_date" json:"referral_date,omitempty"`

	ClassHistory datatypes.JSONType[[]ClassHistoryEntry] `gorm:"column:class_history" json:"class_history"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}
