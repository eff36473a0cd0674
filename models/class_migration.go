package models

import "time"

// MigrationReason 等级迁移原因
type MigrationReason string

const (
	MigrationTaskCompleted   MigrationReason = "task_completed"
	MigrationManual          MigrationReason = "manual"
	MigrationPointsThreshold MigrationReason = "points_threshold"
	MigrationSystem          MigrationReason = "system"
)

// MigrationInitiator 迁移发起方
type MigrationInitiator string

const (
	InitiatorCustomer MigrationInitiator = "customer"
	InitiatorBusiness MigrationInitiator = "business"
	InitiatorSystem   MigrationInitiator = "system"
)

// ClassMigration 等级迁移审计记录，只追加
type ClassMigration struct {
	ID                int64              `gorm:"primaryKey;column:id" json:"id"` // snowflake
	BusinessID        string             `gorm:"column:business_id;size:32;not null;index:idx_business_id" json:"business_id"`
	CustomerID        string             `gorm:"column:customer_id;size:64;not null;index:idx_customer_id" json:"customer_id"`
	FromClassID       string             `gorm:"column:from_class_id;size:32;not null" json:"from_class_id"`
	ToClassID         string             `gorm:"column:to_class_id;size:32;not null" json:"to_class_id"`
	Reason            MigrationReason    `gorm:"column:reason;size:24;not null" json:"reason"`
	InitiatedBy       MigrationInitiator `gorm:"column:initiated_by;size:16;not null" json:"initiated_by"`
	TaskID            string             `gorm:"column:task_id;size:64" json:"task_id,omitempty"`
	PointsAtMigration int64              `gorm:"column:points_at_migration" json:"points_at_migration"`
	Notes             string             `gorm:"column:notes;size:255" json:"notes,omitempty"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClassMigration) TableName() string {
	return "class_migrations"
}

// TriggerType 自动迁移触发指标
type TriggerType string

const (
	TriggerPointsThreshold TriggerType = "points_threshold" // 对比 total_points
	TriggerVisitCount      TriggerType = "visit_count"      // 对比 total_visits
	TriggerSpendAmount     TriggerType = "spend_amount"     // 对比 已核销积分 / 固定汇率
)

func (t TriggerType) Valid() bool {
	switch t {
	case TriggerPointsThreshold, TriggerVisitCount, TriggerSpendAmount:
		return true
	default:
		return false
	}
}

// MigrationTrigger 商家配置的自动迁移规则。
// 没有后台轮询，由调用方动作时机会性评估。
type MigrationTrigger struct {
	ID             int64       `gorm:"primaryKey;column:id" json:"id"` // snowflake
	BusinessID     string      `gorm:"column:business_id;size:32;not null;index:idx_business_id" json:"business_id"`
	FromClassID    string      `gorm:"column:from_class_id;size:32;not null;index:idx_from_class" json:"from_class_id"`
	ToClassID      string      `gorm:"column:to_class_id;size:32;not null" json:"to_class_id"`
	TriggerType    TriggerType `gorm:"column:trigger_type;size:24;not null" json:"trigger_type"`
	ThresholdValue int64       `gorm:"column:threshold_value;not null" json:"threshold_value"`
	Active         bool        `gorm:"column:active;default:true" json:"active"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MigrationTrigger) TableName() string {
	return "migration_triggers"
}
