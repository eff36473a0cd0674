package types

// CreateTriggerReq 自动迁移规则
type CreateTriggerReq struct {
	FromClassID    string `json:"from_class_id" binding:"required"`
	ToClassID      string `json:"to_class_id" binding:"required"`
	TriggerType    string `json:"trigger_type" binding:"required,oneof=points_threshold visit_count spend_amount"`
	ThresholdValue int64  `json:"threshold_value" binding:"required,gt=0"`
}
