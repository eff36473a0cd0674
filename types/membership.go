package types

// JoinReq 入会请求体。ReferrerID 非空时走推荐流程
type JoinReq struct {
	BusinessID string `json:"business_id" binding:"required"`
	ClassID    string `json:"class_id"` // 缺省落 General；推荐流程由路由策略决定
	ReferrerID string `json:"referrer_id"`
}

// AdjustPointsReq 商家侧积分调整（消费得分/核销/人工调整）
type AdjustPointsReq struct {
	CustomerID  string `json:"customer_id" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"` // 带符号
	Type        string `json:"type" binding:"required,oneof=purchase redemption adjustment"`
	Description string `json:"description"`
}

// BalanceResp 会员积分余额。LedgerTotal 为流水求和，
// 与 TotalPoints 不一致即说明计数漂移
type BalanceResp struct {
	TotalPoints         int64   `json:"total_points"`
	TotalPointsEarned   int64   `json:"total_points_earned"`
	TotalPointsRedeemed int64   `json:"total_points_redeemed"`
	TotalPointsValue    float64 `json:"total_points_value"`
	LedgerTotal         int64   `json:"ledger_total"`
}

// MigrateReq 手动/任务迁移请求体
type MigrateReq struct {
	CustomerID string `json:"customer_id" binding:"required"`
	ToClassID  string `json:"to_class_id" binding:"required"`
	Reason     string `json:"reason" binding:"omitempty,oneof=task_completed manual"`
	TaskID     string `json:"task_id"`
	Notes      string `json:"notes"`
}
