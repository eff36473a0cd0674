package models

import "time"

// TransactionType 积分变动类型
type TransactionType string

const (
	TxWelcome    TransactionType = "welcome"    // 入会赠送
	TxReferrer   TransactionType = "referrer"   // 推荐人奖励
	TxReferred   TransactionType = "referred"   // 被推荐人奖励
	TxPurchase   TransactionType = "purchase"   // 消费得分
	TxRedemption TransactionType = "redemption" // 积分核销（负数）
	TxAdjustment TransactionType = "adjustment" // 人工调整（正负均可）
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxWelcome, TxReferrer, TxReferred, TxPurchase, TxRedemption, TxAdjustment:
		return true
	default:
		return false
	}
}

// IsOffer 营销类发放（非消费产生）
func (t TransactionType) IsOffer() bool {
	switch t {
	case TxWelcome, TxReferrer, TxReferred:
		return true
	default:
		return false
	}
}

// Transaction 积分流水，只追加不修改。
// (customer_id, business_id) 维度求和即为余额的最终事实。
type Transaction struct {
	ID          int64           `gorm:"primaryKey;column:id" json:"id"` // snowflake
	CustomerID  string          `gorm:"column:customer_id;size:64;not null;index:idx_customer_business" json:"customer_id"`
	BusinessID  string          `gorm:"column:business_id;size:32;not null;index:idx_customer_business" json:"business_id"`
	Amount      int64           `gorm:"column:amount;not null" json:"amount"` // 带符号
	Type        TransactionType `gorm:"column:type;size:16;not null" json:"type"`
	Description string          `gorm:"column:description;size:255" json:"description"`
	RelatedID   string          `gorm:"column:related_id;size:64;index:idx_related_id" json:"related_id,omitempty"` // 关联的推荐/迁移记录
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "point_transactions"
}
