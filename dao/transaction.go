package dao

import (
	"Loyo/models"
	"context"

	"gorm.io/gorm"
)

type Transaction struct {
	Repo[models.Transaction]
}

func NewTransaction(db *gorm.DB) *Transaction {
	return &Transaction{
		Repo: NewRepo[models.Transaction](db),
	}
}

// Append 追加一条流水。表只插不改，历史记录永不变更
func (t *Transaction) Append(ctx context.Context, tx *models.Transaction) error {
	return t.Db.WithContext(ctx).Create(tx).Error
}

// SumByCustomerBusiness 带符号求和，即该客户在该商家的余额事实
func (t *Transaction) SumByCustomerBusiness(ctx context.Context, customerID, businessID string) (int64, error) {
	var res struct {
		Total int64
	}
	err := t.Db.WithContext(ctx).Model(&models.Transaction{}).
		Select("IFNULL(SUM(amount), 0) AS total").
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Scan(&res).Error
	return res.Total, err
}

// SumByType 按类型分组求和，摘要缓存重算用
func (t *Transaction) SumByType(ctx context.Context, customerID, businessID string) (map[models.TransactionType]int64, error) {
	var rows []struct {
		Type  models.TransactionType
		Total int64
	}
	err := t.Db.WithContext(ctx).Model(&models.Transaction{}).
		Select("type, IFNULL(SUM(amount), 0) AS total").
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[models.TransactionType]int64, len(rows))
	for _, r := range rows {
		sums[r.Type] = r.Total
	}
	return sums, nil
}

// ListByCustomerBusiness 游标分页（id 倒序）
func (t *Transaction) ListByCustomerBusiness(ctx context.Context, customerID, businessID string, cursor int64, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	query := t.Db.WithContext(ctx).
		Where("customer_id = ? AND business_id = ?", customerID, businessID)

	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	err := query.Order("id DESC").Limit(limit).Find(&txs).Error
	return txs, err
}

// CountByTypeRelated 幂等排查：同一关联单据同一类型是否已有流水
func (t *Transaction) CountByTypeRelated(ctx context.Context, customerID, businessID string, txType models.TransactionType, relatedID string) (int64, error) {
	var count int64
	err := t.Db.WithContext(ctx).Model(&models.Transaction{}).
		Where("customer_id = ? AND business_id = ? AND type = ? AND related_id = ?",
			customerID, businessID, txType, relatedID).
		Count(&count).Error
	return count, err
}

