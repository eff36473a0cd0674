package dao

import (
	"Loyo/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// 允许增量更新的统计列
var counterColumns = map[string]struct{}{
	"total_customers":             {},
	"total_points_distributed":    {},
	"total_welcome_points_given":  {},
	"total_referrer_points_given": {},
	"total_referred_points_given": {},
}

type CustomerClass struct {
	Repo[models.CustomerClass]
}

func NewCustomerClass(db *gorm.DB) *CustomerClass {
	return &CustomerClass{
		Repo: NewRepo[models.CustomerClass](db),
	}
}

func (c *CustomerClass) FindByID(ctx context.Context, id string) (*models.CustomerClass, error) {
	return c.Repo.FindByWhere(ctx, "id = ?", id)
}

// ListByBusiness 永久等级排前面，自定义等级按创建时间
func (c *CustomerClass) ListByBusiness(ctx context.Context, businessID string) ([]models.CustomerClass, error) {
	var classes []models.CustomerClass
	err := c.Db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("(type = 'permanent') DESC, created_at ASC").
		Find(&classes).Error
	return classes, err
}

// ListIDs 全量拉取已用等级短码
func (c *CustomerClass) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := c.Db.WithContext(ctx).Model(&models.CustomerClass{}).Pluck("id", &ids).Error
	return ids, err
}

func (c *CustomerClass) UpdateByID(ctx context.Context, id string, data map[string]interface{}) error {
	data["analytics_updated_at"] = time.Now()
	ret := c.Db.WithContext(ctx).Model(&models.CustomerClass{}).Where("id = ?", id).Updates(data)
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrCounter 统计列原子加减。gorm.Expr 保证并发下不互相覆盖
func (c *CustomerClass) IncrCounter(ctx context.Context, id, column string, delta int64) error {
	if _, ok := counterColumns[column]; !ok {
		return errors.New("非法统计列: " + column)
	}
	return c.Db.WithContext(ctx).Model(&models.CustomerClass{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:                 gorm.Expr(column+" + ?", delta),
			"analytics_updated_at": time.Now(),
		}).Error
}

// SetTotalCustomers 全量重算后的权威回写
func (c *CustomerClass) SetTotalCustomers(ctx context.Context, id string, total int64) error {
	return c.Db.WithContext(ctx).Model(&models.CustomerClass{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_customers":      total,
			"analytics_updated_at": time.Now(),
		}).Error
}
