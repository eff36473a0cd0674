package dao

import (
	"Loyo/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Membership struct {
	Repo[models.Membership]
}

func NewMembership(db *gorm.DB) *Membership {
	return &Membership{
		Repo: NewRepo[models.Membership](db),
	}
}

func (m *Membership) FindByCustomerBusiness(ctx context.Context, customerID, businessID string) (*models.Membership, error) {
	return m.Repo.FindByWhere(ctx, "customer_id = ? AND business_id = ?", customerID, businessID)
}

// Exists 创建前的幂等检查：一个客户在一个商家下只能有一条会员记录
func (m *Membership) Exists(ctx context.Context, customerID, businessID string) (bool, error) {
	return m.Repo.IsExist(ctx, "customer_id = ? AND business_id = ?", customerID, businessID)
}

func (m *Membership) ListByCustomer(ctx context.Context, customerID string) ([]models.Membership, error) {
	return m.Repo.FindAllByWhere(ctx, "customer_id = ?", customerID)
}

// CountActiveByClass 统计某等级下的活跃会员数，用于 total_customers 权威重算
func (m *Membership) CountActiveByClass(ctx context.Context, classID string) (int64, error) {
	var count int64
	err := m.Db.WithContext(ctx).Model(&models.Membership{}).
		Where("customer_class_id = ? AND status = ?", classID, models.MembershipActive).
		Count(&count).Error
	return count, err
}

// ApplyPointsDelta 积分读改写。gorm.Expr 原子加减，
// total_points_value 跟随 total_points 按固定汇率重算。
// map 按键名排序生成 SET，MySQL 从左到右求值：
// total_points 先被赋新值，total_points_value 读到的已是更新后的值，
// 表达式里不能再加一次 delta。
func (m *Membership) ApplyPointsDelta(ctx context.Context, customerID, businessID string, delta int64) (int64, error) {
	earnedDelta, redeemedDelta := int64(0), int64(0)
	if delta >= 0 {
		earnedDelta = delta
	} else {
		redeemedDelta = -delta
	}

	result := m.Db.WithContext(ctx).Model(&models.Membership{}).
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Updates(map[string]interface{}{
			"total_points":          gorm.Expr("total_points + ?", delta),
			"total_points_earned":   gorm.Expr("total_points_earned + ?", earnedDelta),
			"total_points_redeemed": gorm.Expr("total_points_redeemed + ?", redeemedDelta),
			"total_points_value":    gorm.Expr("total_points / ?", float64(models.PointsToCurrencyRate)),
		})
	return result.RowsAffected, result.Error
}

func (m *Membership) UpdateByCustomerBusiness(ctx context.Context, customerID, businessID string, data map[string]interface{}) error {
	ret := m.Db.WithContext(ctx).Model(&models.Membership{}).
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Updates(data)
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrVisit 到店计数，与积分无关
func (m *Membership) IncrVisit(ctx context.Context, customerID, businessID string) error {
	return m.Db.WithContext(ctx).Model(&models.Membership{}).
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Updates(map[string]interface{}{
			"total_visits":  gorm.Expr("total_visits + 1"),
			"last_visit_at": time.Now(),
		}).Error
}
