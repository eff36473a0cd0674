package dao

import (
	"Loyo/models"
	"context"

	"gorm.io/gorm"
)

type ClassMigration struct {
	Repo[models.ClassMigration]
}

func NewClassMigration(db *gorm.DB) *ClassMigration {
	return &ClassMigration{
		Repo: NewRepo[models.ClassMigration](db),
	}
}

func (m *ClassMigration) ListByCustomerBusiness(ctx context.Context, customerID, businessID string) ([]models.ClassMigration, error) {
	var list []models.ClassMigration
	err := m.Db.WithContext(ctx).
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

type MigrationTrigger struct {
	Repo[models.MigrationTrigger]
}

func NewMigrationTrigger(db *gorm.DB) *MigrationTrigger {
	return &MigrationTrigger{
		Repo: NewRepo[models.MigrationTrigger](db),
	}
}

// ListActiveByFromClass 取当前等级适用的启用规则。
// 阈值高的排前面：多条规则同时满足时只执行阈值最高的那条
func (t *MigrationTrigger) ListActiveByFromClass(ctx context.Context, businessID, fromClassID string) ([]models.MigrationTrigger, error) {
	var triggers []models.MigrationTrigger
	err := t.Db.WithContext(ctx).
		Where("business_id = ? AND from_class_id = ? AND active = ?", businessID, fromClassID, true).
		Order("threshold_value DESC").
		Find(&triggers).Error
	return triggers, err
}

func (t *MigrationTrigger) ListByBusiness(ctx context.Context, businessID string) ([]models.MigrationTrigger, error) {
	return t.Repo.FindAllByWhere(ctx, "business_id = ?", businessID)
}
