package dao

import (
	"Loyo/models"
	"context"

	"gorm.io/gorm"
)

type Business struct {
	Repo[models.Business]
}

func NewBusiness(db *gorm.DB) *Business {
	return &Business{
		Repo: NewRepo[models.Business](db),
	}
}

func (b *Business) FindByID(ctx context.Context, id string) (*models.Business, error) {
	return b.Repo.FindByWhere(ctx, "id = ?", id)
}

// ListIDs 全量拉取已用短码，生成新短码时查重用
func (b *Business) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := b.Db.WithContext(ctx).Model(&models.Business{}).Pluck("id", &ids).Error
	return ids, err
}

func (b *Business) UpdateByID(ctx context.Context, id string, data map[string]interface{}) error {
	ret := b.Db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).Updates(data)
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
