package dao

import (
	"Loyo/models"
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Referral struct {
	Repo[models.Referral]
}

func NewReferral(db *gorm.DB) *Referral {
	return &Referral{
		Repo: NewRepo[models.Referral](db),
	}
}

func (r *Referral) FindByID(ctx context.Context, id int64) (*models.Referral, error) {
	return r.Repo.FindByWhere(ctx, "id = ?", id)
}

func (r *Referral) ListByBusiness(ctx context.Context, businessID string) ([]models.Referral, error) {
	return r.Repo.FindAllByWhere(ctx, "business_id = ?", businessID)
}

// FindPendingByParties 同一组推荐关系复用未完成的记录，避免重复建单
func (r *Referral) FindPendingByParties(ctx context.Context, businessID, referrerID, referredID string) (*models.Referral, error) {
	return r.Repo.FindByWhere(ctx, "business_id = ? AND referrer_id = ? AND referred_id = ? AND status = ?",
		businessID, referrerID, referredID, models.ReferralPending)
}

// MarkCompleted pending -> completed 的唯一通道。
// WHERE 带上 status 条件，RowsAffected = 0 即别处已完成，调用方按冲突处理。
func (r *Referral) MarkCompleted(ctx context.Context, id int64, snapshot *models.PointsDistributed) (bool, error) {
	now := time.Now()
	result := r.Db.WithContext(ctx).Model(&models.Referral{}).
		Where("id = ? AND status = ?", id, models.ReferralPending).
		Updates(map[string]interface{}{
			"status":             models.ReferralCompleted,
			"completed_at":       now,
			"points_distributed": datatypes.NewJSONType(snapshot),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Referral) MarkFailed(ctx context.Context, id int64) (bool, error) {
	result := r.Db.WithContext(ctx).Model(&models.Referral{}).
		Where("id = ? AND status = ?", id, models.ReferralPending).
		Update("status", models.ReferralFailed)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
