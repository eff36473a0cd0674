package dao

import (
	"Loyo/models"
	"context"

	"gorm.io/gorm"
)

type ReferralLink struct {
	Repo[models.ReferralLink]
}

func NewReferralLink(db *gorm.DB) *ReferralLink {
	return &ReferralLink{
		Repo: NewRepo[models.ReferralLink](db),
	}
}

func (l *ReferralLink) FindByCustomerBusiness(ctx context.Context, customerID, businessID string) (*models.ReferralLink, error) {
	return l.Repo.FindByWhere(ctx, "customer_id = ? AND business_id = ?", customerID, businessID)
}

// IncrStats 成功推荐后累计次数与积分
func (l *ReferralLink) IncrStats(ctx context.Context, customerID, businessID string, points int64) error {
	return l.Db.WithContext(ctx).Model(&models.ReferralLink{}).
		Where("customer_id = ? AND business_id = ?", customerID, businessID).
		Updates(map[string]interface{}{
			"total_referrals":       gorm.Expr("total_referrals + 1"),
			"total_referral_points": gorm.Expr("total_referral_points + ?", points),
		}).Error
}

// UpdateClass 客户迁移等级后同步链接上的等级引用
func (l *ReferralLink) UpdateClass(ctx context.Context, customerID, businessID, classID string) error {
	return l.Repo.UpdateWhere(ctx, map[string]interface{}{"customer_class_id": classID},
		"customer_id = ? AND business_id = ?", customerID, businessID)
}
