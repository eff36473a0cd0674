package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/response"
	"Loyo/pkg/snowflake"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReferrerInfo 推荐来源，走推荐流程入会时携带
type ReferrerInfo struct {
	ReferrerID      string
	ReferrerClassID string
}

type MembershipService struct {
	BusinessDAO   *dao.Business
	MembershipDAO *dao.Membership
	Class         IClassService
	Tx            ITransactionService
	Sync          ISyncService
	Link          ILinkService
}

var _ IMembershipService = (*MembershipService)(nil)

type IMembershipService interface {
	CreateMembership(ctx context.Context, customerID, businessID, classID string, referrer *ReferrerInfo) (*models.Membership, error)
	GetMembership(ctx context.Context, customerID, businessID string) (*models.Membership, error)
	AdjustPoints(ctx context.Context, customerID, businessID string, amount int64, txType models.TransactionType, description string) (*models.Membership, error)
	MigrateClass(ctx context.Context, customerID, businessID, toClassID string, reason models.MigrationReason) (*models.Membership, error)
	RecordVisit(ctx context.Context, customerID, businessID string) error
}

// CreateMembership 入会主流程。多步写没有跨记录事务，
// 顺序执行并按步骤分级：会员记录创建和迎新积分是主步骤，失败向上抛；
// 等级计数、摘要缓存、分享链接是次级步骤，失败打日志继续。
// (customer, business) 已有记录时直接报冲突，这是创建侧的幂等闸门。
func (s *MembershipService) CreateMembership(ctx context.Context, customerID, businessID, classID string, referrer *ReferrerInfo) (*models.Membership, error) {
	business, err := s.BusinessDAO.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("商家不存在")
		}
		return nil, err
	}
	if !business.Active {
		return nil, response.NewInvalid("商家已停用")
	}

	// 未指定等级时落 General 永久等级
	if classID == "" {
		classes, err := s.Class.ListClasses(ctx, businessID)
		if err != nil {
			return nil, err
		}
		if classID = generalClassID(classes); classID == "" {
			return nil, response.NewNotFound("General 等级缺失")
		}
	}

	class, err := s.Class.GetClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.BusinessID != businessID {
		return nil, response.NewInvalid("等级不属于该商家")
	}
	if !class.Active {
		return nil, response.NewInvalid("等级已停用")
	}

	exists, err := s.MembershipDAO.Exists(ctx, customerID, businessID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, response.NewConflict("会员关系已存在")
	}

	now := time.Now()
	reason := models.JoinReasonSignup
	m := &models.Membership{
		ID:              snowflake.GenID(),
		CustomerID:      customerID,
		BusinessID:      businessID,
		CustomerClassID: classID,
		Status:          models.MembershipActive,
		JoinedAt:        now,
	}
	if referrer != nil {
		reason = models.JoinReasonReferral
		m.ReferrerID = referrer.ReferrerID
		m.ReferredByClassID = referrer.ReferrerClassID
		m.ReferralDate = &now
	}
	m.ClassHistory = datatypes.NewJSONType([]models.ClassHistoryEntry{
		{ClassID: classID, JoinedAt: now, Reason: reason},
	})

	if err := s.MembershipDAO.Create(ctx, m); err != nil {
		return nil, err
	}

	// 迎新积分是主步骤：流水或加分失败要让调用方看到创建未完成，
	// 而不是假装成功
	if class.WelcomePoints > 0 {
		_, err := s.Tx.Append(ctx, customerID, businessID, class.WelcomePoints,
			models.TxWelcome, "入会奖励", fmt.Sprintf("%d", m.ID))
		if err != nil {
			return nil, fmt.Errorf("会员已创建但迎新积分流水失败: %w", err)
		}
		if _, err := s.MembershipDAO.ApplyPointsDelta(ctx, customerID, businessID, class.WelcomePoints); err != nil {
			return nil, fmt.Errorf("会员已创建但迎新积分入账失败: %w", err)
		}

		s.Class.IncrCounter(ctx, classID, "total_welcome_points_given", class.WelcomePoints)
		s.Class.IncrCounter(ctx, classID, "total_points_distributed", class.WelcomePoints)
	}

	s.Class.IncrCounter(ctx, classID, "total_customers", 1)
	s.Sync.SyncMembership(ctx, customerID, businessID)
	if _, err := s.Link.EnsureLink(ctx, customerID, businessID, classID); err != nil {
		// 分享链接懒创建失败不影响入会
		logSecondary("ensure referral link failed", customerID, businessID, err)
	}

	return s.MembershipDAO.FindByCustomerBusiness(ctx, customerID, businessID)
}

func (s *MembershipService) GetMembership(ctx context.Context, customerID, businessID string) (*models.Membership, error) {
	m, err := s.MembershipDAO.FindByCustomerBusiness(ctx, customerID, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("会员关系不存在")
		}
		return nil, err
	}
	return m, nil
}

// AdjustPoints 消费得分 / 积分核销 / 人工调整。
// 先读改写会员表再追加流水；两边不一致时以流水求和为准修复
func (s *MembershipService) AdjustPoints(ctx context.Context, customerID, businessID string, amount int64, txType models.TransactionType, description string) (*models.Membership, error) {
	if amount == 0 {
		return nil, response.NewInvalid("积分变动不能为 0")
	}
	if !txType.Valid() || txType.IsOffer() {
		return nil, response.NewInvalid("该类型流水不走调整入口")
	}

	m, err := s.GetMembership(ctx, customerID, businessID)
	if err != nil {
		return nil, err
	}
	if m.Status != models.MembershipActive {
		return nil, response.NewInvalid("会员关系非活跃状态")
	}
	if amount < 0 && m.TotalPoints < -amount {
		return nil, response.NewInvalid("积分余额不足")
	}

	rows, err := s.MembershipDAO.ApplyPointsDelta(ctx, customerID, businessID, amount)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, response.NewNotFound("会员关系不存在")
	}

	if _, err := s.Tx.Append(ctx, customerID, businessID, amount, txType, description, ""); err != nil {
		return nil, fmt.Errorf("积分已入账但流水落库失败: %w", err)
	}

	if amount > 0 {
		s.Class.IncrCounter(ctx, m.CustomerClassID, "total_points_distributed", amount)
	}
	s.Sync.SyncMembership(ctx, customerID, businessID)

	return s.MembershipDAO.FindByCustomerBusiness(ctx, customerID, businessID)
}

// MigrateClass 等级迁移的账本操作：
// 拒绝原地迁移，封口旧履历段、新开一段，换等级引用，
// 新旧等级计数一减一增，分享链接同步等级。
func (s *MembershipService) MigrateClass(ctx context.Context, customerID, businessID, toClassID string, reason models.MigrationReason) (*models.Membership, error) {
	m, err := s.GetMembership(ctx, customerID, businessID)
	if err != nil {
		return nil, err
	}
	fromClassID := m.CustomerClassID
	if fromClassID == toClassID {
		return nil, response.NewInvalid("目标等级与当前等级相同")
	}

	target, err := s.Class.GetClass(ctx, toClassID)
	if err != nil {
		return nil, err
	}
	if target.BusinessID != businessID {
		return nil, response.NewInvalid("等级不属于该商家")
	}
	if !target.Active {
		return nil, response.NewInvalid("等级已停用")
	}

	now := time.Now()
	history := m.ClassHistory.Data()
	if len(history) > 0 && history[len(history)-1].MigratedAt == nil {
		history[len(history)-1].MigratedAt = &now
	}
	history = append(history, models.ClassHistoryEntry{
		ClassID:  toClassID,
		JoinedAt: now,
		Reason:   string(reason),
	})

	err = s.MembershipDAO.UpdateByCustomerBusiness(ctx, customerID, businessID, map[string]interface{}{
		"customer_class_id": toClassID,
		"class_history":     datatypes.NewJSONType(history),
	})
	if err != nil {
		return nil, err
	}

	s.Class.IncrCounter(ctx, fromClassID, "total_customers", -1)
	s.Class.IncrCounter(ctx, toClassID, "total_customers", 1)
	s.Link.SyncClass(ctx, customerID, businessID, toClassID)
	s.Sync.SyncMembership(ctx, customerID, businessID)

	return s.MembershipDAO.FindByCustomerBusiness(ctx, customerID, businessID)
}

// RecordVisit 到店打卡，只动访问计数，与积分无关
func (s *MembershipService) RecordVisit(ctx context.Context, customerID, businessID string) error {
	if _, err := s.GetMembership(ctx, customerID, businessID); err != nil {
		return err
	}
	return s.MembershipDAO.IncrVisit(ctx, customerID, businessID)
}
