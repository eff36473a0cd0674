package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/log"
	"Loyo/pkg/response"
	"Loyo/pkg/snowflake"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReferralService struct {
	BusinessDAO   *dao.Business
	ReferralDAO   *dao.Referral
	MembershipDAO *dao.Membership
	TxDAO         *dao.Transaction
	Class         IClassService
	Membership    IMembershipService
	Tx            ITransactionService
	Sync          ISyncService
	Link          ILinkService
}

var _ IReferralService = (*ReferralService)(nil)

type IReferralService interface {
	DetermineRouting(ctx context.Context, businessID, referrerClassID string) (string, models.ReferralRouting, error)
	CreateReferral(ctx context.Context, businessID, referrerID, referredID string) (*models.Referral, error)
	DistributePoints(ctx context.Context, referralID int64, businessID string) (*models.Referral, error)
	HandleReferredSignup(ctx context.Context, businessID, referredID, referrerID string) (*models.Membership, *models.Referral, error)
	GetReferral(ctx context.Context, id int64) (*models.Referral, error)
	ListReferrals(ctx context.Context, businessID string) ([]models.Referral, error)
	CancelReferral(ctx context.Context, id int64, businessID string) (*models.Referral, error)
}

// resolveRouting 路由决策，纯函数：
//   - referral_class: 落"推荐"永久等级，缺失则跟随推荐人等级
//   - referrer_class: 跟随推荐人等级
//   - custom: 商家指定等级，未配置或已失效则按 referral_class 处理
//
// 所有兜底的最后一层是 General 永久等级。
func resolveRouting(settings models.BusinessSettings, classes []models.CustomerClass, referrerClassID string) (string, models.ReferralRouting) {
	routing := settings.DefaultReferralRouting
	if !routing.Valid() {
		routing = models.RoutingReferralClass
	}

	find := func(match func(c *models.CustomerClass) bool) string {
		for i := range classes {
			if classes[i].Active && match(&classes[i]) {
				return classes[i].ID
			}
		}
		return ""
	}
	permanent := func(name string) string {
		return find(func(c *models.CustomerClass) bool {
			return c.Type == models.ClassTypePermanent && c.Name == name
		})
	}

	if routing == models.RoutingCustom {
		if id := find(func(c *models.CustomerClass) bool { return c.ID == settings.CustomReferralClassID }); id != "" {
			return id, models.RoutingCustom
		}
		routing = models.RoutingReferralClass
	}

	if routing == models.RoutingReferrerClass {
		if referrerClassID != "" {
			return referrerClassID, models.RoutingReferrerClass
		}
		routing = models.RoutingReferralClass
	}

	// referral_class：推荐永久等级 -> 推荐人等级 -> General
	if id := permanent(models.ClassNameReferral); id != "" {
		return id, models.RoutingReferralClass
	}
	if referrerClassID != "" {
		return referrerClassID, models.RoutingReferralClass
	}
	return permanent(models.ClassNameGeneral), models.RoutingReferralClass
}

// DetermineRouting 只做决策不落库
func (s *ReferralService) DetermineRouting(ctx context.Context, businessID, referrerClassID string) (string, models.ReferralRouting, error) {
	business, err := s.BusinessDAO.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", response.NewNotFound("商家不存在")
		}
		return "", "", err
	}

	classes, err := s.Class.ListClasses(ctx, businessID)
	if err != nil {
		return "", "", err
	}

	assigned, routing := resolveRouting(business.Settings.Data(), classes, referrerClassID)
	if assigned == "" {
		return "", "", response.NewNotFound("商家没有可用的落位等级")
	}
	return assigned, routing, nil
}

// CreateReferral 建 pending 推荐记录。同一组关系有未完成记录时直接复用
func (s *ReferralService) CreateReferral(ctx context.Context, businessID, referrerID, referredID string) (*models.Referral, error) {
	if referrerID == referredID {
		return nil, response.NewInvalid("不能推荐自己")
	}

	if pending, err := s.ReferralDAO.FindPendingByParties(ctx, businessID, referrerID, referredID); err == nil {
		return pending, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	referrerClassID := ""
	if m, err := s.MembershipDAO.FindByCustomerBusiness(ctx, referrerID, businessID); err == nil {
		referrerClassID = m.CustomerClassID
	}

	assigned, routing, err := s.DetermineRouting(ctx, businessID, referrerClassID)
	if err != nil {
		return nil, err
	}

	r := &models.Referral{
		ID:              snowflake.GenID(),
		BusinessID:      businessID,
		ReferrerID:      referrerID,
		ReferredID:      referredID,
		ReferrerClassID: referrerClassID,
		AssignedClassID: assigned,
		Routing:         routing,
		Status:          models.ReferralPending,
	}
	if err := s.ReferralDAO.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DistributePoints 推荐积分发放。completed 是幂等边界：
// 已完成的推荐再次进来直接报冲突；流水追加前还按 related_id 查重，
// 中途失败后的重试不会重复加分。
func (s *ReferralService) DistributePoints(ctx context.Context, referralID int64, businessID string) (*models.Referral, error) {
	r, err := s.ReferralDAO.FindByID(ctx, referralID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("推荐记录不存在")
		}
		return nil, err
	}
	if r.BusinessID != businessID {
		return nil, response.NewInvalid("推荐记录不属于该商家")
	}
	if r.Status != models.ReferralPending {
		return nil, response.NewConflict("推荐已完成，不能重复发放")
	}

	referrerM, err := s.ensureReferrerMembership(ctx, r)
	if err != nil {
		if response.IsIntegrity(err) {
			// 补登失败：被推荐人照常入会，推荐以零发放收口，不挂 pending
			return s.completeWithoutCredit(ctx, r, err)
		}
		return nil, err
	}
	if referrerM.Status != models.MembershipActive {
		return nil, response.NewIntegrity("推荐人会员关系非活跃，不能发放推荐积分")
	}

	referrerClass, err := s.Class.GetClass(ctx, referrerM.CustomerClassID)
	if err != nil {
		return nil, err
	}
	referredClass, err := s.Class.GetClass(ctx, r.AssignedClassID)
	if err != nil {
		return nil, err
	}

	relatedID := fmt.Sprintf("%d", r.ID)

	referrerAmount, err := s.award(ctx, r.ReferrerID, businessID, referrerClass.ReferrerPoints,
		models.TxReferrer, "推荐好友奖励", relatedID, referrerClass.ID, "total_referrer_points_given")
	if err != nil {
		return nil, err
	}

	referredAmount, err := s.award(ctx, r.ReferredID, businessID, referredClass.ReferredPoints,
		models.TxReferred, "受邀入会奖励", relatedID, referredClass.ID, "total_referred_points_given")
	if err != nil {
		return nil, err
	}

	s.Link.RecordSuccess(ctx, r.ReferrerID, businessID, referrerAmount)

	snapshot := &models.PointsDistributed{
		ReferrerReceived: referrerAmount,
		ReferredReceived: referredAmount,
		DistributedAt:    time.Now(),
	}
	ok, err := s.ReferralDAO.MarkCompleted(ctx, r.ID, snapshot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewConflict("推荐已完成，不能重复发放")
	}

	return s.ReferralDAO.FindByID(ctx, r.ID)
}

// award 单边发放：流水查重 -> 会员校验 -> 追加流水 -> 会员加分 -> 等级计数 -> 摘要同步。
// 零分奖励直接跳过。推荐积分绝不发给非会员。
// 查重以流水为准，所以流水必须先于加分落库：加分失败重试时查重命中直接跳过，
// 余额差额由流水求和修复；反过来先加分会在追加失败重试时重复入账。
func (s *ReferralService) award(ctx context.Context, customerID, businessID string, amount int64, txType models.TransactionType, desc, relatedID, classID, counterColumn string) (int64, error) {
	if amount <= 0 {
		return 0, nil
	}

	// 重试安全：同一推荐同一类型的流水只允许出现一次
	count, err := s.TxDAO.CountByTypeRelated(ctx, customerID, businessID, txType, relatedID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return amount, nil
	}

	if _, err := s.MembershipDAO.FindByCustomerBusiness(ctx, customerID, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, response.NewIntegrity("推荐积分不能发给非会员")
		}
		return 0, err
	}

	if _, err := s.Tx.Append(ctx, customerID, businessID, amount, txType, desc, relatedID); err != nil {
		return 0, err
	}

	if _, err := s.MembershipDAO.ApplyPointsDelta(ctx, customerID, businessID, amount); err != nil {
		return 0, fmt.Errorf("推荐积分流水已落库但入账失败: %w", err)
	}

	s.Class.IncrCounter(ctx, classID, counterColumn, amount)
	s.Class.IncrCounter(ctx, classID, "total_points_distributed", amount)
	s.Sync.SyncMembership(ctx, customerID, businessID)

	return amount, nil
}

// ensureReferrerMembership 推荐人没有会员关系时尝试补登：
// 商家开放入会则把推荐人落进 General 等级再继续发放
func (s *ReferralService) ensureReferrerMembership(ctx context.Context, r *models.Referral) (*models.Membership, error) {
	m, err := s.MembershipDAO.FindByCustomerBusiness(ctx, r.ReferrerID, r.BusinessID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	business, err := s.BusinessDAO.FindByID(ctx, r.BusinessID)
	if err != nil {
		return nil, err
	}
	if !business.AllowPublicMembership {
		return nil, response.NewIntegrity("推荐人不是会员且商家未开放入会")
	}

	classes, err := s.Class.ListClasses(ctx, r.BusinessID)
	if err != nil {
		return nil, response.NewIntegrity("推荐人补登失败: " + err.Error())
	}
	generalID := generalClassID(classes)
	if generalID == "" {
		return nil, response.NewIntegrity("推荐人补登失败: General 等级缺失")
	}

	if _, err := s.Membership.CreateMembership(ctx, r.ReferrerID, r.BusinessID, generalID, nil); err != nil {
		return nil, response.NewIntegrity("推荐人补登失败: " + err.Error())
	}
	return s.MembershipDAO.FindByCustomerBusiness(ctx, r.ReferrerID, r.BusinessID)
}

// completeWithoutCredit 放弃推荐积分但不留死 pending：零发放收口。
// 是否应改为排队重试是一个开放的产品决策，现状优先保证报名不被阻塞
func (s *ReferralService) completeWithoutCredit(ctx context.Context, r *models.Referral, cause error) (*models.Referral, error) {
	log.L.Warn("referral completed without credit",
		zap.Int64("referral_id", r.ID),
		zap.String("business_id", r.BusinessID),
		zap.String("referrer_id", r.ReferrerID),
		zap.Error(cause),
	)

	snapshot := &models.PointsDistributed{DistributedAt: time.Now()}
	if _, err := s.ReferralDAO.MarkCompleted(ctx, r.ID, snapshot); err != nil {
		return nil, err
	}
	return s.ReferralDAO.FindByID(ctx, r.ID)
}

// HandleReferredSignup 推荐报名的编排：
// 路由决策 -> 被推荐人入会（带推荐来源）-> 建推荐记录 -> 发放。
// 发放环节的失败绝不回滚入会，报名永远不被推荐环节卡住
func (s *ReferralService) HandleReferredSignup(ctx context.Context, businessID, referredID, referrerID string) (*models.Membership, *models.Referral, error) {
	referrerClassID := ""
	if m, err := s.MembershipDAO.FindByCustomerBusiness(ctx, referrerID, businessID); err == nil {
		referrerClassID = m.CustomerClassID
	}

	assigned, _, err := s.DetermineRouting(ctx, businessID, referrerClassID)
	if err != nil {
		return nil, nil, err
	}

	m, err := s.Membership.CreateMembership(ctx, referredID, businessID, assigned, &ReferrerInfo{
		ReferrerID:      referrerID,
		ReferrerClassID: referrerClassID,
	})
	if err != nil {
		return nil, nil, err
	}

	r, err := s.CreateReferral(ctx, businessID, referrerID, referredID)
	if err != nil {
		logSecondary("create referral failed after signup", referredID, businessID, err)
		return m, nil, nil
	}

	completed, err := s.DistributePoints(ctx, r.ID, businessID)
	if err != nil {
		logSecondary("distribute referral points failed after signup", referredID, businessID, err)
		return m, r, nil
	}

	return m, completed, nil
}

func (s *ReferralService) GetReferral(ctx context.Context, id int64) (*models.Referral, error) {
	r, err := s.ReferralDAO.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("推荐记录不存在")
		}
		return nil, err
	}
	return r, nil
}

func (s *ReferralService) ListReferrals(ctx context.Context, businessID string) ([]models.Referral, error) {
	return s.ReferralDAO.ListByBusiness(ctx, businessID)
}

// CancelReferral 商家侧放弃一条未完成的推荐。只有 pending 能取消，
// 已完成的发放不可逆
func (s *ReferralService) CancelReferral(ctx context.Context, id int64, businessID string) (*models.Referral, error) {
	r, err := s.GetReferral(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.BusinessID != businessID {
		return nil, response.NewInvalid("推荐记录不属于该商家")
	}

	ok, err := s.ReferralDAO.MarkFailed(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewConflict("推荐不在待发放状态，不能取消")
	}
	return s.ReferralDAO.FindByID(ctx, id)
}
