package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/response"
	"Loyo/pkg/snowflake"
	"Loyo/types"
	"context"
)

type MigrationService struct {
	MigrationDAO *dao.ClassMigration
	TriggerDAO   *dao.MigrationTrigger
	Class        IClassService
	Membership   IMembershipService
}

var _ IMigrationService = (*MigrationService)(nil)

type IMigrationService interface {
	Migrate(ctx context.Context, businessID string, req *types.MigrateReq, initiator models.MigrationInitiator) (*models.ClassMigration, error)
	CheckTriggers(ctx context.Context, customerID, businessID string) (*models.ClassMigration, error)
	CreateTrigger(ctx context.Context, businessID string, req *types.CreateTriggerReq) (*models.MigrationTrigger, error)
	ListTriggers(ctx context.Context, businessID string) ([]models.MigrationTrigger, error)
	ListMigrations(ctx context.Context, customerID, businessID string) ([]models.ClassMigration, error)
}

// triggerMetric 触发评估用的会员指标（纯函数）
func triggerMetric(m *models.Membership, triggerType models.TriggerType) int64 {
	switch triggerType {
	case models.TriggerPointsThreshold:
		return m.TotalPoints
	case models.TriggerVisitCount:
		return m.TotalVisits
	case models.TriggerSpendAmount:
		// 消费额按已核销积分折算货币
		return m.TotalPointsRedeemed / models.PointsToCurrencyRate
	default:
		return 0
	}
}

// triggerSatisfied 指标达到阈值即满足（纯函数）
func triggerSatisfied(m *models.Membership, t *models.MigrationTrigger) bool {
	return t.TriggerType.Valid() && triggerMetric(m, t.TriggerType) >= t.ThresholdValue
}

// Migrate 手动/任务迁移：账本操作 + 审计记录
func (s *MigrationService) Migrate(ctx context.Context, businessID string, req *types.MigrateReq, initiator models.MigrationInitiator) (*models.ClassMigration, error) {
	reason := models.MigrationReason(req.Reason)
	if reason == "" {
		reason = models.MigrationManual
	}
	if reason != models.MigrationManual && reason != models.MigrationTaskCompleted {
		return nil, response.NewInvalid("不支持的迁移原因: " + req.Reason)
	}
	if reason == models.MigrationTaskCompleted && req.TaskID == "" {
		return nil, response.NewInvalid("任务迁移必须带任务ID")
	}

	before, err := s.Membership.GetMembership(ctx, req.CustomerID, businessID)
	if err != nil {
		return nil, err
	}
	fromClassID := before.CustomerClassID

	after, err := s.Membership.MigrateClass(ctx, req.CustomerID, businessID, req.ToClassID, reason)
	if err != nil {
		return nil, err
	}

	return s.audit(ctx, after, fromClassID, reason, initiator, req.TaskID, req.Notes)
}

// CheckTriggers 机会性评估自动迁移规则：
// 只看 from 等级匹配当前等级的启用规则，阈值从高到低，
// 命中一条就执行并返回，一次评估最多迁移一级。
func (s *MigrationService) CheckTriggers(ctx context.Context, customerID, businessID string) (*models.ClassMigration, error) {
	m, err := s.Membership.GetMembership(ctx, customerID, businessID)
	if err != nil {
		return nil, err
	}

	triggers, err := s.TriggerDAO.ListActiveByFromClass(ctx, businessID, m.CustomerClassID)
	if err != nil {
		return nil, err
	}

	for i := range triggers {
		t := &triggers[i]
		if !triggerSatisfied(m, t) {
			continue
		}

		reason := models.MigrationSystem
		if t.TriggerType == models.TriggerPointsThreshold {
			reason = models.MigrationPointsThreshold
		}

		after, err := s.Membership.MigrateClass(ctx, customerID, businessID, t.ToClassID, reason)
		if err != nil {
			return nil, err
		}
		return s.audit(ctx, after, m.CustomerClassID, reason, models.InitiatorSystem, "", "")
	}

	return nil, nil
}

// audit 审计记录失败不回滚已完成的等级变更，错误抛给调用方感知
func (s *MigrationService) audit(ctx context.Context, m *models.Membership, fromClassID string, reason models.MigrationReason, initiator models.MigrationInitiator, taskID, notes string) (*models.ClassMigration, error) {
	record := &models.ClassMigration{
		ID:                snowflake.GenID(),
		BusinessID:        m.BusinessID,
		CustomerID:        m.CustomerID,
		FromClassID:       fromClassID,
		ToClassID:         m.CustomerClassID,
		Reason:            reason,
		InitiatedBy:       initiator,
		TaskID:            taskID,
		PointsAtMigration: m.TotalPoints,
		Notes:             notes,
	}
	if err := s.MigrationDAO.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MigrationService) CreateTrigger(ctx context.Context, businessID string, req *types.CreateTriggerReq) (*models.MigrationTrigger, error) {
	if req.FromClassID == req.ToClassID {
		return nil, response.NewInvalid("迁移规则的起止等级不能相同")
	}

	for _, classID := range []string{req.FromClassID, req.ToClassID} {
		class, err := s.Class.GetClass(ctx, classID)
		if err != nil {
			return nil, err
		}
		if class.BusinessID != businessID {
			return nil, response.NewInvalid("等级不属于该商家")
		}
	}

	trigger := &models.MigrationTrigger{
		ID:             snowflake.GenID(),
		BusinessID:     businessID,
		FromClassID:    req.FromClassID,
		ToClassID:      req.ToClassID,
		TriggerType:    models.TriggerType(req.TriggerType),
		ThresholdValue: req.ThresholdValue,
		Active:         true,
	}
	if !trigger.TriggerType.Valid() {
		return nil, response.NewInvalid("未知的触发类型: " + req.TriggerType)
	}

	if err := s.TriggerDAO.Create(ctx, trigger); err != nil {
		return nil, err
	}
	return trigger, nil
}

func (s *MigrationService) ListTriggers(ctx context.Context, businessID string) ([]models.MigrationTrigger, error) {
	return s.TriggerDAO.ListByBusiness(ctx, businessID)
}

func (s *MigrationService) ListMigrations(ctx context.Context, customerID, businessID string) ([]models.ClassMigration, error) {
	return s.MigrationDAO.ListByCustomerBusiness(ctx, customerID, businessID)
}
