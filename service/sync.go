package service

import (
	"Loyo/dao"
	"Loyo/dao/cache"
	"Loyo/models"
	"Loyo/pkg/log"
	"Loyo/pkg/response"
	"Loyo/types"
	"context"
	"sync"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

type SyncService struct {
	MembershipDAO *dao.Membership
	TxDAO         *dao.Transaction
	Summary       *cache.SummaryStorage
}

var _ ISyncService = (*SyncService)(nil)

type ISyncService interface {
	SyncMembership(ctx context.Context, customerID, businessID string)
	RebuildAll(ctx context.Context, customerID string) ([]types.BusinessSummary, error)
	GetSummaries(ctx context.Context, customerID string) ([]types.BusinessSummary, error)
}

// computeSummary 从权威记录推导一条摘要。缓存内容永远可由此重算
func computeSummary(m *models.Membership, sums map[models.TransactionType]int64) types.BusinessSummary {
	var offer, purchase, total int64
	for txType, amount := range sums {
		total += amount
		if txType.IsOffer() {
			offer += amount
		}
		if txType == models.TxPurchase {
			purchase += amount
		}
	}

	return types.BusinessSummary{
		BusinessID:      m.BusinessID,
		CustomerClassID: m.CustomerClassID,
		Status:          string(m.Status),
		JoinedAt:        m.JoinedAt.Format("2006-01-02 15:04:05"),
		OfferPoints:     offer,
		PurchasePoints:  purchase,
		TotalPoints:     total,
	}
}

// SyncMembership 增量同步单条摘要。只是性能优化，正确性不依赖它：
// 调用方在主流程成功后触发，失败打日志，漂移靠 RebuildAll 修复
func (s *SyncService) SyncMembership(ctx context.Context, customerID, businessID string) {
	if err := s.syncOne(ctx, customerID, businessID); err != nil {
		log.L.Error("sync membership summary failed",
			zap.String("customer_id", customerID),
			zap.String("business_id", businessID),
			zap.Error(err),
		)
	}
}

func (s *SyncService) syncOne(ctx context.Context, customerID, businessID string) error {
	m, err := s.MembershipDAO.FindByCustomerBusiness(ctx, customerID, businessID)
	if err != nil {
		return err
	}

	sums, err := s.TxDAO.SumByType(ctx, customerID, businessID)
	if err != nil {
		return err
	}

	return s.Summary.Set(ctx, customerID, computeSummary(m, sums))
}

// RebuildAll 权威修复：扫客户全部会员关系逐条重算，整体替换缓存
func (s *SyncService) RebuildAll(ctx context.Context, customerID string) ([]types.BusinessSummary, error) {
	memberships, err := s.MembershipDAO.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	// Find 扫空集不报错，空列表要自己挡住，否则会把缓存整体清掉
	if len(memberships) == 0 {
		return nil, response.NewNotFound("客户没有任何会员关系")
	}

	var (
		wg        conc.WaitGroup
		mu        sync.Mutex
		summaries = make([]types.BusinessSummary, 0, len(memberships))
		firstErr  error
	)

	for _, m := range memberships {
		m := m
		wg.Go(func() {
			sums, err := s.TxDAO.SumByType(ctx, customerID, m.BusinessID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			summaries = append(summaries, computeSummary(&m, sums))
		})
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	if err := s.Summary.ReplaceAll(ctx, customerID, summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *SyncService) GetSummaries(ctx context.Context, customerID string) ([]types.BusinessSummary, error) {
	return s.Summary.List(ctx, customerID)
}
