package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/response"
	"context"
	"testing"
	"time"
)

func TestComputeSummary(t *testing.T) {
	joined := time.Date(2025, 3, 1, 10, 30, 0, 0, time.Local)
	m := &models.Membership{
		BusinessID:      "BIZ0001",
		CustomerClassID: "GEN0001",
		Status:          models.MembershipActive,
		JoinedAt:        joined,
	}
	sums := map[models.TransactionType]int64{
		models.TxWelcome:    100,
		models.TxReferrer:   50,
		models.TxReferred:   25,
		models.TxPurchase:   300,
		models.TxRedemption: -120,
		models.TxAdjustment: 10,
	}

	got := computeSummary(m, sums)
	if got.OfferPoints != 175 {
		t.Errorf("offer points: expected 175, got %d", got.OfferPoints)
	}
	if got.PurchasePoints != 300 {
		t.Errorf("purchase points: expected 300, got %d", got.PurchasePoints)
	}
	if got.TotalPoints != 365 {
		t.Errorf("total points: expected 365, got %d", got.TotalPoints)
	}
	if got.BusinessID != "BIZ0001" || got.CustomerClassID != "GEN0001" {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.JoinedAt != "2025-03-01 10:30:00" {
		t.Errorf("joined_at: got %s", got.JoinedAt)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	m := &models.Membership{
		BusinessID:      "BIZ0001",
		CustomerClassID: "GEN0001",
		Status:          models.MembershipActive,
		JoinedAt:        time.Now(),
	}

	got := computeSummary(m, map[models.TransactionType]int64{})
	if got.OfferPoints != 0 || got.PurchasePoints != 0 || got.TotalPoints != 0 {
		t.Errorf("expected zero summary, got %+v", got)
	}
}

// 没有任何会员关系时重建必须报 404，而不是把缓存整体清空
func TestRebuildAllNoMemberships(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)
	svc := &SyncService{
		MembershipDAO: dao.NewMembership(db),
		TxDAO:         dao.NewTransaction(db),
	}

	_, err := svc.RebuildAll(context.Background(), "cust-001")
	if !response.IsNotFound(err) {
		t.Errorf("empty membership list should map to 40401, got %v", err)
	}
}
