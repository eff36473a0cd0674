package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/types"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder 收集 DryRun 会话生成的 SQL
type sqlRecorder struct {
	mu   sync.Mutex
	sqls []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	s, _ := fc()
	r.mu.Lock()
	r.sqls = append(r.sqls, s)
	r.mu.Unlock()
}

func (r *sqlRecorder) has(sub string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.sqls {
		if strings.Contains(q, sub) {
			return true
		}
	}
	return false
}

func newDryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root@tcp(127.0.0.1:3306)/loyo_test",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, Logger: rec, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

type stubClassService struct{}

func (stubClassService) CreateCustomClass(context.Context, string, *types.CreateClassReq) (*models.CustomerClass, error) {
	return nil, nil
}
func (stubClassService) GetClass(context.Context, string) (*models.CustomerClass, error) {
	return nil, nil
}
func (stubClassService) ListClasses(context.Context, string) ([]models.CustomerClass, error) {
	return nil, nil
}
func (stubClassService) UpdateClass(context.Context, string, *types.UpdateClassReq) (*models.CustomerClass, error) {
	return nil, nil
}
func (stubClassService) IncrCounter(context.Context, string, string, int64) {}
func (stubClassService) RecomputeTotalCustomers(context.Context, string) (int64, error) {
	return 0, nil
}

type stubSyncService struct{}

func (stubSyncService) SyncMembership(context.Context, string, string) {}
func (stubSyncService) RebuildAll(context.Context, string) ([]types.BusinessSummary, error) {
	return nil, nil
}
func (stubSyncService) GetSummaries(context.Context, string) ([]types.BusinessSummary, error) {
	return nil, nil
}

type stubTxService struct {
	appendErr error
	appended  int
}

func (s *stubTxService) Append(context.Context, string, string, int64, models.TransactionType, string, string) (*models.Transaction, error) {
	s.appended++
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	return &models.Transaction{}, nil
}
func (s *stubTxService) Sum(context.Context, string, string) (int64, error) { return 0, nil }
func (s *stubTxService) List(context.Context, string, string, int64, int) (*types.ListTransactionsResp, error) {
	return nil, nil
}

func awardServiceFixture(t *testing.T, rec *sqlRecorder, tx *stubTxService) *ReferralService {
	t.Helper()
	db := newDryRunDB(t, rec)
	return &ReferralService{
		MembershipDAO: dao.NewMembership(db),
		TxDAO:         dao.NewTransaction(db),
		Class:         stubClassService{},
		Tx:            tx,
		Sync:          stubSyncService{},
	}
}

// 流水是查重依据，追加失败时会员余额必须原封不动，重试才不会重复入账
func TestAwardKeepsBalanceWhenLedgerAppendFails(t *testing.T) {
	rec := &sqlRecorder{}
	tx := &stubTxService{appendErr: errors.New("write timeout")}
	svc := awardServiceFixture(t, rec, tx)

	_, err := svc.award(context.Background(), "cust-001", "BIZ0001", 50,
		models.TxReferrer, "推荐好友奖励", "42", "GEN0001", "total_referrer_points_given")
	if err == nil {
		t.Fatal("expected append failure to surface")
	}
	if tx.appended != 1 {
		t.Fatalf("appended = %d, want 1", tx.appended)
	}
	if rec.has("UPDATE `memberships`") {
		t.Error("membership credited before ledger append succeeded")
	}
}

func TestAwardCreditsAfterLedgerAppend(t *testing.T) {
	rec := &sqlRecorder{}
	tx := &stubTxService{}
	svc := awardServiceFixture(t, rec, tx)

	amount, err := svc.award(context.Background(), "cust-001", "BIZ0001", 50,
		models.TxReferrer, "推荐好友奖励", "42", "GEN0001", "total_referrer_points_given")
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if amount != 50 {
		t.Fatalf("amount = %d, want 50", amount)
	}
	if tx.appended != 1 {
		t.Fatalf("appended = %d, want 1", tx.appended)
	}
	if !rec.has("UPDATE `memberships`") {
		t.Error("expected membership credit after ledger append")
	}
}

func TestAwardSkipsZeroAmount(t *testing.T) {
	rec := &sqlRecorder{}
	tx := &stubTxService{}
	svc := awardServiceFixture(t, rec, tx)

	amount, err := svc.award(context.Background(), "cust-001", "BIZ0001", 0,
		models.TxReferred, "受邀入会奖励", "42", "GEN0001", "total_referred_points_given")
	if err != nil || amount != 0 {
		t.Fatalf("amount = %d, err = %v, want 0 and nil", amount, err)
	}
	if tx.appended != 0 {
		t.Error("zero amount should not touch the ledger")
	}
}
