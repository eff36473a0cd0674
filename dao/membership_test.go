package dao

import (
	"context"
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

func TestApplyPointsDeltaValueFollowsUpdatedTotal(t *testing.T) {
	rec := &sqlRecorder{}
	m := NewMembership(newDryRunDB(t, rec))

	if _, err := m.ApplyPointsDelta(context.Background(), "cust-001", "BIZ0001", 100); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	if len(rec.sqls) == 0 {
		t.Fatal("no sql captured")
	}
	q := rec.sqls[len(rec.sqls)-1]

	iPoints := strings.Index(q, "`total_points`=total_points + 100")
	iValue := strings.Index(q, "`total_points_value`=total_points / ")
	if iPoints < 0 || iValue < 0 {
		t.Fatalf("unexpected update statement: %s", q)
	}
	// MySQL SET 从左到右求值：余额必须先于货币价值赋值，
	// 且价值表达式不能把 delta 再加一遍，否则等于翻倍入账。
	if iPoints > iValue {
		t.Errorf("total_points must be assigned before total_points_value: %s", q)
	}
	if strings.Contains(q, "(total_points + ") {
		t.Errorf("value expression must not re-add the delta: %s", q)
	}
}

func TestApplyPointsDeltaSplitsEarnedAndRedeemed(t *testing.T) {
	rec := &sqlRecorder{}
	m := NewMembership(newDryRunDB(t, rec))

	if _, err := m.ApplyPointsDelta(context.Background(), "cust-001", "BIZ0001", -30); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	q := rec.sqls[len(rec.sqls)-1]
	if !strings.Contains(q, "`total_points_redeemed`=total_points_redeemed + 30") {
		t.Errorf("negative delta should accrue to redeemed: %s", q)
	}
	if !strings.Contains(q, "`total_points_earned`=total_points_earned + 0") {
		t.Errorf("negative delta should leave earned unchanged: %s", q)
	}
}
