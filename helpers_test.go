package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenDB(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, MigrateProfileStore(db))
	return db
}

type recordingNotifier struct {
	mu        sync.Mutex
	snapshots []ProfileSnapshot
}

func (n *recordingNotifier) Publish(_ context.Context, s ProfileSnapshot) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.snapshots = append(n.snapshots, s)
	return nil
}

func (n *recordingNotifier) Subscribe(ctx context.Context, _ string, _ func(ProfileSnapshot)) error {
	<-ctx.Done()
	return nil
}

func (n *recordingNotifier) published() []ProfileSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ProfileSnapshot(nil), n.snapshots...)
}

type testLedger struct {
	*WalletLedger
	db       *gorm.DB
	store    ProfileStore
	notifier *recordingNotifier
}

func newTestLedger(t *testing.T) testLedger {
	t.Helper()

	db := newTestDB(t)
	store := NewProfileStore(db)
	notifier := &recordingNotifier{}
	ledger := NewWalletLedger(store, notifier, DefaultPolicy())
	ledger.now = func() time.Time { return testNow }

	return testLedger{WalletLedger: ledger, db: db, store: store, notifier: notifier}
}

func (tl testLedger) seed(t *testing.T, userID, gaming, task string) {
	t.Helper()
	require.NoError(t, tl.db.Create(&UserProfile{
		UserId:         userID,
		Username:       "amina",
		GamingEarnings: ksh(gaming),
		TaskEarnings:   ksh(task),
		Plan:           PlanFree,
		Phone:          "0712345678",
	}).Error)
}

func ksh(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireKSh(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, ksh(want).Equal(got), append([]interface{}{"want KSh %s, got KSh %s", want, got.String()}, msgAndArgs...)...)
}
