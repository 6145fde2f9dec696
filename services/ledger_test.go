package services

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tokennove.com/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&types.Position{}, &types.EarningEntry{}))
	return testDB
}

func seedEntry(t *testing.T, db *gorm.DB, positionID uint, date time.Time, amount float64, nav *float64, createdAt time.Time) {
	t.Helper()
	entry := types.EarningEntry{
		PositionID: positionID,
		Date:       BusinessDate(date),
		Amount:     amount,
		NAV:        nav,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&entry).Error)
}

func navOf(v float64) *float64 { return &v }

func TestBusinessDate(t *testing.T) {
	stamp := time.Date(2026, 8, 29, 17, 45, 12, 999, time.FixedZone("CST", 8*3600))
	day := BusinessDate(stamp)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), day)
}

func TestTodayEarningsLatestEntryWins(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	now := time.Now()

	seedEntry(t, db, 1, now, 10, nil, now.Add(-2*time.Hour))
	seedEntry(t, db, 1, now, 12.5, nil, now.Add(-1*time.Hour))
	seedEntry(t, db, 1, now.AddDate(0, 0, -1), 99, nil, now.Add(-26*time.Hour))

	assert.Equal(t, 12.5, ledger.TodayEarnings(context.Background(), 1, now))
}

func TestTodayEarningsMissingDate(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)

	assert.Zero(t, ledger.TodayEarnings(context.Background(), 1, time.Now()))
}

func TestEarningsCurveOrdered(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	base := time.Now().Add(-72 * time.Hour)

	// inserted out of order on purpose
	seedEntry(t, db, 1, base.AddDate(0, 0, 2), 3, nil, base.Add(48*time.Hour))
	seedEntry(t, db, 1, base, 1, nil, base)
	seedEntry(t, db, 1, base.AddDate(0, 0, 1), 2, nil, base.Add(24*time.Hour))
	seedEntry(t, db, 2, base, 50, nil, base)

	assert.Equal(t, []float64{1, 2, 3}, ledger.EarningsCurve(context.Background(), 1))
	assert.Empty(t, ledger.EarningsCurve(context.Background(), 3))
}

func TestNAVDelta(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	base := time.Now().Add(-72 * time.Hour)

	seedEntry(t, db, 1, base, 0, navOf(50000), base)
	// a row without a snapshot must not break the differencing
	seedEntry(t, db, 1, base.AddDate(0, 0, 1), 30, nil, base.Add(24*time.Hour))
	seedEntry(t, db, 1, base.AddDate(0, 0, 2), 150, navOf(50180), base.Add(48*time.Hour))

	assert.InDelta(t, 180, ledger.NAVDelta(context.Background(), 1), 1e-9)
	assert.Zero(t, ledger.NAVDelta(context.Background(), 2))
}

func TestNAVDeltaSingleSnapshot(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	now := time.Now()

	seedEntry(t, db, 1, now, 5, navOf(20000), now)

	assert.Zero(t, ledger.NAVDelta(context.Background(), 1))
}

func TestRecordCountAndElapsedMinutes(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedgerService(db)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedEntry(t, db, 1, base, 1, nil, base)
	seedEntry(t, db, 1, base.Add(24*time.Hour), 2, nil, base.Add(24*time.Hour))
	seedEntry(t, db, 1, base.Add(30*time.Hour), 3, nil, base.Add(30*time.Hour))

	assert.EqualValues(t, 3, ledger.RecordCount(ctx, 1))
	assert.EqualValues(t, 30*60, ledger.ElapsedMinutes(ctx, 1))

	assert.EqualValues(t, 0, ledger.RecordCount(ctx, 2))
	assert.EqualValues(t, 0, ledger.ElapsedMinutes(ctx, 2))

	// a single entry has no elapsed window yet
	seedEntry(t, db, 2, base, 1, nil, base)
	assert.EqualValues(t, 0, ledger.ElapsedMinutes(ctx, 2))
}

func setupFailingDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	for i := 0; i < 8; i++ {
		mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb
}

func TestLedgerDegradesOnQueryFailure(t *testing.T) {
	ledger := NewLedgerService(setupFailingDB(t))
	ctx := context.Background()

	assert.Zero(t, ledger.TodayEarnings(ctx, 1, time.Now()))
	assert.Empty(t, ledger.EarningsCurve(ctx, 1))
	assert.Zero(t, ledger.NAVDelta(ctx, 1))
	assert.Zero(t, ledger.RecordCount(ctx, 1))
	assert.Zero(t, ledger.ElapsedMinutes(ctx, 1))
}
