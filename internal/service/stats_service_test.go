package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendbook/internal/models"
	"spendbook/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStatsService() (*StatsService, *testutil.InMemoryCategoryStore, *testutil.InMemoryExpenseStore) {
	catStore := &testutil.InMemoryCategoryStore{}
	expStore := &testutil.InMemoryExpenseStore{Categories: catStore}
	return NewStatsService(expStore, catStore, zap.NewNop()), catStore, expStore
}

func TestStatsEmptyLedger(t *testing.T) {
	svc, _, _ := newStatsService()

	resp, err := svc.GetStats(context.Background(), uuid.New(), "month")
	require.NoError(t, err)

	assert.Equal(t, float64(0), resp.Stats.TotalAmount)
	assert.Equal(t, int64(0), resp.Stats.ExpenseCount)
	assert.Equal(t, float64(0), resp.Stats.AverageAmount)
	assert.Equal(t, int64(0), resp.Stats.CategoryCount)
	assert.Equal(t, "month", resp.Stats.Period)
	assert.Empty(t, resp.CategoryBreakdown)
	assert.Empty(t, resp.RecentExpenses)
}

func TestStatsTotalsAndBreakdown(t *testing.T) {
	svc, catStore, expStore := newStatsService()
	userID := uuid.New()

	food := &models.Category{Name: "Food", UserID: userID}
	require.NoError(t, catStore.Create(context.Background(), food))

	now := time.Now()
	expStore.Expenses = []*models.Expense{
		{ID: uuid.New(), Amount: 12.50, CategoryID: &food.ID, UserID: userID, CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), Amount: 7.25, UserID: userID, CreatedAt: now.Add(-2 * time.Hour)},
		// Outside every bounded period
		{ID: uuid.New(), Amount: 100, UserID: userID, CreatedAt: now.AddDate(-2, 0, 0)},
		// Someone else's expense
		{ID: uuid.New(), Amount: 999, UserID: uuid.New(), CreatedAt: now},
	}

	resp, err := svc.GetStats(context.Background(), userID, "week")
	require.NoError(t, err)

	assert.InDelta(t, 19.75, resp.Stats.TotalAmount, 0.001)
	assert.Equal(t, int64(2), resp.Stats.ExpenseCount)
	assert.InDelta(t, 9.88, resp.Stats.AverageAmount, 0.001)
	assert.Equal(t, int64(1), resp.Stats.CategoryCount)

	// Breakdown covers all of the user's expenses, not just the period
	assert.InDelta(t, 12.50, resp.CategoryBreakdown["Food"], 0.001)
	assert.InDelta(t, 107.25, resp.CategoryBreakdown["Uncategorized"], 0.001)

	require.Len(t, resp.RecentExpenses, 3)
	assert.InDelta(t, 12.50, resp.RecentExpenses[0].Amount, 0.001, "most recent first")
}

func TestStatsAllPeriodUnbounded(t *testing.T) {
	svc, _, expStore := newStatsService()
	userID := uuid.New()

	now := time.Now()
	expStore.Expenses = []*models.Expense{
		{ID: uuid.New(), Amount: 10, UserID: userID, CreatedAt: now},
		{ID: uuid.New(), Amount: 20, UserID: userID, CreatedAt: now.AddDate(-5, 0, 0)},
	}

	resp, err := svc.GetStats(context.Background(), userID, "all")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Stats.ExpenseCount)
	assert.InDelta(t, 30, resp.Stats.TotalAmount, 0.001)
}

func TestStatsTotalsFailureIsFatal(t *testing.T) {
	svc, _, expStore := newStatsService()
	expStore.TotalsErr = errors.New("store down")

	_, err := svc.GetStats(context.Background(), uuid.New(), "month")
	assert.Error(t, err)
}

func TestStatsSubQueryFailuresDegrade(t *testing.T) {
	svc, catStore, expStore := newStatsService()
	userID := uuid.New()

	expStore.Expenses = []*models.Expense{
		{ID: uuid.New(), Amount: 10, UserID: userID, CreatedAt: time.Now()},
	}
	expStore.BreakdownErr = errors.New("breakdown broken")
	expStore.RecentErr = errors.New("recent broken")
	catStore.CountErr = errors.New("count broken")

	resp, err := svc.GetStats(context.Background(), userID, "month")
	require.NoError(t, err, "sub-query failures must not fail the dashboard")

	assert.InDelta(t, 10, resp.Stats.TotalAmount, 0.001)
	assert.Empty(t, resp.CategoryBreakdown)
	assert.Empty(t, resp.RecentExpenses)
	assert.Equal(t, int64(0), resp.Stats.CategoryCount)
}

func TestStatsRounding(t *testing.T) {
	svc, _, expStore := newStatsService()
	userID := uuid.New()

	// 3 x 0.10 sums to 0.30000000000000004 in float math
	now := time.Now()
	for i := 0; i < 3; i++ {
		expStore.Expenses = append(expStore.Expenses, &models.Expense{
			ID: uuid.New(), Amount: 0.10, UserID: userID, CreatedAt: now,
		})
	}

	resp, err := svc.GetStats(context.Background(), userID, "all")
	require.NoError(t, err)
	assert.Equal(t, 0.30, resp.Stats.TotalAmount)
	assert.Equal(t, 0.10, resp.Stats.AverageAmount)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	week := periodStart("week", now)
	require.NotNil(t, week)
	assert.Equal(t, now.Add(-7*24*time.Hour), *week)

	month := periodStart("month", now)
	require.NotNil(t, month)
	assert.Equal(t, time.Date(2026, time.July, 30, 12, 0, 0, 0, time.UTC), *month)

	year := periodStart("year", now)
	require.NotNil(t, year)
	assert.Equal(t, time.Date(2025, time.August, 30, 12, 0, 0, 0, time.UTC), *year)

	assert.Nil(t, periodStart("all", now))
	assert.Nil(t, periodStart("bogus", now), "unknown period behaves like all")
}

func TestPeriodStartMonthNormalizes(t *testing.T) {
	// March 31st minus one month lands in early March, one month has no gap
	now := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	month := periodStart("month", now)
	require.NotNil(t, month)
	assert.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), *month)
}
