package service

import (
	"context"
	"time"

	"spendbook/internal/dto"
	"spendbook/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recentExpenseLimit = 5

type StatsService struct {
	expenseRepo  ExpenseStore
	categoryRepo CategoryStore
	logger       *zap.Logger
}

func NewStatsService(expenseRepo ExpenseStore, categoryRepo CategoryStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// GetStats assembles the dashboard payload. The headline totals query is
// fatal on failure; the breakdown, recent-expenses and category-count
// sub-queries degrade to empty results so one broken sub-query does not
// take down the whole dashboard.
func (s *StatsService) GetStats(ctx context.Context, userID uuid.UUID, period string) (*dto.StatsResponse, error) {
	since := periodStart(period, time.Now())

	totalAmount, expenseCount, err := s.expenseRepo.SumAndCountSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	var averageAmount float64
	if expenseCount > 0 {
		averageAmount = totalAmount / float64(expenseCount)
	}

	// Breakdown and recent expenses are intentionally not period-filtered;
	// the dashboard always shows the all-time split and latest activity.
	breakdown, err := s.expenseRepo.CategoryBreakdown(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch category breakdown", zap.Error(err))
		breakdown = map[string]float64{}
	}

	recent, err := s.expenseRepo.ListRecent(ctx, userID, recentExpenseLimit)
	if err != nil {
		s.logger.Error("Failed to fetch recent expenses", zap.Error(err))
		recent = []*models.Expense{}
	}

	categoryCount, err := s.categoryRepo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch category count", zap.Error(err))
		categoryCount = 0
	}

	return &dto.StatsResponse{
		Stats: dto.Stats{
			TotalAmount:   round2(totalAmount),
			ExpenseCount:  expenseCount,
			AverageAmount: round2(averageAmount),
			CategoryCount: categoryCount,
			Period:        period,
		},
		CategoryBreakdown: breakdown,
		RecentExpenses:    dto.FromExpenses(recent),
	}, nil
}

// periodStart returns the lower time bound for a dashboard period, or nil
// for an unbounded one. Unknown periods fall through to "all", matching the
// existing dashboard contract.
func periodStart(period string, now time.Time) *time.Time {
	var start time.Time
	switch period {
	case "week":
		start = now.Add(-7 * 24 * time.Hour)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &start
}
