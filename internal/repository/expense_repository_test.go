package repository

import (
	"context"
	"spendbook/internal/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newExpenseRepoMock(t *testing.T) (*ExpenseRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewExpenseRepository(mock, zap.NewNop()), mock
}

func expenseRows(t *testing.T) *pgxmock.Rows {
	t.Helper()
	return pgxmock.NewRows([]string{"id", "amount", "note", "category_id", "user_id", "created_at", "name"})
}

func TestExpenseRepositoryListPaginates(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()
	expenseID := uuid.New()
	catID := int64(1)
	name := "Food"
	now := time.Now()

	mock.ExpectQuery(`SELECT e\.id, e\.amount, e\.note, e\.category_id, e\.user_id, e\.created_at, c\.name FROM expenses e LEFT JOIN categories c ON c\.id = e\.category_id WHERE e\.user_id = \$1 ORDER BY e\.created_at desc LIMIT 20 OFFSET 20`).
		WithArgs(userID).
		WillReturnRows(expenseRows(t).AddRow(expenseID, 12.5, (*string)(nil), &catID, userID, now, &name))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM expenses e WHERE e\.user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(41)))

	filter := &models.ExpenseFilter{SortBy: "created_at", SortOrder: "desc", Page: 2, Limit: 20}
	expenses, total, err := repo.List(context.Background(), userID, filter)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, int64(41), total)
	assert.Equal(t, 12.5, expenses[0].Amount)
	require.NotNil(t, expenses[0].CategoryName)
	assert.Equal(t, "Food", *expenses[0].CategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryListAppliesFilters(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()
	catID := int64(3)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE e\.user_id = \$1 AND e\.category_id = \$2 AND e\.created_at >= \$3 AND e\.created_at <= \$4 ORDER BY e\.amount asc LIMIT 10 OFFSET 0`).
		WithArgs(userID, catID, start, end).
		WillReturnRows(expenseRows(t))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM expenses e WHERE e\.user_id = \$1 AND e\.category_id = \$2 AND e\.created_at >= \$3 AND e\.created_at <= \$4`).
		WithArgs(userID, catID, start, end).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	filter := &models.ExpenseFilter{
		CategoryID: &catID,
		StartDate:  &start,
		EndDate:    &end,
		SortBy:     "amount",
		SortOrder:  "asc",
		Page:       1,
		Limit:      10,
	}
	expenses, total, err := repo.List(context.Background(), userID, filter)
	require.NoError(t, err)
	assert.Empty(t, expenses)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()
	expenseID := uuid.New()

	mock.ExpectQuery(`WHERE e\.id = \$1 AND e\.user_id = \$2`).
		WithArgs(expenseID, userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), userID, expenseID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryCreateReturnsCreatedAt(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()
	now := time.Now()
	catID := int64(1)
	expense := &models.Expense{
		ID:         uuid.New(),
		Amount:     42.99,
		CategoryID: &catID,
		UserID:     userID,
	}

	mock.ExpectQuery(`INSERT INTO expenses \(id,amount,note,category_id,user_id\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING created_at`).
		WithArgs(expense.ID, expense.Amount, expense.Note, expense.CategoryID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	require.NoError(t, repo.Create(context.Background(), expense))
	assert.Equal(t, now, expense.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositorySumAndCountSince(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\), COUNT\(\*\) FROM expenses WHERE user_id = \$1 AND created_at >= \$2`).
		WithArgs(userID, since).
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count"}).AddRow(107.25, int64(4)))

	total, count, err := repo.SumAndCountSince(context.Background(), userID, &since)
	require.NoError(t, err)
	assert.Equal(t, 107.25, total)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositorySumAndCountSinceUnbounded(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\), COUNT\(\*\) FROM expenses WHERE user_id = \$1$`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count"}).AddRow(0.0, int64(0)))

	total, count, err := repo.SumAndCountSince(context.Background(), userID, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryCategoryBreakdown(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(c\.name, 'Uncategorized'\), COALESCE\(SUM\(e\.amount\), 0\) FROM expenses e LEFT JOIN categories c ON c\.id = e\.category_id WHERE e\.user_id = \$1 GROUP BY COALESCE\(c\.name, 'Uncategorized'\)`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"name", "sum"}).
			AddRow("Food", 55.0).
			AddRow("Uncategorized", 12.25))

	breakdown, err := repo.CategoryBreakdown(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Food": 55.0, "Uncategorized": 12.25}, breakdown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryListRecent(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()
	now := time.Now()

	rows := expenseRows(t)
	for i := 0; i < 2; i++ {
		rows.AddRow(uuid.New(), float64(i+1), (*string)(nil), (*int64)(nil), userID, now, (*string)(nil))
	}
	mock.ExpectQuery(`WHERE e\.user_id = \$1 ORDER BY e\.created_at DESC LIMIT 5`).
		WithArgs(userID).
		WillReturnRows(rows)

	expenses, err := repo.ListRecent(context.Background(), userID, 5)
	require.NoError(t, err)
	assert.Len(t, expenses, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepositoryDelete(t *testing.T) {
	repo, mock := newExpenseRepoMock(t)
	userID := uuid.New()
	expenseID := uuid.New()

	mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1 AND user_id = \$2`).
		WithArgs(expenseID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), userID, expenseID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
