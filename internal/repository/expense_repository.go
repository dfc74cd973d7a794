package repository

import (
	"context"
	"time"

	"spendbook/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var expenseColumns = []string{
	"e.id", "e.amount", "e.note", "e.category_id", "e.user_id", "e.created_at", "c.name",
}

type ExpenseRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewExpenseRepository(db Querier, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) scanExpense(row squirrel.RowScanner) (*models.Expense, error) {
	var e models.Expense
	if err := row.Scan(
		&e.ID, &e.Amount, &e.Note, &e.CategoryID, &e.UserID, &e.CreatedAt, &e.CategoryName,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func applyExpenseFilters(query squirrel.SelectBuilder, userID uuid.UUID, filter *models.ExpenseFilter) squirrel.SelectBuilder {
	query = query.Where(squirrel.Eq{"e.user_id": userID})
	if filter.CategoryID != nil {
		query = query.Where(squirrel.Eq{"e.category_id": *filter.CategoryID})
	}
	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"e.created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"e.created_at": *filter.EndDate})
	}
	return query
}

// List returns one page of expenses joined with their category name, plus
// the total row count matching the filters.
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID, filter *models.ExpenseFilter) ([]*models.Expense, int64, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses e").
		LeftJoin("categories c ON c.id = e.category_id").
		PlaceholderFormat(squirrel.Dollar)
	query = applyExpenseFilters(query, userID, filter)
	query = query.
		OrderBy("e." + filter.SortBy + " " + filter.SortOrder).
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := r.scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := squirrel.Select("COUNT(*)").
		From("expenses e").
		PlaceholderFormat(squirrel.Dollar)
	countQuery = applyExpenseFilters(countQuery, userID, filter)

	sql, args, err = countQuery.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses e").
		LeftJoin("categories c ON c.id = e.category_id").
		Where(squirrel.Eq{"e.id": id, "e.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanExpense(r.db.QueryRow(ctx, sql, args...))
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns("id", "amount", "note", "category_id", "user_id").
		Values(expense.ID, expense.Amount, expense.Note, expense.CategoryID, expense.UserID).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&expense.CreatedAt)
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Update("expenses").
		Set("amount", expense.Amount).
		Set("note", expense.Note).
		Set("category_id", expense.CategoryID).
		Where(squirrel.Eq{"id": expense.ID, "user_id": expense.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// CountByCategory counts expenses referencing a category, across all owners.
// Used as the delete pre-check on categories.
func (r *ExpenseRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"category_id": categoryID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// SumAndCountSince returns the amount total and row count for a user's
// expenses created at or after since. A nil since means no lower bound.
func (r *ExpenseRepository) SumAndCountSince(ctx context.Context, userID uuid.UUID, since *time.Time) (float64, int64, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	if since != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": *since})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, 0, err
	}

	var total float64
	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total, &count); err != nil {
		return 0, 0, err
	}

	return total, count, nil
}

// SumByCategorySince totals a single category's spending for a user since
// the given time. Backs the per-category spending endpoint.
func (r *ExpenseRepository) SumByCategorySince(ctx context.Context, userID uuid.UUID, categoryID int64, since time.Time) (float64, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID, "category_id": categoryID}).
		Where(squirrel.GtOrEq{"created_at": since}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

// CategoryBreakdown sums all of a user's expenses grouped by category name,
// with uncategorized rows bucketed under the "Uncategorized" label.
func (r *ExpenseRepository) CategoryBreakdown(ctx context.Context, userID uuid.UUID) (map[string]float64, error) {
	query := squirrel.Select("COALESCE(c.name, 'Uncategorized')", "COALESCE(SUM(e.amount), 0)").
		From("expenses e").
		LeftJoin("categories c ON c.id = e.category_id").
		Where(squirrel.Eq{"e.user_id": userID}).
		GroupBy("COALESCE(c.name, 'Uncategorized')").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := make(map[string]float64)
	for rows.Next() {
		var name string
		var total float64
		if err := rows.Scan(&name, &total); err != nil {
			return nil, err
		}
		breakdown[name] = total
	}

	return breakdown, rows.Err()
}

// ListRecent returns the user's most recently created expenses.
func (r *ExpenseRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses e").
		LeftJoin("categories c ON c.id = e.category_id").
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("e.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := r.scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}
