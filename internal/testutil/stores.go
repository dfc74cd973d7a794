// Package testutil provides in-memory implementations of the service store
// interfaces so services and handlers can be tested without a database.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"spendbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation mimics the Postgres error raised by a unique constraint.
func UniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

type InMemoryUserStore struct {
	Users []*models.User
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range s.Users {
		if u.Email == user.Email {
			return UniqueViolation()
		}
	}
	clone := *user
	s.Users = append(s.Users, &clone)
	return nil
}

func (s *InMemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.Users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *InMemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range s.Users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type InMemoryCategoryStore struct {
	Categories []*models.Category
	nextID     int64

	CountErr error
}

func (s *InMemoryCategoryStore) List(_ context.Context, userID uuid.UUID) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range s.Categories {
		if c.UserID == userID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryCategoryStore) GetByID(_ context.Context, userID uuid.UUID, id int64) (*models.Category, error) {
	for _, c := range s.Categories {
		if c.ID == id && c.UserID == userID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *InMemoryCategoryStore) GetByName(_ context.Context, userID uuid.UUID, name string, excludeID int64) (*models.Category, error) {
	for _, c := range s.Categories {
		if c.UserID == userID && c.Name == name && c.ID != excludeID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *InMemoryCategoryStore) Create(_ context.Context, cat *models.Category) error {
	for _, c := range s.Categories {
		if c.UserID == cat.UserID && c.Name == cat.Name {
			return UniqueViolation()
		}
	}
	s.nextID++
	cat.ID = s.nextID
	cat.CreatedAt = time.Now()
	clone := *cat
	s.Categories = append(s.Categories, &clone)
	return nil
}

func (s *InMemoryCategoryStore) Update(_ context.Context, cat *models.Category) error {
	for _, c := range s.Categories {
		if c.UserID == cat.UserID && c.Name == cat.Name && c.ID != cat.ID {
			return UniqueViolation()
		}
	}
	for _, c := range s.Categories {
		if c.ID == cat.ID && c.UserID == cat.UserID {
			c.Name = cat.Name
			return nil
		}
	}
	return nil
}

func (s *InMemoryCategoryStore) Delete(_ context.Context, userID uuid.UUID, id int64) error {
	for i, c := range s.Categories {
		if c.ID == id && c.UserID == userID {
			s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *InMemoryCategoryStore) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	if s.CountErr != nil {
		return 0, s.CountErr
	}
	var count int64
	for _, c := range s.Categories {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

type InMemoryExpenseStore struct {
	Expenses   []*models.Expense
	Categories *InMemoryCategoryStore
	clock      time.Time

	BreakdownErr error
	RecentErr    error
	TotalsErr    error
}

// nextTime hands out strictly increasing creation timestamps.
func (s *InMemoryExpenseStore) nextTime() time.Time {
	if s.clock.IsZero() {
		s.clock = time.Now().Add(-time.Hour)
	}
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *InMemoryExpenseStore) withJoin(e *models.Expense) *models.Expense {
	clone := *e
	if clone.CategoryID != nil && s.Categories != nil {
		for _, c := range s.Categories.Categories {
			if c.ID == *clone.CategoryID {
				name := c.Name
				clone.CategoryName = &name
				break
			}
		}
	}
	return &clone
}

func (s *InMemoryExpenseStore) matching(userID uuid.UUID, filter *models.ExpenseFilter) []*models.Expense {
	var out []*models.Expense
	for _, e := range s.Expenses {
		if e.UserID != userID {
			continue
		}
		if filter.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.StartDate != nil && e.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.CreatedAt.After(*filter.EndDate) {
			continue
		}
		out = append(out, s.withJoin(e))
	}
	return out
}

func (s *InMemoryExpenseStore) List(_ context.Context, userID uuid.UUID, filter *models.ExpenseFilter) ([]*models.Expense, int64, error) {
	out := s.matching(userID, filter)

	less := func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) }
	switch filter.SortBy {
	case "amount":
		less = func(i, j int) bool { return out[i].Amount < out[j].Amount }
	case "note":
		note := func(e *models.Expense) string {
			if e.Note == nil {
				return ""
			}
			return strings.ToLower(*e.Note)
		}
		less = func(i, j int) bool { return note(out[i]) < note(out[j]) }
	}
	if filter.SortOrder == "desc" {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(out, less)

	total := int64(len(out))
	start := (filter.Page - 1) * filter.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s *InMemoryExpenseStore) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	for _, e := range s.Expenses {
		if e.ID == id && e.UserID == userID {
			return s.withJoin(e), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *InMemoryExpenseStore) Create(_ context.Context, expense *models.Expense) error {
	expense.CreatedAt = s.nextTime()
	clone := *expense
	s.Expenses = append(s.Expenses, &clone)
	return nil
}

func (s *InMemoryExpenseStore) Update(_ context.Context, expense *models.Expense) error {
	for _, e := range s.Expenses {
		if e.ID == expense.ID && e.UserID == expense.UserID {
			e.Amount = expense.Amount
			e.Note = expense.Note
			e.CategoryID = expense.CategoryID
			return nil
		}
	}
	return nil
}

func (s *InMemoryExpenseStore) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, e := range s.Expenses {
		if e.ID == id && e.UserID == userID {
			s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *InMemoryExpenseStore) CountByCategory(_ context.Context, categoryID int64) (int64, error) {
	var count int64
	for _, e := range s.Expenses {
		if e.CategoryID != nil && *e.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryExpenseStore) SumAndCountSince(_ context.Context, userID uuid.UUID, since *time.Time) (float64, int64, error) {
	if s.TotalsErr != nil {
		return 0, 0, s.TotalsErr
	}
	var total float64
	var count int64
	for _, e := range s.Expenses {
		if e.UserID != userID {
			continue
		}
		if since != nil && e.CreatedAt.Before(*since) {
			continue
		}
		total += e.Amount
		count++
	}
	return total, count, nil
}

func (s *InMemoryExpenseStore) SumByCategorySince(_ context.Context, userID uuid.UUID, categoryID int64, since time.Time) (float64, error) {
	var total float64
	for _, e := range s.Expenses {
		if e.UserID != userID || e.CategoryID == nil || *e.CategoryID != categoryID {
			continue
		}
		if e.CreatedAt.Before(since) {
			continue
		}
		total += e.Amount
	}
	return total, nil
}

func (s *InMemoryExpenseStore) CategoryBreakdown(_ context.Context, userID uuid.UUID) (map[string]float64, error) {
	if s.BreakdownErr != nil {
		return nil, s.BreakdownErr
	}
	breakdown := make(map[string]float64)
	for _, e := range s.Expenses {
		if e.UserID != userID {
			continue
		}
		joined := s.withJoin(e)
		name := "Uncategorized"
		if joined.CategoryName != nil {
			name = *joined.CategoryName
		}
		breakdown[name] += e.Amount
	}
	return breakdown, nil
}

func (s *InMemoryExpenseStore) ListRecent(_ context.Context, userID uuid.UUID, limit int) ([]*models.Expense, error) {
	if s.RecentErr != nil {
		return nil, s.RecentErr
	}
	var out []*models.Expense
	for _, e := range s.Expenses {
		if e.UserID == userID {
			out = append(out, s.withJoin(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
