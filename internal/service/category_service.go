package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"spendbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryService struct {
	categoryRepo CategoryStore
	expenseRepo  ExpenseStore
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo CategoryStore, expenseRepo ExpenseStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		logger:       logger,
	}
}

// List returns all of the user's categories ordered by name.
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Category, error) {
	cat, err := s.categoryRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	name = sanitizeUTF8(strings.TrimSpace(name))

	existing, err := s.categoryRepo.GetByName(ctx, userID, name, 0)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	cat := &models.Category{
		Name:   name,
		UserID: userID,
	}
	if err := s.categoryRepo.Create(ctx, cat); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	s.logger.Info("Category created",
		zap.Int64("category_id", cat.ID),
		zap.String("user_id", userID.String()),
	)

	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.Category, error) {
	name = sanitizeUTF8(strings.TrimSpace(name))

	cat, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.categoryRepo.GetByName(ctx, userID, name, id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if duplicate != nil {
		return nil, ErrDuplicateCategory
	}

	cat.Name = name
	if err := s.categoryRepo.Update(ctx, cat); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	return cat, nil
}

// Delete removes a category. Deletion is blocked while any expense still
// references the category, regardless of the expense's owner.
func (s *CategoryService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	inUse, err := s.expenseRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, userID, id)
}

// Spending totals the user's expenses for one category within the period.
// Periods here are calendar-anchored: "year" starts January 1st, anything
// else starts on the first of the current month.
func (s *CategoryService) Spending(ctx context.Context, userID uuid.UUID, id int64, period string) (float64, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return 0, err
	}

	total, err := s.expenseRepo.SumByCategorySince(ctx, userID, id, spendingPeriodStart(period, time.Now()))
	if err != nil {
		return 0, err
	}

	return round2(total), nil
}

func spendingPeriodStart(period string, now time.Time) time.Time {
	if period == "year" {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
