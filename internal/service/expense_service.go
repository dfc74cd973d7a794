package service

import (
	"context"
	"errors"

	"spendbook/internal/dto"
	"spendbook/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ExpenseService struct {
	expenseRepo  ExpenseStore
	categoryRepo CategoryStore
	logger       *zap.Logger
}

func NewExpenseService(expenseRepo ExpenseStore, categoryRepo CategoryStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, filter *models.ExpenseFilter) ([]*models.Expense, int64, error) {
	return s.expenseRepo.List(ctx, userID, filter)
}

func (s *ExpenseService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// checkCategoryOwnership verifies the category exists and belongs to the
// acting user before an expense write references it.
func (s *ExpenseService) checkCategoryOwnership(ctx context.Context, userID uuid.UUID, categoryID int64) error {
	_, err := s.categoryRepo.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if req.CategoryID != nil {
		if err := s.checkCategoryOwnership(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	expense := &models.Expense{
		ID:         uuid.New(),
		Amount:     *req.Amount,
		Note:       normalizeNote(req.Note),
		CategoryID: req.CategoryID,
		UserID:     userID,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Expense created",
		zap.String("expense_id", expense.ID.String()),
		zap.String("user_id", userID.String()),
	)

	// Re-read for the joined category name
	return s.Get(ctx, userID, expense.ID)
}

// Update applies a partial update: only non-nil fields of req are changed.
func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategoryOwnership(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
		expense.CategoryID = req.CategoryID
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Note != nil {
		// An empty provided note clears the stored one
		expense.Note = normalizeNote(req.Note)
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, userID, id)
}
