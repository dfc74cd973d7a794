package service

import (
	"context"
	"time"

	"spendbook/internal/models"

	"github.com/google/uuid"
)

// Store interfaces cover what the services need from the repository layer.
// *repository.UserRepository and friends satisfy them; tests substitute fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type CategoryStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]*models.Category, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.Category, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string, excludeID int64) (*models.Category, error)
	Create(ctx context.Context, cat *models.Category) error
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type ExpenseStore interface {
	List(ctx context.Context, userID uuid.UUID, filter *models.ExpenseFilter) ([]*models.Expense, int64, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
	SumAndCountSince(ctx context.Context, userID uuid.UUID, since *time.Time) (float64, int64, error)
	SumByCategorySince(ctx context.Context, userID uuid.UUID, categoryID int64, since time.Time) (float64, error)
	CategoryBreakdown(ctx context.Context, userID uuid.UUID) (map[string]float64, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Expense, error)
}
