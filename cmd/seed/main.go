// Seed populates a development database with a demo user, a set of starter
// categories and a few sample expenses. Safe to re-run: existing rows are
// left alone.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"spendbook/internal/models"
	"spendbook/internal/repository"
	"spendbook/pkg/auth"
	"spendbook/pkg/config"
	"spendbook/pkg/logger"
	"spendbook/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	email := getEnv("SEED_EMAIL", "demo@spendbook.local")
	password := getEnv("SEED_PASSWORD", "demo-password")

	user, err := ensureUser(ctx, userRepo, email, password)
	if err != nil {
		appLogger.Fatal("Failed to seed user", zap.Error(err))
	}

	categoryNames := []string{"Food", "Transport", "Utilities", "Entertainment"}
	categories := make(map[string]*models.Category, len(categoryNames))
	for _, name := range categoryNames {
		cat, err := ensureCategory(ctx, categoryRepo, user.ID, name)
		if err != nil {
			appLogger.Fatal("Failed to seed category", zap.String("name", name), zap.Error(err))
		}
		categories[name] = cat
	}

	if err := seedExpenses(ctx, expenseRepo, user.ID, categories); err != nil {
		appLogger.Fatal("Failed to seed expenses", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("email", email),
	)
}

func ensureUser(ctx context.Context, repo *repository.UserRepository, email, password string) (*models.User, error) {
	if user, err := repo.GetByEmail(ctx, email); err == nil {
		return user, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func ensureCategory(ctx context.Context, repo *repository.CategoryRepository, userID uuid.UUID, name string) (*models.Category, error) {
	if cat, err := repo.GetByName(ctx, userID, name, 0); err == nil {
		return cat, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	cat := &models.Category{Name: name, UserID: userID}
	if err := repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func seedExpenses(ctx context.Context, repo *repository.ExpenseRepository, userID uuid.UUID, categories map[string]*models.Category) error {
	// Only seed expenses into an empty ledger
	_, total, err := repo.List(ctx, userID, &models.ExpenseFilter{
		SortBy: "created_at", SortOrder: "desc", Page: 1, Limit: 1,
	})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	samples := []struct {
		amount   float64
		note     string
		category string
	}{
		{12.50, "Lunch", "Food"},
		{42.00, "Groceries", "Food"},
		{2.80, "Bus ticket", "Transport"},
		{65.30, "Electricity bill", "Utilities"},
		{18.00, "Cinema", "Entertainment"},
		{7.99, "", ""},
	}

	for _, s := range samples {
		expense := &models.Expense{
			ID:     uuid.New(),
			Amount: s.amount,
			UserID: userID,
		}
		if s.note != "" {
			note := s.note
			expense.Note = &note
		}
		if cat, ok := categories[s.category]; ok {
			expense.CategoryID = &cat.ID
		}
		if err := repo.Create(ctx, expense); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
