package repository

import (
	"context"
	"spendbook/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewCategoryRepository(db Querier, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CategoryRepository) List(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	query := squirrel.Select("id", "name", "user_id", "created_at").
		From("categories").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name ASC").
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

	var categories []*models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.UserID, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &cat)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*models.Category, error) {
	query := squirrel.Select("id", "name", "user_id", "created_at").
		From("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var cat models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(&cat.ID, &cat.Name, &cat.UserID, &cat.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &cat, nil
}

// GetByName looks up a category by exact (trimmed) name. excludeID skips one
// row, which the rename path uses to allow a no-op rename.
func (r *CategoryRepository) GetByName(ctx context.Context, userID uuid.UUID, name string, excludeID int64) (*models.Category, error) {
	query := squirrel.Select("id", "name", "user_id", "created_at").
		From("categories").
		Where(squirrel.Eq{"user_id": userID, "name": name}).
		PlaceholderFormat(squirrel.Dollar)
	if excludeID != 0 {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var cat models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(&cat.ID, &cat.Name, &cat.UserID, &cat.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	query := squirrel.Insert("categories").
		Columns("name", "user_id").
		Values(cat.Name, cat.UserID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&cat.ID, &cat.CreatedAt)
}

func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	query := squirrel.Update("categories").
		Set("name", cat.Name).
		Where(squirrel.Eq{"id": cat.ID, "user_id": cat.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	query := squirrel.Delete("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("categories").
		Where(squirrel.Eq{"user_id": userID}).
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
