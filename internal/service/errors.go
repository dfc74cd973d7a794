package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrDuplicateCategory  = errors.New("a category with this name already exists")
	ErrCategoryInUse      = errors.New("cannot delete category that has associated expenses")
	ErrExpenseNotFound    = errors.New("expense not found")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The duplicate-name pre-check is check-then-act, so a concurrent
// insert can still trip the constraint; this maps that case to the same
// Conflict outcome.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
