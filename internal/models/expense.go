package models

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID         uuid.UUID `db:"id"`
	Amount     float64   `db:"amount"`
	Note       *string   `db:"note"`
	CategoryID *int64    `db:"category_id"`
	UserID     uuid.UUID `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`

	// Joined category columns, populated by list/get queries.
	CategoryName *string `db:"category_name"`
}

// ExpenseFilter narrows and orders an expense listing.
type ExpenseFilter struct {
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}
