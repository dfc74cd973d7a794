// Package validation holds the pure field checks applied before any store
// call. Every failure carries the user-facing message verbatim; callers map
// a non-nil error straight to a 400 response.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MaxAmount             = 999999.99
	MaxNoteLength         = 500
	MaxCategoryNameLength = 100
	MinPasswordLength     = 6
	MaxPageLimit          = 100
)

var (
	ErrAmountRequired  = errors.New("Amount is required and must be a number")
	ErrAmountTooSmall  = errors.New("Amount must be greater than 0")
	ErrAmountTooLarge  = errors.New("Amount cannot exceed 999,999.99")
	ErrNoteTooLong     = errors.New("Note must be 500 characters or less")
	ErrNameRequired    = errors.New("Category name is required and must be a string")
	ErrNameEmpty       = errors.New("Category name cannot be empty")
	ErrNameTooLong     = errors.New("Category name must be 100 characters or less")
	ErrBadPagination   = errors.New("Invalid pagination parameters")
	ErrBadSortField    = errors.New("Invalid sort field")
	ErrBadSortOrder    = errors.New("Invalid sort order")
	ErrBadEmail        = errors.New("Please provide a valid email address")
	ErrPasswordTooWeak = errors.New("Password must be at least 6 characters long")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var allowedSortFields = map[string]bool{
	"created_at": true,
	"amount":     true,
	"note":       true,
}

// Amount checks 0 < amount <= 999,999.99.
func Amount(amount float64) error {
	if amount <= 0 {
		return ErrAmountTooSmall
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	return nil
}

// Note checks the optional note length.
func Note(note string) error {
	if len(note) > MaxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

// CategoryName checks the trimmed name length is in [1, 100].
func CategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameEmpty
	}
	if len(trimmed) > MaxCategoryNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Pagination checks page >= 1 and 1 <= limit <= 100.
func Pagination(page, limit int) error {
	if page < 1 || limit < 1 || limit > MaxPageLimit {
		return ErrBadPagination
	}
	return nil
}

// SortField checks the field against the allow-list.
func SortField(field string) error {
	if !allowedSortFields[field] {
		return ErrBadSortField
	}
	return nil
}

// SortOrder checks the order is asc or desc.
func SortOrder(order string) error {
	if order != "asc" && order != "desc" {
		return ErrBadSortOrder
	}
	return nil
}

// Email checks the basic address shape used at login.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrBadEmail
	}
	return nil
}

// Password checks the minimum length used at login.
func Password(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}
