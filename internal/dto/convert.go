package dto

import (
	"time"

	"spendbook/internal/models"
)

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func FromCategory(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		UserID:    c.UserID.String(),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func FromCategories(categories []*models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromCategory(c))
	}
	return out
}

func FromExpense(e *models.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:         e.ID.String(),
		Amount:     e.Amount,
		Note:       e.Note,
		CategoryID: e.CategoryID,
		UserID:     e.UserID.String(),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
	if e.CategoryID != nil && e.CategoryName != nil {
		resp.Category = &CategoryRef{ID: *e.CategoryID, Name: *e.CategoryName}
	}
	return resp
}

func FromExpenses(expenses []*models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, FromExpense(e))
	}
	return out
}
