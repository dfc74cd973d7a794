package dto

// CategoryRef is the joined id+name pair attached to expense rows.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateExpenseRequest struct {
	Amount     *float64 `json:"amount"`
	Note       *string  `json:"note"`
	CategoryID *int64   `json:"category_id"`
}

// UpdateExpenseRequest carries a partial update: nil fields are left untouched.
type UpdateExpenseRequest struct {
	Amount     *float64 `json:"amount"`
	Note       *string  `json:"note"`
	CategoryID *int64   `json:"category_id"`
}

type ExpenseResponse struct {
	ID         string       `json:"id"`
	Amount     float64      `json:"amount"`
	Note       *string      `json:"note"`
	CategoryID *int64       `json:"category_id"`
	Category   *CategoryRef `json:"category"`
	UserID     string       `json:"user_id"`
	CreatedAt  string       `json:"created_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type ExpenseListResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Pagination Pagination        `json:"pagination"`
}

type ExpenseEnvelope struct {
	Message string          `json:"message,omitempty"`
	Expense ExpenseResponse `json:"expense"`
}
