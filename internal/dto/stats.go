package dto

type Stats struct {
	TotalAmount   float64 `json:"totalAmount"`
	ExpenseCount  int64   `json:"expenseCount"`
	AverageAmount float64 `json:"averageAmount"`
	CategoryCount int64   `json:"categoryCount"`
	Period        string  `json:"period"`
}

type StatsResponse struct {
	Stats             Stats              `json:"stats"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	RecentExpenses    []ExpenseResponse  `json:"recentExpenses"`
}
