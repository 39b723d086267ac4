package expense

type CreateExpenseRequest struct {
	Merchant string  `json:"merchant" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Notes    string  `json:"notes"`
}

type UpdateExpenseRequest struct {
	Merchant string  `json:"merchant" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Notes    string  `json:"notes"`
}

type ExpenseResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Merchant  string  `json:"merchant"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Category  string  `json:"category"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    float64           `json:"total"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type WeeklyTotal struct {
	Week   string  `json:"week"`
	Amount float64 `json:"amount"`
}

type DayTotal struct {
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
}

type SummaryResponse struct {
	TotalSpent     float64         `json:"total_spent"`
	ExpenseCount   int             `json:"expense_count"`
	TopCategory    string          `json:"top_category"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
	DailySeries    []DayTotal      `json:"daily_series"`
	WeeklySeries   []WeeklyTotal   `json:"weekly_series"`
	AverageExpense float64         `json:"average_expense"`
	LargestExpense float64         `json:"largest_expense"`
	WindowStart    string          `json:"window_start"`
	WindowEnd      string          `json:"window_end"`
}

type MonthlyReportResponse struct {
	Month   string          `json:"month"`
	Summary SummaryResponse `json:"summary"`
}
