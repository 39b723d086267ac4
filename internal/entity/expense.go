package entity

import (
	"SpendScan/internal/api/expense"
	"time"
)

type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "Food"
	CategoryTransport     ExpenseCategory = "Transport"
	CategoryShopping      ExpenseCategory = "Shopping"
	CategoryBills         ExpenseCategory = "Bills"
	CategoryEntertainment ExpenseCategory = "Entertainment"
	CategoryHealthcare    ExpenseCategory = "Healthcare"
	CategoryOther         ExpenseCategory = "Other"
)

// ExpenseCategories lists the closed category set in display order. The
// extraction prompt and all validation share this vocabulary.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryOther,
}

func IsValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if category == string(c) {
			return true
		}
	}
	return false
}

type Expense struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Merchant  string    `json:"merchant"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Expense) Validate() error {
	if e.Merchant == "" {
		return expense.ErrMerchantRequired
	}

	if e.Amount <= 0 {
		return expense.ErrInvalidAmount
	}

	if e.Date.IsZero() {
		return expense.ErrInvalidDate
	}

	if !IsValidExpenseCategory(e.Category) {
		return expense.ErrInvalidCategory
	}

	return nil
}
