package entity

import (
	"SpendScan/internal/api/expense"
	"errors"
	"testing"
	"time"
)

func validExpense() Expense {
	return Expense{
		ID:       "exp-1",
		UserID:   "u1",
		Merchant: "Shell",
		Amount:   2500,
		Date:     time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
		Category: string(CategoryTransport),
	}
}

func TestExpenseValidate(t *testing.T) {
	t.Run("valid expense", func(t *testing.T) {
		exp := validExpense()
		if err := exp.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing merchant", func(t *testing.T) {
		exp := validExpense()
		exp.Merchant = ""
		if err := exp.Validate(); !errors.Is(err, expense.ErrMerchantRequired) {
			t.Errorf("Validate() = %v, want ErrMerchantRequired", err)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		exp := validExpense()
		exp.Amount = 0
		if err := exp.Validate(); !errors.Is(err, expense.ErrInvalidAmount) {
			t.Errorf("Validate() = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		exp := validExpense()
		exp.Amount = -10
		if err := exp.Validate(); !errors.Is(err, expense.ErrInvalidAmount) {
			t.Errorf("Validate() = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("zero date", func(t *testing.T) {
		exp := validExpense()
		exp.Date = time.Time{}
		if err := exp.Validate(); !errors.Is(err, expense.ErrInvalidDate) {
			t.Errorf("Validate() = %v, want ErrInvalidDate", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		exp := validExpense()
		exp.Category = "Groceries"
		if err := exp.Validate(); !errors.Is(err, expense.ErrInvalidCategory) {
			t.Errorf("Validate() = %v, want ErrInvalidCategory", err)
		}
	})
}

func TestIsValidExpenseCategory(t *testing.T) {
	for _, category := range ExpenseCategories {
		if !IsValidExpenseCategory(string(category)) {
			t.Errorf("IsValidExpenseCategory(%q) = false, want true", category)
		}
	}

	for _, invalid := range []string{"", "food", "FOOD", "Petrol"} {
		if IsValidExpenseCategory(invalid) {
			t.Errorf("IsValidExpenseCategory(%q) = true, want false", invalid)
		}
	}
}

func TestUserIsPremium(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"active premium", User{Plan: string(PlanPremium), PremiumExpiresAt: now.Add(24 * time.Hour)}, true},
		{"expired premium", User{Plan: string(PlanPremium), PremiumExpiresAt: now.Add(-time.Minute)}, false},
		{"free plan with future expiry", User{Plan: string(PlanFree), PremiumExpiresAt: now.Add(24 * time.Hour)}, false},
		{"free plan", User{Plan: string(PlanFree)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.IsPremium(now); got != tc.want {
				t.Errorf("IsPremium() = %v, want %v", got, tc.want)
			}
		})
	}
}
