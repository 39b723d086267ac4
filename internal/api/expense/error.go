package expense

import "SpendScan/pkg/response"

var (
	ErrExpenseNotFound  = response.NewError(404, "expense not found")
	ErrExpenseNotOwned  = response.NewError(403, "expense does not belong to user")
	ErrMerchantRequired = response.NewError(400, "merchant name is required")
	ErrInvalidAmount    = response.NewError(400, "invalid expense amount")
	ErrInvalidDate      = response.NewError(400, "invalid expense date")
	ErrInvalidCategory  = response.NewError(400, "invalid expense category")
	ErrInvalidMonth     = response.NewError(400, "invalid month format, expected YYYY-MM")
	ErrCreateExpense    = response.NewError(500, "failed to create expense")
	ErrUpdateExpense    = response.NewError(500, "failed to update expense")
	ErrDeleteExpense    = response.NewError(500, "failed to delete expense")
)
