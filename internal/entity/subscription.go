package entity

import (
	"SpendScan/internal/api/subscription"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionApproved SubscriptionStatus = "approved"
	SubscriptionRejected SubscriptionStatus = "rejected"
)

type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "monthly"
	PlanYearly  SubscriptionPlan = "yearly"
)

// Plan prices in PKR and the premium window each plan buys.
const (
	MonthlyPlanPrice = 500
	YearlyPlanPrice  = 5000

	MonthlyPlanDuration = 30 * 24 * time.Hour
	YearlyPlanDuration  = 365 * 24 * time.Hour
)

func PlanPrice(plan string) (float64, error) {
	switch SubscriptionPlan(plan) {
	case PlanMonthly:
		return MonthlyPlanPrice, nil
	case PlanYearly:
		return YearlyPlanPrice, nil
	default:
		return 0, subscription.ErrInvalidPlan
	}
}

func PlanDuration(plan string) (time.Duration, error) {
	switch SubscriptionPlan(plan) {
	case PlanMonthly:
		return MonthlyPlanDuration, nil
	case PlanYearly:
		return YearlyPlanDuration, nil
	default:
		return 0, subscription.ErrInvalidPlan
	}
}

type SubscriptionRequest struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	PlanType             string    `json:"plan_type"`
	Amount               float64   `json:"amount"`
	InvoiceNumber        string    `json:"invoice_number"`
	PaymentScreenshotURL string    `json:"payment_screenshot_url"`
	Notes                string    `json:"notes"`
	Status               string    `json:"status"`
	ReviewedBy           string    `json:"reviewed_by"`
	ReviewedAt           time.Time `json:"reviewed_at"`
	CreatedAt            time.Time `json:"created_at"`
}

func (s *SubscriptionRequest) IsPending() bool {
	return s.Status == string(SubscriptionPending)
}
