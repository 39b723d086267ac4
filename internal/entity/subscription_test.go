package entity

import (
	"SpendScan/internal/api/subscription"
	"errors"
	"testing"
	"time"
)

func TestPlanPrice(t *testing.T) {
	tests := []struct {
		plan string
		want float64
	}{
		{"monthly", 500},
		{"yearly", 5000},
	}

	for _, tc := range tests {
		t.Run(tc.plan, func(t *testing.T) {
			got, err := PlanPrice(tc.plan)
			if err != nil {
				t.Fatalf("PlanPrice(%q) returned error: %v", tc.plan, err)
			}
			if got != tc.want {
				t.Errorf("PlanPrice(%q) = %v, want %v", tc.plan, got, tc.want)
			}
		})
	}

	t.Run("unknown plan", func(t *testing.T) {
		if _, err := PlanPrice("weekly"); !errors.Is(err, subscription.ErrInvalidPlan) {
			t.Errorf("PlanPrice(weekly) err = %v, want ErrInvalidPlan", err)
		}
	})
}

func TestPlanDuration(t *testing.T) {
	monthly, err := PlanDuration("monthly")
	if err != nil || monthly != 30*24*time.Hour {
		t.Errorf("PlanDuration(monthly) = (%v, %v), want 720h", monthly, err)
	}

	yearly, err := PlanDuration("yearly")
	if err != nil || yearly != 365*24*time.Hour {
		t.Errorf("PlanDuration(yearly) = (%v, %v), want 8760h", yearly, err)
	}

	if _, err := PlanDuration(""); !errors.Is(err, subscription.ErrInvalidPlan) {
		t.Errorf("PlanDuration(\"\") err = %v, want ErrInvalidPlan", err)
	}
}

func TestSubscriptionRequestIsPending(t *testing.T) {
	req := SubscriptionRequest{Status: string(SubscriptionPending)}
	if !req.IsPending() {
		t.Error("pending request should report IsPending")
	}

	req.Status = string(SubscriptionApproved)
	if req.IsPending() {
		t.Error("approved request should not report IsPending")
	}
}
