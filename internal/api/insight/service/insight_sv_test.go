package insightService

import (
	authRepository "SpendScan/internal/api/auth/repository"
	"SpendScan/internal/api/expense"
	"SpendScan/internal/api/insight"
	"SpendScan/internal/entity"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeUserStore struct {
	user entity.User
	err  error
}

func (f *fakeUserStore) CreateUser(_ context.Context, _ entity.User) error { return nil }

func (f *fakeUserStore) GetByID(_ context.Context, _ string) (entity.User, error) {
	return f.user, f.err
}

func (f *fakeUserStore) GetByEmail(_ context.Context, _ string) (entity.User, error) {
	return f.user, f.err
}

func (f *fakeUserStore) UpdateUserName(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeUserStore) UpdateUserPassword(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeUserStore) UpdateUserPlan(_ context.Context, _ string, _ string, _ time.Time) error {
	return nil
}

func (f *fakeUserStore) UpdateProfilePhoto(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeUserStore) DeleteUser(_ context.Context, _ string) error { return nil }

type fakeAuthRepo struct {
	store *fakeUserStore
}

func (f *fakeAuthRepo) NewClient(_ bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeExpenseService struct {
	summary expense.SummaryResponse
}

func (f *fakeExpenseService) CreateExpense(_ context.Context, _ string, _ expense.CreateExpenseRequest) (entity.Expense, error) {
	return entity.Expense{}, nil
}

func (f *fakeExpenseService) GetExpenseByID(_ context.Context, _ string, _ string) (entity.Expense, error) {
	return entity.Expense{}, nil
}

func (f *fakeExpenseService) GetExpensesByUserID(_ context.Context, _ string) ([]entity.Expense, error) {
	return nil, nil
}

func (f *fakeExpenseService) UpdateExpense(_ context.Context, _ string, _ string, _ expense.UpdateExpenseRequest) (entity.Expense, error) {
	return entity.Expense{}, nil
}

func (f *fakeExpenseService) DeleteExpense(_ context.Context, _ string, _ string) error { return nil }

func (f *fakeExpenseService) GetCurrentMonthSummary(_ context.Context, _ string) (expense.SummaryResponse, error) {
	return f.summary, nil
}

func (f *fakeExpenseService) GetMonthlyReport(_ context.Context, _ string, _ string) (expense.MonthlyReportResponse, error) {
	return expense.MonthlyReportResponse{}, nil
}

type fakeInsightClient struct {
	response string
	err      error
	lastJSON string
}

func (f *fakeInsightClient) GenerateSpendingInsight(_ context.Context, summaryJSON string) (string, error) {
	f.lastJSON = summaryJSON
	return f.response, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func premiumUser() entity.User {
	return entity.User{
		ID:               "u1",
		Email:            "u1@mail.com",
		Plan:             string(entity.PlanPremium),
		PremiumExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func TestGetSpendingInsight(t *testing.T) {
	t.Run("active premium user gets recommendations", func(t *testing.T) {
		client := &fakeInsightClient{response: "- Cook at home more often\n- Review your streaming subscriptions"}
		svc := NewInsightService(
			quietLogger(),
			&fakeAuthRepo{store: &fakeUserStore{user: premiumUser()}},
			&fakeExpenseService{summary: expense.SummaryResponse{TotalSpent: 7800, TopCategory: "Food"}},
			client,
		)

		resp, err := svc.GetSpendingInsight(context.Background(), "u1")
		if err != nil {
			t.Fatalf("GetSpendingInsight returned error: %v", err)
		}

		want := []string{"Cook at home more often", "Review your streaming subscriptions"}
		if !reflect.DeepEqual(resp.Recommendations, want) {
			t.Errorf("Recommendations = %v, want %v", resp.Recommendations, want)
		}
		if resp.Month != time.Now().UTC().Format("2006-01") {
			t.Errorf("Month = %q", resp.Month)
		}
		if client.lastJSON == "" {
			t.Error("summary JSON was not passed to the insight client")
		}
	})

	t.Run("free user is rejected", func(t *testing.T) {
		user := premiumUser()
		user.Plan = string(entity.PlanFree)

		svc := NewInsightService(
			quietLogger(),
			&fakeAuthRepo{store: &fakeUserStore{user: user}},
			&fakeExpenseService{},
			&fakeInsightClient{},
		)

		_, err := svc.GetSpendingInsight(context.Background(), "u1")
		if !errors.Is(err, insight.ErrPremiumRequired) {
			t.Errorf("err = %v, want ErrPremiumRequired", err)
		}
	})

	t.Run("expired premium user is rejected", func(t *testing.T) {
		user := premiumUser()
		user.PremiumExpiresAt = time.Now().Add(-time.Hour)

		svc := NewInsightService(
			quietLogger(),
			&fakeAuthRepo{store: &fakeUserStore{user: user}},
			&fakeExpenseService{},
			&fakeInsightClient{},
		)

		_, err := svc.GetSpendingInsight(context.Background(), "u1")
		if !errors.Is(err, insight.ErrPremiumRequired) {
			t.Errorf("err = %v, want ErrPremiumRequired", err)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		svc := NewInsightService(
			quietLogger(),
			&fakeAuthRepo{store: &fakeUserStore{user: premiumUser()}},
			&fakeExpenseService{},
			&fakeInsightClient{err: errors.New("timeout")},
		)

		_, err := svc.GetSpendingInsight(context.Background(), "u1")
		if !errors.Is(err, insight.ErrInsightUpstream) {
			t.Errorf("err = %v, want ErrInsightUpstream", err)
		}
	})
}

func TestSplitRecommendations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"dash bullets",
			"- first tip\n- second tip",
			[]string{"first tip", "second tip"},
		},
		{
			"numbered list",
			"1. first tip\n2) second tip",
			[]string{"first tip", "second tip"},
		},
		{
			"mixed markers and blank lines",
			"Here are my tips:\n\n* spend less\n• save more\n",
			[]string{"Here are my tips:", "spend less", "save more"},
		},
		{
			"plain prose stays intact",
			"2024 spending grew in March",
			[]string{"2024 spending grew in March"},
		},
		{
			"empty input",
			"",
			[]string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := splitRecommendations(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("splitRecommendations(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
