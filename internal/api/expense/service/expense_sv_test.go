package expenseService

import (
	"SpendScan/internal/api/expense"
	expenseRepository "SpendScan/internal/api/expense/repository"
	"SpendScan/internal/entity"
	"SpendScan/pkg/utils"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeExpenseStore struct {
	expenses map[string]entity.Expense
}

func (f *fakeExpenseStore) CreateExpense(_ context.Context, exp entity.Expense) error {
	f.expenses[exp.ID] = exp
	return nil
}

func (f *fakeExpenseStore) GetExpenseByID(_ context.Context, id string) (entity.Expense, error) {
	exp, ok := f.expenses[id]
	if !ok {
		return entity.Expense{}, expense.ErrExpenseNotFound
	}
	return exp, nil
}

func (f *fakeExpenseStore) GetExpensesByUserID(_ context.Context, userID string) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, exp := range f.expenses {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (f *fakeExpenseStore) GetExpensesByWindow(_ context.Context, userID string, windowStart time.Time, windowEnd time.Time) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, exp := range f.expenses {
		if exp.UserID != userID {
			continue
		}
		if exp.Date.Before(windowStart) || !exp.Date.Before(windowEnd) {
			continue
		}
		out = append(out, exp)
	}
	return out, nil
}

func (f *fakeExpenseStore) UpdateExpense(_ context.Context, exp entity.Expense) error {
	if _, ok := f.expenses[exp.ID]; !ok {
		return expense.ErrExpenseNotFound
	}
	f.expenses[exp.ID] = exp
	return nil
}

func (f *fakeExpenseStore) DeleteExpense(_ context.Context, id string) error {
	if _, ok := f.expenses[id]; !ok {
		return expense.ErrExpenseNotFound
	}
	delete(f.expenses, id)
	return nil
}

type fakeExpenseRepo struct {
	store *fakeExpenseStore
}

func (f *fakeExpenseRepo) NewClient(_ bool) (expenseRepository.Client, error) {
	return expenseRepository.Client{
		Expense:  f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestService() (IExpenseService, *fakeExpenseStore) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := &fakeExpenseStore{expenses: make(map[string]entity.Expense)}
	return NewExpenseService(log, &fakeExpenseRepo{store: store}, utils.New()), store
}

func validCreateRequest() expense.CreateExpenseRequest {
	return expense.CreateExpenseRequest{
		Merchant: "Shell",
		Amount:   3500,
		Date:     "2025-03-02",
		Category: "Transport",
		Notes:    "fuel",
	}
}

func TestCreateExpense(t *testing.T) {
	t.Run("valid request persists the expense", func(t *testing.T) {
		svc, store := newTestService()

		exp, err := svc.CreateExpense(context.Background(), "u1", validCreateRequest())
		if err != nil {
			t.Fatalf("CreateExpense returned error: %v", err)
		}

		if exp.ID == "" {
			t.Error("expense ID not generated")
		}
		if exp.UserID != "u1" {
			t.Errorf("UserID = %q, want u1", exp.UserID)
		}
		if got := exp.Date.Format("2006-01-02"); got != "2025-03-02" {
			t.Errorf("Date = %s, want 2025-03-02", got)
		}
		if _, ok := store.expenses[exp.ID]; !ok {
			t.Error("expense not persisted")
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreateRequest()
		req.Date = "02-03-2025"

		if _, err := svc.CreateExpense(context.Background(), "u1", req); !errors.Is(err, expense.ErrInvalidDate) {
			t.Errorf("err = %v, want ErrInvalidDate", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreateRequest()
		req.Category = "Petrol"

		if _, err := svc.CreateExpense(context.Background(), "u1", req); !errors.Is(err, expense.ErrInvalidCategory) {
			t.Errorf("err = %v, want ErrInvalidCategory", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreateRequest()
		req.Amount = -5

		if _, err := svc.CreateExpense(context.Background(), "u1", req); !errors.Is(err, expense.ErrInvalidAmount) {
			t.Errorf("err = %v, want ErrInvalidAmount", err)
		}
	})
}

func TestGetExpenseByID(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.CreateExpense(context.Background(), "u1", validCreateRequest())
	if err != nil {
		t.Fatalf("CreateExpense returned error: %v", err)
	}

	t.Run("owner reads their expense", func(t *testing.T) {
		exp, err := svc.GetExpenseByID(context.Background(), created.ID, "u1")
		if err != nil {
			t.Fatalf("GetExpenseByID returned error: %v", err)
		}
		if exp.Merchant != "Shell" {
			t.Errorf("Merchant = %q, want Shell", exp.Merchant)
		}
	})

	t.Run("another user is rejected", func(t *testing.T) {
		if _, err := svc.GetExpenseByID(context.Background(), created.ID, "u2"); !errors.Is(err, expense.ErrExpenseNotOwned) {
			t.Errorf("err = %v, want ErrExpenseNotOwned", err)
		}
	})

	t.Run("unknown ID", func(t *testing.T) {
		if _, err := svc.GetExpenseByID(context.Background(), "missing", "u1"); !errors.Is(err, expense.ErrExpenseNotFound) {
			t.Errorf("err = %v, want ErrExpenseNotFound", err)
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	svc, store := newTestService()

	created, err := svc.CreateExpense(context.Background(), "u1", validCreateRequest())
	if err != nil {
		t.Fatalf("CreateExpense returned error: %v", err)
	}

	t.Run("owner updates all fields", func(t *testing.T) {
		updated, err := svc.UpdateExpense(context.Background(), created.ID, "u1", expense.UpdateExpenseRequest{
			Merchant: "Metro Cash & Carry",
			Amount:   2800,
			Date:     "2025-03-10",
			Category: "Food",
		})
		if err != nil {
			t.Fatalf("UpdateExpense returned error: %v", err)
		}

		if updated.Merchant != "Metro Cash & Carry" || updated.Amount != 2800 {
			t.Errorf("updated expense = %+v", updated)
		}
		if store.expenses[created.ID].Category != "Food" {
			t.Error("update not persisted")
		}
	})

	t.Run("another user cannot update", func(t *testing.T) {
		_, err := svc.UpdateExpense(context.Background(), created.ID, "u2", expense.UpdateExpenseRequest{
			Merchant: "x", Amount: 1, Date: "2025-03-10", Category: "Food",
		})
		if !errors.Is(err, expense.ErrExpenseNotOwned) {
			t.Errorf("err = %v, want ErrExpenseNotOwned", err)
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	svc, store := newTestService()

	created, err := svc.CreateExpense(context.Background(), "u1", validCreateRequest())
	if err != nil {
		t.Fatalf("CreateExpense returned error: %v", err)
	}

	t.Run("another user cannot delete", func(t *testing.T) {
		if err := svc.DeleteExpense(context.Background(), created.ID, "u2"); !errors.Is(err, expense.ErrExpenseNotOwned) {
			t.Errorf("err = %v, want ErrExpenseNotOwned", err)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		if err := svc.DeleteExpense(context.Background(), created.ID, "u1"); err != nil {
			t.Fatalf("DeleteExpense returned error: %v", err)
		}
		if _, ok := store.expenses[created.ID]; ok {
			t.Error("expense still present after delete")
		}
	})
}

func TestGetMonthlyReport(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.CreateExpense(context.Background(), "u1", validCreateRequest()); err != nil {
		t.Fatalf("CreateExpense returned error: %v", err)
	}

	t.Run("report covers only the requested month", func(t *testing.T) {
		report, err := svc.GetMonthlyReport(context.Background(), "u1", "2025-03")
		if err != nil {
			t.Fatalf("GetMonthlyReport returned error: %v", err)
		}

		if report.Month != "2025-03" {
			t.Errorf("Month = %q, want 2025-03", report.Month)
		}
		if report.Summary.TotalSpent != 3500 {
			t.Errorf("TotalSpent = %v, want 3500", report.Summary.TotalSpent)
		}

		empty, err := svc.GetMonthlyReport(context.Background(), "u1", "2025-04")
		if err != nil {
			t.Fatalf("GetMonthlyReport returned error: %v", err)
		}
		if empty.Summary.TotalSpent != 0 || empty.Summary.ExpenseCount != 0 {
			t.Errorf("adjacent month should be empty, got %+v", empty.Summary)
		}
	})

	t.Run("malformed month strings", func(t *testing.T) {
		for _, month := range []string{"2025-13", "2025-3", "March 2025", "2025/03", ""} {
			if _, err := svc.GetMonthlyReport(context.Background(), "u1", month); !errors.Is(err, expense.ErrInvalidMonth) {
				t.Errorf("GetMonthlyReport(%q) err = %v, want ErrInvalidMonth", month, err)
			}
		}
	})
}
