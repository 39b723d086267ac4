package expenseService

import (
	"SpendScan/internal/api/expense"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

const expenseDateLayout = "2006-01-02"

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req expense.CreateExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}

	date, err := time.Parse(expenseDateLayout, req.Date)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"date":       req.Date,
		}).Warn("Invalid expense date")
		return entity.Expense{}, expense.ErrInvalidDate
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Expense{}, err
	}

	exp := entity.Expense{
		ID:        ULID,
		UserID:    userID,
		Merchant:  req.Merchant,
		Amount:    req.Amount,
		Date:      date,
		Category:  req.Category,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := exp.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid expense data")
		return entity.Expense{}, err
	}

	if err := repo.Expense.CreateExpense(ctx, exp); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create expense")
		return entity.Expense{}, expense.ErrCreateExpense
	}

	return exp, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, id string, userID string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}

	exp, err := repo.Expense.GetExpenseByID(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to get expense by ID")
		return entity.Expense{}, err
	}

	if exp.UserID != userID {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"user_id":    userID,
		}).Warn("Expense does not belong to user")
		return entity.Expense{}, expense.ErrExpenseNotOwned
	}

	return exp, nil
}

func (s *expenseService) GetExpensesByUserID(ctx context.Context, userID string) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	expenses, err := repo.Expense.GetExpensesByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get expenses by user ID")
		return nil, err
	}

	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, id string, userID string, req expense.UpdateExpenseRequest) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}

	existing, err := repo.Expense.GetExpenseByID(ctx, id)
	if err != nil {
		return entity.Expense{}, err
	}

	if existing.UserID != userID {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"user_id":    userID,
		}).Warn("Expense does not belong to user")
		return entity.Expense{}, expense.ErrExpenseNotOwned
	}

	date, err := time.Parse(expenseDateLayout, req.Date)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"date":       req.Date,
		}).Warn("Invalid expense date")
		return entity.Expense{}, expense.ErrInvalidDate
	}

	existing.Merchant = req.Merchant
	existing.Amount = req.Amount
	existing.Date = date
	existing.Category = req.Category
	existing.Notes = req.Notes
	existing.UpdatedAt = time.Now()

	if err := existing.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid expense data")
		return entity.Expense{}, err
	}

	if err := repo.Expense.UpdateExpense(ctx, existing); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update expense")
		return entity.Expense{}, expense.ErrUpdateExpense
	}

	return existing, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id string, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	existing, err := repo.Expense.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"user_id":    userID,
		}).Warn("Expense does not belong to user")
		return expense.ErrExpenseNotOwned
	}

	if err := repo.Expense.DeleteExpense(ctx, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to delete expense")
		return expense.ErrDeleteExpense
	}

	return nil
}
