package expenseRepository

import (
	"SpendScan/internal/api/expense"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type ExpenseDB struct {
	ID        sql.NullString  `db:"id"`
	UserID    sql.NullString  `db:"user_id"`
	Merchant  sql.NullString  `db:"merchant"`
	Amount    sql.NullFloat64 `db:"amount"`
	Date      time.Time       `db:"date"`
	Category  sql.NullString  `db:"category"`
	Notes     sql.NullString  `db:"notes"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r *expenseRepository) CreateExpense(c context.Context, exp entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         exp.ID,
		"user_id":    exp.UserID,
		"merchant":   exp.Merchant,
		"amount":     exp.Amount,
		"date":       exp.Date,
		"category":   exp.Category,
		"notes":      exp.Notes,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")

		return err
	}

	return nil
}

func (r *expenseRepository) GetExpenseByID(c context.Context, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var exp ExpenseDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetExpenseByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")

		return entity.Expense{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&exp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetExpenseByID no rows found")
			return entity.Expense{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	return r.makeExpense(exp), nil
}

func (r *expenseRepository) GetExpensesByUserID(c context.Context, userID string) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var expenses []ExpenseDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetExpensesByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpensesByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &expenses, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpensesByUserID execution err")
		return nil, err
	}

	result := make([]entity.Expense, 0, len(expenses))
	for _, exp := range expenses {
		result = append(result, r.makeExpense(exp))
	}

	return result, nil
}

func (r *expenseRepository) GetExpensesByWindow(c context.Context, userID string, windowStart time.Time, windowEnd time.Time) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var expenses []ExpenseDB

	argsKV := map[string]interface{}{
		"user_id":      userID,
		"window_start": windowStart,
		"window_end":   windowEnd,
	}

	query, args, err := sqlx.Named(queryGetExpensesByWindow, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpensesByWindow named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &expenses, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpensesByWindow execution err")
		return nil, err
	}

	result := make([]entity.Expense, 0, len(expenses))
	for _, exp := range expenses {
		result = append(result, r.makeExpense(exp))
	}

	return result, nil
}

func (r *expenseRepository) UpdateExpense(c context.Context, exp entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         exp.ID,
		"merchant":   exp.Merchant,
		"amount":     exp.Amount,
		"date":       exp.Date,
		"category":   exp.Category,
		"notes":      exp.Notes,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense execution err")

		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateExpense rows affected err")

		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdateExpense no rows affected")

		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) DeleteExpense(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeleteExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense execution err")

		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteExpense rows affected err")

		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("DeleteExpense no rows affected")

		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) makeExpense(exp ExpenseDB) entity.Expense {
	return entity.Expense{
		ID:        exp.ID.String,
		UserID:    exp.UserID.String,
		Merchant:  exp.Merchant.String,
		Amount:    exp.Amount.Float64,
		Date:      exp.Date,
		Category:  exp.Category.String,
		Notes:     exp.Notes.String,
		CreatedAt: exp.CreatedAt,
		UpdatedAt: exp.UpdatedAt,
	}
}
