package expenseService

import (
	"SpendScan/internal/api/expense"
	expenseRepository "SpendScan/internal/api/expense/repository"
	"SpendScan/internal/entity"
	"SpendScan/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IExpenseService interface {
	CreateExpense(ctx context.Context, userID string, req expense.CreateExpenseRequest) (entity.Expense, error)
	GetExpenseByID(ctx context.Context, id string, userID string) (entity.Expense, error)
	GetExpensesByUserID(ctx context.Context, userID string) ([]entity.Expense, error)
	UpdateExpense(ctx context.Context, id string, userID string, req expense.UpdateExpenseRequest) (entity.Expense, error)
	DeleteExpense(ctx context.Context, id string, userID string) error
	GetCurrentMonthSummary(ctx context.Context, userID string) (expense.SummaryResponse, error)
	GetMonthlyReport(ctx context.Context, userID string, month string) (expense.MonthlyReportResponse, error)
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
	utils             utils.IUtils
}

func NewExpenseService(log *logrus.Logger, er expenseRepository.Repository, utils utils.IUtils) IExpenseService {
	return &expenseService{
		log:               log,
		expenseRepository: er,
		utils:             utils,
	}
}
