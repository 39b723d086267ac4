package insightService

import (
	authRepository "SpendScan/internal/api/auth/repository"
	expenseService "SpendScan/internal/api/expense/service"
	"SpendScan/internal/api/insight"
	"SpendScan/pkg/openai"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IInsightService interface {
	GetSpendingInsight(ctx context.Context, userID string) (insight.InsightResponse, error)
}

type insightService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository
	expenseService expenseService.IExpenseService
	insightClient  openai.IInsight
}

func NewInsightService(
	log *logrus.Logger,
	ar authRepository.Repository,
	es expenseService.IExpenseService,
	insightClient openai.IInsight,
) IInsightService {
	return &insightService{
		log:            log,
		authRepository: ar,
		expenseService: es,
		insightClient:  insightClient,
	}
}
