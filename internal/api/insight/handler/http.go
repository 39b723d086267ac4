package insightHandler

import (
	insightService "SpendScan/internal/api/insight/service"
	"SpendScan/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InsightHandler struct {
	log            *logrus.Logger
	middleware     middleware.Middleware
	insightService insightService.IInsightService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	insightService insightService.IInsightService,
) *InsightHandler {
	return &InsightHandler{
		log:            log,
		middleware:     middleware,
		insightService: insightService,
	}
}

func (h *InsightHandler) Start(srv fiber.Router) {
	insights := srv.Group("/insights")

	insights.Get("/", h.middleware.NewTokenMiddleware, h.GetSpendingInsight)
}
