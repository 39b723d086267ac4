package receiptHandler

import (
	receiptService "SpendScan/internal/api/receipt/service"
	"SpendScan/internal/middleware"
	"SpendScan/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReceiptHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	receiptService receiptService.IReceiptService
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	receiptService receiptService.IReceiptService,
	utils utils.IUtils,
) *ReceiptHandler {
	return &ReceiptHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		receiptService: receiptService,
		utils:          utils,
	}
}

func (h *ReceiptHandler) Start(srv fiber.Router) {
	receipts := srv.Group("/receipts")

	receipts.Post("/scan", h.middleware.NewTokenMiddleware, h.ScanReceipt)
}
