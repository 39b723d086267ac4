package subscriptionHandler

import (
	subscriptionService "SpendScan/internal/api/subscription/service"
	"SpendScan/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SubscriptionHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	subscriptionService subscriptionService.ISubscriptionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	subscriptionService subscriptionService.ISubscriptionService,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		log:                 log,
		validator:           validate,
		middleware:          middleware,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) Start(srv fiber.Router) {
	subscriptions := srv.Group("/subscriptions")

	subscriptions.Post("/", h.middleware.NewTokenMiddleware, h.CreateRequest)
	subscriptions.Get("/", h.middleware.NewTokenMiddleware, h.GetMyRequests)
	subscriptions.Get("/pending", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.GetPendingRequests)
	subscriptions.Patch("/:id/approve", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.ApproveRequest)
	subscriptions.Patch("/:id/reject", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.RejectRequest)
}
