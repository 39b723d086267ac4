package subscriptionHandler

import (
	"SpendScan/internal/api/subscription"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"SpendScan/pkg/handlerUtil"
	jwtPkg "SpendScan/pkg/jwt"
	"SpendScan/pkg/log"
	"errors"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *SubscriptionHandler) CreateRequest(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create subscription request")

	req := subscription.CreateSubscriptionRequest{
		PlanType: ctx.FormValue("plan_type"),
		Notes:    ctx.FormValue("notes"),
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	screenshot, _ := ctx.FormFile("payment_screenshot")

	created, err := h.subscriptionService.CreateRequest(c, userData.ID, req, screenshot)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_subscription_request")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makeSubscriptionResponse(created))
	}
}

func (h *SubscriptionHandler) GetMyRequests(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	requests, err := h.subscriptionService.GetRequestsByUserID(c, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_subscription_requests")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeSubscriptionListResponse(requests))
	}
}

func (h *SubscriptionHandler) GetPendingRequests(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	requests, err := h.subscriptionService.GetPendingRequests(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_pending_requests")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeSubscriptionListResponse(requests))
	}
}

func (h *SubscriptionHandler) ApproveRequest(ctx *fiber.Ctx) error {
	return h.reviewRequest(ctx, "approve_subscription_request", h.subscriptionService.ApproveRequest)
}

func (h *SubscriptionHandler) RejectRequest(ctx *fiber.Ctx) error {
	return h.reviewRequest(ctx, "reject_subscription_request", h.subscriptionService.RejectRequest)
}

func (h *SubscriptionHandler) reviewRequest(
	ctx *fiber.Ctx,
	operation string,
	review func(c context.Context, id string, adminID string) (entity.SubscriptionRequest, error),
) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("subscription request ID is required"), ctx.Path())
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	reviewed, err := review(c, id, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeSubscriptionResponse(reviewed))
	}
}

func makeSubscriptionResponse(request entity.SubscriptionRequest) subscription.SubscriptionResponse {
	res := subscription.SubscriptionResponse{
		ID:                   request.ID,
		UserID:               request.UserID,
		PlanType:             request.PlanType,
		Amount:               request.Amount,
		InvoiceNumber:        request.InvoiceNumber,
		PaymentScreenshotURL: request.PaymentScreenshotURL,
		Notes:                request.Notes,
		Status:               request.Status,
		ReviewedBy:           request.ReviewedBy,
		CreatedAt:            request.CreatedAt.Format(time.RFC3339),
	}

	if !request.ReviewedAt.IsZero() {
		res.ReviewedAt = request.ReviewedAt.Format(time.RFC3339)
	}

	return res
}

func makeSubscriptionListResponse(requests []entity.SubscriptionRequest) subscription.SubscriptionListResponse {
	responses := make([]subscription.SubscriptionResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, makeSubscriptionResponse(request))
	}

	return subscription.SubscriptionListResponse{
		Subscriptions: responses,
	}
}
