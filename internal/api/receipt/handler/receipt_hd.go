package receiptHandler

import (
	"SpendScan/internal/api/receipt"
	contextPkg "SpendScan/pkg/context"
	"SpendScan/pkg/handlerUtil"
	jwtPkg "SpendScan/pkg/jwt"
	"SpendScan/pkg/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *ReceiptHandler) ScanReceipt(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 45*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing receipt scan request")

	var req receipt.ScanReceiptRequest
	if file, formErr := ctx.FormFile("image"); formErr == nil {
		if err := h.utils.ValidateImageFile(file); err != nil {
			return errHandler.Handle(ctx, requestID, receipt.ErrInvalidImage, ctx.Path(), "validate_image_file")
		}

		opened, err := file.Open()
		if err != nil {
			return errHandler.Handle(ctx, requestID, receipt.ErrInvalidImage, ctx.Path(), "open_image_file")
		}
		defer opened.Close()

		encoded, err := h.utils.ConvertFileToBase64(opened)
		if err != nil {
			return errHandler.Handle(ctx, requestID, receipt.ErrInvalidImage, ctx.Path(), "encode_image_file")
		}

		req.Image = encoded
	} else if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.receiptService.ScanReceipt(c, userData, req.Image)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "scan_receipt")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
