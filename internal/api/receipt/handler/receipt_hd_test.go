package receiptHandler

import (
	"SpendScan/internal/api/receipt"
	"SpendScan/internal/entity"
	"SpendScan/pkg/utils"
	"bytes"
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeMiddleware struct{}

func (fakeMiddleware) NewRateLimiter(ctx *fiber.Ctx) error { return ctx.Next() }

func (fakeMiddleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	ctx.Locals("user", entity.UserLoginData{
		ID:       "u1",
		Username: "u1",
		Email:    "u1@mail.com",
		Plan:     string(entity.PlanPremium),
	})
	return ctx.Next()
}

func (fakeMiddleware) NewAdminMiddleware(ctx *fiber.Ctx) error { return ctx.Next() }

func (fakeMiddleware) NewRequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error { return ctx.Next() }
}

func (fakeMiddleware) GetRequestID(_ *fiber.Ctx) string { return "test" }

type fakeScanService struct {
	image string
}

func (f *fakeScanService) ScanReceipt(_ context.Context, _ entity.UserLoginData, image string) (receipt.ScanReceiptResponse, error) {
	f.image = image
	return receipt.ScanReceiptResponse{Unlimited: true}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *fakeScanService) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	service := &fakeScanService{}
	handler := New(log, validator.New(), fakeMiddleware{}, service, utils.New())

	app := fiber.New()
	handler.Start(app.Group("/api/v1"))

	return app, service
}

func multipartImageBody(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="receipt.png"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("writing part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func TestScanReceiptRoute(t *testing.T) {
	t.Run("multipart image file is encoded and forwarded", func(t *testing.T) {
		app, service := newTestApp(t)

		imageBytes := []byte("raw image bytes")
		body, contentType := multipartImageBody(t, "image/png", imageBytes)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		want := base64.StdEncoding.EncodeToString(imageBytes)
		if service.image != want {
			t.Errorf("service received %q, want %q", service.image, want)
		}
	})

	t.Run("JSON body with image_base64 is forwarded as-is", func(t *testing.T) {
		app, service := newTestApp(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", strings.NewReader(`{"image_base64":"aGVsbG8="}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		if service.image != "aGVsbG8=" {
			t.Errorf("service received %q, want the raw base64 payload", service.image)
		}
	})

	t.Run("non-image multipart upload is rejected", func(t *testing.T) {
		app, service := newTestApp(t)

		body, contentType := multipartImageBody(t, "application/pdf", []byte("%PDF-1.4"))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}

		if service.image != "" {
			t.Error("service should not be called for a rejected upload")
		}
	})
}
