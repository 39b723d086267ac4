package receiptService

import (
	"SpendScan/internal/api/receipt"
	"SpendScan/internal/entity"
	geminiPkg "SpendScan/pkg/gemini"
	"SpendScan/pkg/utils"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeGemini struct {
	response string
	err      error
	calls    int
}

func (f *fakeGemini) AnalyzeImage(_ context.Context, _ string, _ string, _ string) (string, error) {
	f.calls = f.calls + 1
	return f.response, f.err
}

func (f *fakeGemini) Close() {}

type fakeRedis struct {
	counts map[string]int64
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counts: make(map[string]int64)}
}

func (f *fakeRedis) SetOTP(_ context.Context, _ string, _ string, _ time.Duration) error {
	return nil
}

func (f *fakeRedis) GetOTP(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (f *fakeRedis) DeleteOTP(_ context.Context, _ string) error {
	return nil
}

func (f *fakeRedis) GetScanCount(_ context.Context, userID string, _ time.Time) (int64, error) {
	return f.counts[userID], nil
}

func (f *fakeRedis) IncrementScanCount(_ context.Context, userID string, _ time.Time) (int64, error) {
	f.counts[userID] = f.counts[userID] + 1
	return f.counts[userID], nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const receiptJSON = `{"merchant":"Metro Cash & Carry","amount":4520.50,"date":"2025-03-12","category":"Food","items":[{"name":"Rice 5kg","price":1200}]}`

func newService(gemini *fakeGemini, redis *fakeRedis) IReceiptService {
	return NewReceiptService(quietLogger(), gemini, redis, utils.New())
}

func freeUser() entity.UserLoginData {
	return entity.UserLoginData{ID: "u1", Email: "u1@mail.com", Username: "u1", Plan: string(entity.PlanFree)}
}

func TestScanReceipt(t *testing.T) {
	t.Run("clean JSON response passes through", func(t *testing.T) {
		gemini := &fakeGemini{response: receiptJSON}
		svc := newService(gemini, newFakeRedis())

		resp, err := svc.ScanReceipt(context.Background(), freeUser(), "aGVsbG8=")
		if err != nil {
			t.Fatalf("ScanReceipt returned error: %v", err)
		}

		if resp.Receipt.Merchant != "Metro Cash & Carry" {
			t.Errorf("Merchant = %q", resp.Receipt.Merchant)
		}
		if resp.Receipt.Amount != 4520.50 {
			t.Errorf("Amount = %v, want 4520.50", resp.Receipt.Amount)
		}
		if resp.Receipt.Category != "Food" {
			t.Errorf("Category = %q, want Food", resp.Receipt.Category)
		}
		if len(resp.Receipt.Items) != 1 || resp.Receipt.Items[0].Name != "Rice 5kg" {
			t.Errorf("Items = %+v", resp.Receipt.Items)
		}
		if resp.ScansRemaining != 14 {
			t.Errorf("ScansRemaining = %d, want 14", resp.ScansRemaining)
		}
		if resp.Unlimited {
			t.Error("free plan should not report unlimited scans")
		}
	})

	t.Run("JSON wrapped in prose and markdown fences", func(t *testing.T) {
		gemini := &fakeGemini{response: "Sure! Here is the extracted receipt:\n```json\n" + receiptJSON + "\n```\nLet me know if you need anything else."}
		svc := newService(gemini, newFakeRedis())

		resp, err := svc.ScanReceipt(context.Background(), freeUser(), "aGVsbG8=")
		if err != nil {
			t.Fatalf("ScanReceipt returned error: %v", err)
		}
		if resp.Receipt.Merchant != "Metro Cash & Carry" {
			t.Errorf("Merchant = %q", resp.Receipt.Merchant)
		}
	})

	t.Run("data URI prefix is stripped", func(t *testing.T) {
		gemini := &fakeGemini{response: receiptJSON}
		svc := newService(gemini, newFakeRedis())

		_, err := svc.ScanReceipt(context.Background(), freeUser(), "data:image/png;base64,aGVsbG8=")
		if err != nil {
			t.Fatalf("ScanReceipt returned error: %v", err)
		}
	})

	t.Run("empty image", func(t *testing.T) {
		svc := newService(&fakeGemini{response: receiptJSON}, newFakeRedis())

		_, err := svc.ScanReceipt(context.Background(), freeUser(), "   ")
		if !errors.Is(err, receipt.ErrImageRequired) {
			t.Errorf("err = %v, want ErrImageRequired", err)
		}
	})

	t.Run("no JSON object in response", func(t *testing.T) {
		gemini := &fakeGemini{response: "I could not read this receipt."}
		svc := newService(gemini, newFakeRedis())

		_, err := svc.ScanReceipt(context.Background(), freeUser(), "aGVsbG8=")
		if !errors.Is(err, receipt.ErrMalformedResponse) {
			t.Errorf("err = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("invalid JSON inside balanced braces", func(t *testing.T) {
		gemini := &fakeGemini{response: `{"merchant": }`}
		svc := newService(gemini, newFakeRedis())

		_, err := svc.ScanReceipt(context.Background(), freeUser(), "aGVsbG8=")
		if !errors.Is(err, receipt.ErrMalformedResponse) {
			t.Errorf("err = %v, want ErrMalformedResponse", err)
		}
	})

	t.Run("undecodable payload is a client error", func(t *testing.T) {
		gemini := &fakeGemini{err: geminiPkg.ErrInvalidImageData}
		svc := newService(gemini, newFakeRedis())

		_, err := svc.ScanReceipt(context.Background(), freeUser(), "not-base64!!")
		if !errors.Is(err, receipt.ErrInvalidImage) {
			t.Errorf("err = %v, want ErrInvalidImage", err)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		gemini := &fakeGemini{err: errors.New("rate limited")}
		svc := newService(gemini, newFakeRedis())

		_, err := svc.ScanReceipt(context.Background(), freeUser(), "aGVsbG8=")
		if !errors.Is(err, receipt.ErrUpstream) {
			t.Errorf("err = %v, want ErrUpstream", err)
		}
	})

	t.Run("quota exhausted blocks before the model call", func(t *testing.T) {
		gemini := &fakeGemini{response: receiptJSON}
		redis := newFakeRedis()
		redis.counts["u1"] = freeScanLimit
		svc := newService(gemini, redis)

		_, err := svc.ScanReceipt(context.Background(), freeUser(), "aGVsbG8=")
		if !errors.Is(err, receipt.ErrScanQuotaExceeded) {
			t.Errorf("err = %v, want ErrScanQuotaExceeded", err)
		}
		if gemini.calls != 0 {
			t.Errorf("gemini called %d times, want 0", gemini.calls)
		}
	})

	t.Run("failed scans do not consume quota", func(t *testing.T) {
		gemini := &fakeGemini{response: "no object here"}
		redis := newFakeRedis()
		svc := newService(gemini, redis)

		_, _ = svc.ScanReceipt(context.Background(), freeUser(), "aGVsbG8=")
		if redis.counts["u1"] != 0 {
			t.Errorf("count = %d, want 0 after a failed extraction", redis.counts["u1"])
		}
	})

	t.Run("premium plan skips the quota entirely", func(t *testing.T) {
		gemini := &fakeGemini{response: receiptJSON}
		redis := newFakeRedis()
		redis.counts["u1"] = freeScanLimit + 10
		svc := newService(gemini, redis)

		user := freeUser()
		user.Plan = string(entity.PlanPremium)

		resp, err := svc.ScanReceipt(context.Background(), user, "aGVsbG8=")
		if err != nil {
			t.Fatalf("ScanReceipt returned error: %v", err)
		}
		if !resp.Unlimited {
			t.Error("premium plan should report unlimited scans")
		}
		if redis.counts["u1"] != freeScanLimit+10 {
			t.Errorf("premium scan should not touch the counter, count = %d", redis.counts["u1"])
		}
	})
}

func TestFirstBalancedObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose before and after", `text {"a":1} more`, `{"a":1}`, true},
		{"nested objects", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"brace inside string", `{"a":"}"}`, `{"a":"}"}`, true},
		{"escaped quote inside string", `{"a":"\"}"}`, `{"a":"\"}"}`, true},
		{"no object", "just words", "", false},
		{"unterminated object", `{"a":1`, "", false},
		{"empty input", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := firstBalancedObject(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Errorf("firstBalancedObject(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}
