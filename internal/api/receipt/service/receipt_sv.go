package receiptService

import (
	"SpendScan/internal/api/receipt"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"SpendScan/pkg/gemini"
	"encoding/json"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

const (
	freeScanLimit     = 15
	extractionTimeout = 30 * time.Second
)

// extractionPrompt keeps the category vocabulary in sync with the expense
// domain. The model is told to return JSON only, though in practice it
// still wraps the object in prose or markdown fences now and then.
const extractionPrompt = `You are a receipt scanning assistant. Analyze this receipt image and extract the following information as a JSON object:
{
  "merchant": "store or business name",
  "amount": total amount as a number,
  "date": "date in YYYY-MM-DD format",
  "category": "one of: Food, Transport, Shopping, Bills, Entertainment, Healthcare, Other",
  "items": [{"name": "item name", "price": price as a number}]
}
Rules:
- amount is the grand total paid, as a plain number without currency symbols
- if the date is missing or unreadable, use today's date
- pick the single category that best fits the merchant
- items may be omitted when line items are not readable
Respond with the JSON object only, no explanation.`

func (s *receiptService) ScanReceipt(ctx context.Context, user entity.UserLoginData, image string) (receipt.ScanReceiptResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(image) == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Scan request with empty image")
		return receipt.ScanReceiptResponse{}, receipt.ErrImageRequired
	}

	base64Image, mimeType := s.utils.StripDataURIPrefix(image)
	if base64Image == "" {
		return receipt.ScanReceiptResponse{}, receipt.ErrInvalidImage
	}

	unlimited := user.Plan == string(entity.PlanPremium)
	now := time.Now().UTC()

	if !unlimited {
		count, err := s.redisServer.GetScanCount(ctx, user.ID, now)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to read scan count")
			return receipt.ScanReceiptResponse{}, err
		}

		if count >= freeScanLimit {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    user.ID,
				"count":      count,
			}).Warn("Monthly scan limit reached")
			return receipt.ScanReceiptResponse{}, receipt.ErrScanQuotaExceeded
		}
	}

	extractionCtx, cancel := context.WithTimeout(ctx, extractionTimeout)
	defer cancel()

	rawResponse, err := s.geminiClient.AnalyzeImage(extractionCtx, base64Image, mimeType, extractionPrompt)
	if err != nil {
		if errors.Is(err, gemini.ErrInvalidImageData) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Scan request with undecodable image payload")
			return receipt.ScanReceiptResponse{}, receipt.ErrInvalidImage
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Vision model call failed")
		return receipt.ScanReceiptResponse{}, receipt.ErrUpstream
	}

	jsonSpan, ok := firstBalancedObject(rawResponse)
	if !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"response":   truncateForLog(rawResponse),
		}).Error("No JSON object in vision model response")
		return receipt.ScanReceiptResponse{}, receipt.ErrMalformedResponse
	}

	var extracted receipt.ExtractedReceipt
	if err := json.Unmarshal([]byte(jsonSpan), &extracted); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"response":   truncateForLog(jsonSpan),
		}).Error("Failed to parse vision model response")
		return receipt.ScanReceiptResponse{}, receipt.ErrMalformedResponse
	}

	response := receipt.ScanReceiptResponse{
		Receipt:   extracted,
		Unlimited: unlimited,
	}

	if !unlimited {
		newCount, err := s.redisServer.IncrementScanCount(ctx, user.ID, now)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to increment scan count")
			return receipt.ScanReceiptResponse{}, err
		}
		response.ScansRemaining = freeScanLimit - newCount
		if response.ScansRemaining < 0 {
			response.ScansRemaining = 0
		}
	}

	return response, nil
}

// firstBalancedObject returns the first brace-balanced JSON object span in
// the text. Braces inside JSON strings are skipped so prose like
// "here is {your} receipt" before the object cannot truncate the span.
func firstBalancedObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

func truncateForLog(s string) string {
	const max = 500
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
