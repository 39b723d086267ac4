package insightService

import (
	"SpendScan/internal/api/insight"
	contextPkg "SpendScan/pkg/context"
	"encoding/json"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *insightService) GetSpendingInsight(ctx context.Context, userID string) (insight.InsightResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	authRepo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create auth repository client")
		return insight.InsightResponse{}, err
	}

	user, err := authRepo.Users.GetByID(ctx, userID)
	if err != nil {
		return insight.InsightResponse{}, err
	}

	now := time.Now().UTC()
	if !user.IsPremium(now) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
		}).Warn("Insight requested without active premium plan")
		return insight.InsightResponse{}, insight.ErrPremiumRequired
	}

	summary, err := s.expenseService.GetCurrentMonthSummary(ctx, userID)
	if err != nil {
		return insight.InsightResponse{}, err
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal summary")
		return insight.InsightResponse{}, err
	}

	raw, err := s.insightClient.GenerateSpendingInsight(ctx, string(summaryJSON))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Insight generation failed")
		return insight.InsightResponse{}, insight.ErrInsightUpstream
	}

	return insight.InsightResponse{
		Month:           now.Format("2006-01"),
		Recommendations: splitRecommendations(raw),
	}, nil
}

// splitRecommendations turns the model's bullet list into clean lines.
// Leading bullet markers and numbering are stripped.
func splitRecommendations(raw string) []string {
	lines := strings.Split(raw, "\n")
	recommendations := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		for i := 0; i < len(line); i++ {
			if line[i] >= '0' && line[i] <= '9' {
				continue
			}
			if line[i] == '.' || line[i] == ')' {
				line = strings.TrimSpace(line[i+1:])
			}
			break
		}
		if line != "" {
			recommendations = append(recommendations, line)
		}
	}

	return recommendations
}
