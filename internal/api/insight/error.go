package insight

import "SpendScan/pkg/response"

var (
	ErrPremiumRequired = response.NewError(403, "spending insights require an active premium subscription")
	ErrInsightUpstream = response.NewError(500, "insight service unavailable")
)
