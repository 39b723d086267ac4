package receipt

import "SpendScan/pkg/response"

var (
	ErrImageRequired     = response.NewError(400, "receipt image is required")
	ErrInvalidImage      = response.NewError(400, "invalid receipt image data")
	ErrScanQuotaExceeded = response.NewError(403, "monthly scan limit reached, upgrade to premium for unlimited scans")
	ErrUpstream          = response.NewError(500, "extraction service unavailable")
	ErrMalformedResponse = response.NewError(500, "could not parse extraction result")
)
