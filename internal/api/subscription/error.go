package subscription

import "SpendScan/pkg/response"

var (
	ErrInvalidPlan            = response.NewError(400, "invalid plan type, expected monthly or yearly")
	ErrScreenshotRequired     = response.NewError(400, "payment screenshot is required")
	ErrInvalidFileType        = response.NewError(400, "invalid file type")
	ErrRequestNotFound        = response.NewError(404, "subscription request not found")
	ErrRequestAlreadyReviewed = response.NewError(409, "subscription request already reviewed")
	ErrPendingRequestExists   = response.NewError(409, "a pending subscription request already exists")
	ErrFailedToUploadFile     = response.NewError(500, "failed to upload payment screenshot")
	ErrCreateRequest          = response.NewError(500, "failed to create subscription request")
	ErrUpdateRequest          = response.NewError(500, "failed to update subscription request")
)
