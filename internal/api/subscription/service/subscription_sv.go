package subscriptionService

import (
	"SpendScan/internal/api/subscription"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"mime/multipart"
	"time"
)

func (s *subscriptionService) CreateRequest(ctx context.Context, userID string, req subscription.CreateSubscriptionRequest, screenshot *multipart.FileHeader) (entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.SubscriptionRequest{}, err
	}

	amount, err := entity.PlanPrice(req.PlanType)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"plan_type":  req.PlanType,
		}).Warn("Invalid plan type")
		return entity.SubscriptionRequest{}, err
	}

	if screenshot == nil {
		return entity.SubscriptionRequest{}, subscription.ErrScreenshotRequired
	}

	if err := s.utils.ValidateImageFile(screenshot); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"filename":   screenshot.Filename,
		}).Warn("Invalid payment screenshot file type")
		return entity.SubscriptionRequest{}, subscription.ErrInvalidFileType
	}

	pending, err := repo.Subscriptions.HasPendingRequest(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to check pending requests")
		return entity.SubscriptionRequest{}, err
	}
	if pending {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
		}).Warn("Pending subscription request already exists")
		return entity.SubscriptionRequest{}, subscription.ErrPendingRequestExists
	}

	screenshotURL, err := s.s3Client.UploadFile(screenshot, "payment-screenshots")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload payment screenshot")
		return entity.SubscriptionRequest{}, subscription.ErrFailedToUploadFile
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.SubscriptionRequest{}, err
	}

	request := entity.SubscriptionRequest{
		ID:                   ULID,
		UserID:               userID,
		PlanType:             req.PlanType,
		Amount:               amount,
		InvoiceNumber:        fmt.Sprintf("INV-%s", ULID),
		PaymentScreenshotURL: screenshotURL,
		Notes:                req.Notes,
		Status:               string(entity.SubscriptionPending),
		CreatedAt:            time.Now(),
	}

	if err := repo.Subscriptions.CreateRequest(ctx, request); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create subscription request")

		if deleteErr := s.s3Client.DeleteFile(screenshotURL); deleteErr != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      deleteErr.Error(),
			}).Error("Failed to delete screenshot after request creation failure")
		}

		return entity.SubscriptionRequest{}, subscription.ErrCreateRequest
	}

	return request, nil
}

func (s *subscriptionService) GetRequestsByUserID(ctx context.Context, userID string) ([]entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	requests, err := repo.Subscriptions.GetRequestsByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get subscription requests")
		return nil, err
	}

	return requests, nil
}

func (s *subscriptionService) GetPendingRequests(ctx context.Context) ([]entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	requests, err := repo.Subscriptions.GetPendingRequests(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get pending subscription requests")
		return nil, err
	}

	for i := range requests {
		if requests[i].PaymentScreenshotURL == "" {
			continue
		}
		presigned, err := s.s3Client.PresignUrl(requests[i].PaymentScreenshotURL)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to presign payment screenshot URL")
			return nil, err
		}
		requests[i].PaymentScreenshotURL = presigned
	}

	return requests, nil
}

// ApproveRequest flips a pending request to approved and activates the
// premium plan. The new expiry extends from the current expiry when the
// user still has active premium time left, otherwise from now.
func (s *subscriptionService) ApproveRequest(ctx context.Context, id string, adminID string) (entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.SubscriptionRequest{}, err
	}

	request, err := repo.Subscriptions.GetRequestByID(ctx, id)
	if err != nil {
		return entity.SubscriptionRequest{}, err
	}

	if !request.IsPending() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"status":     request.Status,
		}).Warn("Subscription request already reviewed")
		return entity.SubscriptionRequest{}, subscription.ErrRequestAlreadyReviewed
	}

	duration, err := entity.PlanDuration(request.PlanType)
	if err != nil {
		return entity.SubscriptionRequest{}, err
	}

	authRepo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create auth repository client")
		return entity.SubscriptionRequest{}, err
	}

	user, err := authRepo.Users.GetByID(ctx, request.UserID)
	if err != nil {
		return entity.SubscriptionRequest{}, err
	}

	now := time.Now()
	expiryBase := now
	if user.IsPremium(now) {
		expiryBase = user.PremiumExpiresAt
	}

	reviewedAt := now
	if err := repo.Subscriptions.UpdateRequestStatus(ctx, id, string(entity.SubscriptionApproved), adminID, reviewedAt); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to approve subscription request")
		return entity.SubscriptionRequest{}, err
	}

	if err := authRepo.Users.UpdateUserPlan(ctx, request.UserID, string(entity.PlanPremium), expiryBase.Add(duration)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update user plan after approval")
		return entity.SubscriptionRequest{}, subscription.ErrUpdateRequest
	}

	if err := s.smtpMailer.SendSubscriptionResultMail(user.Email, request.PlanType, true); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to send approval mail")
	}

	request.Status = string(entity.SubscriptionApproved)
	request.ReviewedBy = adminID
	request.ReviewedAt = reviewedAt

	return request, nil
}

func (s *subscriptionService) RejectRequest(ctx context.Context, id string, adminID string) (entity.SubscriptionRequest, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.subscriptionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.SubscriptionRequest{}, err
	}

	request, err := repo.Subscriptions.GetRequestByID(ctx, id)
	if err != nil {
		return entity.SubscriptionRequest{}, err
	}

	if !request.IsPending() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"status":     request.Status,
		}).Warn("Subscription request already reviewed")
		return entity.SubscriptionRequest{}, subscription.ErrRequestAlreadyReviewed
	}

	reviewedAt := time.Now()
	if err := repo.Subscriptions.UpdateRequestStatus(ctx, id, string(entity.SubscriptionRejected), adminID, reviewedAt); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to reject subscription request")
		return entity.SubscriptionRequest{}, err
	}

	authRepo, err := s.authRepository.NewClient(false)
	if err == nil {
		if user, userErr := authRepo.Users.GetByID(ctx, request.UserID); userErr == nil {
			if mailErr := s.smtpMailer.SendSubscriptionResultMail(user.Email, request.PlanType, false); mailErr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      mailErr.Error(),
				}).Warn("Failed to send rejection mail")
			}
		}
	}

	request.Status = string(entity.SubscriptionRejected)
	request.ReviewedBy = adminID
	request.ReviewedAt = reviewedAt

	return request, nil
}
