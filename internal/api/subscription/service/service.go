package subscriptionService

import (
	authRepository "SpendScan/internal/api/auth/repository"
	"SpendScan/internal/api/subscription"
	subscriptionRepository "SpendScan/internal/api/subscription/repository"
	"SpendScan/internal/entity"
	"SpendScan/pkg/s3"
	"SpendScan/pkg/smtp"
	"SpendScan/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"mime/multipart"
)

type ISubscriptionService interface {
	CreateRequest(ctx context.Context, userID string, req subscription.CreateSubscriptionRequest, screenshot *multipart.FileHeader) (entity.SubscriptionRequest, error)
	GetRequestsByUserID(ctx context.Context, userID string) ([]entity.SubscriptionRequest, error)
	GetPendingRequests(ctx context.Context) ([]entity.SubscriptionRequest, error)
	ApproveRequest(ctx context.Context, id string, adminID string) (entity.SubscriptionRequest, error)
	RejectRequest(ctx context.Context, id string, adminID string) (entity.SubscriptionRequest, error)
}

type subscriptionService struct {
	log                    *logrus.Logger
	subscriptionRepository subscriptionRepository.Repository
	authRepository         authRepository.Repository
	s3Client               s3.ItfS3
	smtpMailer             smtp.ItfSmtp
	utils                  utils.IUtils
}

func NewSubscriptionService(
	log *logrus.Logger,
	sr subscriptionRepository.Repository,
	ar authRepository.Repository,
	s3Client s3.ItfS3,
	smtpMailer smtp.ItfSmtp,
	utils utils.IUtils,
) ISubscriptionService {
	return &subscriptionService{
		log:                    log,
		subscriptionRepository: sr,
		authRepository:         ar,
		s3Client:               s3Client,
		smtpMailer:             smtpMailer,
		utils:                  utils,
	}
}
