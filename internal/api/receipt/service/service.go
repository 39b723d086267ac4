package receiptService

import (
	"SpendScan/internal/api/receipt"
	"SpendScan/internal/entity"
	"SpendScan/pkg/gemini"
	"SpendScan/pkg/redis"
	"SpendScan/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IReceiptService interface {
	ScanReceipt(ctx context.Context, user entity.UserLoginData, image string) (receipt.ScanReceiptResponse, error)
}

type receiptService struct {
	log          *logrus.Logger
	geminiClient gemini.IGemini
	redisServer  redis.IRedis
	utils        utils.IUtils
}

func NewReceiptService(log *logrus.Logger, geminiClient gemini.IGemini, redisServer redis.IRedis, utils utils.IUtils) IReceiptService {
	return &receiptService{
		log:          log,
		geminiClient: geminiClient,
		redisServer:  redisServer,
		utils:        utils,
	}
}
