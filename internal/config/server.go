package config

import (
	"SpendScan/database/postgres"
	authHandler "SpendScan/internal/api/auth/handler"
	authRepository "SpendScan/internal/api/auth/repository"
	authService "SpendScan/internal/api/auth/service"
	expenseHandler "SpendScan/internal/api/expense/handler"
	expenseRepository "SpendScan/internal/api/expense/repository"
	expenseService "SpendScan/internal/api/expense/service"
	insightHandler "SpendScan/internal/api/insight/handler"
	insightService "SpendScan/internal/api/insight/service"
	receiptHandler "SpendScan/internal/api/receipt/handler"
	receiptService "SpendScan/internal/api/receipt/service"
	subscriptionHandler "SpendScan/internal/api/subscription/handler"
	subscriptionRepository "SpendScan/internal/api/subscription/repository"
	subscriptionService "SpendScan/internal/api/subscription/service"
	"SpendScan/internal/middleware"
	"SpendScan/pkg/bcrypt"
	"SpendScan/pkg/gemini"
	"SpendScan/pkg/google"
	"SpendScan/pkg/openai"
	"SpendScan/pkg/redis"
	"SpendScan/pkg/s3"
	"SpendScan/pkg/smtp"
	"SpendScan/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	googleProvider google.ItfGoogle
	redisServer    redis.IRedis
	smtpMailer     smtp.ItfSmtp
	geminiClient   gemini.IGemini
	insightClient  openai.IInsight
	s3Client       s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithGoogleProvider(provider google.ItfGoogle) ServerOption {
	return func(s *Server) error {
		s.googleProvider = provider
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithInsightClient() ServerOption {
	return func(s *Server) error {
		s.insightClient = openai.NewInsight()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.googleProvider, s.smtpMailer, s.redisServer, s.s3Client, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware, s.googleProvider)

	// Receipt Scanning
	receiptServices := receiptService.NewReceiptService(s.log, s.geminiClient, s.redisServer, s.utils)
	receiptHandlers := receiptHandler.New(s.log, s.validator, s.middleware, receiptServices, s.utils)

	// Expense Tracking
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.NewExpenseService(s.log, expenseRepo, s.utils)
	expenseHandlers := expenseHandler.New(s.log, s.validator, s.middleware, expenseServices)

	// Subscription Review
	subscriptionRepo := subscriptionRepository.New(s.db, s.log)
	subscriptionServices := subscriptionService.NewSubscriptionService(s.log, subscriptionRepo, authRepo, s.s3Client, s.smtpMailer, s.utils)
	subscriptionHandlers := subscriptionHandler.New(s.log, s.validator, s.middleware, subscriptionServices)

	// Spending Insights
	insightServices := insightService.NewInsightService(s.log, authRepo, expenseServices, s.insightClient)
	insightHandlers := insightHandler.New(s.log, s.middleware, insightServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, receiptHandlers, expenseHandlers, subscriptionHandlers, insightHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown drains in-flight requests and releases the Gemini client's
// underlying connection.
func (s *Server) Shutdown() error {
	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
