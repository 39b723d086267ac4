package authHandler

import (
	authService "SpendScan/internal/api/auth/service"
	"SpendScan/internal/middleware"
	"SpendScan/pkg/google"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log            *logrus.Logger
	authService    authService.AuthService
	validator      *validator.Validate
	middleware     middleware.Middleware
	googleProvider google.ItfGoogle
}

func New(
	log *logrus.Logger,
	as authService.AuthService,
	validate *validator.Validate,
	middleware middleware.Middleware,
	googleProvider google.ItfGoogle) *AuthHandler {
	return &AuthHandler{
		log:            log,
		authService:    as,
		validator:      validate,
		middleware:     middleware,
		googleProvider: googleProvider,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/login", h.HandleLogin)
	auth.Get("/login-gl", h.HandleGoogleLogin)
	auth.Get("/callback-gl", h.CallBackFromGoogle)

	users := srv.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Get("/me", h.middleware.NewTokenMiddleware, h.HandleGetProfile)
	users.Patch("/", h.middleware.NewTokenMiddleware, h.HandleUpdateProfile)
	users.Post("/profile-photo", h.middleware.NewTokenMiddleware, h.HandleUpdateProfilePhoto)
	users.Delete("/:id", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.HandleDeleteUser)

	password := srv.Group("/password")
	password.Post("/send-otp", h.HandleRequestPasswordReset)
	password.Patch("/reset", h.HandleResetPassword)
}
