package auth

import (
	"SpendScan/pkg/response"
	"net/http"
)

var (
	ErrEmailAlreadyExists     = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusBadRequest, "email or password is wrong")
	ErrUserNotFound           = response.NewError(http.StatusNotFound, "user not found")
	ErrUserWithEmailNotFound  = response.NewError(http.StatusNotFound, "user with email not found")
	ErrInvalidToken           = response.NewError(http.StatusUnauthorized, "invalid token")
	ErrInvalidOTP             = response.NewError(http.StatusBadRequest, "invalid otp")
	ErrPasswordSame           = response.NewError(http.StatusBadRequest, "password same as before")
	ErrInvalidFileType        = response.NewError(http.StatusBadRequest, "invalid file type")
	ErrFileTooLarge           = response.NewError(http.StatusBadRequest, "file too large")
	ErrFailedToUploadFile     = response.NewError(http.StatusInternalServerError, "failed to upload file")
	ErrGoogleExchangeFailed   = response.NewError(http.StatusBadRequest, "failed to exchange google authorization code")
)
