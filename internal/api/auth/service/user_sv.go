package authService

import (
	"SpendScan/internal/api/auth"
	"SpendScan/internal/entity"
	contextPkg "SpendScan/pkg/context"
	"context"
	"github.com/sirupsen/logrus"
	"mime/multipart"
	"time"
)

func (s *userDomainImpl) RegisterUser(c context.Context, req auth.CreateUserRequest) error {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return err
	}

	user := entity.User{
		ID:         ULID,
		Email:      req.Email,
		Name:       req.Name,
		Password:   hashedPassword,
		Role:       string(entity.RoleUser),
		Plan:       string(entity.PlanFree),
		IsVerified: false,
		CreatedAt:  time.Now(),
	}

	if err := repo.Users.CreateUser(c, user); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create user")
		return err
	}

	return nil
}

func (s *userDomainImpl) GetByID(c context.Context, id string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}

	user, err := repo.Users.GetByID(c, id)
	if err != nil {
		return entity.User{}, err
	}

	if user.ProfilePhotoURL != "" {
		presigned, err := s.s3Client.PresignUrl(user.ProfilePhotoURL)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to presign profile photo URL")
			return entity.User{}, err
		}
		user.ProfilePhotoURL = presigned
	}

	return user, nil
}

func (s *userDomainImpl) UpdateProfile(c context.Context, userID string, req auth.UpdateProfileRequest) error {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Users.UpdateUserName(c, userID, req.Name); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update user profile")
		return err
	}

	return nil
}

func (s *userDomainImpl) UpdateProfilePhoto(c context.Context, userID string, photoFile *multipart.FileHeader) (*auth.ProfilePhotoResponse, error) {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if err := s.utils.ValidateImageFile(photoFile); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"filename":   photoFile.Filename,
		}).Warn("Invalid profile photo file type")
		return nil, auth.ErrInvalidFileType
	}

	photoURL, err := s.s3Client.UploadFile(photoFile, "profile-photos")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload profile photo")
		return nil, auth.ErrFailedToUploadFile
	}

	if err := repo.Users.UpdateProfilePhoto(c, userID, photoURL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store profile photo URL")

		if deleteErr := s.s3Client.DeleteFile(photoURL); deleteErr != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      deleteErr.Error(),
			}).Error("Failed to delete profile photo after update failure")
		}

		return nil, err
	}

	presigned, err := s.s3Client.PresignUrl(photoURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to presign profile photo URL")
		return nil, err
	}

	return &auth.ProfilePhotoResponse{
		ID:              userID,
		ProfilePhotoURL: presigned,
	}, nil
}

func (s *userDomainImpl) DeleteUser(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Users.DeleteUser(c, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to delete user")
		return err
	}

	return nil
}
