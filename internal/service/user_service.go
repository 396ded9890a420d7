package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/repository"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

// UserService manages profiles and account administration.
type UserService struct {
	users   repository.UserRepository
	uploads *UploadService
	logger  *zap.Logger
}

// ProfileUpdateInput is an explicit patch: nil fields leave the stored value
// untouched.
type ProfileUpdateInput struct {
	DisplayName *string
	Email       *string
	Bio         *string
	PhoneNumber *string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, uploads *UploadService, logger *zap.Logger) *UserService {
	return &UserService{users: users, uploads: uploads, logger: logger}
}

// GetByID fetches an account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername fetches an account by its login name.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, err
	}
	return user, nil
}

// List returns all accounts. Administrators only.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !auth.Can(actor, auth.ActionUserAdmin, 0) {
		return nil, apperrors.NewForbidden("administrator role required")
	}
	result, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.User{}
	}
	return result, nil
}

// Delete removes an account. Administrators only.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !auth.Can(actor, auth.ActionUserAdmin, 0) {
		return apperrors.NewForbidden("administrator role required")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return err
	}
	return nil
}

// UpdateProfile applies a partial profile update to the caller's account.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, *input.Email); err == nil {
			return nil, apperrors.NewConflict("email already in use", map[string]any{"email": *input.Email})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar validates and stores a new avatar image, replacing any prior
// file. Failure to remove the old file is logged but not fatal.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, upload AvatarUpload) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	path, err := s.uploads.SaveAvatar(userID, upload)
	if err != nil {
		return nil, err
	}

	if user.AvatarPath != nil {
		if err := s.uploads.Remove(*user.AvatarPath); err != nil {
			s.logger.Warn("failed to remove old avatar", zap.String("path", *user.AvatarPath), zap.Error(err))
		}
	}
	user.AvatarPath = &path

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
