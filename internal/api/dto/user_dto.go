package dto

import (
	"time"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"display_name,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	AvatarPath  *string     `json:"avatar_path,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewUserResponse converts the domain model, dropping the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		PhoneNumber: user.PhoneNumber,
		AvatarPath:  user.AvatarPath,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ProfileUpdateRequest is a partial update; absent fields stay untouched.
type ProfileUpdateRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phone_number"`
}
