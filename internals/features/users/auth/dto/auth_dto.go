package dto

import (
	"time"

	"github.com/google/uuid"

	model "syndicapp_backend/internals/features/users/auth/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	UserID    uuid.UUID  `json:"user_id"`
	Email     string     `json:"user_email"`
	FirstName string     `json:"user_first_name"`
	LastName  string     `json:"user_last_name"`
	Phone     *string    `json:"user_phone,omitempty"`
	Role      string     `json:"user_role"`
	SyndicID  *uuid.UUID `json:"user_syndic_id,omitempty"`
	CreatedAt time.Time  `json:"user_created_at"`
}

func ToUserResponse(m *model.UserModel) UserResponse {
	return UserResponse{
		UserID:    m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Role:      m.Role,
		SyndicID:  m.SyndicID,
		CreatedAt: m.CreatedAt,
	}
}
