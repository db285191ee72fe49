package dto

import (
	"time"

	"github.com/google/uuid"

	m "syndicapp_backend/internals/features/users/auth/model"
)

type ProprietaireDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	// filled by list endpoints
	NombreAppartements *int64 `json:"nombre_appartements,omitempty"`
}

func FromUserModel(u m.UserModel) ProprietaireDTO {
	return ProprietaireDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type CreateProprietaireRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName string  `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
}

type UpdateProprietaireRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	IsActive  *bool   `json:"is_active"`
}

func (r *UpdateProprietaireRequest) ApplyTo(u *m.UserModel) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
}

// UpdateProfileRequest is the self-service variant: no is_active toggle.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
}

func (r *UpdateProfileRequest) ApplyTo(u *m.UserModel) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}
