package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSyndic       = "syndic"
	RoleProprietaire = "proprietaire"
)

// UserModel is the shared account table for syndics and proprietaires.
type UserModel struct {
	ID        uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	Email     string    `gorm:"column:user_email;size:255;unique;not null" json:"user_email"`
	Password  string    `gorm:"column:user_password;not null" json:"-"`
	FirstName string    `gorm:"column:user_first_name;size:100;not null" json:"user_first_name"`
	LastName  string    `gorm:"column:user_last_name;size:100;not null" json:"user_last_name"`
	Phone     *string   `gorm:"column:user_phone;size:30" json:"user_phone,omitempty"`
	Role      string    `gorm:"column:user_role;type:varchar(20);not null;default:'proprietaire'" json:"user_role"`

	// Only meaningful for proprietaires: the syndic who registered them.
	SyndicID *uuid.UUID `gorm:"column:user_syndic_id;type:uuid;index" json:"user_syndic_id,omitempty"`

	IsActive bool `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	CreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) IsSyndic() bool       { return u.Role == RoleSyndic }
func (u *UserModel) IsProprietaire() bool { return u.Role == RoleProprietaire }

func (u *UserModel) FullName() string {
	return u.FirstName + " " + u.LastName
}
