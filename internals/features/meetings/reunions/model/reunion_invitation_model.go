package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvitationStatutEnAttente = "en attente"
	InvitationStatutAcceptee  = "acceptée"
	InvitationStatutDeclinee  = "déclinée"
)

// ReunionInvitationModel links one owner to one reunion and tracks the RSVP
// plus actual attendance.
type ReunionInvitationModel struct {
	InvitationID uuid.UUID `gorm:"column:invitation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"invitation_id"`

	InvitationReunionID      uuid.UUID `gorm:"column:invitation_reunion_id;type:uuid;not null;index:idx_invitation_reunion_user,unique" json:"invitation_reunion_id"`
	InvitationProprietaireID uuid.UUID `gorm:"column:invitation_proprietaire_id;type:uuid;not null;index:idx_invitation_reunion_user,unique" json:"invitation_proprietaire_id"`

	InvitationStatut  string `gorm:"column:invitation_statut;type:varchar(20);not null;default:'en attente'" json:"invitation_statut"`
	InvitationPresent *bool  `gorm:"column:invitation_present" json:"invitation_present,omitempty"`

	InvitationCreatedAt time.Time      `gorm:"column:invitation_created_at;autoCreateTime" json:"invitation_created_at"`
	InvitationUpdatedAt time.Time      `gorm:"column:invitation_updated_at;autoUpdateTime" json:"invitation_updated_at"`
	InvitationDeletedAt gorm.DeletedAt `gorm:"column:invitation_deleted_at;index" json:"-"`
}

func (ReunionInvitationModel) TableName() string { return "reunion_invitations" }

func (m *ReunionInvitationModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvitationStatut == "" {
		m.InvitationStatut = InvitationStatutEnAttente
	}
	return nil
}
