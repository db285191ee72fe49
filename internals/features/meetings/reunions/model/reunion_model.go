package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ReunionStatutPlanifiee = "planifiée"
	ReunionStatutTerminee  = "terminée"
	ReunionStatutAnnulee   = "annulée"
)

// ReunionModel is a general assembly or board meeting organized by a syndic.
type ReunionModel struct {
	ReunionID uuid.UUID `gorm:"column:reunion_id;type:uuid;default:gen_random_uuid();primaryKey" json:"reunion_id"`

	ReunionTitre       string `gorm:"column:reunion_titre;size:150;not null" json:"reunion_titre"`
	ReunionDescription string `gorm:"column:reunion_description;type:text" json:"reunion_description"`

	ReunionDate time.Time `gorm:"column:reunion_date;not null;index" json:"reunion_date"`
	ReunionLieu string    `gorm:"column:reunion_lieu;size:255" json:"reunion_lieu"`

	ReunionOrdreDuJour pq.StringArray `gorm:"column:reunion_ordre_du_jour;type:text[]" json:"reunion_ordre_du_jour"`

	ReunionStatut string `gorm:"column:reunion_statut;type:varchar(20);not null;default:'planifiée';index" json:"reunion_statut"`

	ReunionImmeubleID *uuid.UUID `gorm:"column:reunion_immeuble_id;type:uuid;index" json:"reunion_immeuble_id,omitempty"`
	ReunionSyndicID   uuid.UUID  `gorm:"column:reunion_syndic_id;type:uuid;not null;index" json:"reunion_syndic_id"`

	ReunionCompteRendu string `gorm:"column:reunion_compte_rendu;type:text" json:"reunion_compte_rendu"`

	ReunionCreatedAt time.Time      `gorm:"column:reunion_created_at;autoCreateTime" json:"reunion_created_at"`
	ReunionUpdatedAt time.Time      `gorm:"column:reunion_updated_at;autoUpdateTime" json:"reunion_updated_at"`
	ReunionDeletedAt gorm.DeletedAt `gorm:"column:reunion_deleted_at;index" json:"-"`
}

func (ReunionModel) TableName() string { return "reunions" }

func (m *ReunionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReunionStatut == "" {
		m.ReunionStatut = ReunionStatutPlanifiee
	}
	return nil
}

func (m *ReunionModel) IsPlanifiee() bool { return m.ReunionStatut == ReunionStatutPlanifiee }
