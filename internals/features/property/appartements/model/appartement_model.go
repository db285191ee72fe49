package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppartementStatutOccupe = "occupé"
	AppartementStatutVacant = "vacant"
)

// AppartementModel is a unit inside an immeuble, possibly assigned to a proprietaire.
type AppartementModel struct {
	AppartementID uuid.UUID `gorm:"column:appartement_id;type:uuid;default:gen_random_uuid();primaryKey" json:"appartement_id"`

	AppartementNumero       string  `gorm:"column:appartement_numero;size:20;not null" json:"appartement_numero"`
	AppartementEtage        int     `gorm:"column:appartement_etage;not null;default:0" json:"appartement_etage"`
	AppartementSuperficie   float64 `gorm:"column:appartement_superficie" json:"appartement_superficie"`
	AppartementNombrePieces int     `gorm:"column:appartement_nombre_pieces;not null;default:0" json:"appartement_nombre_pieces"`

	AppartementStatut string `gorm:"column:appartement_statut;type:varchar(20);not null;default:'occupé'" json:"appartement_statut"`

	AppartementProprietaireID *uuid.UUID `gorm:"column:appartement_proprietaire_id;type:uuid;index" json:"appartement_proprietaire_id,omitempty"`
	AppartementImmeubleID     uuid.UUID  `gorm:"column:appartement_immeuble_id;type:uuid;not null;index" json:"appartement_immeuble_id"`

	AppartementCreatedAt time.Time      `gorm:"column:appartement_created_at;autoCreateTime" json:"appartement_created_at"`
	AppartementUpdatedAt time.Time      `gorm:"column:appartement_updated_at;autoUpdateTime" json:"appartement_updated_at"`
	AppartementDeletedAt gorm.DeletedAt `gorm:"column:appartement_deleted_at;index" json:"-"`
}

func (AppartementModel) TableName() string { return "appartements" }
