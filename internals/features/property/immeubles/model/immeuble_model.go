package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImmeubleModel is a managed building, owned by one syndic.
type ImmeubleModel struct {
	ImmeubleID uuid.UUID `gorm:"column:immeuble_id;type:uuid;default:gen_random_uuid();primaryKey" json:"immeuble_id"`

	ImmeubleNom        string `gorm:"column:immeuble_nom;size:150;not null" json:"immeuble_nom"`
	ImmeubleAdresse    string `gorm:"column:immeuble_adresse;size:255;not null" json:"immeuble_adresse"`
	ImmeubleVille      string `gorm:"column:immeuble_ville;size:100;not null" json:"immeuble_ville"`
	ImmeubleCodePostal string `gorm:"column:immeuble_code_postal;size:10;not null" json:"immeuble_code_postal"`

	ImmeubleNombreEtages int `gorm:"column:immeuble_nombre_etages;not null;default:1" json:"immeuble_nombre_etages"`

	ImmeubleSyndicID uuid.UUID `gorm:"column:immeuble_syndic_id;type:uuid;not null;index" json:"immeuble_syndic_id"`

	ImmeubleCreatedAt time.Time      `gorm:"column:immeuble_created_at;autoCreateTime" json:"immeuble_created_at"`
	ImmeubleUpdatedAt time.Time      `gorm:"column:immeuble_updated_at;autoUpdateTime" json:"immeuble_updated_at"`
	ImmeubleDeletedAt gorm.DeletedAt `gorm:"column:immeuble_deleted_at;index" json:"-"`
}

func (ImmeubleModel) TableName() string { return "immeubles" }
