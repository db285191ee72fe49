package dto

import (
	"time"

	"github.com/google/uuid"

	m "syndicapp_backend/internals/features/property/immeubles/model"
)

type ImmeubleDTO struct {
	ID           uuid.UUID `json:"id"`
	Nom          string    `json:"nom"`
	Adresse      string    `json:"adresse"`
	Ville        string    `json:"ville"`
	CodePostal   string    `json:"code_postal"`
	NombreEtages int       `json:"nombre_etages"`
	SyndicID     uuid.UUID `json:"syndic_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// filled by list endpoints
	NombreAppartements *int64 `json:"nombre_appartements,omitempty"`
}

func FromImmeubleModel(i m.ImmeubleModel) ImmeubleDTO {
	return ImmeubleDTO{
		ID:           i.ImmeubleID,
		Nom:          i.ImmeubleNom,
		Adresse:      i.ImmeubleAdresse,
		Ville:        i.ImmeubleVille,
		CodePostal:   i.ImmeubleCodePostal,
		NombreEtages: i.ImmeubleNombreEtages,
		SyndicID:     i.ImmeubleSyndicID,
		CreatedAt:    i.ImmeubleCreatedAt,
		UpdatedAt:    i.ImmeubleUpdatedAt,
	}
}

type CreateImmeubleRequest struct {
	Nom          string `json:"nom" validate:"required,min=2,max=150"`
	Adresse      string `json:"adresse" validate:"required,max=255"`
	Ville        string `json:"ville" validate:"required,max=100"`
	CodePostal   string `json:"code_postal" validate:"required,max=10"`
	NombreEtages int    `json:"nombre_etages" validate:"omitempty,min=1,max=200"`
}

func (r *CreateImmeubleRequest) ToModel(syndicID uuid.UUID) *m.ImmeubleModel {
	etages := r.NombreEtages
	if etages == 0 {
		etages = 1
	}
	return &m.ImmeubleModel{
		ImmeubleNom:          r.Nom,
		ImmeubleAdresse:      r.Adresse,
		ImmeubleVille:        r.Ville,
		ImmeubleCodePostal:   r.CodePostal,
		ImmeubleNombreEtages: etages,
		ImmeubleSyndicID:     syndicID,
	}
}

type UpdateImmeubleRequest struct {
	Nom          *string `json:"nom" validate:"omitempty,min=2,max=150"`
	Adresse      *string `json:"adresse" validate:"omitempty,max=255"`
	Ville        *string `json:"ville" validate:"omitempty,max=100"`
	CodePostal   *string `json:"code_postal" validate:"omitempty,max=10"`
	NombreEtages *int    `json:"nombre_etages" validate:"omitempty,min=1,max=200"`
}

func (r *UpdateImmeubleRequest) ApplyTo(i *m.ImmeubleModel) {
	if r.Nom != nil {
		i.ImmeubleNom = *r.Nom
	}
	if r.Adresse != nil {
		i.ImmeubleAdresse = *r.Adresse
	}
	if r.Ville != nil {
		i.ImmeubleVille = *r.Ville
	}
	if r.CodePostal != nil {
		i.ImmeubleCodePostal = *r.CodePostal
	}
	if r.NombreEtages != nil {
		i.ImmeubleNombreEtages = *r.NombreEtages
	}
}
