package dto

import (
	"time"

	"github.com/google/uuid"

	m "syndicapp_backend/internals/features/property/appartements/model"
)

type AppartementDTO struct {
	ID             uuid.UUID  `json:"id"`
	Numero         string     `json:"numero"`
	Etage          int        `json:"etage"`
	Superficie     float64    `json:"superficie"`
	NombrePieces   int        `json:"nombre_pieces"`
	Statut         string     `json:"statut"`
	ProprietaireID *uuid.UUID `json:"proprietaire_id,omitempty"`
	ImmeubleID     uuid.UUID  `json:"immeuble_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// filled by detail endpoints
	Proprietaire *string `json:"proprietaire,omitempty"`
	Immeuble     *string `json:"immeuble,omitempty"`
}

func FromAppartementModel(a m.AppartementModel) AppartementDTO {
	return AppartementDTO{
		ID:             a.AppartementID,
		Numero:         a.AppartementNumero,
		Etage:          a.AppartementEtage,
		Superficie:     a.AppartementSuperficie,
		NombrePieces:   a.AppartementNombrePieces,
		Statut:         a.AppartementStatut,
		ProprietaireID: a.AppartementProprietaireID,
		ImmeubleID:     a.AppartementImmeubleID,
		CreatedAt:      a.AppartementCreatedAt,
		UpdatedAt:      a.AppartementUpdatedAt,
	}
}

func FromAppartementModelSlice(xs []m.AppartementModel) []AppartementDTO {
	out := make([]AppartementDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromAppartementModel(it))
	}
	return out
}

type CreateAppartementRequest struct {
	Numero       string     `json:"numero" validate:"required,max=20"`
	Etage        int        `json:"etage" validate:"omitempty,min=0,max=200"`
	Superficie   float64    `json:"superficie" validate:"omitempty,gt=0"`
	NombrePieces int        `json:"nombre_pieces" validate:"omitempty,min=1,max=50"`
	Statut       string     `json:"statut" validate:"omitempty,oneof=occupé vacant"`
	ImmeubleID   uuid.UUID  `json:"immeuble_id" validate:"required"`
	ProprietaireID *uuid.UUID `json:"proprietaire_id"`
}

func (r *CreateAppartementRequest) ToModel() *m.AppartementModel {
	return &m.AppartementModel{
		AppartementNumero:         r.Numero,
		AppartementEtage:          r.Etage,
		AppartementSuperficie:     r.Superficie,
		AppartementNombrePieces:   r.NombrePieces,
		AppartementStatut:         r.Statut,
		AppartementImmeubleID:     r.ImmeubleID,
		AppartementProprietaireID: r.ProprietaireID,
	}
}

type UpdateAppartementRequest struct {
	Numero       *string  `json:"numero" validate:"omitempty,max=20"`
	Etage        *int     `json:"etage" validate:"omitempty,min=0,max=200"`
	Superficie   *float64 `json:"superficie" validate:"omitempty,gt=0"`
	NombrePieces *int     `json:"nombre_pieces" validate:"omitempty,min=1,max=50"`
	Statut       *string  `json:"statut" validate:"omitempty,oneof=occupé vacant"`
}

func (r *UpdateAppartementRequest) ApplyTo(a *m.AppartementModel) {
	if r.Numero != nil {
		a.AppartementNumero = *r.Numero
	}
	if r.Etage != nil {
		a.AppartementEtage = *r.Etage
	}
	if r.Superficie != nil {
		a.AppartementSuperficie = *r.Superficie
	}
	if r.NombrePieces != nil {
		a.AppartementNombrePieces = *r.NombrePieces
	}
	if r.Statut != nil {
		a.AppartementStatut = *r.Statut
	}
}

type AssignProprietaireRequest struct {
	ProprietaireID *uuid.UUID `json:"proprietaire_id"`
}
