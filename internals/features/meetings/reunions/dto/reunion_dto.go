package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	m "syndicapp_backend/internals/features/meetings/reunions/model"
)

/* =========================================================
   Réunions
========================================================= */

type ReunionDTO struct {
	ID          uuid.UUID  `json:"id"`
	Titre       string     `json:"titre"`
	Description string     `json:"description,omitempty"`
	Date        time.Time  `json:"date"`
	Lieu        string     `json:"lieu,omitempty"`
	OrdreDuJour []string   `json:"ordre_du_jour"`
	Statut      string     `json:"statut"`
	ImmeubleID  *uuid.UUID `json:"immeuble_id,omitempty"`
	SyndicID    uuid.UUID  `json:"syndic_id"`
	CompteRendu string     `json:"compte_rendu,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// filled by detail endpoints
	Invitations []InvitationDTO `json:"invitations,omitempty"`
}

func FromReunionModel(r m.ReunionModel) ReunionDTO {
	return ReunionDTO{
		ID:          r.ReunionID,
		Titre:       r.ReunionTitre,
		Description: r.ReunionDescription,
		Date:        r.ReunionDate,
		Lieu:        r.ReunionLieu,
		OrdreDuJour: []string(r.ReunionOrdreDuJour),
		Statut:      r.ReunionStatut,
		ImmeubleID:  r.ReunionImmeubleID,
		SyndicID:    r.ReunionSyndicID,
		CompteRendu: r.ReunionCompteRendu,
		CreatedAt:   r.ReunionCreatedAt,
	}
}

func FromReunionModelSlice(xs []m.ReunionModel) []ReunionDTO {
	out := make([]ReunionDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromReunionModel(it))
	}
	return out
}

type CreateReunionRequest struct {
	Titre       string     `json:"titre" validate:"required,min=2,max=150"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Date        time.Time  `json:"date" validate:"required"`
	Lieu        string     `json:"lieu" validate:"omitempty,max=255"`
	OrdreDuJour []string   `json:"ordre_du_jour" validate:"omitempty,dive,max=255"`
	ImmeubleID  *uuid.UUID `json:"immeuble_id"`
}

func (r *CreateReunionRequest) ToModel(syndicID uuid.UUID) *m.ReunionModel {
	return &m.ReunionModel{
		ReunionTitre:       r.Titre,
		ReunionDescription: r.Description,
		ReunionDate:        r.Date,
		ReunionLieu:        r.Lieu,
		ReunionOrdreDuJour: pq.StringArray(r.OrdreDuJour),
		ReunionImmeubleID:  r.ImmeubleID,
		ReunionSyndicID:    syndicID,
	}
}

type UpdateReunionRequest struct {
	Titre       *string    `json:"titre" validate:"omitempty,min=2,max=150"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date"`
	Lieu        *string    `json:"lieu" validate:"omitempty,max=255"`
	OrdreDuJour []string   `json:"ordre_du_jour" validate:"omitempty,dive,max=255"`
	CompteRendu *string    `json:"compte_rendu" validate:"omitempty,max=20000"`
}

func (r *UpdateReunionRequest) ApplyTo(re *m.ReunionModel) {
	if r.Titre != nil {
		re.ReunionTitre = *r.Titre
	}
	if r.Description != nil {
		re.ReunionDescription = *r.Description
	}
	if r.Date != nil {
		re.ReunionDate = *r.Date
	}
	if r.Lieu != nil {
		re.ReunionLieu = *r.Lieu
	}
	if r.OrdreDuJour != nil {
		re.ReunionOrdreDuJour = pq.StringArray(r.OrdreDuJour)
	}
	if r.CompteRendu != nil {
		re.ReunionCompteRendu = *r.CompteRendu
	}
}

/* =========================================================
   Invitations
========================================================= */

type InvitationDTO struct {
	ID             uuid.UUID `json:"id"`
	ReunionID      uuid.UUID `json:"reunion_id"`
	ProprietaireID uuid.UUID `json:"proprietaire_id"`
	Statut         string    `json:"statut"`
	Present        *bool     `json:"present,omitempty"`

	Proprietaire string `json:"proprietaire,omitempty"`
}

func FromInvitationModel(i m.ReunionInvitationModel) InvitationDTO {
	return InvitationDTO{
		ID:             i.InvitationID,
		ReunionID:      i.InvitationReunionID,
		ProprietaireID: i.InvitationProprietaireID,
		Statut:         i.InvitationStatut,
		Present:        i.InvitationPresent,
	}
}

type InviteRequest struct {
	ProprietaireIDs []uuid.UUID `json:"proprietaire_ids" validate:"required,min=1,dive,required"`
}

type RSVPRequest struct {
	Statut string `json:"statut" validate:"required,oneof=acceptée déclinée"`
}

type AttendanceRequest struct {
	Presences map[string]bool `json:"presences" validate:"required"`
}
