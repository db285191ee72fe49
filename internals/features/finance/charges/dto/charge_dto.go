package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "syndicapp_backend/internals/features/finance/charges/model"
)

/* =========================================================
   Response DTO
========================================================= */

type ChargeDTO struct {
	ID             uuid.UUID       `json:"id"`
	Titre          string          `json:"titre"`
	Description    string          `json:"description,omitempty"`
	Montant        decimal.Decimal `json:"montant"`
	MontantPaye    decimal.Decimal `json:"montant_paye"`
	MontantRestant decimal.Decimal `json:"montant_restant"`
	DateEcheance   time.Time       `json:"date_echeance"`
	Statut         string          `json:"statut"`
	Categorie      string          `json:"categorie"`
	AppartementID  uuid.UUID       `json:"appartement_id"`
	SyndicID       uuid.UUID       `json:"syndic_id"`
	DernierRappel  *time.Time      `json:"dernier_rappel,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func FromChargeModel(c m.ChargeModel) ChargeDTO {
	return ChargeDTO{
		ID:             c.ChargeID,
		Titre:          c.ChargeTitre,
		Description:    c.ChargeDescription,
		Montant:        c.ChargeMontant,
		MontantPaye:    c.ChargeMontantPaye,
		MontantRestant: c.ChargeMontantRestant,
		DateEcheance:   c.ChargeDateEcheance,
		Statut:         c.ChargeStatut,
		Categorie:      c.ChargeCategorie,
		AppartementID:  c.ChargeAppartementID,
		SyndicID:       c.ChargeSyndicID,
		DernierRappel:  c.ChargeDernierRappel,
		CreatedAt:      c.ChargeCreatedAt,
		UpdatedAt:      c.ChargeUpdatedAt,
	}
}

func FromChargeModelSlice(xs []m.ChargeModel) []ChargeDTO {
	out := make([]ChargeDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromChargeModel(it))
	}
	return out
}

/* =========================================================
   Create / Update Requests
========================================================= */

type CreateChargeRequest struct {
	Titre         string          `json:"titre" validate:"required,min=2,max=150"`
	Description   string          `json:"description" validate:"omitempty,max=2000"`
	Montant       decimal.Decimal `json:"montant" validate:"required"`
	DateEcheance  time.Time       `json:"date_echeance" validate:"required"`
	Categorie     string          `json:"categorie" validate:"omitempty,max=50"`
	AppartementID uuid.UUID       `json:"appartement_id" validate:"required"`
}

func (r *CreateChargeRequest) ToModel(syndicID uuid.UUID) *m.ChargeModel {
	return &m.ChargeModel{
		ChargeTitre:         r.Titre,
		ChargeDescription:   r.Description,
		ChargeMontant:       r.Montant,
		ChargeDateEcheance:  r.DateEcheance,
		ChargeCategorie:     r.Categorie,
		ChargeAppartementID: r.AppartementID,
		ChargeSyndicID:      syndicID,
	}
}

// UpdateChargeRequest never touches montant nor the derived fields; those are
// owned by the reconciliation service.
type UpdateChargeRequest struct {
	Titre        *string    `json:"titre" validate:"omitempty,min=2,max=150"`
	Description  *string    `json:"description" validate:"omitempty,max=2000"`
	DateEcheance *time.Time `json:"date_echeance"`
	Categorie    *string    `json:"categorie" validate:"omitempty,max=50"`
}

func (r *UpdateChargeRequest) ApplyTo(c *m.ChargeModel) {
	if r.Titre != nil {
		c.ChargeTitre = *r.Titre
	}
	if r.Description != nil {
		c.ChargeDescription = *r.Description
	}
	if r.DateEcheance != nil {
		c.ChargeDateEcheance = *r.DateEcheance
	}
	if r.Categorie != nil {
		c.ChargeCategorie = *r.Categorie
	}
}

/* =========================================================
   Rollups
========================================================= */

// ChargeTotalsDTO summarizes a list of charges for dashboard style views.
type ChargeTotalsDTO struct {
	TotalMontant decimal.Decimal `json:"total_montant"`
	TotalPaye    decimal.Decimal `json:"total_paye"`
	TotalRestant decimal.Decimal `json:"total_restant"`
	Count        int             `json:"count"`
}

func TotalsFromModels(xs []m.ChargeModel) ChargeTotalsDTO {
	t := ChargeTotalsDTO{Count: len(xs)}
	for _, c := range xs {
		t.TotalMontant = t.TotalMontant.Add(c.ChargeMontant)
		t.TotalPaye = t.TotalPaye.Add(c.ChargeMontantPaye)
		t.TotalRestant = t.TotalRestant.Add(c.ChargeMontantRestant)
	}
	return t
}
