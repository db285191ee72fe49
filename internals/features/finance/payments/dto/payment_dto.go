package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "syndicapp_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Response DTO
========================================================= */

type PaymentDTO struct {
	ID              uuid.UUID       `json:"id"`
	Montant         decimal.Decimal `json:"montant"`
	Date            time.Time       `json:"date"`
	Methode         string          `json:"methode"`
	Reference       *string         `json:"reference,omitempty"`
	ChargeID        uuid.UUID       `json:"charge_id"`
	ProprietaireID  *uuid.UUID      `json:"proprietaire_id,omitempty"`
	SyndicID        uuid.UUID       `json:"syndic_id"`
	Statut          string          `json:"statut"`
	IsPartial       bool            `json:"is_partial"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func FromPaymentModel(p m.PaymentModel) PaymentDTO {
	return PaymentDTO{
		ID:              p.PaymentID,
		Montant:         p.PaymentMontant,
		Date:            p.PaymentDate,
		Methode:         p.PaymentMethode,
		Reference:       p.PaymentReference,
		ChargeID:        p.PaymentChargeID,
		ProprietaireID:  p.PaymentProprietaireID,
		SyndicID:        p.PaymentSyndicID,
		Statut:          p.PaymentStatut,
		IsPartial:       p.PaymentIsPartial,
		RemainingAmount: p.PaymentRemainingAmount,
		Notes:           p.PaymentNotes,
		CreatedAt:       p.PaymentCreatedAt,
		UpdatedAt:       p.PaymentUpdatedAt,
	}
}

func FromPaymentModelSlice(xs []m.PaymentModel) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromPaymentModel(it))
	}
	return out
}

/* =========================================================
   Requests
========================================================= */

type CreatePaymentRequest struct {
	ChargeID  uuid.UUID       `json:"charge_id" validate:"required"`
	Montant   decimal.Decimal `json:"montant" validate:"required"`
	Date      *time.Time      `json:"date"`
	Methode   string          `json:"methode" validate:"omitempty,oneof=espèces chèque virement"`
	Reference *string         `json:"reference" validate:"omitempty,max=100"`
	Notes     string          `json:"notes" validate:"omitempty,max=2000"`
}

type RejectPaymentRequest struct {
	Raison string `json:"raison" validate:"omitempty,max=500"`
}
