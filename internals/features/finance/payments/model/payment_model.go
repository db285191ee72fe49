package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatutEnAttente = "en attente"
	PaymentStatutConfirme  = "confirmé"
	PaymentStatutRejete    = "rejeté"
)

const (
	PaymentMethodeEspeces  = "espèces"
	PaymentMethodeCheque   = "chèque"
	PaymentMethodeVirement = "virement"
)

/* ===================== Model ===================== */

// PaymentModel is one payment event against a charge. payment_is_partial and
// payment_remaining_amount are snapshots taken when the payment is recorded;
// the charge carries the authoritative running totals.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentMontant decimal.Decimal `gorm:"column:payment_montant;type:numeric(12,2);not null" json:"payment_montant"`
	PaymentDate    time.Time       `gorm:"column:payment_date;not null" json:"payment_date"`

	PaymentMethode   string  `gorm:"column:payment_methode;type:varchar(20);not null;default:'espèces'" json:"payment_methode"`
	PaymentReference *string `gorm:"column:payment_reference;size:100" json:"payment_reference,omitempty"`

	PaymentChargeID       uuid.UUID  `gorm:"column:payment_charge_id;type:uuid;not null;index" json:"payment_charge_id"`
	PaymentProprietaireID *uuid.UUID `gorm:"column:payment_proprietaire_id;type:uuid;index" json:"payment_proprietaire_id,omitempty"`
	PaymentSyndicID       uuid.UUID  `gorm:"column:payment_syndic_id;type:uuid;not null;index" json:"payment_syndic_id"`

	PaymentStatut string `gorm:"column:payment_statut;type:varchar(20);not null;default:'en attente';index" json:"payment_statut"`

	PaymentIsPartial       bool            `gorm:"column:payment_is_partial;not null;default:false" json:"payment_is_partial"`
	PaymentRemainingAmount decimal.Decimal `gorm:"column:payment_remaining_amount;type:numeric(12,2);not null;default:0" json:"payment_remaining_amount"`

	PaymentNotes string `gorm:"column:payment_notes;type:text" json:"payment_notes"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentStatut == "" {
		m.PaymentStatut = PaymentStatutEnAttente
	}
	if m.PaymentMethode == "" {
		m.PaymentMethode = PaymentMethodeEspeces
	}
	if m.PaymentDate.IsZero() {
		m.PaymentDate = time.Now()
	}
	return nil
}

func (m *PaymentModel) IsConfirmed() bool { return m.PaymentStatut == PaymentStatutConfirme }
func (m *PaymentModel) IsPending() bool   { return m.PaymentStatut == PaymentStatutEnAttente }
func (m *PaymentModel) IsRejected() bool  { return m.PaymentStatut == PaymentStatutRejete }
