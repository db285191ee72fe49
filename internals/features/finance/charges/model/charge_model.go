package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Statuts ===================== */

const (
	ChargeStatutNonPaye  = "non payé"
	ChargeStatutPartiel  = "partiellement payé"
	ChargeStatutPaye     = "payé"
	ChargeStatutEnRetard = "en retard"
)

const ChargeCategorieGenerale = "général"

// DeriveStatut is the single source of truth mapping a confirmed-payment total
// to a charge status. The totalPaid == 0 branch comes first so a zero-amount
// charge with no payments is still "non payé", never "payé".
func DeriveStatut(totalPaid, montant decimal.Decimal) string {
	switch {
	case totalPaid.IsZero():
		return ChargeStatutNonPaye
	case totalPaid.LessThan(montant):
		return ChargeStatutPartiel
	default:
		return ChargeStatutPaye
	}
}

// RemainingAmount clamps montant − totalPaid at zero.
func RemainingAmount(montant, totalPaid decimal.Decimal) decimal.Decimal {
	rest := montant.Sub(totalPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

/* ===================== Model ===================== */

// ChargeModel is one billable obligation tied to an appartement.
// charge_montant is fixed at creation; charge_montant_paye, charge_montant_restant
// and charge_statut are derived and only written by the reconciliation service.
type ChargeModel struct {
	ChargeID uuid.UUID `gorm:"column:charge_id;type:uuid;default:gen_random_uuid();primaryKey" json:"charge_id"`

	ChargeTitre       string `gorm:"column:charge_titre;size:150;not null" json:"charge_titre"`
	ChargeDescription string `gorm:"column:charge_description;type:text" json:"charge_description"`

	ChargeMontant        decimal.Decimal `gorm:"column:charge_montant;type:numeric(12,2);not null" json:"charge_montant"`
	ChargeMontantPaye    decimal.Decimal `gorm:"column:charge_montant_paye;type:numeric(12,2);not null;default:0" json:"charge_montant_paye"`
	ChargeMontantRestant decimal.Decimal `gorm:"column:charge_montant_restant;type:numeric(12,2);not null;default:0" json:"charge_montant_restant"`

	ChargeDateEcheance time.Time `gorm:"column:charge_date_echeance;not null" json:"charge_date_echeance"`
	ChargeStatut       string    `gorm:"column:charge_statut;type:varchar(30);not null;default:'non payé';index" json:"charge_statut"`
	ChargeCategorie    string    `gorm:"column:charge_categorie;size:50;not null;default:'général'" json:"charge_categorie"`

	ChargeAppartementID uuid.UUID `gorm:"column:charge_appartement_id;type:uuid;not null;index" json:"charge_appartement_id"`
	ChargeSyndicID      uuid.UUID `gorm:"column:charge_syndic_id;type:uuid;not null;index" json:"charge_syndic_id"`

	ChargeDernierRappel *time.Time `gorm:"column:charge_dernier_rappel" json:"charge_dernier_rappel,omitempty"`

	ChargeCreatedAt time.Time      `gorm:"column:charge_created_at;autoCreateTime" json:"charge_created_at"`
	ChargeUpdatedAt time.Time      `gorm:"column:charge_updated_at;autoUpdateTime" json:"charge_updated_at"`
	ChargeDeletedAt gorm.DeletedAt `gorm:"column:charge_deleted_at;index" json:"-"`
}

func (ChargeModel) TableName() string { return "charges" }

func (m *ChargeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ChargeStatut == "" {
		m.ChargeStatut = ChargeStatutNonPaye
	}
	if m.ChargeCategorie == "" {
		m.ChargeCategorie = ChargeCategorieGenerale
	}
	// a fresh charge owes its full amount
	if m.ChargeMontantRestant.IsZero() && m.ChargeMontantPaye.IsZero() {
		m.ChargeMontantRestant = m.ChargeMontant
	}
	return nil
}

func (m *ChargeModel) IsFullyPaid() bool {
	return m.ChargeMontantPaye.GreaterThanOrEqual(m.ChargeMontant) && !m.ChargeMontant.IsZero()
}
