package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	m "syndicapp_backend/internals/features/finance/charges/model"
)

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestTotalsFromModels(t *testing.T) {
	charges := []m.ChargeModel{
		{ChargeMontant: dec("500"), ChargeMontantPaye: dec("200"), ChargeMontantRestant: dec("300")},
		{ChargeMontant: dec("120.50"), ChargeMontantPaye: dec("120.50"), ChargeMontantRestant: dec("0")},
		{ChargeMontant: dec("80"), ChargeMontantPaye: dec("0"), ChargeMontantRestant: dec("80")},
	}

	totals := TotalsFromModels(charges)
	assert.Equal(t, 3, totals.Count)
	assert.True(t, totals.TotalMontant.Equal(dec("700.50")))
	assert.True(t, totals.TotalPaye.Equal(dec("320.50")))
	assert.True(t, totals.TotalRestant.Equal(dec("380")))
}

func TestTotalsFromModels_Empty(t *testing.T) {
	totals := TotalsFromModels(nil)
	assert.Equal(t, 0, totals.Count)
	assert.True(t, totals.TotalMontant.IsZero())
}

func TestUpdateChargeRequestLeavesDerivedFieldsAlone(t *testing.T) {
	titre := "Ravalement façade"
	charge := m.ChargeModel{
		ChargeTitre:          "Ancien titre",
		ChargeMontant:        dec("900"),
		ChargeMontantPaye:    dec("450"),
		ChargeMontantRestant: dec("450"),
		ChargeStatut:         m.ChargeStatutPartiel,
	}

	req := UpdateChargeRequest{Titre: &titre}
	req.ApplyTo(&charge)

	assert.Equal(t, "Ravalement façade", charge.ChargeTitre)
	assert.True(t, charge.ChargeMontant.Equal(dec("900")))
	assert.True(t, charge.ChargeMontantPaye.Equal(dec("450")))
	assert.Equal(t, m.ChargeStatutPartiel, charge.ChargeStatut)
}
