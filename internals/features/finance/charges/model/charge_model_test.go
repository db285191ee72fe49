package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDeriveStatut(t *testing.T) {
	tests := []struct {
		name      string
		totalPaid string
		montant   string
		expected  string
	}{
		{"nothing paid", "0", "500", ChargeStatutNonPaye},
		{"partial payment", "200", "500", ChargeStatutPartiel},
		{"one cent short", "499.99", "500", ChargeStatutPartiel},
		{"exactly paid", "500", "500", ChargeStatutPaye},
		{"overpaid", "600", "500", ChargeStatutPaye},
		{"zero amount charge, nothing paid", "0", "0", ChargeStatutNonPaye},
		{"zero amount charge, something paid", "10", "0", ChargeStatutPaye},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatut(d(tt.totalPaid), d(tt.montant)))
		})
	}
}

func TestRemainingAmount(t *testing.T) {
	tests := []struct {
		name      string
		montant   string
		totalPaid string
		expected  string
	}{
		{"nothing paid", "500", "0", "500"},
		{"partial", "500", "200", "300"},
		{"exact", "500", "500", "0"},
		{"overpaid clamps at zero", "500", "600", "0"},
		{"cents", "100.50", "100.49", "0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingAmount(d(tt.montant), d(tt.totalPaid))
			assert.True(t, got.Equal(d(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestDeriveStatutIsConsistentWithRemainingAmount(t *testing.T) {
	// whenever the derived status is "payé" the remaining amount is zero
	amounts := []string{"0", "0.01", "250", "499.99", "500", "750"}
	montant := d("500")
	for _, a := range amounts {
		paid := d(a)
		if DeriveStatut(paid, montant) == ChargeStatutPaye {
			assert.True(t, RemainingAmount(montant, paid).IsZero(), "paid=%s", a)
		}
	}
}
