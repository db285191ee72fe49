package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chargemodel "syndicapp_backend/internals/features/finance/charges/model"
	model "syndicapp_backend/internals/features/finance/payments/model"
)

/* =========================================================
   In-memory store
========================================================= */

type memStore struct {
	charges  map[uuid.UUID]chargemodel.ChargeModel
	payments map[uuid.UUID]model.PaymentModel
}

func newMemStore() *memStore {
	return &memStore{
		charges:  make(map[uuid.UUID]chargemodel.ChargeModel),
		payments: make(map[uuid.UUID]model.PaymentModel),
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *memStore) GetCharge(ctx context.Context, id uuid.UUID) (*chargemodel.ChargeModel, error) {
	c, ok := s.charges[id]
	if !ok {
		return nil, ErrChargeNotFound
	}
	cp := c
	return &cp, nil
}

func (s *memStore) GetChargeForUpdate(ctx context.Context, id uuid.UUID) (*chargemodel.ChargeModel, error) {
	return s.GetCharge(ctx, id)
}

func (s *memStore) UpdateChargeAggregate(ctx context.Context, id uuid.UUID, paid, restant decimal.Decimal, statut string) error {
	c, ok := s.charges[id]
	if !ok {
		return ErrChargeNotFound
	}
	c.ChargeMontantPaye = paid
	c.ChargeMontantRestant = restant
	c.ChargeStatut = statut
	s.charges[id] = c
	return nil
}

func (s *memStore) TouchChargeReminder(ctx context.Context, id uuid.UUID, statut string) error {
	c, ok := s.charges[id]
	if !ok {
		return ErrChargeNotFound
	}
	c.ChargeStatut = statut
	s.charges[id] = c
	return nil
}

func (s *memStore) DeleteCharge(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.charges[id]; !ok {
		return ErrChargeNotFound
	}
	delete(s.charges, id)
	return nil
}

func (s *memStore) GetPayment(ctx context.Context, id uuid.UUID) (*model.PaymentModel, error) {
	p, ok := s.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	cp := p
	return &cp, nil
}

func (s *memStore) SumConfirmedPayments(ctx context.Context, chargeID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range s.payments {
		if p.PaymentChargeID == chargeID && p.PaymentStatut == model.PaymentStatutConfirme {
			total = total.Add(p.PaymentMontant)
		}
	}
	return total, nil
}

func (s *memStore) CreatePayment(ctx context.Context, p *model.PaymentModel) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	s.payments[p.PaymentID] = *p
	return nil
}

func (s *memStore) SavePayment(ctx context.Context, p *model.PaymentModel) error {
	s.payments[p.PaymentID] = *p
	return nil
}

func (s *memStore) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.payments[id]; !ok {
		return ErrPaymentNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *memStore) DeletePaymentsByCharge(ctx context.Context, chargeID uuid.UUID) error {
	for id, p := range s.payments {
		if p.PaymentChargeID == chargeID {
			delete(s.payments, id)
		}
	}
	return nil
}

/* =========================================================
   Fixtures
========================================================= */

func newCharge(s *memStore, montant string) chargemodel.ChargeModel {
	m := mustDec(montant)
	c := chargemodel.ChargeModel{
		ChargeID:             uuid.New(),
		ChargeTitre:          "Charges trimestrielles",
		ChargeMontant:        m,
		ChargeMontantRestant: m,
		ChargeStatut:         chargemodel.ChargeStatutNonPaye,
		ChargeAppartementID:  uuid.New(),
		ChargeSyndicID:       uuid.New(),
	}
	s.charges[c.ChargeID] = c
	return c
}

func mustDec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func confirmedInput(c chargemodel.ChargeModel, montant string) RecordPaymentInput {
	return RecordPaymentInput{
		ChargeID: c.ChargeID,
		Montant:  mustDec(montant),
		Methode:  model.PaymentMethodeVirement,
		Statut:   model.PaymentStatutConfirme,
		SyndicID: c.ChargeSyndicID,
	}
}

func pendingInput(c chargemodel.ChargeModel, montant string) RecordPaymentInput {
	owner := uuid.New()
	return RecordPaymentInput{
		ChargeID:       c.ChargeID,
		Montant:        mustDec(montant),
		Methode:        model.PaymentMethodeCheque,
		Statut:         model.PaymentStatutEnAttente,
		ProprietaireID: &owner,
		SyndicID:       c.ChargeSyndicID,
	}
}

/* =========================================================
   RecordPayment
========================================================= */

func TestRecordPayment_PartialThenFull(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	p1, err := r.RecordPayment(ctx, confirmedInput(charge, "200"))
	require.NoError(t, err)
	assert.True(t, p1.PaymentIsPartial)
	assert.True(t, p1.PaymentRemainingAmount.Equal(mustDec("300")))

	got := s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutPartiel, got.ChargeStatut)
	assert.True(t, got.ChargeMontantPaye.Equal(mustDec("200")))
	assert.True(t, got.ChargeMontantRestant.Equal(mustDec("300")))

	p2, err := r.RecordPayment(ctx, confirmedInput(charge, "300"))
	require.NoError(t, err)
	assert.False(t, p2.PaymentIsPartial)
	assert.True(t, p2.PaymentRemainingAmount.IsZero())

	got = s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutPaye, got.ChargeStatut)
	assert.True(t, got.ChargeMontantRestant.IsZero())
}

func TestRecordPayment_OverpaymentClampsRemaining(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")

	p, err := r.RecordPayment(context.Background(), confirmedInput(charge, "600"))
	require.NoError(t, err)
	assert.True(t, p.PaymentRemainingAmount.IsZero())

	got := s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutPaye, got.ChargeStatut)
	assert.True(t, got.ChargeMontantPaye.Equal(mustDec("600")))
	assert.True(t, got.ChargeMontantRestant.IsZero())
}

func TestRecordPayment_PendingDoesNotTouchCharge(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")

	p, err := r.RecordPayment(context.Background(), pendingInput(charge, "500"))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatutEnAttente, p.PaymentStatut)

	got := s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutNonPaye, got.ChargeStatut)
	assert.True(t, got.ChargeMontantPaye.IsZero())
	assert.True(t, got.ChargeMontantRestant.Equal(mustDec("500")))
}

func TestRecordPayment_PendingSnapshotCountsItself(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "1000")

	p, err := r.RecordPayment(context.Background(), pendingInput(charge, "400"))
	require.NoError(t, err)

	// The payment's own amount enters the snapshot even while pending.
	assert.Equal(t, "600", p.PaymentRemainingAmount.String())
	assert.True(t, p.PaymentIsPartial)

	got := s.charges[charge.ChargeID]
	assert.True(t, got.ChargeMontantPaye.IsZero())
	assert.True(t, got.ChargeMontantRestant.Equal(mustDec("1000")))
}

func TestRecordPayment_Validation(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RecordPaymentInput)
	}{
		{"zero amount", func(in *RecordPaymentInput) { in.Montant = decimal.Zero }},
		{"negative amount", func(in *RecordPaymentInput) { in.Montant = mustDec("-10") }},
		{"unknown method", func(in *RecordPaymentInput) { in.Methode = "bitcoin" }},
		{"rejected as initial status", func(in *RecordPaymentInput) { in.Statut = model.PaymentStatutRejete }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := confirmedInput(charge, "100")
			tt.mutate(&in)
			_, err := r.RecordPayment(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := r.RecordPayment(ctx, confirmedInput(chargemodel.ChargeModel{ChargeID: uuid.New(), ChargeSyndicID: uuid.New()}, "100"))
	assert.ErrorIs(t, err, ErrChargeNotFound)
}

/* =========================================================
   Confirm / Reject
========================================================= */

func TestConfirmPayment_RecomputesCharge(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	p, err := r.RecordPayment(ctx, pendingInput(charge, "500"))
	require.NoError(t, err)

	confirmed, updated, err := r.ConfirmPayment(ctx, p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatutConfirme, confirmed.PaymentStatut)
	assert.True(t, confirmed.PaymentRemainingAmount.IsZero())
	assert.Equal(t, chargemodel.ChargeStatutPaye, updated.ChargeStatut)

	got := s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutPaye, got.ChargeStatut)
	assert.True(t, got.ChargeMontantPaye.Equal(mustDec("500")))
}

func TestConfirmPayment_TwiceFails(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	p, err := r.RecordPayment(ctx, pendingInput(charge, "200"))
	require.NoError(t, err)

	_, _, err = r.ConfirmPayment(ctx, p.PaymentID)
	require.NoError(t, err)
	_, _, err = r.ConfirmPayment(ctx, p.PaymentID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// the double confirmation must not double count
	got := s.charges[charge.ChargeID]
	assert.True(t, got.ChargeMontantPaye.Equal(mustDec("200")))
}

func TestRejectPayment(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	p, err := r.RecordPayment(ctx, pendingInput(charge, "200"))
	require.NoError(t, err)

	rejected, err := r.RejectPayment(ctx, p.PaymentID, "chèque sans provision")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatutRejete, rejected.PaymentStatut)
	assert.Equal(t, "chèque sans provision", rejected.PaymentNotes)

	got := s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutNonPaye, got.ChargeStatut)

	// once rejected it stays rejected
	_, err = r.RejectPayment(ctx, p.PaymentID, "")
	assert.ErrorIs(t, err, ErrInvalidState)
	// and cannot be confirmed either
	_, _, err = r.ConfirmPayment(ctx, p.PaymentID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectPayment_ConfirmedIsRefused(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	p, err := r.RecordPayment(ctx, confirmedInput(charge, "200"))
	require.NoError(t, err)

	_, err = r.RejectPayment(ctx, p.PaymentID, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

/* =========================================================
   Delete
========================================================= */

func TestDeletePayment_UndoesConfirmedContribution(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	p1, err := r.RecordPayment(ctx, confirmedInput(charge, "200"))
	require.NoError(t, err)
	_, err = r.RecordPayment(ctx, confirmedInput(charge, "300"))
	require.NoError(t, err)
	require.Equal(t, chargemodel.ChargeStatutPaye, s.charges[charge.ChargeID].ChargeStatut)

	require.NoError(t, r.DeletePayment(ctx, p1.PaymentID))

	got := s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutPartiel, got.ChargeStatut)
	assert.True(t, got.ChargeMontantPaye.Equal(mustDec("300")))
	assert.True(t, got.ChargeMontantRestant.Equal(mustDec("200")))
}

func TestDeletePayment_PendingLeavesChargeAlone(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	p, err := r.RecordPayment(ctx, pendingInput(charge, "200"))
	require.NoError(t, err)
	require.NoError(t, r.DeletePayment(ctx, p.PaymentID))

	got := s.charges[charge.ChargeID]
	assert.Equal(t, chargemodel.ChargeStatutNonPaye, got.ChargeStatut)
	err = r.DeletePayment(ctx, p.PaymentID)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestDeleteChargeCascade(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	other := newCharge(s, "300")
	ctx := context.Background()

	_, err := r.RecordPayment(ctx, confirmedInput(charge, "200"))
	require.NoError(t, err)
	_, err = r.RecordPayment(ctx, pendingInput(charge, "100"))
	require.NoError(t, err)
	kept, err := r.RecordPayment(ctx, confirmedInput(other, "300"))
	require.NoError(t, err)

	require.NoError(t, r.DeleteChargeCascade(ctx, charge.ChargeID))

	_, ok := s.charges[charge.ChargeID]
	assert.False(t, ok)
	for id, p := range s.payments {
		assert.NotEqual(t, charge.ChargeID, p.PaymentChargeID, "payment %s survived cascade", id)
	}
	_, ok = s.payments[kept.PaymentID]
	assert.True(t, ok)
}

/* =========================================================
   Overdue reminder
========================================================= */

func TestMarkOverdue(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	_, err := r.RecordPayment(ctx, confirmedInput(charge, "200"))
	require.NoError(t, err)

	out, err := r.MarkOverdue(ctx, charge.ChargeID)
	require.NoError(t, err)
	assert.Equal(t, chargemodel.ChargeStatutEnRetard, out.ChargeStatut)
	require.NotNil(t, out.ChargeDernierRappel)
	// the recomputed totals survive the overlay
	assert.True(t, out.ChargeMontantPaye.Equal(mustDec("200")))
	assert.True(t, out.ChargeMontantRestant.Equal(mustDec("300")))
	assert.Equal(t, chargemodel.ChargeStatutEnRetard, s.charges[charge.ChargeID].ChargeStatut)
}

func TestMarkOverdue_SelfHealsDrift(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	_, err := r.RecordPayment(ctx, confirmedInput(charge, "200"))
	require.NoError(t, err)

	// simulate stale stored aggregates
	c := s.charges[charge.ChargeID]
	c.ChargeMontantPaye = decimal.Zero
	c.ChargeMontantRestant = c.ChargeMontant
	c.ChargeStatut = chargemodel.ChargeStatutNonPaye
	s.charges[charge.ChargeID] = c

	out, err := r.MarkOverdue(ctx, charge.ChargeID)
	require.NoError(t, err)
	assert.True(t, out.ChargeMontantPaye.Equal(mustDec("200")))
	assert.True(t, out.ChargeMontantRestant.Equal(mustDec("300")))
	assert.Equal(t, chargemodel.ChargeStatutEnRetard, out.ChargeStatut)
}

func TestMarkOverdue_RefusesFullyPaid(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	_, err := r.RecordPayment(ctx, confirmedInput(charge, "500"))
	require.NoError(t, err)

	_, err = r.MarkOverdue(ctx, charge.ChargeID)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

/* =========================================================
   Recompute
========================================================= */

func TestRecomputeChargeAggregate_ResetsOverdueOverlay(t *testing.T) {
	s := newMemStore()
	r := NewReconciler(s)
	charge := newCharge(s, "500")
	ctx := context.Background()

	_, err := r.RecordPayment(ctx, confirmedInput(charge, "200"))
	require.NoError(t, err)
	_, err = r.MarkOverdue(ctx, charge.ChargeID)
	require.NoError(t, err)
	require.Equal(t, chargemodel.ChargeStatutEnRetard, s.charges[charge.ChargeID].ChargeStatut)

	// any recompute overwrites the overdue overlay with the derived status
	out, err := r.RecomputeChargeAggregate(ctx, charge.ChargeID)
	require.NoError(t, err)
	assert.Equal(t, chargemodel.ChargeStatutPartiel, out.ChargeStatut)
}
