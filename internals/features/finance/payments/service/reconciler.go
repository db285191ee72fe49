package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"syndicapp_backend/internals/configs"
	chargemodel "syndicapp_backend/internals/features/finance/charges/model"
	model "syndicapp_backend/internals/features/finance/payments/model"
)

// Reconciler owns every mutation that can move money on a charge. All entry
// points run inside a single transaction with the charge row locked, so the
// stored aggregates (montant payé, montant restant, statut) always equal what
// a fresh sum over confirmed payments would produce.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// RecordPaymentInput carries everything needed to create a payment. Statut is
// caller-determined: syndic-initiated payments arrive already confirmed,
// owner-declared ones start pending.
type RecordPaymentInput struct {
	ChargeID       uuid.UUID
	Montant        decimal.Decimal
	Date           time.Time
	Methode        string
	Reference      *string
	Statut         string
	ProprietaireID *uuid.UUID
	SyndicID       uuid.UUID
	Notes          string
}

func (in *RecordPaymentInput) validate() error {
	if !in.Montant.IsPositive() {
		return fmt.Errorf("%w: le montant doit être strictement positif", ErrValidation)
	}
	switch in.Methode {
	case model.PaymentMethodeEspeces, model.PaymentMethodeCheque, model.PaymentMethodeVirement:
	default:
		return fmt.Errorf("%w: méthode de paiement inconnue", ErrValidation)
	}
	switch in.Statut {
	case model.PaymentStatutEnAttente, model.PaymentStatutConfirme:
	default:
		return fmt.Errorf("%w: statut initial non autorisé", ErrValidation)
	}
	return nil
}

// RecordPayment creates a payment against a charge and, when it arrives
// confirmed, folds it into the charge aggregates in the same transaction.
func (r *Reconciler) RecordPayment(ctx context.Context, in RecordPaymentInput) (*model.PaymentModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created *model.PaymentModel
	err := r.store.WithinTx(ctx, func(s Store) error {
		charge, err := s.GetChargeForUpdate(ctx, in.ChargeID)
		if err != nil {
			return err
		}

		confirmed, err := s.SumConfirmedPayments(ctx, charge.ChargeID)
		if err != nil {
			return err
		}
		// The snapshot counts this payment whatever its statut; only the
		// charge aggregates below are gated on confirmation.
		totalAfter := confirmed.Add(in.Montant)
		remaining := chargemodel.RemainingAmount(charge.ChargeMontant, totalAfter)

		date := in.Date
		if date.IsZero() {
			date = time.Now()
		}
		p := &model.PaymentModel{
			PaymentMontant:         in.Montant,
			PaymentDate:            date,
			PaymentMethode:         in.Methode,
			PaymentReference:       in.Reference,
			PaymentChargeID:        charge.ChargeID,
			PaymentProprietaireID:  in.ProprietaireID,
			PaymentSyndicID:        in.SyndicID,
			PaymentStatut:          in.Statut,
			PaymentIsPartial:       remaining.IsPositive(),
			PaymentRemainingAmount: remaining,
			PaymentNotes:           in.Notes,
		}
		if err := s.CreatePayment(ctx, p); err != nil {
			return err
		}

		if in.Statut == model.PaymentStatutConfirme {
			if err := r.writeAggregate(ctx, s, charge, totalAfter); err != nil {
				return err
			}
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	configs.Log.WithFields(map[string]interface{}{
		"payment_id": created.PaymentID,
		"charge_id":  created.PaymentChargeID,
		"montant":    created.PaymentMontant.String(),
		"statut":     created.PaymentStatut,
	}).Info("paiement enregistré")
	return created, nil
}

// ConfirmPayment moves a pending payment to confirmed and recomputes the
// charge. Confirming twice is rejected.
func (r *Reconciler) ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (*model.PaymentModel, *chargemodel.ChargeModel, error) {
	var (
		payment *model.PaymentModel
		charge  *chargemodel.ChargeModel
	)
	err := r.store.WithinTx(ctx, func(s Store) error {
		p, err := s.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.IsConfirmed() {
			return fmt.Errorf("%w: paiement déjà confirmé", ErrInvalidState)
		}
		if p.IsRejected() {
			return fmt.Errorf("%w: paiement déjà rejeté", ErrInvalidState)
		}

		c, err := s.GetChargeForUpdate(ctx, p.PaymentChargeID)
		if err != nil {
			return err
		}

		p.PaymentStatut = model.PaymentStatutConfirme
		total, err := s.SumConfirmedPayments(ctx, c.ChargeID)
		if err != nil {
			return err
		}
		total = total.Add(p.PaymentMontant)
		remaining := chargemodel.RemainingAmount(c.ChargeMontant, total)
		p.PaymentIsPartial = remaining.IsPositive()
		p.PaymentRemainingAmount = remaining
		if err := s.SavePayment(ctx, p); err != nil {
			return err
		}
		if err := r.writeAggregate(ctx, s, c, total); err != nil {
			return err
		}

		payment, charge = p, c
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	configs.Log.WithFields(map[string]interface{}{
		"payment_id": payment.PaymentID,
		"charge_id":  charge.ChargeID,
		"statut":     charge.ChargeStatut,
	}).Info("paiement confirmé")
	return payment, charge, nil
}

// RejectPayment refuses a pending payment. A confirmed payment can no longer
// be rejected, only deleted. Rejected payments never count toward the charge,
// so no recompute is needed.
func (r *Reconciler) RejectPayment(ctx context.Context, paymentID uuid.UUID, reason string) (*model.PaymentModel, error) {
	var payment *model.PaymentModel
	err := r.store.WithinTx(ctx, func(s Store) error {
		p, err := s.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.IsConfirmed() {
			return fmt.Errorf("%w: un paiement confirmé ne peut pas être rejeté", ErrInvalidState)
		}
		if p.IsRejected() {
			return fmt.Errorf("%w: paiement déjà rejeté", ErrInvalidState)
		}
		p.PaymentStatut = model.PaymentStatutRejete
		if reason != "" {
			p.PaymentNotes = reason
		}
		payment = p
		return s.SavePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment soft-deletes a payment. Removing a confirmed payment undoes
// its contribution through the same recompute path as confirmation, so the
// charge ends exactly where it would be had the payment never existed.
func (r *Reconciler) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return r.store.WithinTx(ctx, func(s Store) error {
		p, err := s.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		if !p.IsConfirmed() {
			return s.DeletePayment(ctx, p.PaymentID)
		}

		charge, err := s.GetChargeForUpdate(ctx, p.PaymentChargeID)
		if err != nil {
			return err
		}
		if err := s.DeletePayment(ctx, p.PaymentID); err != nil {
			return err
		}
		total, err := s.SumConfirmedPayments(ctx, charge.ChargeID)
		if err != nil {
			return err
		}
		return r.writeAggregate(ctx, s, charge, total)
	})
}

// DeleteChargeCascade soft-deletes a charge together with all its payments,
// confirmed or not. Orphan payments against a deleted charge would otherwise
// resurface in owner histories.
func (r *Reconciler) DeleteChargeCascade(ctx context.Context, chargeID uuid.UUID) error {
	return r.store.WithinTx(ctx, func(s Store) error {
		if _, err := s.GetChargeForUpdate(ctx, chargeID); err != nil {
			return err
		}
		if err := s.DeletePaymentsByCharge(ctx, chargeID); err != nil {
			return err
		}
		return s.DeleteCharge(ctx, chargeID)
	})
}

// RecomputeChargeAggregate resyncs a charge from its confirmed payments.
// Used after montant-affecting charge edits.
func (r *Reconciler) RecomputeChargeAggregate(ctx context.Context, chargeID uuid.UUID) (*chargemodel.ChargeModel, error) {
	var charge *chargemodel.ChargeModel
	err := r.store.WithinTx(ctx, func(s Store) error {
		c, err := s.GetChargeForUpdate(ctx, chargeID)
		if err != nil {
			return err
		}
		total, err := s.SumConfirmedPayments(ctx, c.ChargeID)
		if err != nil {
			return err
		}
		if err := r.writeAggregate(ctx, s, c, total); err != nil {
			return err
		}
		charge = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return charge, nil
}

// MarkOverdue stamps a reminder on an unpaid charge: the stored aggregates are
// recomputed first (self-heal for any drift), then the statut is overridden to
// "en retard" and dernier_rappel refreshed. Fully paid charges refuse the
// reminder with ErrAlreadyPaid.
func (r *Reconciler) MarkOverdue(ctx context.Context, chargeID uuid.UUID) (*chargemodel.ChargeModel, error) {
	var charge *chargemodel.ChargeModel
	err := r.store.WithinTx(ctx, func(s Store) error {
		c, err := s.GetChargeForUpdate(ctx, chargeID)
		if err != nil {
			return err
		}
		total, err := s.SumConfirmedPayments(ctx, c.ChargeID)
		if err != nil {
			return err
		}
		if total.GreaterThanOrEqual(c.ChargeMontant) {
			return ErrAlreadyPaid
		}
		if err := r.writeAggregate(ctx, s, c, total); err != nil {
			return err
		}
		now := time.Now()
		c.ChargeStatut = chargemodel.ChargeStatutEnRetard
		c.ChargeDernierRappel = &now
		if err := s.TouchChargeReminder(ctx, c.ChargeID, chargemodel.ChargeStatutEnRetard); err != nil {
			return err
		}
		charge = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	configs.Log.WithFields(map[string]interface{}{
		"charge_id": charge.ChargeID,
		"statut":    charge.ChargeStatut,
	}).Info("rappel de paiement émis")
	return charge, nil
}

// writeAggregate derives statut and restant from the confirmed total and
// persists them, mirroring the change onto the in-memory charge.
func (r *Reconciler) writeAggregate(ctx context.Context, s Store, c *chargemodel.ChargeModel, totalPaid decimal.Decimal) error {
	remaining := chargemodel.RemainingAmount(c.ChargeMontant, totalPaid)
	statut := chargemodel.DeriveStatut(totalPaid, c.ChargeMontant)
	if err := s.UpdateChargeAggregate(ctx, c.ChargeID, totalPaid, remaining, statut); err != nil {
		return err
	}
	c.ChargeMontantPaye = totalPaid
	c.ChargeMontantRestant = remaining
	c.ChargeStatut = statut
	return nil
}
