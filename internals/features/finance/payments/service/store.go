package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	chargemodel "syndicapp_backend/internals/features/finance/charges/model"
	model "syndicapp_backend/internals/features/finance/payments/model"
)

/* ===================== Error taxonomy ===================== */

var (
	ErrChargeNotFound  = errors.New("charge non trouvée")
	ErrPaymentNotFound = errors.New("paiement non trouvé")
	ErrInvalidState    = errors.New("transition de statut invalide")
	ErrValidation      = errors.New("données de paiement invalides")
	ErrAlreadyPaid     = errors.New("charge déjà payée intégralement")
)

// Store is the persistence contract the reconciliation engine runs against.
// The production implementation is GORM/Postgres; tests inject an in-memory fake.
type Store interface {
	// WithinTx runs fn against a transactional view of the store. Every write
	// inside fn commits atomically or not at all.
	WithinTx(ctx context.Context, fn func(Store) error) error

	GetCharge(ctx context.Context, chargeID uuid.UUID) (*chargemodel.ChargeModel, error)
	// GetChargeForUpdate locks the charge row for the span of the enclosing
	// transaction, serializing concurrent recomputes per charge.
	GetChargeForUpdate(ctx context.Context, chargeID uuid.UUID) (*chargemodel.ChargeModel, error)
	UpdateChargeAggregate(ctx context.Context, chargeID uuid.UUID, paid, restant decimal.Decimal, statut string) error
	TouchChargeReminder(ctx context.Context, chargeID uuid.UUID, statut string) error
	DeleteCharge(ctx context.Context, chargeID uuid.UUID) error

	GetPayment(ctx context.Context, paymentID uuid.UUID) (*model.PaymentModel, error)
	SumConfirmedPayments(ctx context.Context, chargeID uuid.UUID) (decimal.Decimal, error)
	CreatePayment(ctx context.Context, p *model.PaymentModel) error
	SavePayment(ctx context.Context, p *model.PaymentModel) error
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	DeletePaymentsByCharge(ctx context.Context, chargeID uuid.UUID) error
}
