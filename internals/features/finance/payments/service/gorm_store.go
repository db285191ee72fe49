package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chargemodel "syndicapp_backend/internals/features/finance/charges/model"
	model "syndicapp_backend/internals/features/finance/payments/model"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a GORM handle as a reconciliation Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

/* ===================== Charges ===================== */

func (s *gormStore) GetCharge(ctx context.Context, chargeID uuid.UUID) (*chargemodel.ChargeModel, error) {
	var m chargemodel.ChargeModel
	if err := s.db.WithContext(ctx).First(&m, "charge_id = ?", chargeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) GetChargeForUpdate(ctx context.Context, chargeID uuid.UUID) (*chargemodel.ChargeModel, error) {
	var m chargemodel.ChargeModel
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "charge_id = ?", chargeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) UpdateChargeAggregate(ctx context.Context, chargeID uuid.UUID, paid, restant decimal.Decimal, statut string) error {
	return s.db.WithContext(ctx).
		Model(&chargemodel.ChargeModel{}).
		Where("charge_id = ?", chargeID).
		Updates(map[string]interface{}{
			"charge_montant_paye":    paid,
			"charge_montant_restant": restant,
			"charge_statut":          statut,
			"charge_updated_at":      time.Now(),
		}).Error
}

func (s *gormStore) TouchChargeReminder(ctx context.Context, chargeID uuid.UUID, statut string) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&chargemodel.ChargeModel{}).
		Where("charge_id = ?", chargeID).
		Updates(map[string]interface{}{
			"charge_statut":          statut,
			"charge_dernier_rappel":  now,
			"charge_updated_at":      now,
		}).Error
}

func (s *gormStore) DeleteCharge(ctx context.Context, chargeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("charge_id = ?", chargeID).
		Delete(&chargemodel.ChargeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrChargeNotFound
	}
	return nil
}

/* ===================== Payments ===================== */

func (s *gormStore) GetPayment(ctx context.Context, paymentID uuid.UUID) (*model.PaymentModel, error) {
	var m model.PaymentModel
	if err := s.db.WithContext(ctx).First(&m, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) SumConfirmedPayments(ctx context.Context, chargeID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := s.db.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Select("SUM(payment_montant)").
		Where("payment_charge_id = ? AND payment_statut = ?", chargeID, model.PaymentStatutConfirme).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (s *gormStore) CreatePayment(ctx context.Context, p *model.PaymentModel) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) SavePayment(ctx context.Context, p *model.PaymentModel) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *gormStore) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Delete(&model.PaymentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (s *gormStore) DeletePaymentsByCharge(ctx context.Context, chargeID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("payment_charge_id = ?", chargeID).
		Delete(&model.PaymentModel{}).Error
}
