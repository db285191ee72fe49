package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	chargemodel "syndicapp_backend/internals/features/finance/charges/model"
	paymentmodel "syndicapp_backend/internals/features/finance/payments/model"
	appartementmodel "syndicapp_backend/internals/features/property/appartements/model"
	immeublemodel "syndicapp_backend/internals/features/property/immeubles/model"
	usermodel "syndicapp_backend/internals/features/users/auth/model"
	helper "syndicapp_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// Dashboard aggregates the syndic's portfolio in one response.
// GET /api/syndic/stats/dashboard
func (ctl *StatsController) Dashboard(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	db := ctl.DB.WithContext(c.UserContext())

	var immeubles, appartements, proprietaires int64
	db.Model(&immeublemodel.ImmeubleModel{}).
		Where("immeuble_syndic_id = ?", syndicID).Count(&immeubles)
	db.Model(&appartementmodel.AppartementModel{}).
		Joins("JOIN immeubles ON immeubles.immeuble_id = appartements.appartement_immeuble_id").
		Where("immeubles.immeuble_syndic_id = ?", syndicID).Count(&appartements)
	db.Model(&usermodel.UserModel{}).
		Where("user_role = ? AND user_syndic_id = ?", usermodel.RoleProprietaire, syndicID).
		Count(&proprietaires)

	charges, err := ctl.chargeRollup(c, syndicID)
	if err != nil {
		return err
	}

	var pendingPayments int64
	db.Model(&paymentmodel.PaymentModel{}).
		Where("payment_syndic_id = ? AND payment_statut = ?", syndicID, paymentmodel.PaymentStatutEnAttente).
		Count(&pendingPayments)

	return helper.JsonOK(c, "OK", fiber.Map{
		"immeubles":            immeubles,
		"appartements":         appartements,
		"proprietaires":        proprietaires,
		"charges":              charges,
		"paiements_en_attente": pendingPayments,
	})
}

// ChargeStats breaks charges down by statut.
// GET /api/syndic/stats/charges
func (ctl *StatsController) ChargeStats(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	type statutRow struct {
		Statut  string          `gorm:"column:charge_statut"`
		Count   int64           `gorm:"column:count"`
		Montant decimal.Decimal `gorm:"column:montant"`
		Restant decimal.Decimal `gorm:"column:restant"`
	}
	var rows []statutRow
	err = ctl.DB.WithContext(c.UserContext()).
		Model(&chargemodel.ChargeModel{}).
		Select("charge_statut, COUNT(*) AS count, COALESCE(SUM(charge_montant),0) AS montant, COALESCE(SUM(charge_montant_restant),0) AS restant").
		Where("charge_syndic_id = ?", syndicID).
		Group("charge_statut").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul des statistiques")
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"statut":  r.Statut,
			"nombre":  r.Count,
			"montant": r.Montant,
			"restant": r.Restant,
		})
	}
	return helper.JsonOK(c, "OK", out)
}

// PaymentStats sums confirmed payments per month over the last 12 months.
// GET /api/syndic/stats/paiements
func (ctl *StatsController) PaymentStats(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	since := time.Now().AddDate(-1, 0, 0)

	type monthRow struct {
		Mois    time.Time       `gorm:"column:mois"`
		Total   decimal.Decimal `gorm:"column:total"`
		Nombre  int64           `gorm:"column:nombre"`
	}
	var rows []monthRow
	err = ctl.DB.WithContext(c.UserContext()).
		Model(&paymentmodel.PaymentModel{}).
		Select("date_trunc('month', payment_date) AS mois, COALESCE(SUM(payment_montant),0) AS total, COUNT(*) AS nombre").
		Where("payment_syndic_id = ? AND payment_statut = ? AND payment_date >= ?",
			syndicID, paymentmodel.PaymentStatutConfirme, since).
		Group("mois").
		Order("mois ASC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul des statistiques")
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"mois":   r.Mois.Format("2006-01"),
			"total":  r.Total,
			"nombre": r.Nombre,
		})
	}
	return helper.JsonOK(c, "OK", out)
}

// ProprietaireStats rolls payments up per owner.
// GET /api/syndic/stats/proprietaires
func (ctl *StatsController) ProprietaireStats(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	type ownerRow struct {
		ProprietaireID *string         `gorm:"column:proprietaire_id"`
		Nom            string          `gorm:"column:nom"`
		Nombre         int64           `gorm:"column:nombre"`
		Total          decimal.Decimal `gorm:"column:total"`
	}
	var rows []ownerRow
	err = ctl.DB.WithContext(c.UserContext()).
		Model(&paymentmodel.PaymentModel{}).
		Select("payment_proprietaire_id AS proprietaire_id, COALESCE(users.user_first_name || ' ' || users.user_last_name, '') AS nom, COUNT(*) AS nombre, COALESCE(SUM(payment_montant),0) AS total").
		Joins("LEFT JOIN users ON users.user_id = payments.payment_proprietaire_id").
		Where("payment_syndic_id = ?", syndicID).
		Group("payment_proprietaire_id, users.user_first_name, users.user_last_name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul des statistiques")
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"proprietaire_id": r.ProprietaireID,
			"nom":             r.Nom,
			"nombre":          r.Nombre,
			"total":           r.Total,
		})
	}
	return helper.JsonOK(c, "OK", out)
}

// AppartementStats breaks the portfolio down by occupation and charge load.
// GET /api/syndic/stats/appartements
func (ctl *StatsController) AppartementStats(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	db := ctl.DB.WithContext(c.UserContext())

	type occupationRow struct {
		Statut string `gorm:"column:appartement_statut"`
		Nombre int64  `gorm:"column:nombre"`
	}
	var occupation []occupationRow
	err = db.Model(&appartementmodel.AppartementModel{}).
		Select("appartement_statut, COUNT(*) AS nombre").
		Joins("JOIN immeubles ON immeubles.immeuble_id = appartements.appartement_immeuble_id").
		Where("immeubles.immeuble_syndic_id = ?", syndicID).
		Group("appartement_statut").
		Scan(&occupation).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul des statistiques")
	}

	type chargeRow struct {
		AppartementID string          `gorm:"column:appartement_id"`
		Numero        string          `gorm:"column:numero"`
		Nombre        int64           `gorm:"column:nombre"`
		Total         decimal.Decimal `gorm:"column:total"`
	}
	var charges []chargeRow
	err = db.Model(&chargemodel.ChargeModel{}).
		Select("charge_appartement_id AS appartement_id, appartements.appartement_numero AS numero, COUNT(*) AS nombre, COALESCE(SUM(charge_montant),0) AS total").
		Joins("JOIN appartements ON appartements.appartement_id = charges.charge_appartement_id").
		Where("charge_syndic_id = ?", syndicID).
		Group("charge_appartement_id, appartements.appartement_numero").
		Order("total DESC").
		Scan(&charges).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul des statistiques")
	}

	occOut := make([]fiber.Map, 0, len(occupation))
	for _, r := range occupation {
		occOut = append(occOut, fiber.Map{"statut": r.Statut, "nombre": r.Nombre})
	}
	chargeOut := make([]fiber.Map, 0, len(charges))
	for _, r := range charges {
		chargeOut = append(chargeOut, fiber.Map{
			"appartement_id": r.AppartementID,
			"numero":         r.Numero,
			"nombre":         r.Nombre,
			"total":          r.Total,
		})
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"occupation":              occOut,
		"charges_par_appartement": chargeOut,
	})
}

func (ctl *StatsController) chargeRollup(c *fiber.Ctx, syndicID interface{}) (fiber.Map, error) {
	type rollup struct {
		Count   int64           `gorm:"column:count"`
		Montant decimal.Decimal `gorm:"column:montant"`
		Paye    decimal.Decimal `gorm:"column:paye"`
		Restant decimal.Decimal `gorm:"column:restant"`
	}
	var r rollup
	err := ctl.DB.WithContext(c.UserContext()).
		Model(&chargemodel.ChargeModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(charge_montant),0) AS montant, COALESCE(SUM(charge_montant_paye),0) AS paye, COALESCE(SUM(charge_montant_restant),0) AS restant").
		Where("charge_syndic_id = ?", syndicID).
		Scan(&r).Error
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du calcul des statistiques")
	}
	return fiber.Map{
		"nombre":        r.Count,
		"total_montant": r.Montant,
		"total_paye":    r.Paye,
		"total_restant": r.Restant,
	}, nil
}
