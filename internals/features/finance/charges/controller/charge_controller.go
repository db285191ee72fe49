package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "syndicapp_backend/internals/features/finance/charges/dto"
	m "syndicapp_backend/internals/features/finance/charges/model"
	paymentservice "syndicapp_backend/internals/features/finance/payments/service"
	notifmodel "syndicapp_backend/internals/features/home/notifications/model"
	notifservice "syndicapp_backend/internals/features/home/notifications/service"
	appartementmodel "syndicapp_backend/internals/features/property/appartements/model"
	helper "syndicapp_backend/internals/helpers"
)

type ChargeController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Reconciler *paymentservice.Reconciler
	Notifier   *notifservice.Notifier
}

func NewChargeController(db *gorm.DB, v *validator.Validate) *ChargeController {
	return &ChargeController{
		DB:         db,
		Validator:  v,
		Reconciler: paymentservice.NewReconciler(paymentservice.NewStore(db)),
		Notifier:   notifservice.NewNotifier(db),
	}
}

/* =========================================================
   Create — POST /api/syndic/charges
========================================================= */

func (ctl *ChargeController) Create(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var req dto.CreateChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.Montant.IsPositive() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Le montant doit être strictement positif")
	}

	// the appartement must belong to this syndic's portfolio
	var apt appartementmodel.AppartementModel
	err = ctl.DB.WithContext(c.UserContext()).
		Joins("JOIN immeubles ON immeubles.immeuble_id = appartements.appartement_immeuble_id").
		Where("appartements.appartement_id = ? AND immeubles.immeuble_syndic_id = ?", req.AppartementID, syndicID).
		First(&apt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Appartement non trouvé")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification de l'appartement")
	}

	charge := req.ToModel(syndicID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(charge).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la création de la charge")
	}

	if apt.AppartementProprietaireID != nil {
		ctl.Notifier.Push(*apt.AppartementProprietaireID,
			notifmodel.NotificationTypeNouvelleCharge,
			"Nouvelle charge",
			"Une nouvelle charge « "+charge.ChargeTitre+" » a été créée pour votre appartement.",
			map[string]interface{}{"charge_id": charge.ChargeID.String()},
		)
	}

	return helper.JsonCreated(c, "Charge créée avec succès", dto.FromChargeModel(*charge))
}

/* =========================================================
   Lists
========================================================= */

// List returns the syndic's charges with optional filters and a totals rollup.
// GET /api/syndic/charges?statut=&categorie=&appartement_id=
func (ctl *ChargeController) List(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	pg := helper.ResolvePaging(c, 20, 200)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&m.ChargeModel{}).
		Where("charge_syndic_id = ?", syndicID)

	if s := strings.TrimSpace(c.Query("statut")); s != "" {
		tx = tx.Where("charge_statut = ?", s)
	}
	if s := strings.TrimSpace(c.Query("categorie")); s != "" {
		tx = tx.Where("charge_categorie = ?", s)
	}
	if s := strings.TrimSpace(c.Query("appartement_id")); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			tx = tx.Where("charge_appartement_id = ?", id)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du comptage des charges")
	}

	var charges []m.ChargeModel
	if err := tx.Order("charge_date_echeance DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&charges).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des charges")
	}

	return helper.JsonList(c, dto.FromChargeModelSlice(charges), fiber.Map{
		"pagination": helper.BuildPagination(total, pg.Page, pg.PerPage),
		"totaux":     dto.TotalsFromModels(charges),
	})
}

// ListByAppartement — GET /api/syndic/appartements/:id/charges
func (ctl *ChargeController) ListByAppartement(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	aptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'appartement invalide")
	}

	var charges []m.ChargeModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("charge_appartement_id = ? AND charge_syndic_id = ?", aptID, syndicID).
		Order("charge_date_echeance DESC").
		Find(&charges).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des charges")
	}

	return helper.JsonList(c, dto.FromChargeModelSlice(charges), fiber.Map{
		"totaux": dto.TotalsFromModels(charges),
	})
}

// MyCharges returns the charges of every appartement the caller owns.
// GET /api/proprietaire/charges
func (ctl *ChargeController) MyCharges(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&m.ChargeModel{}).
		Joins("JOIN appartements ON appartements.appartement_id = charges.charge_appartement_id").
		Where("appartements.appartement_proprietaire_id = ?", ownerID)

	if s := strings.TrimSpace(c.Query("statut")); s != "" {
		tx = tx.Where("charge_statut = ?", s)
	}

	var charges []m.ChargeModel
	if err := tx.Order("charge_date_echeance DESC").Find(&charges).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des charges")
	}

	return helper.JsonList(c, dto.FromChargeModelSlice(charges), fiber.Map{
		"totaux": dto.TotalsFromModels(charges),
	})
}

/* =========================================================
   Detail / Update / Delete
========================================================= */

// GetByID — GET /api/syndic/charges/:id
func (ctl *ChargeController) GetByID(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	chargeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de charge invalide")
	}

	charge, err := ctl.findOwnedCharge(c, chargeID, syndicID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromChargeModel(*charge))
}

// Update edits descriptive fields only. Montant is immutable after creation;
// the paid totals and statut belong to the reconciliation service.
// PUT /api/syndic/charges/:id
func (ctl *ChargeController) Update(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	chargeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de charge invalide")
	}

	var req dto.UpdateChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	charge, err := ctl.findOwnedCharge(c, chargeID, syndicID)
	if err != nil {
		return err
	}

	req.ApplyTo(charge)
	if err := ctl.DB.WithContext(c.UserContext()).Save(charge).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour de la charge")
	}
	return helper.JsonUpdated(c, "Charge mise à jour", dto.FromChargeModel(*charge))
}

// Delete soft-deletes the charge and every payment attached to it.
// DELETE /api/syndic/charges/:id
func (ctl *ChargeController) Delete(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	chargeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de charge invalide")
	}

	if _, err := ctl.findOwnedCharge(c, chargeID, syndicID); err != nil {
		return err
	}

	if err := ctl.Reconciler.DeleteChargeCascade(c.UserContext(), chargeID); err != nil {
		if errors.Is(err, paymentservice.ErrChargeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Charge non trouvée")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression de la charge")
	}
	return helper.JsonDeleted(c, "Charge supprimée", fiber.Map{"charge_id": chargeID})
}

func (ctl *ChargeController) findOwnedCharge(c *fiber.Ctx, chargeID, syndicID uuid.UUID) (*m.ChargeModel, error) {
	var charge m.ChargeModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("charge_id = ? AND charge_syndic_id = ?", chargeID, syndicID).
		First(&charge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Charge non trouvée")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de la charge")
	}
	return &charge, nil
}
