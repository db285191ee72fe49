package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "syndicapp_backend/internals/features/property/appartements/dto"
	m "syndicapp_backend/internals/features/property/appartements/model"
	immeublemodel "syndicapp_backend/internals/features/property/immeubles/model"
	usermodel "syndicapp_backend/internals/features/users/auth/model"
	helper "syndicapp_backend/internals/helpers"
)

type AppartementController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAppartementController(db *gorm.DB, v *validator.Validate) *AppartementController {
	return &AppartementController{DB: db, Validator: v}
}

// Create — POST /api/syndic/appartements
func (ctl *AppartementController) Create(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var req dto.CreateAppartementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.assertImmeubleOwned(c, req.ImmeubleID, syndicID); err != nil {
		return err
	}
	if req.ProprietaireID != nil {
		if err := ctl.assertProprietaire(c, *req.ProprietaireID); err != nil {
			return err
		}
	}

	apt := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(apt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la création de l'appartement")
	}
	return helper.JsonCreated(c, "Appartement créé avec succès", dto.FromAppartementModel(*apt))
}

// ListByImmeuble — GET /api/syndic/immeubles/:id/appartements
func (ctl *AppartementController) ListByImmeuble(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	immID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'immeuble invalide")
	}
	if err := ctl.assertImmeubleOwned(c, immID, syndicID); err != nil {
		return err
	}

	var apts []m.AppartementModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("appartement_immeuble_id = ?", immID).
		Order("appartement_etage ASC, appartement_numero ASC").
		Find(&apts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des appartements")
	}
	return helper.JsonOK(c, "OK", dto.FromAppartementModelSlice(apts))
}

// MyAppartements lists the appartements owned by the calling proprietaire.
// GET /api/proprietaire/appartements
func (ctl *AppartementController) MyAppartements(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var apts []m.AppartementModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("appartement_proprietaire_id = ?", ownerID).
		Find(&apts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des appartements")
	}

	out := make([]dto.AppartementDTO, 0, len(apts))
	for _, apt := range apts {
		d := dto.FromAppartementModel(apt)
		var imm immeublemodel.ImmeubleModel
		if err := ctl.DB.WithContext(c.UserContext()).
			First(&imm, "immeuble_id = ?", apt.AppartementImmeubleID).Error; err == nil {
			nom := imm.ImmeubleNom
			d.Immeuble = &nom
		}
		out = append(out, d)
	}
	return helper.JsonOK(c, "OK", out)
}

// GetByID — GET /api/syndic/appartements/:id
func (ctl *AppartementController) GetByID(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	aptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'appartement invalide")
	}

	apt, err := ctl.findOwned(c, aptID, syndicID)
	if err != nil {
		return err
	}

	d := dto.FromAppartementModel(*apt)
	if apt.AppartementProprietaireID != nil {
		var u usermodel.UserModel
		if err := ctl.DB.WithContext(c.UserContext()).
			First(&u, "user_id = ?", *apt.AppartementProprietaireID).Error; err == nil {
			nom := u.FullName()
			d.Proprietaire = &nom
		}
	}
	return helper.JsonOK(c, "OK", d)
}

// Update — PUT /api/syndic/appartements/:id
func (ctl *AppartementController) Update(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	aptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'appartement invalide")
	}

	var req dto.UpdateAppartementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	apt, err := ctl.findOwned(c, aptID, syndicID)
	if err != nil {
		return err
	}
	req.ApplyTo(apt)
	if err := ctl.DB.WithContext(c.UserContext()).Save(apt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour de l'appartement")
	}
	return helper.JsonUpdated(c, "Appartement mis à jour", dto.FromAppartementModel(*apt))
}

// AssignProprietaire links or unlinks (null) an owner.
// PATCH /api/syndic/appartements/:id/proprietaire
func (ctl *AppartementController) AssignProprietaire(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	aptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'appartement invalide")
	}

	var req dto.AssignProprietaireRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}

	apt, err := ctl.findOwned(c, aptID, syndicID)
	if err != nil {
		return err
	}
	if req.ProprietaireID != nil {
		if err := ctl.assertProprietaire(c, *req.ProprietaireID); err != nil {
			return err
		}
	}

	apt.AppartementProprietaireID = req.ProprietaireID
	if req.ProprietaireID != nil {
		apt.AppartementStatut = m.AppartementStatutOccupe
	} else {
		apt.AppartementStatut = m.AppartementStatutVacant
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(apt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de l'affectation du propriétaire")
	}
	return helper.JsonUpdated(c, "Propriétaire affecté", dto.FromAppartementModel(*apt))
}

// Delete — DELETE /api/syndic/appartements/:id
func (ctl *AppartementController) Delete(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	aptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'appartement invalide")
	}

	if _, err := ctl.findOwned(c, aptID, syndicID); err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("appartement_id = ?", aptID).
		Delete(&m.AppartementModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression de l'appartement")
	}
	return helper.JsonDeleted(c, "Appartement supprimé", fiber.Map{"appartement_id": aptID})
}

/* ===================== internals ===================== */

func (ctl *AppartementController) findOwned(c *fiber.Ctx, aptID, syndicID uuid.UUID) (*m.AppartementModel, error) {
	var apt m.AppartementModel
	err := ctl.DB.WithContext(c.UserContext()).
		Joins("JOIN immeubles ON immeubles.immeuble_id = appartements.appartement_immeuble_id").
		Where("appartements.appartement_id = ? AND immeubles.immeuble_syndic_id = ?", aptID, syndicID).
		First(&apt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Appartement non trouvé")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de l'appartement")
	}
	return &apt, nil
}

func (ctl *AppartementController) assertImmeubleOwned(c *fiber.Ctx, immID, syndicID uuid.UUID) error {
	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&immeublemodel.ImmeubleModel{}).
		Where("immeuble_id = ? AND immeuble_syndic_id = ?", immID, syndicID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification de l'immeuble")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Immeuble non trouvé")
	}
	return nil
}

func (ctl *AppartementController) assertProprietaire(c *fiber.Ctx, userID uuid.UUID) error {
	var u usermodel.UserModel
	err := ctl.DB.WithContext(c.UserContext()).
		First(&u, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Propriétaire non trouvé")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification du propriétaire")
	}
	if !u.IsProprietaire() {
		return helper.JsonError(c, fiber.StatusBadRequest, "L'utilisateur désigné n'est pas un propriétaire")
	}
	return nil
}
