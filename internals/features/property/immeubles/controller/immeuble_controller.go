package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appartementmodel "syndicapp_backend/internals/features/property/appartements/model"
	dto "syndicapp_backend/internals/features/property/immeubles/dto"
	m "syndicapp_backend/internals/features/property/immeubles/model"
	helper "syndicapp_backend/internals/helpers"
)

type ImmeubleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewImmeubleController(db *gorm.DB, v *validator.Validate) *ImmeubleController {
	return &ImmeubleController{DB: db, Validator: v}
}

// Create — POST /api/syndic/immeubles
func (ctl *ImmeubleController) Create(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var req dto.CreateImmeubleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	imm := req.ToModel(syndicID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(imm).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la création de l'immeuble")
	}
	return helper.JsonCreated(c, "Immeuble créé avec succès", dto.FromImmeubleModel(*imm))
}

// List — GET /api/syndic/immeubles
func (ctl *ImmeubleController) List(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	pg := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&m.ImmeubleModel{}).
		Where("immeuble_syndic_id = ?", syndicID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du comptage des immeubles")
	}

	var immeubles []m.ImmeubleModel
	if err := tx.Order("immeuble_nom ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&immeubles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des immeubles")
	}

	out := make([]dto.ImmeubleDTO, 0, len(immeubles))
	for _, imm := range immeubles {
		d := dto.FromImmeubleModel(imm)
		var count int64
		if err := ctl.DB.WithContext(c.UserContext()).
			Model(&appartementmodel.AppartementModel{}).
			Where("appartement_immeuble_id = ?", imm.ImmeubleID).
			Count(&count).Error; err == nil {
			d.NombreAppartements = &count
		}
		out = append(out, d)
	}

	return helper.JsonList(c, out, fiber.Map{
		"pagination": helper.BuildPagination(total, pg.Page, pg.PerPage),
	})
}

// GetByID — GET /api/syndic/immeubles/:id
func (ctl *ImmeubleController) GetByID(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	immID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'immeuble invalide")
	}

	imm, err := ctl.findOwned(c, immID, syndicID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromImmeubleModel(*imm))
}

// Update — PUT /api/syndic/immeubles/:id
func (ctl *ImmeubleController) Update(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	immID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'immeuble invalide")
	}

	var req dto.UpdateImmeubleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	imm, err := ctl.findOwned(c, immID, syndicID)
	if err != nil {
		return err
	}
	req.ApplyTo(imm)
	if err := ctl.DB.WithContext(c.UserContext()).Save(imm).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour de l'immeuble")
	}
	return helper.JsonUpdated(c, "Immeuble mis à jour", dto.FromImmeubleModel(*imm))
}

// Delete refuses when appartements still reference the immeuble.
// DELETE /api/syndic/immeubles/:id
func (ctl *ImmeubleController) Delete(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	immID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'immeuble invalide")
	}

	if _, err := ctl.findOwned(c, immID, syndicID); err != nil {
		return err
	}

	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&appartementmodel.AppartementModel{}).
		Where("appartement_immeuble_id = ?", immID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification des appartements")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Impossible de supprimer un immeuble contenant des appartements")
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Where("immeuble_id = ?", immID).
		Delete(&m.ImmeubleModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression de l'immeuble")
	}
	return helper.JsonDeleted(c, "Immeuble supprimé", fiber.Map{"immeuble_id": immID})
}

func (ctl *ImmeubleController) findOwned(c *fiber.Ctx, immID, syndicID uuid.UUID) (*m.ImmeubleModel, error) {
	var imm m.ImmeubleModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("immeuble_id = ? AND immeuble_syndic_id = ?", immID, syndicID).
		First(&imm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Immeuble non trouvé")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de l'immeuble")
	}
	return &imm, nil
}
