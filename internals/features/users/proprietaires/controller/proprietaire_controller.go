package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	appartementmodel "syndicapp_backend/internals/features/property/appartements/model"
	m "syndicapp_backend/internals/features/users/auth/model"
	dto "syndicapp_backend/internals/features/users/proprietaires/dto"
	service "syndicapp_backend/internals/features/users/proprietaires/service"
	helper "syndicapp_backend/internals/helpers"
)

type ProprietaireController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Mailer    *service.Mailer
}

func NewProprietaireController(db *gorm.DB, v *validator.Validate) *ProprietaireController {
	return &ProprietaireController{DB: db, Validator: v, Mailer: service.NewMailer()}
}

/* =========================================================
   Syndic-side management
========================================================= */

// Create registers an owner account under the calling syndic and mails the
// credentials.
// POST /api/syndic/proprietaires
func (ctl *ProprietaireController) Create(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var req dto.CreateProprietaireRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var exists int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.UserModel{}).
		Where("user_email = ?", req.Email).
		Count(&exists).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification de l'email")
	}
	if exists > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Cet email est déjà utilisé")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du hachage du mot de passe")
	}

	user := m.UserModel{
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      m.RoleProprietaire,
		SyndicID:  &syndicID,
		IsActive:  true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la création du propriétaire")
	}

	ctl.Mailer.SendWelcome(user.Email, user.FullName(), req.Password)
	return helper.JsonCreated(c, "Propriétaire créé avec succès", dto.FromUserModel(user))
}

// List — GET /api/syndic/proprietaires?search=
func (ctl *ProprietaireController) List(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	pg := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&m.UserModel{}).
		Where("user_role = ? AND user_syndic_id = ?", m.RoleProprietaire, syndicID)

	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where(
			"LOWER(user_first_name) LIKE ? OR LOWER(user_last_name) LIKE ? OR LOWER(user_email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du comptage des propriétaires")
	}

	var users []m.UserModel
	if err := tx.Order("user_last_name ASC, user_first_name ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des propriétaires")
	}

	out := make([]dto.ProprietaireDTO, 0, len(users))
	for _, u := range users {
		d := dto.FromUserModel(u)
		var count int64
		if err := ctl.DB.WithContext(c.UserContext()).
			Model(&appartementmodel.AppartementModel{}).
			Where("appartement_proprietaire_id = ?", u.ID).
			Count(&count).Error; err == nil {
			d.NombreAppartements = &count
		}
		out = append(out, d)
	}

	return helper.JsonList(c, out, fiber.Map{
		"pagination": helper.BuildPagination(total, pg.Page, pg.PerPage),
	})
}

// GetByID — GET /api/syndic/proprietaires/:id
func (ctl *ProprietaireController) GetByID(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	ownerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	user, err := ctl.findManaged(c, ownerID, syndicID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromUserModel(*user))
}

// Update — PUT /api/syndic/proprietaires/:id
func (ctl *ProprietaireController) Update(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	ownerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.UpdateProprietaireRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := ctl.findManaged(c, ownerID, syndicID)
	if err != nil {
		return err
	}
	req.ApplyTo(user)
	if err := ctl.DB.WithContext(c.UserContext()).Save(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour du propriétaire")
	}
	return helper.JsonUpdated(c, "Propriétaire mis à jour", dto.FromUserModel(*user))
}

// Delete soft-deletes the account and detaches it from its appartements.
// DELETE /api/syndic/proprietaires/:id
func (ctl *ProprietaireController) Delete(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	ownerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	user, err := ctl.findManaged(c, ownerID, syndicID)
	if err != nil {
		return err
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&appartementmodel.AppartementModel{}).
			Where("appartement_proprietaire_id = ?", user.ID).
			Updates(map[string]interface{}{
				"appartement_proprietaire_id": nil,
				"appartement_statut":          appartementmodel.AppartementStatutVacant,
			}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).Delete(&m.UserModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression du propriétaire")
	}
	return helper.JsonDeleted(c, "Propriétaire supprimé", fiber.Map{"proprietaire_id": ownerID})
}

/* =========================================================
   Self-service
========================================================= */

// UpdateProfile — PUT /api/user/profil
func (ctl *ProprietaireController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user m.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur non trouvé")
	}

	req.ApplyTo(&user)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour du profil")
	}
	return helper.JsonUpdated(c, "Profil mis à jour", dto.FromUserModel(user))
}

// ChangePassword — PATCH /api/user/mot-de-passe
func (ctl *ProprietaireController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user m.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur non trouvé")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Mot de passe actuel incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du hachage du mot de passe")
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_password", string(hashed)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour du mot de passe")
	}
	return helper.JsonUpdated(c, "Mot de passe modifié", nil)
}

/* ===================== internals ===================== */

func (ctl *ProprietaireController) findManaged(c *fiber.Ctx, ownerID, syndicID uuid.UUID) (*m.UserModel, error) {
	var user m.UserModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ? AND user_role = ? AND user_syndic_id = ?", ownerID, m.RoleProprietaire, syndicID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Propriétaire non trouvé")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération du propriétaire")
	}
	return &user, nil
}
