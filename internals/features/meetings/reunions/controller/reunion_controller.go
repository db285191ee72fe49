package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifmodel "syndicapp_backend/internals/features/home/notifications/model"
	notifservice "syndicapp_backend/internals/features/home/notifications/service"
	dto "syndicapp_backend/internals/features/meetings/reunions/dto"
	m "syndicapp_backend/internals/features/meetings/reunions/model"
	usermodel "syndicapp_backend/internals/features/users/auth/model"
	helper "syndicapp_backend/internals/helpers"
)

type ReunionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Notifier  *notifservice.Notifier
}

func NewReunionController(db *gorm.DB, v *validator.Validate) *ReunionController {
	return &ReunionController{DB: db, Validator: v, Notifier: notifservice.NewNotifier(db)}
}

/* =========================================================
   CRUD (syndic)
========================================================= */

// Create — POST /api/syndic/reunions
func (ctl *ReunionController) Create(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var req dto.CreateReunionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Date.Before(time.Now()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "La date de la réunion doit être dans le futur")
	}

	reunion := req.ToModel(syndicID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(reunion).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la création de la réunion")
	}
	return helper.JsonCreated(c, "Réunion créée avec succès", dto.FromReunionModel(*reunion))
}

// List — GET /api/syndic/reunions?statut=&a_venir=true
func (ctl *ReunionController) List(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	pg := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&m.ReunionModel{}).
		Where("reunion_syndic_id = ?", syndicID)

	if s := strings.TrimSpace(c.Query("statut")); s != "" {
		tx = tx.Where("reunion_statut = ?", s)
	}
	if c.QueryBool("a_venir") {
		tx = tx.Where("reunion_date >= ?", time.Now())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du comptage des réunions")
	}

	var reunions []m.ReunionModel
	if err := tx.Order("reunion_date ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&reunions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des réunions")
	}

	return helper.JsonList(c, dto.FromReunionModelSlice(reunions), fiber.Map{
		"pagination": helper.BuildPagination(total, pg.Page, pg.PerPage),
	})
}

// GetByID returns a reunion with its invitations.
// GET /api/syndic/reunions/:id
func (ctl *ReunionController) GetByID(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	reunionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de réunion invalide")
	}

	reunion, err := ctl.findOwned(c, reunionID, syndicID)
	if err != nil {
		return err
	}

	d := dto.FromReunionModel(*reunion)

	var invitations []m.ReunionInvitationModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("invitation_reunion_id = ?", reunionID).
		Find(&invitations).Error; err == nil {
		for _, inv := range invitations {
			id := dto.FromInvitationModel(inv)
			var u usermodel.UserModel
			if err := ctl.DB.WithContext(c.UserContext()).
				First(&u, "user_id = ?", inv.InvitationProprietaireID).Error; err == nil {
				id.Proprietaire = u.FullName()
			}
			d.Invitations = append(d.Invitations, id)
		}
	}
	return helper.JsonOK(c, "OK", d)
}

// Update — PUT /api/syndic/reunions/:id
func (ctl *ReunionController) Update(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	reunionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de réunion invalide")
	}

	var req dto.UpdateReunionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	reunion, err := ctl.findOwned(c, reunionID, syndicID)
	if err != nil {
		return err
	}
	if reunion.ReunionStatut == m.ReunionStatutAnnulee {
		return helper.JsonError(c, fiber.StatusConflict, "Une réunion annulée ne peut plus être modifiée")
	}

	req.ApplyTo(reunion)
	if err := ctl.DB.WithContext(c.UserContext()).Save(reunion).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour de la réunion")
	}
	return helper.JsonUpdated(c, "Réunion mise à jour", dto.FromReunionModel(*reunion))
}

// Cancel — PATCH /api/syndic/reunions/:id/annuler
func (ctl *ReunionController) Cancel(c *fiber.Ctx) error {
	return ctl.transition(c, m.ReunionStatutAnnulee, "Réunion annulée",
		"La réunion « %s » a été annulée.")
}

// Complete — PATCH /api/syndic/reunions/:id/terminer
func (ctl *ReunionController) Complete(c *fiber.Ctx) error {
	return ctl.transition(c, m.ReunionStatutTerminee, "Réunion terminée", "")
}

func (ctl *ReunionController) transition(c *fiber.Ctx, target, okMsg, notifFmt string) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	reunionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de réunion invalide")
	}

	reunion, err := ctl.findOwned(c, reunionID, syndicID)
	if err != nil {
		return err
	}
	if !reunion.IsPlanifiee() {
		return helper.JsonError(c, fiber.StatusConflict, "Seule une réunion planifiée peut changer de statut")
	}

	reunion.ReunionStatut = target
	if err := ctl.DB.WithContext(c.UserContext()).Save(reunion).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour de la réunion")
	}

	if notifFmt != "" {
		ctl.notifyInvitees(c, reunion, strings.Replace(notifFmt, "%s", reunion.ReunionTitre, 1))
	}
	return helper.JsonUpdated(c, okMsg, dto.FromReunionModel(*reunion))
}

// Delete — DELETE /api/syndic/reunions/:id
func (ctl *ReunionController) Delete(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	reunionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de réunion invalide")
	}

	if _, err := ctl.findOwned(c, reunionID, syndicID); err != nil {
		return err
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invitation_reunion_id = ?", reunionID).
			Delete(&m.ReunionInvitationModel{}).Error; err != nil {
			return err
		}
		return tx.Where("reunion_id = ?", reunionID).Delete(&m.ReunionModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression de la réunion")
	}
	return helper.JsonDeleted(c, "Réunion supprimée", fiber.Map{"reunion_id": reunionID})
}

/* =========================================================
   Invitations
========================================================= */

// Invite — POST /api/syndic/reunions/:id/inviter
func (ctl *ReunionController) Invite(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	reunionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de réunion invalide")
	}

	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	reunion, err := ctl.findOwned(c, reunionID, syndicID)
	if err != nil {
		return err
	}
	if !reunion.IsPlanifiee() {
		return helper.JsonError(c, fiber.StatusConflict, "Impossible d'inviter à une réunion non planifiée")
	}

	created := 0
	for _, ownerID := range req.ProprietaireIDs {
		var dup int64
		ctl.DB.WithContext(c.UserContext()).
			Model(&m.ReunionInvitationModel{}).
			Where("invitation_reunion_id = ? AND invitation_proprietaire_id = ?", reunionID, ownerID).
			Count(&dup)
		if dup > 0 {
			continue
		}
		inv := m.ReunionInvitationModel{
			InvitationReunionID:      reunionID,
			InvitationProprietaireID: ownerID,
		}
		if err := ctl.DB.WithContext(c.UserContext()).Create(&inv).Error; err != nil {
			continue
		}
		created++
		ctl.Notifier.Push(ownerID,
			notifmodel.NotificationTypeReunion,
			"Invitation à une réunion",
			"Vous êtes invité(e) à la réunion « "+reunion.ReunionTitre+" » du "+reunion.ReunionDate.Format("02/01/2006")+".",
			map[string]interface{}{"reunion_id": reunion.ReunionID.String()})
	}

	return helper.JsonCreated(c, "Invitations envoyées", fiber.Map{"invitations_creees": created})
}

// MyInvitations lists the reunions the calling owner is invited to.
// GET /api/proprietaire/reunions
func (ctl *ReunionController) MyInvitations(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var invitations []m.ReunionInvitationModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("invitation_proprietaire_id = ?", ownerID).
		Find(&invitations).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des invitations")
	}

	out := make([]fiber.Map, 0, len(invitations))
	for _, inv := range invitations {
		var reunion m.ReunionModel
		if err := ctl.DB.WithContext(c.UserContext()).
			First(&reunion, "reunion_id = ?", inv.InvitationReunionID).Error; err != nil {
			continue
		}
		out = append(out, fiber.Map{
			"invitation": dto.FromInvitationModel(inv),
			"reunion":    dto.FromReunionModel(reunion),
		})
	}
	return helper.JsonOK(c, "OK", out)
}

// RSVP lets an invited owner accept or decline.
// PATCH /api/proprietaire/invitations/:id
func (ctl *ReunionController) RSVP(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	invID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant d'invitation invalide")
	}

	var req dto.RSVPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var inv m.ReunionInvitationModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("invitation_id = ? AND invitation_proprietaire_id = ?", invID, ownerID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invitation non trouvée")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de l'invitation")
	}

	inv.InvitationStatut = req.Statut
	if err := ctl.DB.WithContext(c.UserContext()).Save(&inv).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour de l'invitation")
	}
	return helper.JsonUpdated(c, "Réponse enregistrée", dto.FromInvitationModel(inv))
}

// Attendance records who actually showed up, keyed by invitation id.
// PATCH /api/syndic/reunions/:id/presences
func (ctl *ReunionController) Attendance(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	reunionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de réunion invalide")
	}

	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if _, err := ctl.findOwned(c, reunionID, syndicID); err != nil {
		return err
	}

	updated := 0
	for rawID, present := range req.Presences {
		invID, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		res := ctl.DB.WithContext(c.UserContext()).
			Model(&m.ReunionInvitationModel{}).
			Where("invitation_id = ? AND invitation_reunion_id = ?", invID, reunionID).
			Update("invitation_present", present)
		if res.Error == nil && res.RowsAffected > 0 {
			updated++
		}
	}
	return helper.JsonUpdated(c, "Présences enregistrées", fiber.Map{"presences_mises_a_jour": updated})
}

/* ===================== internals ===================== */

func (ctl *ReunionController) findOwned(c *fiber.Ctx, reunionID, syndicID uuid.UUID) (*m.ReunionModel, error) {
	var reunion m.ReunionModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("reunion_id = ? AND reunion_syndic_id = ?", reunionID, syndicID).
		First(&reunion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Réunion non trouvée")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de la réunion")
	}
	return &reunion, nil
}

func (ctl *ReunionController) notifyInvitees(c *fiber.Ctx, reunion *m.ReunionModel, message string) {
	var invitations []m.ReunionInvitationModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("invitation_reunion_id = ?", reunion.ReunionID).
		Find(&invitations).Error; err != nil {
		return
	}
	ids := make([]uuid.UUID, 0, len(invitations))
	for _, inv := range invitations {
		ids = append(ids, inv.InvitationProprietaireID)
	}
	ctl.Notifier.PushMany(ids, notifmodel.NotificationTypeReunion, "Réunion", message,
		map[string]interface{}{"reunion_id": reunion.ReunionID.String()})
}
