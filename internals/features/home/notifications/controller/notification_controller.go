package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "syndicapp_backend/internals/features/home/notifications/dto"
	m "syndicapp_backend/internals/features/home/notifications/model"
	helper "syndicapp_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// Mine — GET /api/notifications?unread=true
func (ctl *NotificationController) Mine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	pg := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&m.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if c.QueryBool("unread") {
		tx = tx.Where("notification_is_read = FALSE")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du comptage des notifications")
	}

	var notifs []m.NotificationModel
	if err := tx.Order("notification_created_at DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&notifs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des notifications")
	}

	var unread int64
	ctl.DB.WithContext(c.UserContext()).
		Model(&m.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = FALSE", userID).
		Count(&unread)

	return helper.JsonList(c, dto.FromNotificationModelSlice(notifs), fiber.Map{
		"pagination":   helper.BuildPagination(total, pg.Page, pg.PerPage),
		"non_lues":     unread,
	})
}

// MarkRead — PATCH /api/notifications/:id/lue
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de notification invalide")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&m.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", notifID, userID).
		Update("notification_is_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour de la notification")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification non trouvée")
	}
	return helper.JsonUpdated(c, "Notification marquée comme lue", nil)
}

// MarkAllRead — PATCH /api/notifications/toutes-lues
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = FALSE", userID).
		Update("notification_is_read", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour des notifications")
	}
	return helper.JsonUpdated(c, "Toutes les notifications marquées comme lues", nil)
}

// Delete — DELETE /api/notifications/:id
func (ctl *NotificationController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de notification invalide")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("notification_id = ? AND notification_user_id = ?", notifID, userID).
		Delete(&m.NotificationModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression de la notification")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification non trouvée")
	}
	return helper.JsonDeleted(c, "Notification supprimée", fiber.Map{"notification_id": notifID})
}

// DeleteAll — DELETE /api/notifications
func (ctl *NotificationController) DeleteAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Where("notification_user_id = ?", userID).
		Delete(&m.NotificationModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression des notifications")
	}
	return helper.JsonDeleted(c, "Notifications supprimées", nil)
}
