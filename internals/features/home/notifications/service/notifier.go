package service

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"syndicapp_backend/internals/configs"
	model "syndicapp_backend/internals/features/home/notifications/model"
)

// Notifier writes in-app notifications. Failures are logged and swallowed so
// a broken notification insert never rolls back the business operation that
// triggered it.
type Notifier struct {
	DB *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{DB: db}
}

func (n *Notifier) Push(userID uuid.UUID, notifType, titre, message string, metadata map[string]interface{}) {
	notif := model.NotificationModel{
		NotificationUserID:   userID,
		NotificationType:     notifType,
		NotificationTitre:    titre,
		NotificationMessage:  message,
		NotificationMetadata: datatypes.JSONMap(metadata),
	}
	if err := n.DB.Create(&notif).Error; err != nil {
		configs.Log.WithError(err).WithFields(map[string]interface{}{
			"user_id": userID,
			"type":    notifType,
		}).Warn("échec de création de la notification")
	}
}

// PushMany fans one message out to several users.
func (n *Notifier) PushMany(userIDs []uuid.UUID, notifType, titre, message string, metadata map[string]interface{}) {
	for _, id := range userIDs {
		n.Push(id, notifType, titre, message, metadata)
	}
}
