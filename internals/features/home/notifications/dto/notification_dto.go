package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "syndicapp_backend/internals/features/home/notifications/model"
)

type NotificationDTO struct {
	ID        uuid.UUID         `json:"id"`
	Type      string            `json:"type"`
	Titre     string            `json:"titre"`
	Message   string            `json:"message"`
	IsRead    bool              `json:"is_read"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func FromNotificationModel(n m.NotificationModel) NotificationDTO {
	return NotificationDTO{
		ID:        n.NotificationID,
		Type:      n.NotificationType,
		Titre:     n.NotificationTitre,
		Message:   n.NotificationMessage,
		IsRead:    n.NotificationIsRead,
		Metadata:  n.NotificationMetadata,
		CreatedAt: n.NotificationCreatedAt,
	}
}

func FromNotificationModelSlice(xs []m.NotificationModel) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromNotificationModel(it))
	}
	return out
}
