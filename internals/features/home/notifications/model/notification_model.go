package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationTypePaiementRecu     = "paiement_recu"
	NotificationTypePaiementConfirme = "paiement_confirme"
	NotificationTypePaiementRejete   = "paiement_rejete"
	NotificationTypeRappelPaiement   = "rappel_paiement"
	NotificationTypeNouvelleCharge   = "nouvelle_charge"
	NotificationTypeReunion          = "reunion"
	NotificationTypeGenerale         = "generale"
)

// NotificationModel is an in-app message for one user. Metadata carries
// type-specific references (charge_id, payment_id, reunion_id).
type NotificationModel struct {
	NotificationID uuid.UUID `gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"notification_id"`

	NotificationUserID uuid.UUID `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`

	NotificationType    string `gorm:"column:notification_type;type:varchar(40);not null;default:'generale'" json:"notification_type"`
	NotificationTitre   string `gorm:"column:notification_titre;size:150;not null" json:"notification_titre"`
	NotificationMessage string `gorm:"column:notification_message;type:text;not null" json:"notification_message"`

	NotificationIsRead   bool              `gorm:"column:notification_is_read;not null;default:false;index" json:"notification_is_read"`
	NotificationMetadata datatypes.JSONMap `gorm:"column:notification_metadata" json:"notification_metadata,omitempty"`

	NotificationCreatedAt time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time      `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
	NotificationDeletedAt gorm.DeletedAt `gorm:"column:notification_deleted_at;index" json:"-"`
}

func (NotificationModel) TableName() string { return "notifications" }
