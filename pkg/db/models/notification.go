package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// Notification stores in-app notification payloads scoped to a wedding and
// addressed to one member.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID uuid.UUID              `gorm:"column:wedding_id;type:uuid;not null;index"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Type      enums.NotificationType `gorm:"column:type;type:text;not null"`
	Title     string                 `gorm:"column:title;type:text;not null"`
	Message   string                 `gorm:"column:message;type:text;not null"`
	Link      *string                `gorm:"column:link;type:text"`
	SentVia   enums.SentVia          `gorm:"column:sent_via;type:text;not null;default:in_app"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
