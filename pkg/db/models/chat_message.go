package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry on a wedding's shared message board.
type ChatMessage struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID uuid.UUID  `gorm:"column:wedding_id;type:uuid;not null;index"`
	SenderID  uuid.UUID  `gorm:"column:sender_id;type:uuid;not null"`
	Message   string     `gorm:"column:message;type:text;not null"`
	EditedAt  *time.Time `gorm:"column:edited_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
