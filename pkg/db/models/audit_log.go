package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records who changed what. Details carries a JSON snapshot of the
// mutation payload.
type AuditLog struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID *uuid.UUID `gorm:"column:wedding_id;type:uuid;index"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid"`
	Module    string     `gorm:"column:module;type:text;not null"`
	Action    string     `gorm:"column:action;type:text;not null"`
	RecordID  *uuid.UUID `gorm:"column:record_id;type:uuid"`
	Details   *string    `gorm:"column:details;type:jsonb"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
