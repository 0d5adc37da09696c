package models

import (
	"time"

	"github.com/google/uuid"
)

// PackingList groups packing items for one member of the wedding party.
type PackingList struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID   uuid.UUID `gorm:"column:wedding_id;type:uuid;not null;index"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	Title       string    `gorm:"column:title;type:text;not null"`
	Description *string   `gorm:"column:description;type:text"`
	Honeymoon   bool      `gorm:"column:honeymoon;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// PackingItem is one entry on a packing list.
type PackingItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ListID    uuid.UUID  `gorm:"column:list_id;type:uuid;not null;index"`
	Name      string     `gorm:"column:name;type:text;not null"`
	Quantity  int        `gorm:"column:quantity;not null;default:1"`
	IsPacked  bool       `gorm:"column:is_packed;not null;default:false"`
	PackedAt  *time.Time `gorm:"column:packed_at"`
	Notes     *string    `gorm:"column:notes;type:text"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
