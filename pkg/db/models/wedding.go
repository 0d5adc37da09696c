package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// Wedding is the tenant root. Every domain row hangs off a wedding ID.
type Wedding struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;type:text;not null"`
	WeddingDate time.Time  `gorm:"column:wedding_date;not null"`
	BrideID     uuid.UUID  `gorm:"column:bride_id;type:uuid;not null"`
	GroomID     uuid.UUID  `gorm:"column:groom_id;type:uuid;not null"`
	Venue       *string    `gorm:"column:venue;type:text"`
	Latitude    *float64   `gorm:"column:latitude"`
	Longitude   *float64   `gorm:"column:longitude"`
	Theme       *string    `gorm:"column:theme;type:text"`
	GuestCount  int        `gorm:"column:guest_count;not null;default:0"`
	CreatedBy   uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	ArchivedAt  *time.Time `gorm:"column:archived_at"`

	// Per-wedding app settings, flattened into columns.
	AppName        *string `gorm:"column:app_name;type:text"`
	PrimaryColor   *string `gorm:"column:primary_color;type:text"`
	SecondaryColor *string `gorm:"column:secondary_color;type:text"`
	Language       string  `gorm:"column:language;type:text;not null;default:en"`
	DarkMode       bool    `gorm:"column:dark_mode;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// WeddingRole links a user with a wedding and captures their role.
type WeddingRole struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID  uuid.UUID         `gorm:"column:wedding_id;type:uuid;not null;uniqueIndex:idx_wedding_roles_member"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_wedding_roles_member"`
	Role       enums.WeddingRole `gorm:"column:role;type:text;not null"`
	AssignedBy *uuid.UUID        `gorm:"column:assigned_by;type:uuid"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the plural-noun convention explicit for the membership table.
func (WeddingRole) TableName() string {
	return "wedding_roles"
}
