package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// Guest is one invited person (or household) on the wedding guest list.
// Phone numbers are normalized to E.164 before they reach this struct.
type Guest struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID       uuid.UUID        `gorm:"column:wedding_id;type:uuid;not null;index"`
	Name            string           `gorm:"column:name;type:text;not null"`
	Email           *string          `gorm:"column:email;type:text"`
	Phone           *string          `gorm:"column:phone;type:text"`
	Relationship    *string          `gorm:"column:relationship;type:text"`
	Side            enums.GuestSide  `gorm:"column:side;type:text;not null"`
	RSVPStatus      enums.RSVPStatus `gorm:"column:rsvp_status;type:text;not null;default:pending"`
	RSVPRespondedAt *time.Time       `gorm:"column:rsvp_responded_at"`
	PlusOnes        int              `gorm:"column:plus_ones;not null;default:0"`
	FunctionID      *uuid.UUID       `gorm:"column:function_id;type:uuid"`
	CreatedBy       uuid.UUID        `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
