package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// WeddingFunction is one event on the wedding calendar, such as the haldi,
// sangeet, ceremony or reception.
type WeddingFunction struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID   uuid.UUID            `gorm:"column:wedding_id;type:uuid;not null;index"`
	Name        string               `gorm:"column:name;type:text;not null"`
	Type        string               `gorm:"column:type;type:text;not null"`
	Date        time.Time            `gorm:"column:date;not null"`
	StartTime   *string              `gorm:"column:start_time;type:text"`
	EndTime     *string              `gorm:"column:end_time;type:text"`
	Venue       *string              `gorm:"column:venue;type:text"`
	Description *string              `gorm:"column:description;type:text"`
	Status      enums.FunctionStatus `gorm:"column:status;type:text;not null;default:pending"`
	CompletedAt *time.Time           `gorm:"column:completed_at"`
	CreatedBy   uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (WeddingFunction) TableName() string {
	return "wedding_functions"
}
