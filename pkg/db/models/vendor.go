package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// Vendor is a hired or shortlisted service provider for a wedding.
type Vendor struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID      uuid.UUID           `gorm:"column:wedding_id;type:uuid;not null;index"`
	Name           string              `gorm:"column:name;type:text;not null"`
	Type           string              `gorm:"column:type;type:text;not null"`
	ContactName    *string             `gorm:"column:contact_name;type:text"`
	Phone          *string             `gorm:"column:phone;type:text"`
	Email          *string             `gorm:"column:email;type:text"`
	Location       *string             `gorm:"column:location;type:text"`
	Latitude       *float64            `gorm:"column:latitude"`
	Longitude      *float64            `gorm:"column:longitude"`
	Cost           *decimal.Decimal    `gorm:"column:cost;type:numeric(14,2)"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:pending"`
	RatingTotal    float64             `gorm:"column:rating_total;not null;default:0"`
	RatingCount    int                 `gorm:"column:rating_count;not null;default:0"`
	AssignedUserID *uuid.UUID          `gorm:"column:assigned_user_id;type:uuid"`
	Shared         bool                `gorm:"column:shared;not null;default:false"`
	Notes          *string             `gorm:"column:notes;type:text"`
	CreatedBy      uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// AverageRating returns the running mean of submitted ratings, 0 when unrated.
func (v Vendor) AverageRating() float64 {
	if v.RatingCount == 0 {
		return 0
	}
	return v.RatingTotal / float64(v.RatingCount)
}
