package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// Expense is a single budget line item. EstimatedCost is the planned figure,
// ActualCost what has been paid or committed so far.
type Expense struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID     uuid.UUID           `gorm:"column:wedding_id;type:uuid;not null;index"`
	Category      string              `gorm:"column:category;type:text;not null"`
	Description   *string             `gorm:"column:description;type:text"`
	EstimatedCost decimal.Decimal     `gorm:"column:estimated_cost;type:numeric(14,2);not null"`
	ActualCost    decimal.Decimal     `gorm:"column:actual_cost;type:numeric(14,2);not null;default:0"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:pending"`
	OwnerUserID   uuid.UUID           `gorm:"column:owner_user_id;type:uuid;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
