package guests

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
)

// Repository exposes persistence helpers for guests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, guest *models.Guest) error
	GetByID(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error)
	List(ctx context.Context, params ListFilter) ([]models.Guest, error)
	Update(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, weddingID, guestID uuid.UUID) (int64, error)
}

// ListFilter narrows the guest list query.
type ListFilter struct {
	WeddingID  uuid.UUID
	Side       *string
	RSVPStatus *string
	FunctionID *uuid.UUID
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a guests repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		First(&guest, "id = ? AND wedding_id = ?", guestID, weddingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *repositoryImpl) List(ctx context.Context, params ListFilter) ([]models.Guest, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("wedding_id = ?", params.WeddingID)
	if params.Side != nil {
		query = query.Where("side = ?", *params.Side)
	}
	if params.RSVPStatus != nil {
		query = query.Where("rsvp_status = ?", *params.RSVPStatus)
	}
	if params.FunctionID != nil {
		query = query.Where("function_id = ?", *params.FunctionID)
	}

	var guests []models.Guest
	err := query.Order("name ASC").Find(&guests).Error
	return guests, err
}

func (r *repositoryImpl) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, guestID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND wedding_id = ?", guestID, weddingID).
		Delete(&models.Guest{})
	return result.RowsAffected, result.Error
}
