package vendors

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
)

// ListFilter narrows a wedding's vendor listing.
type ListFilter struct {
	WeddingID uuid.UUID
	Type      *string
	Shared    *bool
}

// Repository exposes persistence helpers for vendors.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, weddingID, vendorID uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context, filter ListFilter) ([]models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, weddingID, vendorID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a vendor repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, vendorID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		First(&vendor, "id = ? AND wedding_id = ?", vendorID, weddingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter ListFilter) ([]models.Vendor, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("wedding_id = ?", filter.WeddingID)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Shared != nil {
		query = query.Where("shared = ?", *filter.Shared)
	}

	var vendors []models.Vendor
	err := query.Order("name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *repositoryImpl) Update(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, vendorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND wedding_id = ?", vendorID, weddingID).
		Delete(&models.Vendor{})
	return result.RowsAffected, result.Error
}
