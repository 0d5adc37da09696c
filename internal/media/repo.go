package media

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
)

// ListFilter narrows a wedding's media listing to current versions.
type ListFilter struct {
	WeddingID  uuid.UUID
	FunctionID *uuid.UUID
	FileType   *string
}

// Repository exposes persistence helpers for media items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.MediaItem) error
	GetByID(ctx context.Context, weddingID, itemID uuid.UUID) (*models.MediaItem, error)
	GetCurrent(ctx context.Context, weddingID, rootID uuid.UUID) (*models.MediaItem, error)
	ListCurrent(ctx context.Context, filter ListFilter) ([]models.MediaItem, error)
	ListVersions(ctx context.Context, weddingID, rootID uuid.UUID) ([]models.MediaItem, error)
	ClearCurrent(ctx context.Context, weddingID, rootID uuid.UUID) error
	Update(ctx context.Context, item *models.MediaItem) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a media repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.MediaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, itemID uuid.UUID) (*models.MediaItem, error) {
	var item models.MediaItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND wedding_id = ?", itemID, weddingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) GetCurrent(ctx context.Context, weddingID, rootID uuid.UUID) (*models.MediaItem, error) {
	var item models.MediaItem
	err := r.db.WithContext(ctx).
		First(&item, "root_id = ? AND wedding_id = ? AND is_current = ?", rootID, weddingID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) ListCurrent(ctx context.Context, filter ListFilter) ([]models.MediaItem, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MediaItem{}).
		Where("wedding_id = ? AND is_current = ?", filter.WeddingID, true)
	if filter.FunctionID != nil {
		query = query.Where("function_id = ?", *filter.FunctionID)
	}
	if filter.FileType != nil {
		query = query.Where("file_type = ?", *filter.FileType)
	}

	var items []models.MediaItem
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *repositoryImpl) ListVersions(ctx context.Context, weddingID, rootID uuid.UUID) ([]models.MediaItem, error) {
	var items []models.MediaItem
	err := r.db.WithContext(ctx).
		Where("root_id = ? AND wedding_id = ?", rootID, weddingID).
		Order("version_number DESC").
		Find(&items).Error
	return items, err
}

func (r *repositoryImpl) ClearCurrent(ctx context.Context, weddingID, rootID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.MediaItem{}).
		Where("root_id = ? AND wedding_id = ?", rootID, weddingID).
		Update("is_current", false).Error
}

func (r *repositoryImpl) Update(ctx context.Context, item *models.MediaItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}
