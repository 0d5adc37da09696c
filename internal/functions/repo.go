package functions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

// ListFilter narrows a wedding's function listing.
type ListFilter struct {
	WeddingID uuid.UUID
	Status    *enums.FunctionStatus
	Type      *string
}

// Repository exposes persistence helpers for wedding functions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, function *models.WeddingFunction) error
	GetByID(ctx context.Context, weddingID, functionID uuid.UUID) (*models.WeddingFunction, error)
	List(ctx context.Context, filter ListFilter) ([]models.WeddingFunction, error)
	Update(ctx context.Context, function *models.WeddingFunction) error
	Delete(ctx context.Context, weddingID, functionID uuid.UUID) (int64, error)
	MarkOverdue(ctx context.Context, before time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a function repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, function *models.WeddingFunction) error {
	return r.db.WithContext(ctx).Create(function).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, functionID uuid.UUID) (*models.WeddingFunction, error) {
	var function models.WeddingFunction
	err := r.db.WithContext(ctx).
		First(&function, "id = ? AND wedding_id = ?", functionID, weddingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &function, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter ListFilter) ([]models.WeddingFunction, error) {
	query := r.db.WithContext(ctx).
		Model(&models.WeddingFunction{}).
		Where("wedding_id = ?", filter.WeddingID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	var functions []models.WeddingFunction
	err := query.Order("date ASC").Find(&functions).Error
	return functions, err
}

func (r *repositoryImpl) Update(ctx context.Context, function *models.WeddingFunction) error {
	return r.db.WithContext(ctx).Save(function).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, functionID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND wedding_id = ?", functionID, weddingID).
		Delete(&models.WeddingFunction{})
	return result.RowsAffected, result.Error
}

// MarkOverdue flips pending functions whose date passed before the cutoff.
// Used by the cron worker so stored statuses catch up with the calendar.
func (r *repositoryImpl) MarkOverdue(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.WeddingFunction{}).
		Where("status = ? AND date < ?", enums.FunctionPending, before).
		UpdateColumn("status", enums.FunctionOverdue)
	return result.RowsAffected, result.Error
}
