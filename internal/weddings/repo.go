package weddings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
)

// Repository exposes persistence helpers for weddings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, wedding *models.Wedding) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Wedding, error)
	ListAll(ctx context.Context) ([]models.Wedding, error)
	Update(ctx context.Context, wedding *models.Wedding) error
	Archive(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	ArchivePastWeddings(ctx context.Context, olderThan time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a weddings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, wedding *models.Wedding) error {
	return r.db.WithContext(ctx).Create(wedding).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error) {
	var wedding models.Wedding
	err := r.db.WithContext(ctx).First(&wedding, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wedding, nil
}

func (r *repositoryImpl) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Wedding, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var weddings []models.Wedding
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("wedding_date ASC").
		Find(&weddings).Error
	return weddings, err
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]models.Wedding, error) {
	var weddings []models.Wedding
	err := r.db.WithContext(ctx).Order("wedding_date ASC").Find(&weddings).Error
	return weddings, err
}

func (r *repositoryImpl) Update(ctx context.Context, wedding *models.Wedding) error {
	return r.db.WithContext(ctx).Save(wedding).Error
}

func (r *repositoryImpl) Archive(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wedding{}).
		Where("id = ? AND archived_at IS NULL", id).
		UpdateColumn("archived_at", at)
	return result.RowsAffected, result.Error
}

// ArchivePastWeddings soft-archives weddings whose date passed before the
// cutoff. Used by the cron worker.
func (r *repositoryImpl) ArchivePastWeddings(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wedding{}).
		Where("wedding_date < ? AND archived_at IS NULL", olderThan).
		UpdateColumn("archived_at", time.Now().UTC())
	return result.RowsAffected, result.Error
}
