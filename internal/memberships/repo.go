package memberships

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
)

// Repository exposes persistence helpers for wedding role rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, role *models.WeddingRole) error
	Get(ctx context.Context, weddingID, userID uuid.UUID) (*models.WeddingRole, error)
	ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.WeddingRole, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WeddingRole, error)
	UpdateRole(ctx context.Context, weddingID, userID uuid.UUID, role string) (int64, error)
	Delete(ctx context.Context, weddingID, userID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a memberships repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, role *models.WeddingRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repositoryImpl) Get(ctx context.Context, weddingID, userID uuid.UUID) (*models.WeddingRole, error) {
	var role models.WeddingRole
	err := r.db.WithContext(ctx).
		First(&role, "wedding_id = ? AND user_id = ?", weddingID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repositoryImpl) ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.WeddingRole, error) {
	var roles []models.WeddingRole
	err := r.db.WithContext(ctx).
		Where("wedding_id = ?", weddingID).
		Order("created_at ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WeddingRole, error) {
	var roles []models.WeddingRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repositoryImpl) UpdateRole(ctx context.Context, weddingID, userID uuid.UUID, role string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.WeddingRole{}).
		Where("wedding_id = ? AND user_id = ?", weddingID, userID).
		UpdateColumn("role", role)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("wedding_id = ? AND user_id = ?", weddingID, userID).
		Delete(&models.WeddingRole{})
	return result.RowsAffected, result.Error
}
