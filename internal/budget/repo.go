package budget

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
)

// Repository exposes persistence helpers for budget expenses.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, weddingID, expenseID uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, weddingID uuid.UUID, category *string) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, weddingID, expenseID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a budget repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, expenseID uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		First(&expense, "id = ? AND wedding_id = ?", expenseID, weddingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *repositoryImpl) List(ctx context.Context, weddingID uuid.UUID, category *string) ([]models.Expense, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("wedding_id = ?", weddingID)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var expenses []models.Expense
	err := query.Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *repositoryImpl) Update(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, expenseID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND wedding_id = ?", expenseID, weddingID).
		Delete(&models.Expense{})
	return result.RowsAffected, result.Error
}
