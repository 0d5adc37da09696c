package packing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
)

// Repository exposes persistence helpers for packing lists and items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateList(ctx context.Context, list *models.PackingList) error
	GetList(ctx context.Context, weddingID, listID uuid.UUID) (*models.PackingList, error)
	Lists(ctx context.Context, weddingID uuid.UUID, ownerID *uuid.UUID) ([]models.PackingList, error)
	UpdateList(ctx context.Context, list *models.PackingList) error
	DeleteList(ctx context.Context, weddingID, listID uuid.UUID) (int64, error)

	CreateItem(ctx context.Context, item *models.PackingItem) error
	GetItem(ctx context.Context, listID, itemID uuid.UUID) (*models.PackingItem, error)
	Items(ctx context.Context, listID uuid.UUID) ([]models.PackingItem, error)
	UpdateItem(ctx context.Context, item *models.PackingItem) error
	DeleteItem(ctx context.Context, listID, itemID uuid.UUID) (int64, error)
	DeleteItemsForList(ctx context.Context, listID uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a packing repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) CreateList(ctx context.Context, list *models.PackingList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *repositoryImpl) GetList(ctx context.Context, weddingID, listID uuid.UUID) (*models.PackingList, error) {
	var list models.PackingList
	err := r.db.WithContext(ctx).
		First(&list, "id = ? AND wedding_id = ?", listID, weddingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *repositoryImpl) Lists(ctx context.Context, weddingID uuid.UUID, ownerID *uuid.UUID) ([]models.PackingList, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PackingList{}).
		Where("wedding_id = ?", weddingID)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var lists []models.PackingList
	err := query.Order("created_at ASC").Find(&lists).Error
	return lists, err
}

func (r *repositoryImpl) UpdateList(ctx context.Context, list *models.PackingList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

func (r *repositoryImpl) DeleteList(ctx context.Context, weddingID, listID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND wedding_id = ?", listID, weddingID).
		Delete(&models.PackingList{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) CreateItem(ctx context.Context, item *models.PackingItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repositoryImpl) GetItem(ctx context.Context, listID, itemID uuid.UUID) (*models.PackingItem, error) {
	var item models.PackingItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND list_id = ?", itemID, listID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) Items(ctx context.Context, listID uuid.UUID) ([]models.PackingItem, error) {
	var items []models.PackingItem
	err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *repositoryImpl) UpdateItem(ctx context.Context, item *models.PackingItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repositoryImpl) DeleteItem(ctx context.Context, listID, itemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND list_id = ?", itemID, listID).
		Delete(&models.PackingItem{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteItemsForList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Delete(&models.PackingItem{}).Error
}
