package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/pagination"
)

// Repository exposes persistence helpers for chat messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, message *models.ChatMessage) error
	GetByID(ctx context.Context, weddingID, messageID uuid.UUID) (*models.ChatMessage, error)
	List(ctx context.Context, weddingID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.ChatMessage, error)
	Update(ctx context.Context, message *models.ChatMessage) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a chat repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, messageID uuid.UUID) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.WithContext(ctx).
		First(&message, "id = ? AND wedding_id = ?", messageID, weddingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// List pages newest-first. The cursor keys on (created_at, id) so messages
// sharing a timestamp still page deterministically.
func (r *repositoryImpl) List(ctx context.Context, weddingID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("wedding_id = ?", weddingID)
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var messages []models.ChatMessage
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *repositoryImpl) Update(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}
