package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/pagination"
)

// MaxMessageLength bounds a single chat message body.
const MaxMessageLength = 4000

// Service defines chat operations.
type Service interface {
	Send(ctx context.Context, weddingID, senderID uuid.UUID, body string) (*models.ChatMessage, error)
	List(ctx context.Context, weddingID uuid.UUID, params pagination.Params) (*Page, error)
	Edit(ctx context.Context, weddingID, messageID, requesterID uuid.UUID, body string) (*models.ChatMessage, error)
	Delete(ctx context.Context, weddingID, messageID, requesterID uuid.UUID, moderator bool) error
}

// Page is one cursor page of chat messages, newest first.
type Page struct {
	Messages   []models.ChatMessage `json:"messages"`
	NextCursor string               `json:"next_cursor,omitempty"`
	HasMore    bool                 `json:"has_more"`
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires chat dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "chat repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Send(ctx context.Context, weddingID, senderID uuid.UUID, body string) (*models.ChatMessage, error) {
	if weddingID == uuid.Nil || senderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id and sender id required")
	}
	body, err := validateBody(body)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ID:        uuid.New(),
		WeddingID: weddingID,
		SenderID:  senderID,
		Message:   body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send message")
	}
	return message, nil
}

func (s *service) List(ctx context.Context, weddingID uuid.UUID, params pagination.Params) (*Page, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	messages, err := s.repo.List(ctx, weddingID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}

	page := &Page{HasMore: len(messages) > limit}
	if page.HasMore {
		messages = messages[:limit]
	}
	page.Messages = redactDeleted(messages)
	if page.HasMore && len(messages) > 0 {
		last := messages[len(messages)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) Edit(ctx context.Context, weddingID, messageID, requesterID uuid.UUID, body string) (*models.ChatMessage, error) {
	body, err := validateBody(body)
	if err != nil {
		return nil, err
	}
	message, err := s.get(ctx, weddingID, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the sender can edit a message")
	}

	editedAt := s.now().UTC()
	message.Message = body
	message.EditedAt = &editedAt
	if err := s.repo.Update(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "edit message")
	}
	return message, nil
}

// Delete blanks the message in place. Admin moderators may remove anyone's
// message; members only their own.
func (s *service) Delete(ctx context.Context, weddingID, messageID, requesterID uuid.UUID, moderator bool) error {
	message, err := s.get(ctx, weddingID, messageID)
	if err != nil {
		return err
	}
	if !moderator && message.SenderID != requesterID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the sender can delete a message")
	}

	deletedAt := s.now().UTC()
	message.DeletedAt = &deletedAt
	if err := s.repo.Update(ctx, message); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete message")
	}
	return nil
}

func (s *service) get(ctx context.Context, weddingID, messageID uuid.UUID) (*models.ChatMessage, error) {
	message, err := s.repo.GetByID(ctx, weddingID, messageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get message")
	}
	if message == nil || message.DeletedAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	return message, nil
}

// redactDeleted keeps deleted rows in the page so pagination stays stable,
// but strips their bodies.
func redactDeleted(messages []models.ChatMessage) []models.ChatMessage {
	for i := range messages {
		if messages[i].DeletedAt != nil {
			messages[i].Message = ""
		}
	}
	return messages
}

func validateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}
	if len(body) > MaxMessageLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message body too long")
	}
	return body, nil
}
