package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/internal/memberships"
	"github.com/pmrathi94/VivahSetu/internal/users"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
	"github.com/pmrathi94/VivahSetu/pkg/mailer"
	"github.com/pmrathi94/VivahSetu/pkg/pagination"
)

// Service defines notification operations.
type Service interface {
	Notify(ctx context.Context, params NotifyParams) (*models.Notification, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error)
	MarkRead(ctx context.Context, weddingID, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, weddingID, userID uuid.UUID) (int64, error)
	EmergencyBroadcast(ctx context.Context, params BroadcastParams) (int, error)
}

// NotifyParams carries one notification addressed to one member.
type NotifyParams struct {
	WeddingID uuid.UUID
	UserID    uuid.UUID
	Type      enums.NotificationType
	Title     string
	Message   string
	Link      *string
}

// BroadcastParams carries an emergency alert fanned out to every wedding
// member.
type BroadcastParams struct {
	WeddingID uuid.UUID
	SenderID  uuid.UUID
	Title     string
	Message   string
}

// Page is one cursor page of notifications plus the member's unread count.
type Page struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	NextCursor    string                `json:"next_cursor,omitempty"`
	HasMore       bool                  `json:"has_more"`
}

type service struct {
	repo        Repository
	memberships memberships.Repository
	usersRepo   users.Repository
	mail        mailer.Mailer
	logg        *logger.Logger
	now         func() time.Time
}

// NewService wires notification dependencies. The users repository and
// mailer are optional; without them emergency alerts stay in-app only.
func NewService(
	repo Repository,
	membershipsRepo memberships.Repository,
	usersRepo users.Repository,
	mail mailer.Mailer,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if membershipsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "memberships repository required")
	}
	return &service{
		repo:        repo,
		memberships: membershipsRepo,
		usersRepo:   usersRepo,
		mail:        mail,
		logg:        logg,
		now:         time.Now,
	}, nil
}

func (s *service) Notify(ctx context.Context, params NotifyParams) (*models.Notification, error) {
	if params.WeddingID == uuid.Nil || params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id and user id required")
	}
	if !params.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		WeddingID: params.WeddingID,
		UserID:    params.UserID,
		Type:      params.Type,
		Title:     title,
		Message:   strings.TrimSpace(params.Message),
		Link:      params.Link,
		SentVia:   enums.SentViaInApp,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return notification, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error) {
	if filter.WeddingID == uuid.Nil || filter.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id and user id required")
	}
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	notifications, err := s.repo.List(ctx, filter, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.repo.CountUnread(ctx, filter.WeddingID, filter.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread")
	}

	page := &Page{UnreadCount: unread, HasMore: len(notifications) > limit}
	if page.HasMore {
		notifications = notifications[:limit]
	}
	page.Notifications = notifications
	if page.HasMore && len(notifications) > 0 {
		last := notifications[len(notifications)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

// MarkRead is idempotent: re-reading an already read notification succeeds.
func (s *service) MarkRead(ctx context.Context, weddingID, userID, notificationID uuid.UUID) error {
	affected, err := s.repo.MarkRead(ctx, weddingID, userID, notificationID, s.now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if affected > 0 {
		return nil
	}

	existing, err := s.repo.GetByID(ctx, weddingID, userID, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get notification")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, weddingID, userID uuid.UUID) (int64, error) {
	affected, err := s.repo.MarkAllRead(ctx, weddingID, userID, s.now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark all read")
	}
	return affected, nil
}

// EmergencyBroadcast creates an emergency notification for every wedding
// member, sender included, and emails members best-effort when a mailer is
// configured. Returns the number of members notified.
func (s *service) EmergencyBroadcast(ctx context.Context, params BroadcastParams) (int, error) {
	if params.WeddingID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	message := strings.TrimSpace(params.Message)
	if message == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	members, err := s.memberships.ListByWedding(ctx, params.WeddingID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}
	if len(members) == 0 {
		return 0, nil
	}

	createdAt := s.now().UTC()
	batch := make([]models.Notification, 0, len(members))
	for _, member := range members {
		batch = append(batch, models.Notification{
			ID:        uuid.New(),
			WeddingID: params.WeddingID,
			UserID:    member.UserID,
			Type:      enums.NotificationEmergency,
			Title:     title,
			Message:   message,
			SentVia:   enums.SentViaInApp,
			CreatedAt: createdAt,
		})
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "broadcast notifications")
	}

	s.emailMembers(ctx, batch, title, message)
	return len(batch), nil
}

func (s *service) emailMembers(ctx context.Context, batch []models.Notification, title, message string) {
	if s.mail == nil || s.usersRepo == nil {
		return
	}
	for _, notification := range batch {
		user, err := s.usersRepo.GetByID(ctx, notification.UserID)
		if err != nil || user == nil {
			continue
		}
		err = s.mail.Send(ctx, mailer.Message{
			To:      []string{user.Email},
			Subject: fmt.Sprintf("Emergency alert: %s", title),
			Body:    message,
		})
		if err != nil && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("emergency alert email to %s: %v", user.Email, err))
		}
	}
}
