package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
	"github.com/pmrathi94/VivahSetu/pkg/pagination"
)

// Entry describes one recorded mutation. Details is marshalled to JSON
// before storage; leave it nil when there is no payload worth keeping.
type Entry struct {
	WeddingID *uuid.UUID
	UserID    *uuid.UUID
	Module    string
	Action    string
	RecordID  *uuid.UUID
	Details   any
}

// Service records and lists audit trail entries.
type Service interface {
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error)
}

// Page is one cursor page of audit entries, newest first.
type Page struct {
	Entries    []models.AuditLog `json:"entries"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires audit dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

// Record writes an audit row best-effort. A failed write must never fail the
// mutation it describes, so errors are logged and swallowed.
func (s *service) Record(ctx context.Context, entry Entry) {
	if entry.Module == "" || entry.Action == "" {
		return
	}

	row := &models.AuditLog{
		ID:        uuid.New(),
		WeddingID: entry.WeddingID,
		UserID:    entry.UserID,
		Module:    entry.Module,
		Action:    entry.Action,
		RecordID:  entry.RecordID,
		CreatedAt: s.now().UTC(),
	}
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "audit_module", entry.Module), "audit details not serializable, dropping payload")
		} else {
			details := string(raw)
			row.Details = &details
		}
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "audit_module", entry.Module), "audit write failed", err)
	}
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error) {
	if filter.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	entries, err := s.repo.List(ctx, filter, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}

	page := &Page{HasMore: len(entries) > limit}
	if page.HasMore {
		entries = entries[:limit]
	}
	page.Entries = entries
	if page.HasMore && len(entries) > 0 {
		last := entries[len(entries)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}
