package timeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Display colors per reported status, used by the web clients.
const (
	ColorCompleted = "#10b981"
	ColorPending   = "#f59e0b"
	ColorOverdue   = "#ef4444"
	ColorToday     = "#3b82f6"
	ColorCancelled = "#6b7280"
)

// Service builds the wedding countdown view.
type Service interface {
	Timeline(ctx context.Context, weddingID uuid.UUID) (*Timeline, error)
}

// Entry is one function on the timeline. Status is the reported state:
// stored pending functions surface as overdue once their date passes and as
// today on the day itself.
type Entry struct {
	Function      models.WeddingFunction `json:"function"`
	Status        string                 `json:"status"`
	Color         string                 `json:"color"`
	DaysUntil     int                    `json:"days_until"`
	CountdownText string                 `json:"countdown_text"`
}

// Timeline is the full countdown view for a wedding.
type Timeline struct {
	WeddingDate     time.Time `json:"wedding_date"`
	DaysToWedding   int       `json:"days_to_wedding"`
	Entries         []Entry   `json:"entries"`
	CompletedCount  int       `json:"completed_count"`
	TotalCount      int       `json:"total_count"`
	ProgressPercent float64   `json:"progress_percent"`
}

type service struct {
	weddingsRepo  weddings.Repository
	functionsRepo functions.Repository
	now           func() time.Time
}

// NewService wires timeline dependencies.
func NewService(weddingsRepo weddings.Repository, functionsRepo functions.Repository) (Service, error) {
	if weddingsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "weddings repository required")
	}
	if functionsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "functions repository required")
	}
	return &service{
		weddingsRepo:  weddingsRepo,
		functionsRepo: functionsRepo,
		now:           time.Now,
	}, nil
}

func (s *service) Timeline(ctx context.Context, weddingID uuid.UUID) (*Timeline, error) {
	wedding, err := s.weddingsRepo.GetByID(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get wedding")
	}
	if wedding == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}
	list, err := s.functionsRepo.List(ctx, functions.ListFilter{WeddingID: weddingID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list functions")
	}

	today := dateOnly(s.now().UTC())
	timeline := &Timeline{
		WeddingDate:   wedding.WeddingDate,
		DaysToWedding: daysBetween(today, dateOnly(wedding.WeddingDate)),
		Entries:       make([]Entry, 0, len(list)),
		TotalCount:    len(list),
	}

	for _, function := range list {
		status := reportedStatus(function, today)
		if status == enums.FunctionCompleted.String() {
			timeline.CompletedCount++
		}
		days := daysBetween(today, dateOnly(function.Date))
		timeline.Entries = append(timeline.Entries, Entry{
			Function:      function,
			Status:        status,
			Color:         colorFor(status),
			DaysUntil:     days,
			CountdownText: countdownText(days),
		})
	}
	if timeline.TotalCount > 0 {
		timeline.ProgressPercent = float64(timeline.CompletedCount) / float64(timeline.TotalCount) * 100
	}
	return timeline, nil
}

// reportedStatus derives the display status without touching stored rows:
// the cron pass owns persisting overdue transitions.
func reportedStatus(function models.WeddingFunction, today time.Time) string {
	if function.Status != enums.FunctionPending {
		return function.Status.String()
	}
	functionDay := dateOnly(function.Date)
	switch {
	case functionDay.Before(today):
		return enums.FunctionOverdue.String()
	case functionDay.Equal(today):
		return "today"
	default:
		return enums.FunctionPending.String()
	}
}

func colorFor(status string) string {
	switch status {
	case enums.FunctionCompleted.String():
		return ColorCompleted
	case enums.FunctionOverdue.String():
		return ColorOverdue
	case "today":
		return ColorToday
	case enums.FunctionCancelled.String():
		return ColorCancelled
	default:
		return ColorPending
	}
}

func countdownText(days int) string {
	switch {
	case days < -1:
		return "passed"
	case days == -1:
		return "yesterday"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return "upcoming"
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
