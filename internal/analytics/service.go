package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/internal/budget"
	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/internal/guests"
	"github.com/pmrathi94/VivahSetu/internal/packing"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service computes per-wedding dashboard aggregations. All of them are
// single-pass reductions over the wedding's rows fetched in full; row counts
// per wedding are small enough that this beats SQL grouping.
type Service interface {
	Budget(ctx context.Context, weddingID uuid.UUID) (*budget.Summary, error)
	Functions(ctx context.Context, weddingID uuid.UUID) (*FunctionsReport, error)
	RSVP(ctx context.Context, weddingID uuid.UUID) (*RSVPReport, error)
	Packing(ctx context.Context, weddingID uuid.UUID) (*PackingReport, error)
	Dashboard(ctx context.Context, weddingID uuid.UUID) (*Dashboard, error)
}

// FunctionsReport aggregates function lifecycle state.
type FunctionsReport struct {
	Total             int            `json:"total"`
	ByStatus          map[string]int `json:"by_status"`
	CompletionPercent float64        `json:"completion_percent"`
	Upcoming          int            `json:"upcoming"`
}

// RSVPReport aggregates guest responses.
type RSVPReport struct {
	TotalGuests    int            `json:"total_guests"`
	ByStatus       map[string]int `json:"by_status"`
	BySide         map[string]int `json:"by_side"`
	PlusOnes       int            `json:"plus_ones"`
	ExpectedHeads  int            `json:"expected_heads"`
	ResponseRate   float64        `json:"response_rate"`
	AttendancePlan float64        `json:"attendance_rate"`
}

// PackingReport aggregates packing progress across all lists.
type PackingReport struct {
	Lists             int       `json:"lists"`
	TotalItems        int       `json:"total_items"`
	PackedItems       int       `json:"packed_items"`
	CompletionPercent float64   `json:"completion_percent"`
	PerList           []ListRow `json:"per_list"`
}

// ListRow is one packing list's progress line.
type ListRow struct {
	ListID            uuid.UUID `json:"list_id"`
	Title             string    `json:"title"`
	TotalItems        int       `json:"total_items"`
	PackedItems       int       `json:"packed_items"`
	CompletionPercent float64   `json:"completion_percent"`
}

// Dashboard is the combined overview report.
type Dashboard struct {
	DaysToWedding int              `json:"days_to_wedding"`
	Budget        *budget.Summary  `json:"budget"`
	Functions     *FunctionsReport `json:"functions"`
	RSVP          *RSVPReport      `json:"rsvp"`
	Packing       *PackingReport   `json:"packing"`
}

type service struct {
	weddingsRepo  weddings.Repository
	guestsRepo    guests.Repository
	budgetRepo    budget.Repository
	functionsRepo functions.Repository
	packingRepo   packing.Repository
	now           func() time.Time
}

// NewService wires analytics dependencies.
func NewService(
	weddingsRepo weddings.Repository,
	guestsRepo guests.Repository,
	budgetRepo budget.Repository,
	functionsRepo functions.Repository,
	packingRepo packing.Repository,
) (Service, error) {
	if weddingsRepo == nil || guestsRepo == nil || budgetRepo == nil || functionsRepo == nil || packingRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "analytics repositories required")
	}
	return &service{
		weddingsRepo:  weddingsRepo,
		guestsRepo:    guestsRepo,
		budgetRepo:    budgetRepo,
		functionsRepo: functionsRepo,
		packingRepo:   packingRepo,
		now:           time.Now,
	}, nil
}

func (s *service) Budget(ctx context.Context, weddingID uuid.UUID) (*budget.Summary, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	expenses, err := s.budgetRepo.List(ctx, weddingID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return budget.Summarize(expenses), nil
}

func (s *service) Functions(ctx context.Context, weddingID uuid.UUID) (*FunctionsReport, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	list, err := s.functionsRepo.List(ctx, functions.ListFilter{WeddingID: weddingID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list functions")
	}

	report := &FunctionsReport{
		Total:    len(list),
		ByStatus: map[string]int{},
	}
	today := s.now().UTC()
	completed := 0
	for _, function := range list {
		report.ByStatus[function.Status.String()]++
		if function.Status == enums.FunctionCompleted {
			completed++
		}
		if function.Status == enums.FunctionPending && function.Date.After(today) {
			report.Upcoming++
		}
	}
	if report.Total > 0 {
		report.CompletionPercent = float64(completed) / float64(report.Total) * 100
	}
	return report, nil
}

func (s *service) RSVP(ctx context.Context, weddingID uuid.UUID) (*RSVPReport, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	list, err := s.guestsRepo.List(ctx, guests.ListFilter{WeddingID: weddingID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list guests")
	}

	report := &RSVPReport{
		TotalGuests: len(list),
		ByStatus:    map[string]int{},
		BySide:      map[string]int{},
	}
	responded := 0
	attending := 0
	for _, guest := range list {
		report.ByStatus[guest.RSVPStatus.String()]++
		report.BySide[guest.Side.String()]++
		if guest.RSVPStatus != enums.RSVPPending {
			responded++
		}
		if guest.RSVPStatus == enums.RSVPYes {
			attending++
			report.PlusOnes += guest.PlusOnes
			report.ExpectedHeads += 1 + guest.PlusOnes
		}
	}
	if report.TotalGuests > 0 {
		report.ResponseRate = float64(responded) / float64(report.TotalGuests) * 100
		report.AttendancePlan = float64(attending) / float64(report.TotalGuests) * 100
	}
	return report, nil
}

func (s *service) Packing(ctx context.Context, weddingID uuid.UUID) (*PackingReport, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	lists, err := s.packingRepo.Lists(ctx, weddingID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packing lists")
	}

	report := &PackingReport{
		Lists:   len(lists),
		PerList: make([]ListRow, 0, len(lists)),
	}
	for _, list := range lists {
		items, err := s.packingRepo.Items(ctx, list.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packing items")
		}
		row := ListRow{ListID: list.ID, Title: list.Title, TotalItems: len(items)}
		for _, item := range items {
			if item.IsPacked {
				row.PackedItems++
			}
		}
		if row.TotalItems > 0 {
			row.CompletionPercent = float64(row.PackedItems) / float64(row.TotalItems) * 100
		}
		report.TotalItems += row.TotalItems
		report.PackedItems += row.PackedItems
		report.PerList = append(report.PerList, row)
	}
	if report.TotalItems > 0 {
		report.CompletionPercent = float64(report.PackedItems) / float64(report.TotalItems) * 100
	}
	return report, nil
}

func (s *service) Dashboard(ctx context.Context, weddingID uuid.UUID) (*Dashboard, error) {
	wedding, err := s.weddingsRepo.GetByID(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get wedding")
	}
	if wedding == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	budgetReport, err := s.Budget(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	functionsReport, err := s.Functions(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	rsvpReport, err := s.RSVP(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	packingReport, err := s.Packing(ctx, weddingID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	days := int(wedding.WeddingDate.Sub(now).Hours() / 24)
	return &Dashboard{
		DaysToWedding: days,
		Budget:        budgetReport,
		Functions:     functionsReport,
		RSVP:          rsvpReport,
		Packing:       packingReport,
	}, nil
}
