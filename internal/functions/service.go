package functions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service defines wedding function operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.WeddingFunction, error)
	List(ctx context.Context, filter ListFilter) ([]models.WeddingFunction, error)
	Get(ctx context.Context, weddingID, functionID uuid.UUID) (*models.WeddingFunction, error)
	Update(ctx context.Context, weddingID, functionID uuid.UUID, params UpdateParams) (*models.WeddingFunction, error)
	UpdateStatus(ctx context.Context, weddingID, functionID uuid.UUID, status enums.FunctionStatus) (*models.WeddingFunction, error)
	Delete(ctx context.Context, weddingID, functionID uuid.UUID) error
}

// CreateParams carries the new-function payload.
type CreateParams struct {
	WeddingID   uuid.UUID
	Name        string
	Type        string
	Date        time.Time
	StartTime   *string
	EndTime     *string
	Venue       *string
	Description *string
	CreatedBy   uuid.UUID
}

// UpdateParams carries mutable function fields. Nil fields are left
// untouched; status changes go through UpdateStatus.
type UpdateParams struct {
	Name        *string
	Type        *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Venue       *string
	Description *string
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires function dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "functions repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.WeddingFunction, error) {
	if params.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "function name required")
	}
	functionType := strings.TrimSpace(params.Type)
	if functionType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "function type required")
	}
	if params.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "function date required")
	}

	function := &models.WeddingFunction{
		ID:          uuid.New(),
		WeddingID:   params.WeddingID,
		Name:        name,
		Type:        functionType,
		Date:        params.Date,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Venue:       params.Venue,
		Description: params.Description,
		Status:      enums.FunctionPending,
		CreatedBy:   params.CreatedBy,
	}
	if err := s.repo.Create(ctx, function); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create function")
	}
	return function, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.WeddingFunction, error) {
	if filter.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid function status")
	}
	functions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list functions")
	}
	return functions, nil
}

func (s *service) Get(ctx context.Context, weddingID, functionID uuid.UUID) (*models.WeddingFunction, error) {
	function, err := s.repo.GetByID(ctx, weddingID, functionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get function")
	}
	if function == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "function not found")
	}
	return function, nil
}

func (s *service) Update(ctx context.Context, weddingID, functionID uuid.UUID, params UpdateParams) (*models.WeddingFunction, error) {
	function, err := s.Get(ctx, weddingID, functionID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "function name cannot be empty")
		}
		function.Name = name
	}
	if params.Type != nil {
		functionType := strings.TrimSpace(*params.Type)
		if functionType == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "function type cannot be empty")
		}
		function.Type = functionType
	}
	if params.Date != nil {
		if params.Date.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "function date cannot be empty")
		}
		function.Date = *params.Date
	}
	if params.StartTime != nil {
		function.StartTime = params.StartTime
	}
	if params.EndTime != nil {
		function.EndTime = params.EndTime
	}
	if params.Venue != nil {
		function.Venue = params.Venue
	}
	if params.Description != nil {
		function.Description = params.Description
	}

	if err := s.repo.Update(ctx, function); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update function")
	}
	return function, nil
}

// UpdateStatus moves the function through its lifecycle. Completing stamps
// completed_at; leaving the completed state clears it again.
func (s *service) UpdateStatus(ctx context.Context, weddingID, functionID uuid.UUID, status enums.FunctionStatus) (*models.WeddingFunction, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid function status")
	}
	function, err := s.Get(ctx, weddingID, functionID)
	if err != nil {
		return nil, err
	}

	switch status {
	case enums.FunctionCompleted:
		if function.CompletedAt == nil {
			completedAt := s.now().UTC()
			function.CompletedAt = &completedAt
		}
	default:
		function.CompletedAt = nil
	}
	function.Status = status

	if err := s.repo.Update(ctx, function); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update function status")
	}
	return function, nil
}

func (s *service) Delete(ctx context.Context, weddingID, functionID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, weddingID, functionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete function")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "function not found")
	}
	return nil
}
