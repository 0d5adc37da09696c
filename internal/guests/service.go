package guests

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// DefaultPhoneRegion is assumed when a guest phone number has no country
// prefix.
const DefaultPhoneRegion = "IN"

// Service defines guest list operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Guest, error)
	List(ctx context.Context, filter ListFilter) ([]models.Guest, error)
	Get(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error)
	Update(ctx context.Context, weddingID, guestID uuid.UUID, params UpdateParams) (*models.Guest, error)
	UpdateRSVP(ctx context.Context, weddingID, guestID uuid.UUID, status enums.RSVPStatus, plusOnes *int) (*models.Guest, error)
	Delete(ctx context.Context, weddingID, guestID uuid.UUID) error
}

// CreateParams carries the new-guest payload.
type CreateParams struct {
	WeddingID    uuid.UUID
	Name         string
	Email        *string
	Phone        *string
	Relationship *string
	Side         enums.GuestSide
	PlusOnes     int
	FunctionID   *uuid.UUID
	CreatedBy    uuid.UUID
}

// UpdateParams carries mutable guest fields. Nil fields are left untouched.
type UpdateParams struct {
	Name         *string
	Email        *string
	Phone        *string
	Relationship *string
	Side         *enums.GuestSide
	PlusOnes     *int
	FunctionID   *uuid.UUID
}

type service struct {
	repo Repository
}

// NewService wires guests dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "guests repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Guest, error) {
	if params.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name required")
	}
	if !params.Side.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "side must be bride or groom")
	}
	if params.PlusOnes < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plus ones cannot be negative")
	}

	phone, err := normalizePhone(params.Phone)
	if err != nil {
		return nil, err
	}

	guest := &models.Guest{
		ID:           uuid.New(),
		WeddingID:    params.WeddingID,
		Name:         name,
		Email:        params.Email,
		Phone:        phone,
		Relationship: params.Relationship,
		Side:         params.Side,
		RSVPStatus:   enums.RSVPPending,
		PlusOnes:     params.PlusOnes,
		FunctionID:   params.FunctionID,
		CreatedBy:    params.CreatedBy,
	}
	if err := s.repo.Create(ctx, guest); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create guest")
	}
	return guest, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Guest, error) {
	if filter.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	guests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list guests")
	}
	return guests, nil
}

func (s *service) Get(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error) {
	guest, err := s.repo.GetByID(ctx, weddingID, guestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get guest")
	}
	if guest == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
	}
	return guest, nil
}

func (s *service) Update(ctx context.Context, weddingID, guestID uuid.UUID, params UpdateParams) (*models.Guest, error) {
	guest, err := s.Get(ctx, weddingID, guestID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name cannot be empty")
		}
		guest.Name = name
	}
	if params.Email != nil {
		guest.Email = params.Email
	}
	if params.Phone != nil {
		phone, err := normalizePhone(params.Phone)
		if err != nil {
			return nil, err
		}
		guest.Phone = phone
	}
	if params.Relationship != nil {
		guest.Relationship = params.Relationship
	}
	if params.Side != nil {
		if !params.Side.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "side must be bride or groom")
		}
		guest.Side = *params.Side
	}
	if params.PlusOnes != nil {
		if *params.PlusOnes < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "plus ones cannot be negative")
		}
		guest.PlusOnes = *params.PlusOnes
	}
	if params.FunctionID != nil {
		guest.FunctionID = params.FunctionID
	}

	if err := s.repo.Update(ctx, guest); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update guest")
	}
	return guest, nil
}

// UpdateRSVP records the guest's reply and stamps the response time.
func (s *service) UpdateRSVP(ctx context.Context, weddingID, guestID uuid.UUID, status enums.RSVPStatus, plusOnes *int) (*models.Guest, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid rsvp status")
	}

	guest, err := s.Get(ctx, weddingID, guestID)
	if err != nil {
		return nil, err
	}

	guest.RSVPStatus = status
	now := time.Now().UTC()
	guest.RSVPRespondedAt = &now
	if plusOnes != nil {
		if *plusOnes < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "plus ones cannot be negative")
		}
		guest.PlusOnes = *plusOnes
	}

	if err := s.repo.Update(ctx, guest); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rsvp")
	}
	return guest, nil
}

func (s *service) Delete(ctx context.Context, weddingID, guestID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, weddingID, guestID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete guest")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
	}
	return nil
}

func normalizePhone(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}

	parsed, err := phonenumbers.Parse(trimmed, DefaultPhoneRegion)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number")
	}
	formatted := phonenumbers.Format(parsed, phonenumbers.E164)
	return &formatted, nil
}
