package weddings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/internal/memberships"
	"github.com/pmrathi94/VivahSetu/pkg/db"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service defines wedding lifecycle operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Detail, error)
	List(ctx context.Context, userID uuid.UUID, systemRole *string) ([]models.Wedding, error)
	Get(ctx context.Context, weddingID uuid.UUID) (*Detail, error)
	Update(ctx context.Context, weddingID uuid.UUID, params UpdateParams) (*models.Wedding, error)
	UpdateSettings(ctx context.Context, weddingID uuid.UUID, params SettingsParams) (*models.Wedding, error)
	Archive(ctx context.Context, weddingID uuid.UUID) error
}

// CreateParams carries the new-wedding payload.
type CreateParams struct {
	Name        string
	WeddingDate time.Time
	BrideID     uuid.UUID
	GroomID     uuid.UUID
	Venue       *string
	Latitude    *float64
	Longitude   *float64
	Theme       *string
	GuestCount  int
	CreatedBy   uuid.UUID
}

// UpdateParams carries mutable wedding fields. Nil fields are left untouched.
type UpdateParams struct {
	Name        *string
	WeddingDate *time.Time
	Venue       *string
	Latitude    *float64
	Longitude   *float64
	Theme       *string
	GuestCount  *int
}

// SettingsParams carries the per-wedding app settings.
type SettingsParams struct {
	AppName        *string
	PrimaryColor   *string
	SecondaryColor *string
	Language       *string
	DarkMode       *bool
}

// Detail is a wedding plus its role assignments, with the bride and groom
// roles called out.
type Detail struct {
	Wedding *models.Wedding      `json:"wedding"`
	Roles   map[string]string    `json:"roles"`
	Members []models.WeddingRole `json:"members"`
}

type service struct {
	client      *db.Client
	repo        Repository
	memberships memberships.Repository
}

// NewService wires weddings dependencies.
func NewService(client *db.Client, repo Repository, membershipsRepo memberships.Repository) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "weddings repository required")
	}
	if membershipsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "memberships repository required")
	}
	return &service{client: client, repo: repo, memberships: membershipsRepo}, nil
}

// Create inserts the wedding and grants the bride, groom, and creator the
// main-admin role in one transaction.
func (s *service) Create(ctx context.Context, params CreateParams) (*Detail, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding name required")
	}
	if params.WeddingDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding date required")
	}
	if params.BrideID == uuid.Nil || params.GroomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bride and groom ids required")
	}
	if params.CreatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id required")
	}

	wedding := &models.Wedding{
		ID:          uuid.New(),
		Name:        name,
		WeddingDate: params.WeddingDate,
		BrideID:     params.BrideID,
		GroomID:     params.GroomID,
		Venue:       params.Venue,
		Latitude:    params.Latitude,
		Longitude:   params.Longitude,
		Theme:       params.Theme,
		GuestCount:  params.GuestCount,
		CreatedBy:   params.CreatedBy,
		Language:    "en",
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, wedding); err != nil {
			return err
		}

		assignedBy := params.CreatedBy
		admins := []uuid.UUID{params.BrideID}
		if params.GroomID != params.BrideID {
			admins = append(admins, params.GroomID)
		}
		// The creator keeps access even when planning on the couple's behalf.
		if params.CreatedBy != params.BrideID && params.CreatedBy != params.GroomID {
			admins = append(admins, params.CreatedBy)
		}
		membershipRepo := s.memberships.WithTx(tx)
		for _, userID := range admins {
			role := &models.WeddingRole{
				ID:         uuid.New(),
				WeddingID:  wedding.ID,
				UserID:     userID,
				Role:       enums.WeddingRoleMainAdmin,
				AssignedBy: &assignedBy,
			}
			if err := membershipRepo.Create(ctx, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wedding")
	}

	return s.Get(ctx, wedding.ID)
}

// List returns the weddings the user belongs to. App owners see everything.
func (s *service) List(ctx context.Context, userID uuid.UUID, systemRole *string) ([]models.Wedding, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	if systemRole != nil && *systemRole == enums.SystemRoleAppOwner {
		weddings, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list weddings")
		}
		return weddings, nil
	}

	roles, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list memberships")
	}
	ids := make([]uuid.UUID, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.WeddingID)
	}

	weddings, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list weddings")
	}
	return weddings, nil
}

func (s *service) Get(ctx context.Context, weddingID uuid.UUID) (*Detail, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}

	wedding, err := s.repo.GetByID(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get wedding")
	}
	if wedding == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	members, err := s.memberships.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}

	roles := map[string]string{}
	for _, member := range members {
		switch member.UserID {
		case wedding.BrideID:
			roles["bride"] = member.Role.String()
		case wedding.GroomID:
			roles["groom"] = member.Role.String()
		}
	}

	return &Detail{Wedding: wedding, Roles: roles, Members: members}, nil
}

func (s *service) Update(ctx context.Context, weddingID uuid.UUID, params UpdateParams) (*models.Wedding, error) {
	detail, err := s.Get(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	wedding := detail.Wedding

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding name cannot be empty")
		}
		wedding.Name = name
	}
	if params.WeddingDate != nil {
		wedding.WeddingDate = *params.WeddingDate
	}
	if params.Venue != nil {
		wedding.Venue = params.Venue
	}
	if params.Latitude != nil {
		wedding.Latitude = params.Latitude
	}
	if params.Longitude != nil {
		wedding.Longitude = params.Longitude
	}
	if params.Theme != nil {
		wedding.Theme = params.Theme
	}
	if params.GuestCount != nil {
		if *params.GuestCount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest count cannot be negative")
		}
		wedding.GuestCount = *params.GuestCount
	}

	if err := s.repo.Update(ctx, wedding); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wedding")
	}
	return wedding, nil
}

func (s *service) UpdateSettings(ctx context.Context, weddingID uuid.UUID, params SettingsParams) (*models.Wedding, error) {
	detail, err := s.Get(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	wedding := detail.Wedding

	if params.AppName != nil {
		wedding.AppName = params.AppName
	}
	if params.PrimaryColor != nil {
		wedding.PrimaryColor = params.PrimaryColor
	}
	if params.SecondaryColor != nil {
		wedding.SecondaryColor = params.SecondaryColor
	}
	if params.Language != nil {
		lang := strings.TrimSpace(*params.Language)
		if lang == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "language cannot be empty")
		}
		wedding.Language = lang
	}
	if params.DarkMode != nil {
		wedding.DarkMode = *params.DarkMode
	}

	if err := s.repo.Update(ctx, wedding); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wedding settings")
	}
	return wedding, nil
}

// Archive soft-deletes the wedding by setting archived_at. Rows stay in place
// so analytics and media history survive.
func (s *service) Archive(ctx context.Context, weddingID uuid.UUID) error {
	if weddingID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	affected, err := s.repo.Archive(ctx, weddingID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive wedding")
	}
	if affected == 0 {
		wedding, err := s.repo.GetByID(ctx, weddingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get wedding")
		}
		if wedding == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
		}
	}
	return nil
}
