package memberships

import (
	"context"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service resolves and mutates per-wedding roles. The middleware access guard
// and the role-restricted controllers both sit on top of RoleOf.
type Service interface {
	RoleOf(ctx context.Context, weddingID, userID uuid.UUID) (*enums.WeddingRole, error)
	HasAnyRole(ctx context.Context, weddingID, userID uuid.UUID, roles ...enums.WeddingRole) (bool, error)
	Members(ctx context.Context, weddingID uuid.UUID) ([]models.WeddingRole, error)
	Assign(ctx context.Context, params AssignParams) (*models.WeddingRole, error)
	Revoke(ctx context.Context, weddingID, userID uuid.UUID) error
}

// AssignParams carries a role grant or change.
type AssignParams struct {
	WeddingID  uuid.UUID
	UserID     uuid.UUID
	Role       enums.WeddingRole
	AssignedBy uuid.UUID
}

type service struct {
	repo Repository
}

// NewService wires memberships dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "memberships repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) RoleOf(ctx context.Context, weddingID, userID uuid.UUID) (*enums.WeddingRole, error) {
	if weddingID == uuid.Nil || userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id and user id required")
	}
	row, err := s.repo.Get(ctx, weddingID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup role")
	}
	if row == nil {
		return nil, nil
	}
	return &row.Role, nil
}

func (s *service) HasAnyRole(ctx context.Context, weddingID, userID uuid.UUID, roles ...enums.WeddingRole) (bool, error) {
	role, err := s.RoleOf(ctx, weddingID, userID)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}
	for _, candidate := range roles {
		if *role == candidate {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) Members(ctx context.Context, weddingID uuid.UUID) ([]models.WeddingRole, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	members, err := s.repo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}
	return members, nil
}

func (s *service) Assign(ctx context.Context, params AssignParams) (*models.WeddingRole, error) {
	if params.WeddingID == uuid.Nil || params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id and user id required")
	}
	if !params.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	existing, err := s.repo.Get(ctx, params.WeddingID, params.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup role")
	}
	if existing != nil {
		if _, err := s.repo.UpdateRole(ctx, params.WeddingID, params.UserID, params.Role.String()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
		}
		existing.Role = params.Role
		return existing, nil
	}

	assignedBy := params.AssignedBy
	row := &models.WeddingRole{
		ID:         uuid.New(),
		WeddingID:  params.WeddingID,
		UserID:     params.UserID,
		Role:       params.Role,
		AssignedBy: &assignedBy,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create role")
	}
	return row, nil
}

func (s *service) Revoke(ctx context.Context, weddingID, userID uuid.UUID) error {
	if weddingID == uuid.Nil || userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "wedding id and user id required")
	}
	affected, err := s.repo.Delete(ctx, weddingID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke role")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}
	return nil
}
