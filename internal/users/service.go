package users

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service defines profile read/update operations.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*models.User, error)
}

// UpdateProfileParams carries the mutable profile fields. Nil fields are left
// untouched.
type UpdateProfileParams struct {
	FullName *string
	Phone    *string
}

type service struct {
	repo Repository
}

// NewService wires users dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		name := strings.TrimSpace(*params.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.FullName = name
	}
	if params.Phone != nil {
		user.Phone = params.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return user, nil
}
