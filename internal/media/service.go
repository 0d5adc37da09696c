package media

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

// Service defines media operations. Versions form append-only chains; the
// only in-place mutation is flipping is_current and the access settings.
type Service interface {
	Upload(ctx context.Context, params UploadParams) (*models.MediaItem, error)
	UploadVersion(ctx context.Context, weddingID, rootID uuid.UUID, params UploadParams) (*models.MediaItem, error)
	List(ctx context.Context, filter ListFilter, viewerRole enums.WeddingRole) ([]models.MediaItem, error)
	Get(ctx context.Context, weddingID, itemID uuid.UUID) (*models.MediaItem, error)
	Versions(ctx context.Context, weddingID, rootID uuid.UUID) ([]models.MediaItem, error)
	Rollback(ctx context.Context, weddingID, rootID, versionID uuid.UUID, requestedBy uuid.UUID) (*models.MediaItem, error)
	UpdateAccess(ctx context.Context, weddingID, rootID uuid.UUID, params AccessParams) (*models.MediaItem, error)
}

// UploadParams carries one uploaded file's metadata.
type UploadParams struct {
	WeddingID            uuid.UUID
	FunctionID           *uuid.UUID
	UploadedBy           uuid.UUID
	FileName             string
	FileURL              string
	FileType             string
	FileSize             int64
	Caption              *string
	RoleAccess           []string
	Watermark            bool
	ScreenshotPrevention bool
}

// AccessParams carries the mutable access settings of a chain's current
// version. Nil fields are left untouched.
type AccessParams struct {
	RoleAccess           *[]string
	Watermark            *bool
	ScreenshotPrevention *bool
}

type service struct {
	client *db.Client
	repo   Repository
}

// NewService wires media dependencies.
func NewService(client *db.Client, repo Repository) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "media repository required")
	}
	return &service{client: client, repo: repo}, nil
}

// Upload starts a new version chain: the first row is its own root.
func (s *service) Upload(ctx context.Context, params UploadParams) (*models.MediaItem, error) {
	if err := validateUpload(params); err != nil {
		return nil, err
	}
	roleAccess, err := normalizeRoleAccess(params.RoleAccess)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	item := &models.MediaItem{
		ID:                   id,
		WeddingID:            params.WeddingID,
		FunctionID:           params.FunctionID,
		UploadedBy:           params.UploadedBy,
		FileName:             strings.TrimSpace(params.FileName),
		FileURL:              strings.TrimSpace(params.FileURL),
		FileType:             strings.TrimSpace(params.FileType),
		FileSize:             params.FileSize,
		Caption:              params.Caption,
		RoleAccess:           roleAccess,
		Watermark:            params.Watermark,
		ScreenshotPrevention: params.ScreenshotPrevention,
		RootID:               id,
		VersionNumber:        1,
		IsCurrent:            true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload media")
	}
	return item, nil
}

// UploadVersion appends a new version to an existing chain and makes it
// current. The previous rows are never rewritten beyond the is_current flip.
func (s *service) UploadVersion(ctx context.Context, weddingID, rootID uuid.UUID, params UploadParams) (*models.MediaItem, error) {
	if err := validateUpload(params); err != nil {
		return nil, err
	}
	roleAccess, err := normalizeRoleAccess(params.RoleAccess)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetCurrent(ctx, weddingID, rootID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current version")
	}
	if current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}

	item := &models.MediaItem{
		ID:                   uuid.New(),
		WeddingID:            weddingID,
		FunctionID:           params.FunctionID,
		UploadedBy:           params.UploadedBy,
		FileName:             strings.TrimSpace(params.FileName),
		FileURL:              strings.TrimSpace(params.FileURL),
		FileType:             strings.TrimSpace(params.FileType),
		FileSize:             params.FileSize,
		Caption:              params.Caption,
		RoleAccess:           roleAccess,
		Watermark:            params.Watermark,
		ScreenshotPrevention: params.ScreenshotPrevention,
		RootID:               rootID,
		VersionNumber:        current.VersionNumber + 1,
		PreviousVersionID:    &current.ID,
		IsCurrent:            true,
	}
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.ClearCurrent(ctx, weddingID, rootID); err != nil {
			return err
		}
		return repo.Create(ctx, item)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload media version")
	}
	return item, nil
}

// List returns current versions visible to the viewer. An empty role_access
// list means visible to every member; admins see everything.
func (s *service) List(ctx context.Context, filter ListFilter, viewerRole enums.WeddingRole) ([]models.MediaItem, error) {
	if filter.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	items, err := s.repo.ListCurrent(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}
	if viewerRole == enums.WeddingRoleMainAdmin {
		return items, nil
	}

	visible := items[:0]
	for _, item := range items {
		if roleCanView(item.RoleAccess, viewerRole) {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

func (s *service) Get(ctx context.Context, weddingID, itemID uuid.UUID) (*models.MediaItem, error) {
	item, err := s.repo.GetByID(ctx, weddingID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get media")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	return item, nil
}

func (s *service) Versions(ctx context.Context, weddingID, rootID uuid.UUID) ([]models.MediaItem, error) {
	items, err := s.repo.ListVersions(ctx, weddingID, rootID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media versions")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	return items, nil
}

// Rollback appends a fresh version copying the target's file fields rather
// than rewriting history.
func (s *service) Rollback(ctx context.Context, weddingID, rootID, versionID uuid.UUID, requestedBy uuid.UUID) (*models.MediaItem, error) {
	target, err := s.Get(ctx, weddingID, versionID)
	if err != nil {
		return nil, err
	}
	if target.RootID != rootID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "version does not belong to this media")
	}
	current, err := s.repo.GetCurrent(ctx, weddingID, rootID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current version")
	}
	if current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	if current.ID == target.ID {
		return current, nil
	}

	item := &models.MediaItem{
		ID:                   uuid.New(),
		WeddingID:            weddingID,
		FunctionID:           target.FunctionID,
		UploadedBy:           requestedBy,
		FileName:             target.FileName,
		FileURL:              target.FileURL,
		FileType:             target.FileType,
		FileSize:             target.FileSize,
		Caption:              target.Caption,
		RoleAccess:           target.RoleAccess,
		Watermark:            target.Watermark,
		ScreenshotPrevention: target.ScreenshotPrevention,
		RootID:               rootID,
		VersionNumber:        current.VersionNumber + 1,
		PreviousVersionID:    &current.ID,
		IsCurrent:            true,
	}
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.ClearCurrent(ctx, weddingID, rootID); err != nil {
			return err
		}
		return repo.Create(ctx, item)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rollback media")
	}
	return item, nil
}

func (s *service) UpdateAccess(ctx context.Context, weddingID, rootID uuid.UUID, params AccessParams) (*models.MediaItem, error) {
	current, err := s.repo.GetCurrent(ctx, weddingID, rootID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current version")
	}
	if current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}

	if params.RoleAccess != nil {
		roleAccess, err := normalizeRoleAccess(*params.RoleAccess)
		if err != nil {
			return nil, err
		}
		current.RoleAccess = roleAccess
	}
	if params.Watermark != nil {
		current.Watermark = *params.Watermark
	}
	if params.ScreenshotPrevention != nil {
		current.ScreenshotPrevention = *params.ScreenshotPrevention
	}

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update media access")
	}
	return current, nil
}

func validateUpload(params UploadParams) error {
	if params.WeddingID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	if strings.TrimSpace(params.FileName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "file name required")
	}
	if strings.TrimSpace(params.FileURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "file url required")
	}
	if strings.TrimSpace(params.FileType) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "file type required")
	}
	if params.FileSize < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "file size cannot be negative")
	}
	return nil
}

func normalizeRoleAccess(roles []string) (pq.StringArray, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	normalized := make(pq.StringArray, 0, len(roles))
	for _, raw := range roles {
		role, err := enums.ParseWeddingRole(strings.TrimSpace(raw))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role in role_access")
		}
		normalized = append(normalized, role.String())
	}
	return normalized, nil
}

func roleCanView(roleAccess pq.StringArray, viewerRole enums.WeddingRole) bool {
	if len(roleAccess) == 0 {
		return true
	}
	for _, role := range roleAccess {
		if role == viewerRole.String() {
			return true
		}
	}
	return false
}
