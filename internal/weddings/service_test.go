package weddings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/internal/memberships"
	"github.com/pmrathi94/VivahSetu/pkg/db"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

func setupWeddingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS weddings (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  wedding_date DATETIME NOT NULL,
  bride_id TEXT NOT NULL,
  groom_id TEXT NOT NULL,
  venue TEXT,
  latitude REAL,
  longitude REAL,
  theme TEXT,
  guest_count INTEGER NOT NULL DEFAULT 0,
  created_by TEXT NOT NULL,
  archived_at DATETIME,
  app_name TEXT,
  primary_color TEXT,
  secondary_color TEXT,
  language TEXT NOT NULL DEFAULT 'en',
  dark_mode INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS wedding_roles (
  id TEXT PRIMARY KEY,
  wedding_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  role TEXT NOT NULL,
  assigned_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func newWeddingsService(t *testing.T) (Service, memberships.Repository) {
	t.Helper()
	conn := setupWeddingsTestDB(t)
	membershipsRepo := memberships.NewRepository(conn)
	svc, err := NewService(db.FromConn(conn), NewRepository(conn), membershipsRepo)
	require.NoError(t, err)
	return svc, membershipsRepo
}

func createParams(bride, groom, creator uuid.UUID) CreateParams {
	return CreateParams{
		Name:        "Priya & Arjun",
		WeddingDate: time.Now().AddDate(0, 6, 0),
		BrideID:     bride,
		GroomID:     groom,
		GuestCount:  150,
		CreatedBy:   creator,
	}
}

func TestCreateWeddingSeedsCoupleAdmins(t *testing.T) {
	svc, _ := newWeddingsService(t)
	bride := uuid.New()
	groom := uuid.New()

	detail, err := svc.Create(context.Background(), createParams(bride, groom, bride))
	require.NoError(t, err)
	require.NotNil(t, detail.Wedding)
	assert.Equal(t, "en", detail.Wedding.Language)
	assert.Equal(t, enums.WeddingRoleMainAdmin.String(), detail.Roles["bride"])
	assert.Equal(t, enums.WeddingRoleMainAdmin.String(), detail.Roles["groom"])
	assert.Len(t, detail.Members, 2)
}

func TestCreateWeddingSeedsDistinctCreator(t *testing.T) {
	svc, membershipsRepo := newWeddingsService(t)
	creator := uuid.New()

	detail, err := svc.Create(context.Background(), createParams(uuid.New(), uuid.New(), creator))
	require.NoError(t, err)
	assert.Len(t, detail.Members, 3)

	roles, err := membershipsRepo.ListByUser(context.Background(), creator)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, enums.WeddingRoleMainAdmin, roles[0].Role)
}

func TestCreateWeddingRequiresName(t *testing.T) {
	svc, _ := newWeddingsService(t)

	params := createParams(uuid.New(), uuid.New(), uuid.New())
	params.Name = "   "
	_, err := svc.Create(context.Background(), params)

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code)
}

func TestListWeddingsScopedToMembership(t *testing.T) {
	svc, _ := newWeddingsService(t)
	bride := uuid.New()
	outsider := uuid.New()

	_, err := svc.Create(context.Background(), createParams(bride, uuid.New(), bride))
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), bride, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.List(context.Background(), outsider, nil)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestListWeddingsAppOwnerSeesAll(t *testing.T) {
	svc, _ := newWeddingsService(t)
	bride := uuid.New()

	_, err := svc.Create(context.Background(), createParams(bride, uuid.New(), bride))
	require.NoError(t, err)

	owner := enums.SystemRoleAppOwner
	all, err := svc.List(context.Background(), uuid.New(), &owner)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateWeddingAppliesPartialFields(t *testing.T) {
	svc, _ := newWeddingsService(t)
	bride := uuid.New()

	detail, err := svc.Create(context.Background(), createParams(bride, uuid.New(), bride))
	require.NoError(t, err)

	venue := "Umaid Bhawan Palace"
	updated, err := svc.Update(context.Background(), detail.Wedding.ID, UpdateParams{Venue: &venue})
	require.NoError(t, err)
	require.NotNil(t, updated.Venue)
	assert.Equal(t, venue, *updated.Venue)
	assert.Equal(t, "Priya & Arjun", updated.Name)
}

func TestUpdateSettingsRejectsEmptyLanguage(t *testing.T) {
	svc, _ := newWeddingsService(t)
	bride := uuid.New()

	detail, err := svc.Create(context.Background(), createParams(bride, uuid.New(), bride))
	require.NoError(t, err)

	lang := ""
	_, err = svc.UpdateSettings(context.Background(), detail.Wedding.ID, SettingsParams{Language: &lang})

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code)
}

func TestArchiveWedding(t *testing.T) {
	svc, _ := newWeddingsService(t)
	bride := uuid.New()

	detail, err := svc.Create(context.Background(), createParams(bride, uuid.New(), bride))
	require.NoError(t, err)

	require.NoError(t, svc.Archive(context.Background(), detail.Wedding.ID))

	archived, err := svc.Get(context.Background(), detail.Wedding.ID)
	require.NoError(t, err)
	require.NotNil(t, archived.Wedding.ArchivedAt)
}

func TestArchiveUnknownWedding(t *testing.T) {
	svc, _ := newWeddingsService(t)

	err := svc.Archive(context.Background(), uuid.New())

	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code)
}
