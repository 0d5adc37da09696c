package guests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

func setupGuestsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS guests (
  id TEXT PRIMARY KEY,
  wedding_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  relationship TEXT,
  side TEXT NOT NULL,
  rsvp_status TEXT NOT NULL DEFAULT 'pending',
  rsvp_responded_at DATETIME,
  plus_ones INTEGER NOT NULL DEFAULT 0,
  function_id TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newGuestsService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupGuestsTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestCreateGuestNormalizesPhone(t *testing.T) {
	svc := newGuestsService(t)
	phone := "98765 43210"

	guest, err := svc.Create(context.Background(), CreateParams{
		WeddingID: uuid.New(),
		Name:      "Rahul Verma",
		Phone:     &phone,
		Side:      enums.GuestSideGroom,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, guest.Phone)
	assert.Equal(t, "+919876543210", *guest.Phone)
	assert.Equal(t, enums.RSVPPending, guest.RSVPStatus)
}

func TestCreateGuestRejectsBadPhone(t *testing.T) {
	svc := newGuestsService(t)
	phone := "12"

	_, err := svc.Create(context.Background(), CreateParams{
		WeddingID: uuid.New(),
		Name:      "Rahul Verma",
		Phone:     &phone,
		Side:      enums.GuestSideGroom,
		CreatedBy: uuid.New(),
	})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateGuestRejectsInvalidSide(t *testing.T) {
	svc := newGuestsService(t)

	_, err := svc.Create(context.Background(), CreateParams{
		WeddingID: uuid.New(),
		Name:      "Rahul Verma",
		Side:      enums.GuestSide("cousin"),
		CreatedBy: uuid.New(),
	})
	assert.Error(t, err)
}

func TestUpdateRSVPStampsResponseTime(t *testing.T) {
	svc := newGuestsService(t)
	ctx := context.Background()
	weddingID := uuid.New()

	guest, err := svc.Create(ctx, CreateParams{
		WeddingID: weddingID,
		Name:      "Anita Desai",
		Side:      enums.GuestSideBride,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	require.Nil(t, guest.RSVPRespondedAt)

	plusOnes := 2
	updated, err := svc.UpdateRSVP(ctx, weddingID, guest.ID, enums.RSVPYes, &plusOnes)
	require.NoError(t, err)
	assert.Equal(t, enums.RSVPYes, updated.RSVPStatus)
	assert.Equal(t, 2, updated.PlusOnes)
	assert.NotNil(t, updated.RSVPRespondedAt)
}

func TestUpdateRSVPRejectsCrossWeddingAccess(t *testing.T) {
	svc := newGuestsService(t)
	ctx := context.Background()

	guest, err := svc.Create(ctx, CreateParams{
		WeddingID: uuid.New(),
		Name:      "Anita Desai",
		Side:      enums.GuestSideBride,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateRSVP(ctx, uuid.New(), guest.ID, enums.RSVPYes, nil)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListGuestsFiltersBySideAndStatus(t *testing.T) {
	svc := newGuestsService(t)
	ctx := context.Background()
	weddingID := uuid.New()
	createdBy := uuid.New()

	for _, g := range []struct {
		name string
		side enums.GuestSide
	}{
		{"Bride Cousin", enums.GuestSideBride},
		{"Groom Friend", enums.GuestSideGroom},
		{"Bride Aunt", enums.GuestSideBride},
	} {
		_, err := svc.Create(ctx, CreateParams{
			WeddingID: weddingID,
			Name:      g.name,
			Side:      g.side,
			CreatedBy: createdBy,
		})
		require.NoError(t, err)
	}

	side := string(enums.GuestSideBride)
	brideGuests, err := svc.List(ctx, ListFilter{WeddingID: weddingID, Side: &side})
	require.NoError(t, err)
	assert.Len(t, brideGuests, 2)

	pending := string(enums.RSVPPending)
	pendingGuests, err := svc.List(ctx, ListFilter{WeddingID: weddingID, RSVPStatus: &pending})
	require.NoError(t, err)
	assert.Len(t, pendingGuests, 3)
}

func TestDeleteGuest(t *testing.T) {
	svc := newGuestsService(t)
	ctx := context.Background()
	weddingID := uuid.New()

	guest, err := svc.Create(ctx, CreateParams{
		WeddingID: weddingID,
		Name:      "Anita Desai",
		Side:      enums.GuestSideBride,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, weddingID, guest.ID))
	err = svc.Delete(ctx, weddingID, guest.ID)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
