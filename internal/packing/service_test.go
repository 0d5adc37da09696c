package packing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/db"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

func setupPackingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS packing_lists (
  id TEXT PRIMARY KEY,
  wedding_id TEXT NOT NULL,
  owner_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  honeymoon INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS packing_items (
  id TEXT PRIMARY KEY,
  list_id TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  is_packed INTEGER NOT NULL DEFAULT 0,
  packed_at DATETIME,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func newPackingService(t *testing.T) Service {
	t.Helper()
	conn := setupPackingTestDB(t)
	svc, err := NewService(db.FromConn(conn), NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func seedList(t *testing.T, svc Service, weddingID uuid.UUID) uuid.UUID {
	t.Helper()
	list, err := svc.CreateList(context.Background(), ListParams{
		WeddingID: weddingID,
		OwnerID:   uuid.New(),
		Title:     "Honeymoon bag",
		Honeymoon: true,
	})
	require.NoError(t, err)
	return list.ID
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	svc := newPackingService(t)
	weddingID := uuid.New()
	listID := seedList(t, svc, weddingID)

	item, err := svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Passport"})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.False(t, item.IsPacked)
}

func TestTogglePackedStampsAndClears(t *testing.T) {
	svc := newPackingService(t)
	weddingID := uuid.New()
	listID := seedList(t, svc, weddingID)

	item, err := svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Sunscreen", Quantity: 2})
	require.NoError(t, err)

	packed, err := svc.TogglePacked(context.Background(), weddingID, listID, item.ID)
	require.NoError(t, err)
	assert.True(t, packed.IsPacked)
	require.NotNil(t, packed.PackedAt)

	unpacked, err := svc.TogglePacked(context.Background(), weddingID, listID, item.ID)
	require.NoError(t, err)
	assert.False(t, unpacked.IsPacked)
	assert.Nil(t, unpacked.PackedAt)
}

func TestCompletionPercentage(t *testing.T) {
	svc := newPackingService(t)
	weddingID := uuid.New()
	listID := seedList(t, svc, weddingID)

	first, err := svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Passport"})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Charger"})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Camera"})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Shoes"})
	require.NoError(t, err)

	_, err = svc.TogglePacked(context.Background(), weddingID, listID, first.ID)
	require.NoError(t, err)

	detail, err := svc.GetList(context.Background(), weddingID, listID)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, detail.Completion, 0.001)
	assert.Len(t, detail.Items, 4)
}

func TestCompletionEmptyListIsZero(t *testing.T) {
	svc := newPackingService(t)
	weddingID := uuid.New()
	listID := seedList(t, svc, weddingID)

	detail, err := svc.GetList(context.Background(), weddingID, listID)
	require.NoError(t, err)
	assert.Zero(t, detail.Completion)
}

func TestDeleteListRemovesItems(t *testing.T) {
	svc := newPackingService(t)
	weddingID := uuid.New()
	listID := seedList(t, svc, weddingID)

	_, err := svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Passport"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteList(context.Background(), weddingID, listID))

	_, err = svc.GetList(context.Background(), weddingID, listID)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListsFilterByOwner(t *testing.T) {
	svc := newPackingService(t)
	weddingID := uuid.New()
	owner := uuid.New()

	_, err := svc.CreateList(context.Background(), ListParams{
		WeddingID: weddingID,
		OwnerID:   owner,
		Title:     "Bride's bag",
	})
	require.NoError(t, err)
	seedList(t, svc, weddingID)

	mine, err := svc.Lists(context.Background(), weddingID, &owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Bride's bag", mine[0].List.Title)

	all, err := svc.Lists(context.Background(), weddingID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestItemOnWrongListNotFound(t *testing.T) {
	svc := newPackingService(t)
	weddingID := uuid.New()
	listID := seedList(t, svc, weddingID)
	otherList := seedList(t, svc, weddingID)

	item, err := svc.AddItem(context.Background(), weddingID, listID, ItemParams{Name: "Passport"})
	require.NoError(t, err)

	_, err = svc.TogglePacked(context.Background(), weddingID, otherList, item.ID)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
