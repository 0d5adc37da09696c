package functions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

func setupFunctionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS wedding_functions (
  id TEXT PRIMARY KEY,
  wedding_id TEXT NOT NULL,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  date DATETIME NOT NULL,
  start_time TEXT,
  end_time TEXT,
  venue TEXT,
  description TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  completed_at DATETIME,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newFunctionsService(t *testing.T) *service {
	t.Helper()
	svc, err := NewService(NewRepository(setupFunctionsTestDB(t)))
	require.NoError(t, err)
	return svc.(*service)
}

func seedFunction(t *testing.T, svc Service, weddingID uuid.UUID, name string, date time.Time) uuid.UUID {
	t.Helper()
	function, err := svc.Create(context.Background(), CreateParams{
		WeddingID: weddingID,
		Name:      name,
		Type:      "ceremony",
		Date:      date,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	return function.ID
}

func TestCreateFunctionDefaultsPending(t *testing.T) {
	svc := newFunctionsService(t)

	function, err := svc.Create(context.Background(), CreateParams{
		WeddingID: uuid.New(),
		Name:      "Sangeet",
		Type:      "sangeet",
		Date:      time.Now().Add(48 * time.Hour),
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.FunctionPending, function.Status)
	assert.Nil(t, function.CompletedAt)
}

func TestCreateFunctionRequiresDate(t *testing.T) {
	svc := newFunctionsService(t)

	_, err := svc.Create(context.Background(), CreateParams{
		WeddingID: uuid.New(),
		Name:      "Sangeet",
		Type:      "sangeet",
		CreatedBy: uuid.New(),
	})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCompleteFunctionStampsCompletedAt(t *testing.T) {
	svc := newFunctionsService(t)
	fixed := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	weddingID := uuid.New()
	id := seedFunction(t, svc, weddingID, "Haldi", time.Now())

	function, err := svc.UpdateStatus(context.Background(), weddingID, id, enums.FunctionCompleted)
	require.NoError(t, err)
	require.NotNil(t, function.CompletedAt)
	assert.Equal(t, fixed, *function.CompletedAt)
}

func TestReopenFunctionClearsCompletedAt(t *testing.T) {
	svc := newFunctionsService(t)
	weddingID := uuid.New()
	id := seedFunction(t, svc, weddingID, "Haldi", time.Now())

	_, err := svc.UpdateStatus(context.Background(), weddingID, id, enums.FunctionCompleted)
	require.NoError(t, err)

	function, err := svc.UpdateStatus(context.Background(), weddingID, id, enums.FunctionPending)
	require.NoError(t, err)
	assert.Equal(t, enums.FunctionPending, function.Status)
	assert.Nil(t, function.CompletedAt)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newFunctionsService(t)
	weddingID := uuid.New()
	id := seedFunction(t, svc, weddingID, "Haldi", time.Now())

	_, err := svc.UpdateStatus(context.Background(), weddingID, id, enums.FunctionStatus("postponed"))
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestListOrdersByDateAndFilters(t *testing.T) {
	svc := newFunctionsService(t)
	weddingID := uuid.New()
	base := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

	seedFunction(t, svc, weddingID, "Reception", base.Add(72*time.Hour))
	seedFunction(t, svc, weddingID, "Haldi", base)
	id := seedFunction(t, svc, weddingID, "Sangeet", base.Add(24*time.Hour))

	_, err := svc.UpdateStatus(context.Background(), weddingID, id, enums.FunctionCompleted)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ListFilter{WeddingID: weddingID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Haldi", all[0].Name)
	assert.Equal(t, "Reception", all[2].Name)

	completed := enums.FunctionCompleted
	filtered, err := svc.List(context.Background(), ListFilter{WeddingID: weddingID, Status: &completed})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Sangeet", filtered[0].Name)
}

func TestDeleteFunctionCrossWeddingNotFound(t *testing.T) {
	svc := newFunctionsService(t)
	id := seedFunction(t, svc, uuid.New(), "Haldi", time.Now())

	err := svc.Delete(context.Background(), uuid.New(), id)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
