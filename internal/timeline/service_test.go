package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
)

func setupTimelineTestDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func newTimelineService(t *testing.T, now time.Time) (*service, weddings.Repository, functions.Repository) {
	t.Helper()
	conn := setupTimelineTestDB(t)
	weddingsRepo := weddings.NewRepository(conn)
	functionsRepo := functions.NewRepository(conn)

	svc, err := NewService(weddingsRepo, functionsRepo)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return now }
	return impl, weddingsRepo, functionsRepo
}

func seedWedding(t *testing.T, repo weddings.Repository, date time.Time) uuid.UUID {
	t.Helper()
	wedding := &models.Wedding{
		ID:          uuid.New(),
		Name:        "A & B",
		WeddingDate: date,
		BrideID:     uuid.New(),
		GroomID:     uuid.New(),
		CreatedBy:   uuid.New(),
		Language:    "en",
	}
	require.NoError(t, repo.Create(context.Background(), wedding))
	return wedding.ID
}

func seedTimelineFunction(t *testing.T, repo functions.Repository, weddingID uuid.UUID, name string, date time.Time, status enums.FunctionStatus) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.WeddingFunction{
		ID:        uuid.New(),
		WeddingID: weddingID,
		Name:      name,
		Type:      "ceremony",
		Date:      date,
		Status:    status,
		CreatedBy: uuid.New(),
	}))
}

func TestTimelineStatusesAndColors(t *testing.T) {
	now := time.Date(2026, 11, 20, 15, 0, 0, 0, time.UTC)
	svc, weddingsRepo, functionsRepo := newTimelineService(t, now)

	weddingID := seedWedding(t, weddingsRepo, now.Add(10*24*time.Hour))
	seedTimelineFunction(t, functionsRepo, weddingID, "Haldi", now.Add(-48*time.Hour), enums.FunctionPending)
	seedTimelineFunction(t, functionsRepo, weddingID, "Sangeet", now, enums.FunctionPending)
	seedTimelineFunction(t, functionsRepo, weddingID, "Mehendi", now.Add(-72*time.Hour), enums.FunctionCompleted)
	seedTimelineFunction(t, functionsRepo, weddingID, "Reception", now.Add(96*time.Hour), enums.FunctionPending)
	seedTimelineFunction(t, functionsRepo, weddingID, "Afterparty", now.Add(120*time.Hour), enums.FunctionCancelled)

	timeline, err := svc.Timeline(context.Background(), weddingID)
	require.NoError(t, err)
	require.Len(t, timeline.Entries, 5)
	assert.Equal(t, 10, timeline.DaysToWedding)

	byName := map[string]Entry{}
	for _, entry := range timeline.Entries {
		byName[entry.Function.Name] = entry
	}

	assert.Equal(t, "overdue", byName["Haldi"].Status)
	assert.Equal(t, ColorOverdue, byName["Haldi"].Color)

	assert.Equal(t, "today", byName["Sangeet"].Status)
	assert.Equal(t, ColorToday, byName["Sangeet"].Color)
	assert.Equal(t, "today", byName["Sangeet"].CountdownText)

	assert.Equal(t, "completed", byName["Mehendi"].Status)
	assert.Equal(t, ColorCompleted, byName["Mehendi"].Color)

	assert.Equal(t, "pending", byName["Reception"].Status)
	assert.Equal(t, ColorPending, byName["Reception"].Color)
	assert.Equal(t, 4, byName["Reception"].DaysUntil)

	assert.Equal(t, "cancelled", byName["Afterparty"].Status)
	assert.Equal(t, ColorCancelled, byName["Afterparty"].Color)
}

func TestTimelineProgress(t *testing.T) {
	now := time.Date(2026, 11, 20, 15, 0, 0, 0, time.UTC)
	svc, weddingsRepo, functionsRepo := newTimelineService(t, now)

	weddingID := seedWedding(t, weddingsRepo, now.Add(24*time.Hour))
	seedTimelineFunction(t, functionsRepo, weddingID, "Haldi", now.Add(-24*time.Hour), enums.FunctionCompleted)
	seedTimelineFunction(t, functionsRepo, weddingID, "Sangeet", now.Add(24*time.Hour), enums.FunctionPending)

	timeline, err := svc.Timeline(context.Background(), weddingID)
	require.NoError(t, err)
	assert.Equal(t, 1, timeline.CompletedCount)
	assert.Equal(t, 2, timeline.TotalCount)
	assert.InDelta(t, 50.0, timeline.ProgressPercent, 0.001)
}

func TestTimelineUnknownWedding(t *testing.T) {
	now := time.Now()
	svc, _, _ := newTimelineService(t, now)

	_, err := svc.Timeline(context.Background(), uuid.New())
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
