package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/internal/budget"
	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/internal/guests"
	"github.com/pmrathi94/VivahSetu/internal/packing"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

func setupAnalyticsTestDB(t *testing.T) *gorm.DB {
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
);
CREATE TABLE IF NOT EXISTS expenses (
  id TEXT PRIMARY KEY,
  wedding_id TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT,
  estimated_cost TEXT NOT NULL DEFAULT '0',
  actual_cost TEXT NOT NULL DEFAULT '0',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  owner_user_id TEXT NOT NULL,
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
);
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

type analyticsFixture struct {
	svc       *service
	conn      *gorm.DB
	weddingID uuid.UUID
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	conn := setupAnalyticsTestDB(t)

	svc, err := NewService(
		weddings.NewRepository(conn),
		guests.NewRepository(conn),
		budget.NewRepository(conn),
		functions.NewRepository(conn),
		packing.NewRepository(conn),
	)
	require.NoError(t, err)

	weddingID := uuid.New()
	require.NoError(t, conn.Create(&models.Wedding{
		ID:          weddingID,
		Name:        "A & B",
		WeddingDate: time.Now().Add(30*24*time.Hour + 12*time.Hour),
		BrideID:     uuid.New(),
		GroomID:     uuid.New(),
		CreatedBy:   uuid.New(),
		Language:    "en",
	}).Error)

	return &analyticsFixture{svc: svc.(*service), conn: conn, weddingID: weddingID}
}

func (f *analyticsFixture) addGuest(t *testing.T, status enums.RSVPStatus, side enums.GuestSide, plusOnes int) {
	t.Helper()
	require.NoError(t, f.conn.Create(&models.Guest{
		ID:         uuid.New(),
		WeddingID:  f.weddingID,
		Name:       "guest",
		Side:       side,
		RSVPStatus: status,
		PlusOnes:   plusOnes,
		CreatedBy:  uuid.New(),
	}).Error)
}

func (f *analyticsFixture) addExpense(t *testing.T, estimated, actual string, status enums.PaymentStatus) {
	t.Helper()
	require.NoError(t, f.conn.Create(&models.Expense{
		ID:            uuid.New(),
		WeddingID:     f.weddingID,
		Category:      "general",
		EstimatedCost: decimal.RequireFromString(estimated),
		ActualCost:    decimal.RequireFromString(actual),
		PaymentStatus: status,
		OwnerUserID:   uuid.New(),
	}).Error)
}

func (f *analyticsFixture) addFunction(t *testing.T, status enums.FunctionStatus, date time.Time) {
	t.Helper()
	require.NoError(t, f.conn.Create(&models.WeddingFunction{
		ID:        uuid.New(),
		WeddingID: f.weddingID,
		Name:      "event",
		Type:      "ceremony",
		Date:      date,
		Status:    status,
		CreatedBy: uuid.New(),
	}).Error)
}

func TestBudgetAnalytics(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addExpense(t, "1000", "800", enums.PaymentPartial)
	f.addExpense(t, "500", "500", enums.PaymentPaid)

	report, err := f.svc.Budget(context.Background(), f.weddingID)
	require.NoError(t, err)
	assert.True(t, report.Total.Equal(decimal.RequireFromString("1500")))
	assert.True(t, report.Spent.Equal(decimal.RequireFromString("1300")))
	assert.True(t, report.Remaining.Equal(decimal.RequireFromString("200")))
}

func TestRSVPAnalytics(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addGuest(t, enums.RSVPYes, enums.GuestSideBride, 2)
	f.addGuest(t, enums.RSVPYes, enums.GuestSideGroom, 0)
	f.addGuest(t, enums.RSVPNo, enums.GuestSideGroom, 0)
	f.addGuest(t, enums.RSVPPending, enums.GuestSideBride, 1)

	report, err := f.svc.RSVP(context.Background(), f.weddingID)
	require.NoError(t, err)
	assert.Equal(t, 4, report.TotalGuests)
	assert.Equal(t, 2, report.ByStatus["yes"])
	assert.Equal(t, 1, report.ByStatus["pending"])
	assert.Equal(t, 2, report.BySide["bride"])
	assert.Equal(t, 2, report.PlusOnes)
	assert.Equal(t, 4, report.ExpectedHeads)
	assert.InDelta(t, 75.0, report.ResponseRate, 0.001)
	assert.InDelta(t, 50.0, report.AttendancePlan, 0.001)
}

func TestFunctionsAnalytics(t *testing.T) {
	f := newAnalyticsFixture(t)
	now := time.Now()
	f.addFunction(t, enums.FunctionCompleted, now.Add(-48*time.Hour))
	f.addFunction(t, enums.FunctionPending, now.Add(48*time.Hour))
	f.addFunction(t, enums.FunctionCancelled, now.Add(96*time.Hour))
	f.addFunction(t, enums.FunctionCompleted, now.Add(-24*time.Hour))

	report, err := f.svc.Functions(context.Background(), f.weddingID)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.ByStatus["completed"])
	assert.Equal(t, 1, report.Upcoming)
	assert.InDelta(t, 50.0, report.CompletionPercent, 0.001)
}

func TestPackingAnalytics(t *testing.T) {
	f := newAnalyticsFixture(t)

	listID := uuid.New()
	require.NoError(t, f.conn.Create(&models.PackingList{
		ID:        listID,
		WeddingID: f.weddingID,
		OwnerID:   uuid.New(),
		Title:     "Honeymoon",
	}).Error)
	packedAt := time.Now()
	require.NoError(t, f.conn.Create(&models.PackingItem{
		ID: uuid.New(), ListID: listID, Name: "Passport", Quantity: 1, IsPacked: true, PackedAt: &packedAt,
	}).Error)
	require.NoError(t, f.conn.Create(&models.PackingItem{
		ID: uuid.New(), ListID: listID, Name: "Charger", Quantity: 1,
	}).Error)

	report, err := f.svc.Packing(context.Background(), f.weddingID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Lists)
	assert.Equal(t, 2, report.TotalItems)
	assert.Equal(t, 1, report.PackedItems)
	assert.InDelta(t, 50.0, report.CompletionPercent, 0.001)
	require.Len(t, report.PerList, 1)
	assert.Equal(t, "Honeymoon", report.PerList[0].Title)
}

func TestDashboardCombinesReports(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.addExpense(t, "1000", "400", enums.PaymentPartial)
	f.addGuest(t, enums.RSVPYes, enums.GuestSideBride, 0)
	f.addFunction(t, enums.FunctionPending, time.Now().Add(24*time.Hour))

	dashboard, err := f.svc.Dashboard(context.Background(), f.weddingID)
	require.NoError(t, err)
	assert.Equal(t, 30, dashboard.DaysToWedding)
	assert.True(t, dashboard.Budget.Total.Equal(decimal.RequireFromString("1000")))
	assert.Equal(t, 1, dashboard.RSVP.TotalGuests)
	assert.Equal(t, 1, dashboard.Functions.Total)
	assert.NotNil(t, dashboard.Packing)
}
