package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/places"
)

func setupVendorsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  wedding_id TEXT NOT NULL,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  contact_name TEXT,
  phone TEXT,
  email TEXT,
  location TEXT,
  latitude REAL,
  longitude REAL,
  cost TEXT,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  rating_total REAL NOT NULL DEFAULT 0,
  rating_count INTEGER NOT NULL DEFAULT 0,
  assigned_user_id TEXT,
  shared INTEGER NOT NULL DEFAULT 0,
  notes TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newVendorsService(t *testing.T, resolver PlaceResolver) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupVendorsTestDB(t)), resolver)
	require.NoError(t, err)
	return svc
}

type stubResolver struct {
	lat, lng float64
}

func (s *stubResolver) Autocomplete(_ context.Context, _ places.AutocompleteRequest) ([]places.AutocompleteSuggestion, error) {
	return []places.AutocompleteSuggestion{{PlaceID: "place-1", Description: "Mumbai"}}, nil
}

func (s *stubResolver) ResolvePlace(_ context.Context, _ string) (*places.PlaceDetails, error) {
	return &places.PlaceDetails{
		PlaceID:  "place-1",
		Location: places.LatLng{Latitude: s.lat, Longitude: s.lng},
	}, nil
}

func seedVendor(t *testing.T, svc Service, weddingID uuid.UUID, name string, lat, lng *float64) uuid.UUID {
	t.Helper()
	cost := decimal.RequireFromString("10000")
	vendor, err := svc.Create(context.Background(), CreateParams{
		WeddingID: weddingID,
		Name:      name,
		Type:      "catering",
		Latitude:  lat,
		Longitude: lng,
		Cost:      &cost,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	return vendor.ID
}

func ptrF(v float64) *float64 { return &v }

func TestCreateVendorNormalizesPhone(t *testing.T) {
	svc := newVendorsService(t, nil)
	phone := "98765 43210"

	vendor, err := svc.Create(context.Background(), CreateParams{
		WeddingID: uuid.New(),
		Name:      "Sharma Caterers",
		Type:      "catering",
		Phone:     &phone,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, vendor.Phone)
	assert.Equal(t, "+919876543210", *vendor.Phone)
	assert.Equal(t, enums.PaymentPending, vendor.PaymentStatus)
}

func TestRateVendorAccumulatesAverage(t *testing.T) {
	svc := newVendorsService(t, nil)
	weddingID := uuid.New()
	vendorID := seedVendor(t, svc, weddingID, "DJ Nights", nil, nil)

	_, err := svc.Rate(context.Background(), weddingID, vendorID, 4)
	require.NoError(t, err)
	vendor, err := svc.Rate(context.Background(), weddingID, vendorID, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, vendor.RatingCount)
	assert.InDelta(t, 4.5, vendor.AverageRating(), 0.001)
}

func TestRateVendorRejectsOutOfRange(t *testing.T) {
	svc := newVendorsService(t, nil)
	weddingID := uuid.New()
	vendorID := seedVendor(t, svc, weddingID, "DJ Nights", nil, nil)

	_, err := svc.Rate(context.Background(), weddingID, vendorID, 6)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestAssignAndClearVendor(t *testing.T) {
	svc := newVendorsService(t, nil)
	weddingID := uuid.New()
	vendorID := seedVendor(t, svc, weddingID, "Florist", nil, nil)
	userID := uuid.New()

	vendor, err := svc.Assign(context.Background(), weddingID, vendorID, &userID)
	require.NoError(t, err)
	require.NotNil(t, vendor.AssignedUserID)
	assert.Equal(t, userID, *vendor.AssignedUserID)

	vendor, err = svc.Assign(context.Background(), weddingID, vendorID, nil)
	require.NoError(t, err)
	assert.Nil(t, vendor.AssignedUserID)
}

func TestByLocationWithCoordinates(t *testing.T) {
	svc := newVendorsService(t, nil)
	weddingID := uuid.New()

	// Mumbai city centre vs a vendor ~1100km away in Delhi.
	seedVendor(t, svc, weddingID, "Near Venue", ptrF(19.076), ptrF(72.8777))
	seedVendor(t, svc, weddingID, "Far Away", ptrF(28.6139), ptrF(77.2090))
	seedVendor(t, svc, weddingID, "No Coordinates", nil, nil)

	located, err := svc.ByLocation(context.Background(), LocationParams{
		WeddingID: weddingID,
		Latitude:  ptrF(19.0896),
		Longitude: ptrF(72.8656),
		RadiusKM:  50,
	})
	require.NoError(t, err)
	require.Len(t, located, 1)
	assert.Equal(t, "Near Venue", located[0].Name)
	assert.Less(t, located[0].DistanceKM, 5.0)
}

func TestByLocationResolvesQuery(t *testing.T) {
	svc := newVendorsService(t, &stubResolver{lat: 19.076, lng: 72.8777})
	weddingID := uuid.New()
	seedVendor(t, svc, weddingID, "Near Venue", ptrF(19.08), ptrF(72.88))

	query := "Mumbai"
	located, err := svc.ByLocation(context.Background(), LocationParams{
		WeddingID: weddingID,
		Query:     &query,
	})
	require.NoError(t, err)
	require.Len(t, located, 1)
	assert.Equal(t, "Near Venue", located[0].Name)
}

func TestByLocationRequiresOriginOrResolver(t *testing.T) {
	svc := newVendorsService(t, nil)

	_, err := svc.ByLocation(context.Background(), LocationParams{WeddingID: uuid.New()})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestDeleteVendorThenNotFound(t *testing.T) {
	svc := newVendorsService(t, nil)
	weddingID := uuid.New()
	vendorID := seedVendor(t, svc, weddingID, "Florist", nil, nil)

	require.NoError(t, svc.Delete(context.Background(), weddingID, vendorID))

	err := svc.Delete(context.Background(), weddingID, vendorID)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
