package vendors

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/places"
)

// DefaultPhoneRegion is assumed when a vendor phone number has no country
// prefix.
const DefaultPhoneRegion = "IN"

// DefaultSearchRadiusKM bounds a by-location search when the caller
// supplies none.
const DefaultSearchRadiusKM = 25.0

// PlaceResolver is the subset of the places client used for location
// searches. Nil disables query-string resolution.
type PlaceResolver interface {
	Autocomplete(ctx context.Context, req places.AutocompleteRequest) ([]places.AutocompleteSuggestion, error)
	ResolvePlace(ctx context.Context, placeID string) (*places.PlaceDetails, error)
}

// Service defines vendor operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Vendor, error)
	List(ctx context.Context, filter ListFilter) ([]models.Vendor, error)
	Get(ctx context.Context, weddingID, vendorID uuid.UUID) (*models.Vendor, error)
	Update(ctx context.Context, weddingID, vendorID uuid.UUID, params UpdateParams) (*models.Vendor, error)
	Delete(ctx context.Context, weddingID, vendorID uuid.UUID) error
	Rate(ctx context.Context, weddingID, vendorID uuid.UUID, rating float64) (*models.Vendor, error)
	Assign(ctx context.Context, weddingID, vendorID uuid.UUID, userID *uuid.UUID) (*models.Vendor, error)
	ByLocation(ctx context.Context, params LocationParams) ([]LocatedVendor, error)
}

// CreateParams carries the new-vendor payload.
type CreateParams struct {
	WeddingID     uuid.UUID
	Name          string
	Type          string
	ContactName   *string
	Phone         *string
	Email         *string
	Location      *string
	Latitude      *float64
	Longitude     *float64
	Cost          *decimal.Decimal
	PaymentStatus enums.PaymentStatus
	Shared        bool
	Notes         *string
	CreatedBy     uuid.UUID
}

// UpdateParams carries mutable vendor fields. Nil fields are left untouched.
type UpdateParams struct {
	Name          *string
	Type          *string
	ContactName   *string
	Phone         *string
	Email         *string
	Location      *string
	Latitude      *float64
	Longitude     *float64
	Cost          *decimal.Decimal
	PaymentStatus *enums.PaymentStatus
	Shared        *bool
	Notes         *string
}

// LocationParams drives a by-location vendor search. Either coordinates or
// a free-text query (resolved through the places client) must be provided.
type LocationParams struct {
	WeddingID uuid.UUID
	Query     *string
	Latitude  *float64
	Longitude *float64
	RadiusKM  float64
	Type      *string
}

// LocatedVendor pairs a vendor with its distance from the search origin.
type LocatedVendor struct {
	models.Vendor
	DistanceKM float64 `json:"distance_km"`
}

type service struct {
	repo     Repository
	resolver PlaceResolver
}

// NewService wires vendor dependencies. The place resolver is optional.
func NewService(repo Repository, resolver PlaceResolver) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "vendors repository required")
	}
	return &service{repo: repo, resolver: resolver}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Vendor, error) {
	if params.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name required")
	}
	vendorType := strings.TrimSpace(params.Type)
	if vendorType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor type required")
	}
	if params.Cost != nil && params.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}
	status := params.PaymentStatus
	if status == "" {
		status = enums.PaymentPending
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}
	phone, err := normalizePhone(params.Phone)
	if err != nil {
		return nil, err
	}

	vendor := &models.Vendor{
		ID:            uuid.New(),
		WeddingID:     params.WeddingID,
		Name:          name,
		Type:          vendorType,
		ContactName:   params.ContactName,
		Phone:         phone,
		Email:         params.Email,
		Location:      params.Location,
		Latitude:      params.Latitude,
		Longitude:     params.Longitude,
		Cost:          params.Cost,
		PaymentStatus: status,
		Shared:        params.Shared,
		Notes:         params.Notes,
		CreatedBy:     params.CreatedBy,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return vendor, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Vendor, error) {
	if filter.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	vendors, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return vendors, nil
}

func (s *service) Get(ctx context.Context, weddingID, vendorID uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.GetByID(ctx, weddingID, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get vendor")
	}
	if vendor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return vendor, nil
}

func (s *service) Update(ctx context.Context, weddingID, vendorID uuid.UUID, params UpdateParams) (*models.Vendor, error) {
	vendor, err := s.Get(ctx, weddingID, vendorID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name cannot be empty")
		}
		vendor.Name = name
	}
	if params.Type != nil {
		vendorType := strings.TrimSpace(*params.Type)
		if vendorType == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor type cannot be empty")
		}
		vendor.Type = vendorType
	}
	if params.ContactName != nil {
		vendor.ContactName = params.ContactName
	}
	if params.Phone != nil {
		phone, err := normalizePhone(params.Phone)
		if err != nil {
			return nil, err
		}
		vendor.Phone = phone
	}
	if params.Email != nil {
		vendor.Email = params.Email
	}
	if params.Location != nil {
		vendor.Location = params.Location
	}
	if params.Latitude != nil {
		vendor.Latitude = params.Latitude
	}
	if params.Longitude != nil {
		vendor.Longitude = params.Longitude
	}
	if params.Cost != nil {
		if params.Cost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
		}
		vendor.Cost = params.Cost
	}
	if params.PaymentStatus != nil {
		if !params.PaymentStatus.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		vendor.PaymentStatus = *params.PaymentStatus
	}
	if params.Shared != nil {
		vendor.Shared = *params.Shared
	}
	if params.Notes != nil {
		vendor.Notes = params.Notes
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return vendor, nil
}

func (s *service) Delete(ctx context.Context, weddingID, vendorID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, weddingID, vendorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return nil
}

// Rate appends one rating to the vendor's running total. Ratings are kept
// as sum+count so the average never loses precision to rounding.
func (s *service) Rate(ctx context.Context, weddingID, vendorID uuid.UUID, rating float64) (*models.Vendor, error) {
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	vendor, err := s.Get(ctx, weddingID, vendorID)
	if err != nil {
		return nil, err
	}

	vendor.RatingTotal += rating
	vendor.RatingCount++
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate vendor")
	}
	return vendor, nil
}

// Assign sets or clears the member responsible for the vendor.
func (s *service) Assign(ctx context.Context, weddingID, vendorID uuid.UUID, userID *uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.Get(ctx, weddingID, vendorID)
	if err != nil {
		return nil, err
	}

	vendor.AssignedUserID = userID
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign vendor")
	}
	return vendor, nil
}

// ByLocation returns vendors within the radius of the search origin, nearest
// first. A free-text query is resolved to coordinates through the places
// client; vendors without stored coordinates are skipped.
func (s *service) ByLocation(ctx context.Context, params LocationParams) ([]LocatedVendor, error) {
	if params.WeddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}

	lat, lng, err := s.searchOrigin(ctx, params)
	if err != nil {
		return nil, err
	}
	radius := params.RadiusKM
	if radius <= 0 {
		radius = DefaultSearchRadiusKM
	}

	vendors, err := s.List(ctx, ListFilter{WeddingID: params.WeddingID, Type: params.Type})
	if err != nil {
		return nil, err
	}

	located := make([]LocatedVendor, 0, len(vendors))
	for _, vendor := range vendors {
		if vendor.Latitude == nil || vendor.Longitude == nil {
			continue
		}
		distance := haversineKM(lat, lng, *vendor.Latitude, *vendor.Longitude)
		if distance > radius {
			continue
		}
		located = append(located, LocatedVendor{Vendor: vendor, DistanceKM: distance})
	}
	sort.Slice(located, func(i, j int) bool {
		return located[i].DistanceKM < located[j].DistanceKM
	})
	return located, nil
}

func (s *service) searchOrigin(ctx context.Context, params LocationParams) (float64, float64, error) {
	if params.Latitude != nil && params.Longitude != nil {
		return *params.Latitude, *params.Longitude, nil
	}
	if params.Query == nil || strings.TrimSpace(*params.Query) == "" {
		return 0, 0, pkgerrors.New(pkgerrors.CodeValidation, "coordinates or location query required")
	}
	if s.resolver == nil {
		return 0, 0, pkgerrors.New(pkgerrors.CodeDependency, "place resolution is not configured")
	}

	suggestions, err := s.resolver.Autocomplete(ctx, places.AutocompleteRequest{
		Input:               strings.TrimSpace(*params.Query),
		IncludedRegionCodes: []string{strings.ToLower(DefaultPhoneRegion)},
	})
	if err != nil {
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve location query")
	}
	if len(suggestions) == 0 {
		return 0, 0, pkgerrors.New(pkgerrors.CodeNotFound, "no matching location")
	}
	details, err := s.resolver.ResolvePlace(ctx, suggestions[0].PlaceID)
	if err != nil {
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve place details")
	}
	return details.Location.Latitude, details.Location.Longitude, nil
}

const earthRadiusKM = 6371.0

func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

func normalizePhone(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := phonenumbers.Parse(trimmed, DefaultPhoneRegion)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number")
	}
	formatted := phonenumbers.Format(parsed, phonenumbers.E164)
	return &formatted, nil
}
