package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/internal/guests"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
)

type testGuestsService struct {
	createFn     func(ctx context.Context, params guests.CreateParams) (*models.Guest, error)
	listFn       func(ctx context.Context, filter guests.ListFilter) ([]models.Guest, error)
	updateRSVPFn func(ctx context.Context, weddingID, guestID uuid.UUID, status enums.RSVPStatus, plusOnes *int) (*models.Guest, error)
	deleteFn     func(ctx context.Context, weddingID, guestID uuid.UUID) error
}

func (s *testGuestsService) Create(ctx context.Context, params guests.CreateParams) (*models.Guest, error) {
	if s.createFn != nil {
		return s.createFn(ctx, params)
	}
	return &models.Guest{}, nil
}

func (s *testGuestsService) List(ctx context.Context, filter guests.ListFilter) ([]models.Guest, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *testGuestsService) Get(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error) {
	return &models.Guest{ID: guestID, WeddingID: weddingID}, nil
}

func (s *testGuestsService) Update(ctx context.Context, weddingID, guestID uuid.UUID, params guests.UpdateParams) (*models.Guest, error) {
	return &models.Guest{ID: guestID, WeddingID: weddingID}, nil
}

func (s *testGuestsService) UpdateRSVP(ctx context.Context, weddingID, guestID uuid.UUID, status enums.RSVPStatus, plusOnes *int) (*models.Guest, error) {
	if s.updateRSVPFn != nil {
		return s.updateRSVPFn(ctx, weddingID, guestID, status, plusOnes)
	}
	return &models.Guest{ID: guestID}, nil
}

func (s *testGuestsService) Delete(ctx context.Context, weddingID, guestID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, weddingID, guestID)
	}
	return nil
}

func TestCreateGuestSuccess(t *testing.T) {
	userID := uuid.New()
	weddingID := uuid.New()
	var got guests.CreateParams
	svc := &testGuestsService{
		createFn: func(ctx context.Context, params guests.CreateParams) (*models.Guest, error) {
			got = params
			return &models.Guest{ID: uuid.New(), WeddingID: params.WeddingID, Name: params.Name}, nil
		},
	}

	body := `{"name":"Asha Patel","side":"bride","plus_ones":2}`
	req := weddingRequest(http.MethodPost, "/guests", body, userID, weddingID, enums.WeddingRoleMainAdmin)
	resp := httptest.NewRecorder()
	CreateGuest(svc, testLogger())(resp, req)

	requireStatus(t, resp, http.StatusCreated)
	if got.WeddingID != weddingID {
		t.Fatalf("expected wedding %s got %s", weddingID, got.WeddingID)
	}
	if got.CreatedBy != userID {
		t.Fatalf("expected creator %s got %s", userID, got.CreatedBy)
	}
	if got.Side != enums.GuestSideBride || got.PlusOnes != 2 {
		t.Fatalf("unexpected params %+v", got)
	}
}

func TestCreateGuestRejectsUnknownSide(t *testing.T) {
	req := weddingRequest(http.MethodPost, "/guests", `{"name":"X","side":"neither"}`, uuid.New(), uuid.New(), enums.WeddingRoleMainAdmin)
	resp := httptest.NewRecorder()
	CreateGuest(&testGuestsService{}, testLogger())(resp, req)
	requireStatus(t, resp, http.StatusBadRequest)
}

func TestCreateGuestRejectsUnknownFields(t *testing.T) {
	req := weddingRequest(http.MethodPost, "/guests", `{"name":"X","side":"bride","bogus":true}`, uuid.New(), uuid.New(), enums.WeddingRoleMainAdmin)
	resp := httptest.NewRecorder()
	CreateGuest(&testGuestsService{}, testLogger())(resp, req)
	requireStatus(t, resp, http.StatusBadRequest)
}

func TestListGuestsPassesFilters(t *testing.T) {
	weddingID := uuid.New()
	functionID := uuid.New()
	var got guests.ListFilter
	svc := &testGuestsService{
		listFn: func(ctx context.Context, filter guests.ListFilter) ([]models.Guest, error) {
			got = filter
			return []models.Guest{}, nil
		},
	}

	target := "/guests?side=groom&rsvp_status=yes&function_id=" + functionID.String()
	req := weddingRequest(http.MethodGet, target, "", uuid.New(), weddingID, enums.WeddingRoleGuest)
	resp := httptest.NewRecorder()
	ListGuests(svc, testLogger())(resp, req)

	requireStatus(t, resp, http.StatusOK)
	if got.WeddingID != weddingID {
		t.Fatalf("unexpected wedding %s", got.WeddingID)
	}
	if got.Side == nil || *got.Side != "groom" {
		t.Fatalf("side filter not forwarded: %+v", got)
	}
	if got.RSVPStatus == nil || *got.RSVPStatus != "yes" {
		t.Fatalf("rsvp filter not forwarded: %+v", got)
	}
	if got.FunctionID == nil || *got.FunctionID != functionID {
		t.Fatalf("function filter not forwarded: %+v", got)
	}
}

func TestUpdateGuestRSVP(t *testing.T) {
	weddingID := uuid.New()
	guestID := uuid.New()
	var gotStatus enums.RSVPStatus
	var gotPlusOnes *int
	svc := &testGuestsService{
		updateRSVPFn: func(ctx context.Context, wid, gid uuid.UUID, status enums.RSVPStatus, plusOnes *int) (*models.Guest, error) {
			gotStatus = status
			gotPlusOnes = plusOnes
			return &models.Guest{ID: gid, RSVPStatus: status}, nil
		},
	}

	req := weddingRequest(http.MethodPut, "/guests/"+guestID.String()+"/rsvp", `{"status":"yes","plus_ones":1}`, uuid.New(), weddingID, enums.WeddingRoleGuest)
	req = addRouteParam(req, "guestID", guestID.String())
	resp := httptest.NewRecorder()
	UpdateGuestRSVP(svc, testLogger())(resp, req)

	requireStatus(t, resp, http.StatusOK)
	if gotStatus != enums.RSVPYes {
		t.Fatalf("unexpected status %s", gotStatus)
	}
	if gotPlusOnes == nil || *gotPlusOnes != 1 {
		t.Fatalf("plus ones not forwarded")
	}

	var envelope struct {
		Data models.Guest `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.RSVPStatus != enums.RSVPYes {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestUpdateGuestRSVPInvalidID(t *testing.T) {
	req := weddingRequest(http.MethodPut, "/guests/bad/rsvp", `{"status":"yes"}`, uuid.New(), uuid.New(), enums.WeddingRoleGuest)
	req = addRouteParam(req, "guestID", "bad")
	resp := httptest.NewRecorder()
	UpdateGuestRSVP(&testGuestsService{}, testLogger())(resp, req)
	requireStatus(t, resp, http.StatusBadRequest)
}

func TestDeleteGuestServiceUnavailable(t *testing.T) {
	req := weddingRequest(http.MethodDelete, "/guests/"+uuid.NewString(), "", uuid.New(), uuid.New(), enums.WeddingRoleMainAdmin)
	req = addRouteParam(req, "guestID", uuid.NewString())
	resp := httptest.NewRecorder()
	DeleteGuest(nil, testLogger())(resp, req)
	requireStatus(t, resp, http.StatusInternalServerError)
}
