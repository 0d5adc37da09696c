package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type stubWeddingLookup struct {
	wedding *models.Wedding
	err     error
}

func (s *stubWeddingLookup) GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error) {
	return s.wedding, s.err
}

type stubRoleResolver struct {
	role *enums.WeddingRole
	err  error
}

func (s *stubRoleResolver) RoleOf(ctx context.Context, weddingID, userID uuid.UUID) (*enums.WeddingRole, error) {
	return s.role, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func weddingScopedRequest(weddingID string, ctx context.Context) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/weddings/"+weddingID, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(WeddingURLParam, weddingID)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestWeddingAccessInvalidID(t *testing.T) {
	handler := WeddingAccess(&stubWeddingLookup{}, &stubRoleResolver{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next should not run")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, weddingScopedRequest("not-a-uuid", context.Background()))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWeddingAccessUnknownWedding(t *testing.T) {
	handler := WeddingAccess(&stubWeddingLookup{}, &stubRoleResolver{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next should not run")
	}))

	resp := httptest.NewRecorder()
	ctx := WithUserID(context.Background(), uuid.New())
	handler.ServeHTTP(resp, weddingScopedRequest(uuid.NewString(), ctx))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestWeddingAccessUnauthenticated(t *testing.T) {
	weddingID := uuid.New()
	lookup := &stubWeddingLookup{wedding: &models.Wedding{ID: weddingID}}
	handler := WeddingAccess(lookup, &stubRoleResolver{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next should not run")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, weddingScopedRequest(weddingID.String(), context.Background()))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestWeddingAccessNonMember(t *testing.T) {
	weddingID := uuid.New()
	lookup := &stubWeddingLookup{wedding: &models.Wedding{ID: weddingID}}
	handler := WeddingAccess(lookup, &stubRoleResolver{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next should not run")
	}))

	resp := httptest.NewRecorder()
	ctx := WithUserID(context.Background(), uuid.New())
	handler.ServeHTTP(resp, weddingScopedRequest(weddingID.String(), ctx))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestWeddingAccessMemberSeedsContext(t *testing.T) {
	weddingID := uuid.New()
	role := enums.WeddingRoleFamilyAdmin
	lookup := &stubWeddingLookup{wedding: &models.Wedding{ID: weddingID}}
	resolver := &stubRoleResolver{role: &role}

	var gotWedding uuid.UUID
	var gotRole enums.WeddingRole
	handler := WeddingAccess(lookup, resolver, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWedding = WeddingIDFromContext(r.Context())
		gotRole = WeddingRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	ctx := WithUserID(context.Background(), uuid.New())
	handler.ServeHTTP(resp, weddingScopedRequest(weddingID.String(), ctx))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotWedding != weddingID {
		t.Fatalf("wedding id not seeded")
	}
	if gotRole != enums.WeddingRoleFamilyAdmin {
		t.Fatalf("role not seeded, got %s", gotRole)
	}
}

func TestWeddingAccessAppOwnerBypass(t *testing.T) {
	weddingID := uuid.New()
	lookup := &stubWeddingLookup{wedding: &models.Wedding{ID: weddingID}}

	var gotRole enums.WeddingRole
	handler := WeddingAccess(lookup, &stubRoleResolver{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = WeddingRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	ctx := WithUserID(context.Background(), uuid.New())
	ctx = WithSystemRole(ctx, enums.SystemRoleAppOwner)
	handler.ServeHTTP(resp, weddingScopedRequest(weddingID.String(), ctx))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotRole != enums.WeddingRoleMainAdmin {
		t.Fatalf("expected main admin role for app owner, got %s", gotRole)
	}
}

func TestRequireWeddingRoles(t *testing.T) {
	guard := RequireWeddingRoles(testLogger(), enums.WeddingRoleMainAdmin)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Matching role passes.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithWeddingAccess(req.Context(), uuid.New(), enums.WeddingRoleMainAdmin))
	resp := httptest.NewRecorder()
	guard(next).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	// Insufficient role is rejected.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithWeddingAccess(req.Context(), uuid.New(), enums.WeddingRoleGuest))
	resp = httptest.NewRecorder()
	guard(next).ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	// Missing guard context reads as a server error.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	resp = httptest.NewRecorder()
	guard(next).ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
