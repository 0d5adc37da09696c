package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/internal/audit"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	"github.com/pmrathi94/VivahSetu/pkg/pagination"
)

type recordingAuditService struct {
	entries []audit.Entry
}

func (s *recordingAuditService) Record(ctx context.Context, entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func (s *recordingAuditService) List(ctx context.Context, filter audit.ListFilter, params pagination.Params) (*audit.Page, error) {
	return &audit.Page{}, nil
}

func auditRequest(method, path string, userID, weddingID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	ctx := WithUserID(req.Context(), userID)
	ctx = WithWeddingAccess(ctx, weddingID, enums.WeddingRoleMainAdmin)
	return req.WithContext(ctx)
}

func TestAuditRecordsSuccessfulMutation(t *testing.T) {
	svc := &recordingAuditService{}
	handler := Audit(svc, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	userID := uuid.New()
	weddingID := uuid.New()
	path := "/api/v1/weddings/" + weddingID.String() + "/guests"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, auditRequest(http.MethodPost, path, userID, weddingID))

	if len(svc.entries) != 1 {
		t.Fatalf("expected 1 entry got %d", len(svc.entries))
	}
	entry := svc.entries[0]
	if entry.Module != "guests" || entry.Action != "create" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.WeddingID == nil || *entry.WeddingID != weddingID {
		t.Fatal("wedding id not recorded")
	}
	if entry.UserID == nil || *entry.UserID != userID {
		t.Fatal("user id not recorded")
	}
}

func TestAuditCapturesRecordIDAndVerb(t *testing.T) {
	svc := &recordingAuditService{}
	handler := Audit(svc, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	weddingID := uuid.New()
	guestID := uuid.New()
	path := "/api/v1/weddings/" + weddingID.String() + "/guests/" + guestID.String() + "/rsvp"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, auditRequest(http.MethodPut, path, uuid.New(), weddingID))

	if len(svc.entries) != 1 {
		t.Fatalf("expected 1 entry got %d", len(svc.entries))
	}
	entry := svc.entries[0]
	if entry.Module != "guests" || entry.Action != "rsvp" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.RecordID == nil || *entry.RecordID != guestID {
		t.Fatal("record id not captured")
	}
}

func TestAuditSkipsReadsAndFailures(t *testing.T) {
	svc := &recordingAuditService{}
	weddingID := uuid.New()
	path := "/api/v1/weddings/" + weddingID.String() + "/guests"

	okReads := Audit(svc, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	okReads.ServeHTTP(httptest.NewRecorder(), auditRequest(http.MethodGet, path, uuid.New(), weddingID))

	failing := Audit(svc, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	failing.ServeHTTP(httptest.NewRecorder(), auditRequest(http.MethodPost, path, uuid.New(), weddingID))

	if len(svc.entries) != 0 {
		t.Fatalf("expected no entries got %d", len(svc.entries))
	}
}

func TestAuditIgnoresUnscopedPaths(t *testing.T) {
	svc := &recordingAuditService{}
	handler := Audit(svc, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, auditRequest(http.MethodPost, "/api/v1/users/me", uuid.New(), uuid.Nil))

	if len(svc.entries) != 0 {
		t.Fatalf("expected no entries got %d", len(svc.entries))
	}
}
