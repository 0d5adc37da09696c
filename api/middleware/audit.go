package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/internal/audit"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

// Audit records successful mutations on wedding-scoped routes. The module
// is the path segment after the wedding id and the record id is the next
// uuid segment, if any. Reads and failed requests are not recorded.
func Audit(svc audit.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if svc == nil || !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status < 200 || recorder.status > 299 {
				return
			}

			module, recordID := auditTarget(r.URL.Path)
			if module == "" {
				return
			}

			entry := audit.Entry{
				Module:   module,
				Action:   auditAction(r.Method, r.URL.Path),
				RecordID: recordID,
			}
			if weddingID := WeddingIDFromContext(r.Context()); weddingID != uuid.Nil {
				entry.WeddingID = &weddingID
			}
			if userID := UserIDFromContext(r.Context()); userID != uuid.Nil {
				entry.UserID = &userID
			}
			svc.Record(r.Context(), entry)
		})
	}
}

// auditTarget extracts the module and optional record id from a path like
// /api/v1/weddings/{weddingID}/guests/{guestID}/rsvp.
func auditTarget(path string) (string, *uuid.UUID) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		if segment != "weddings" || i+2 >= len(segments) {
			continue
		}
		if _, err := uuid.Parse(segments[i+1]); err != nil {
			continue
		}
		module := segments[i+2]
		var recordID *uuid.UUID
		if i+3 < len(segments) {
			if id, err := uuid.Parse(segments[i+3]); err == nil {
				recordID = &id
			}
		}
		return module, recordID
	}
	// Mutations on the wedding itself.
	if len(segments) >= 2 && segments[len(segments)-2] == "weddings" {
		if _, err := uuid.Parse(segments[len(segments)-1]); err == nil {
			return "weddings", nil
		}
	}
	return "", nil
}

// auditAction derives the action name from the method, preferring a
// trailing verb segment like rsvp, rate, or rollback.
func auditAction(method, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		if _, err := uuid.Parse(last); err != nil && last != "" {
			switch last {
			case "guests", "budget", "vendors", "functions", "chat", "media", "packing-lists", "items", "notifications", "members", "emergency-alerts":
			default:
				return last
			}
		}
	}
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodDelete:
		return "delete"
	default:
		return "update"
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
