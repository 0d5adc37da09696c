package controllers

import (
	"net/http"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/audit"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

// ListAuditLogs returns the wedding's audit trail, newest first. Routing
// restricts it to wedding admins.
func ListAuditLogs(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := audit.ListFilter{
			WeddingID: middleware.WeddingIDFromContext(r.Context()),
			Module:    validators.ParseQueryString(r, "module"),
		}
		userID, err := validators.ParseQueryUUID(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.UserID = userID

		page, err := svc.List(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
