package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

// WeddingURLParam is the chi route parameter carrying the wedding identifier.
const WeddingURLParam = "weddingID"

type weddingLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error)
}

type roleResolver interface {
	RoleOf(ctx context.Context, weddingID, userID uuid.UUID) (*enums.WeddingRole, error)
}

// WeddingAccess guards every nested wedding route. Unknown weddings read as
// 404 and non-members as 403; app owners pass with main admin privileges.
func WeddingAccess(weddings weddingLookup, roles roleResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			weddingID, err := uuid.Parse(chi.URLParam(r, WeddingURLParam))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wedding id"))
				return
			}

			wedding, err := weddings.GetByID(ctx, weddingID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wedding"))
				return
			}
			if wedding == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found"))
				return
			}

			if SystemRoleFromContext(ctx) == enums.SystemRoleAppOwner {
				serveWithAccess(w, r, weddingID, enums.WeddingRoleMainAdmin, logg, next)
				return
			}

			userID := UserIDFromContext(ctx)
			if userID == uuid.Nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}

			role, err := roles.RoleOf(ctx, weddingID, userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve membership"))
				return
			}
			if role == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this wedding"))
				return
			}

			serveWithAccess(w, r, weddingID, *role, logg, next)
		})
	}
}

func serveWithAccess(w http.ResponseWriter, r *http.Request, weddingID uuid.UUID, role enums.WeddingRole, logg *logger.Logger, next http.Handler) {
	ctx := WithWeddingAccess(r.Context(), weddingID, role)
	if logg != nil {
		ctx = logg.WithWeddingID(ctx, weddingID.String())
		ctx = logg.WithActorRole(ctx, role.String())
	}
	next.ServeHTTP(w, r.WithContext(ctx))
}

// RequireWeddingRoles rejects requesters whose resolved role is not in the
// allowed set. Must run inside WeddingAccess.
func RequireWeddingRoles(logg *logger.Logger, allowed ...enums.WeddingRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role := WeddingRoleFromContext(ctx)
			if role == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wedding access guard missing"))
				return
			}
			for _, candidate := range allowed {
				if role == candidate {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient wedding role"))
		})
	}
}
