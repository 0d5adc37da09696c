package controllers

import (
	"net/http"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/internal/analytics"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

func analyticsHandler(svc analytics.Service, logg *logger.Logger, report func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		result, err := report(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func BudgetAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return analyticsHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Budget(r.Context(), middleware.WeddingIDFromContext(r.Context()))
	})
}

func FunctionsAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return analyticsHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Functions(r.Context(), middleware.WeddingIDFromContext(r.Context()))
	})
}

func RSVPAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return analyticsHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.RSVP(r.Context(), middleware.WeddingIDFromContext(r.Context()))
	})
}

func PackingAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return analyticsHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Packing(r.Context(), middleware.WeddingIDFromContext(r.Context()))
	})
}

// DashboardAnalytics combines every report plus the countdown in one
// response.
func DashboardAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return analyticsHandler(svc, logg, func(r *http.Request) (any, error) {
		return svc.Dashboard(r.Context(), middleware.WeddingIDFromContext(r.Context()))
	})
}
