package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/budget"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type createExpenseRequest struct {
	Category      string          `json:"category" validate:"required,min=1,max=100"`
	Description   *string         `json:"description,omitempty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	ActualCost    decimal.Decimal `json:"actual_cost"`
	PaymentStatus string          `json:"payment_status" validate:"omitempty,oneof=pending partial paid overdue"`
}

type updateExpenseRequest struct {
	Category      *string          `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	ActualCost    *decimal.Decimal `json:"actual_cost,omitempty"`
	PaymentStatus *string          `json:"payment_status,omitempty" validate:"omitempty,oneof=pending partial paid overdue"`
}

func CreateExpense(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		var body createExpenseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expense, err := svc.Create(r.Context(), budget.CreateParams{
			WeddingID:     middleware.WeddingIDFromContext(r.Context()),
			Category:      body.Category,
			Description:   body.Description,
			EstimatedCost: body.EstimatedCost,
			ActualCost:    body.ActualCost,
			PaymentStatus: enums.PaymentStatus(body.PaymentStatus),
			OwnerUserID:   middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

func ListExpenses(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		rows, err := svc.List(r.Context(), middleware.WeddingIDFromContext(r.Context()), validators.ParseQueryString(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetExpense(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense id"))
			return
		}

		expense, err := svc.Get(r.Context(), middleware.WeddingIDFromContext(r.Context()), expenseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

func UpdateExpense(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense id"))
			return
		}

		var body updateExpenseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := budget.UpdateParams{
			Category:      body.Category,
			Description:   body.Description,
			EstimatedCost: body.EstimatedCost,
			ActualCost:    body.ActualCost,
		}
		if body.PaymentStatus != nil {
			status := enums.PaymentStatus(*body.PaymentStatus)
			params.PaymentStatus = &status
		}

		expense, err := svc.Update(r.Context(), middleware.WeddingIDFromContext(r.Context()), expenseID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

func DeleteExpense(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense id"))
			return
		}

		if err := svc.Delete(r.Context(), middleware.WeddingIDFromContext(r.Context()), expenseID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func BudgetSummary(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context(), middleware.WeddingIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
