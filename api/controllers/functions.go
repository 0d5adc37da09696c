package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type createFunctionRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	Type        string    `json:"type" validate:"required,min=1,max=100"`
	Date        time.Time `json:"date" validate:"required"`
	StartTime   *string   `json:"start_time,omitempty"`
	EndTime     *string   `json:"end_time,omitempty"`
	Venue       *string   `json:"venue,omitempty"`
	Description *string   `json:"description,omitempty"`
}

type updateFunctionRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Type        *string    `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	Date        *time.Time `json:"date,omitempty"`
	StartTime   *string    `json:"start_time,omitempty"`
	EndTime     *string    `json:"end_time,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Description *string    `json:"description,omitempty"`
}

type updateFunctionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed overdue cancelled"`
}

func CreateFunction(svc functions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "functions service unavailable"))
			return
		}

		var body createFunctionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		function, err := svc.Create(r.Context(), functions.CreateParams{
			WeddingID:   middleware.WeddingIDFromContext(r.Context()),
			Name:        body.Name,
			Type:        body.Type,
			Date:        body.Date,
			StartTime:   body.StartTime,
			EndTime:     body.EndTime,
			Venue:       body.Venue,
			Description: body.Description,
			CreatedBy:   middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, function)
	}
}

func ListFunctions(svc functions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "functions service unavailable"))
			return
		}

		rows, err := svc.List(r.Context(), functions.ListFilter{
			WeddingID: middleware.WeddingIDFromContext(r.Context()),
			Status:    (*enums.FunctionStatus)(validators.ParseQueryString(r, "status")),
			Type:      validators.ParseQueryString(r, "type"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetFunction(svc functions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "functions service unavailable"))
			return
		}

		functionID, err := uuid.Parse(chi.URLParam(r, "functionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid function id"))
			return
		}

		function, err := svc.Get(r.Context(), middleware.WeddingIDFromContext(r.Context()), functionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, function)
	}
}

func UpdateFunction(svc functions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "functions service unavailable"))
			return
		}

		functionID, err := uuid.Parse(chi.URLParam(r, "functionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid function id"))
			return
		}

		var body updateFunctionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		function, err := svc.Update(r.Context(), middleware.WeddingIDFromContext(r.Context()), functionID, functions.UpdateParams{
			Name:        body.Name,
			Type:        body.Type,
			Date:        body.Date,
			StartTime:   body.StartTime,
			EndTime:     body.EndTime,
			Venue:       body.Venue,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, function)
	}
}

func UpdateFunctionStatus(svc functions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "functions service unavailable"))
			return
		}

		functionID, err := uuid.Parse(chi.URLParam(r, "functionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid function id"))
			return
		}

		var body updateFunctionStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		function, err := svc.UpdateStatus(r.Context(), middleware.WeddingIDFromContext(r.Context()), functionID, enums.FunctionStatus(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, function)
	}
}

func DeleteFunction(svc functions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "functions service unavailable"))
			return
		}

		functionID, err := uuid.Parse(chi.URLParam(r, "functionID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid function id"))
			return
		}

		if err := svc.Delete(r.Context(), middleware.WeddingIDFromContext(r.Context()), functionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
