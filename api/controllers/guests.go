package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/guests"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type createGuestRequest struct {
	Name         string     `json:"name" validate:"required,min=1,max=200"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string    `json:"phone,omitempty"`
	Relationship *string    `json:"relationship,omitempty"`
	Side         string     `json:"side" validate:"required,oneof=bride groom"`
	PlusOnes     int        `json:"plus_ones" validate:"omitempty,min=0"`
	FunctionID   *uuid.UUID `json:"function_id,omitempty"`
}

type updateGuestRequest struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string    `json:"phone,omitempty"`
	Relationship *string    `json:"relationship,omitempty"`
	Side         *string    `json:"side,omitempty" validate:"omitempty,oneof=bride groom"`
	PlusOnes     *int       `json:"plus_ones,omitempty" validate:"omitempty,min=0"`
	FunctionID   *uuid.UUID `json:"function_id,omitempty"`
}

type updateRSVPRequest struct {
	Status   string `json:"status" validate:"required,oneof=pending yes no maybe"`
	PlusOnes *int   `json:"plus_ones,omitempty" validate:"omitempty,min=0"`
}

func CreateGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guests service unavailable"))
			return
		}

		var body createGuestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		guest, err := svc.Create(r.Context(), guests.CreateParams{
			WeddingID:    middleware.WeddingIDFromContext(r.Context()),
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			Relationship: body.Relationship,
			Side:         enums.GuestSide(body.Side),
			PlusOnes:     body.PlusOnes,
			FunctionID:   body.FunctionID,
			CreatedBy:    middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, guest)
	}
}

func ListGuests(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guests service unavailable"))
			return
		}

		filter := guests.ListFilter{
			WeddingID:  middleware.WeddingIDFromContext(r.Context()),
			Side:       validators.ParseQueryString(r, "side"),
			RSVPStatus: validators.ParseQueryString(r, "rsvp_status"),
		}
		functionID, err := validators.ParseQueryUUID(r, "function_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.FunctionID = functionID

		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guests service unavailable"))
			return
		}

		guestID, err := uuid.Parse(chi.URLParam(r, "guestID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid guest id"))
			return
		}

		guest, err := svc.Get(r.Context(), middleware.WeddingIDFromContext(r.Context()), guestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, guest)
	}
}

func UpdateGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guests service unavailable"))
			return
		}

		guestID, err := uuid.Parse(chi.URLParam(r, "guestID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid guest id"))
			return
		}

		var body updateGuestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := guests.UpdateParams{
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			Relationship: body.Relationship,
			PlusOnes:     body.PlusOnes,
			FunctionID:   body.FunctionID,
		}
		if body.Side != nil {
			side := enums.GuestSide(*body.Side)
			params.Side = &side
		}

		guest, err := svc.Update(r.Context(), middleware.WeddingIDFromContext(r.Context()), guestID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, guest)
	}
}

func UpdateGuestRSVP(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guests service unavailable"))
			return
		}

		guestID, err := uuid.Parse(chi.URLParam(r, "guestID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid guest id"))
			return
		}

		var body updateRSVPRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		guest, err := svc.UpdateRSVP(r.Context(), middleware.WeddingIDFromContext(r.Context()), guestID, enums.RSVPStatus(body.Status), body.PlusOnes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, guest)
	}
}

func DeleteGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "guests service unavailable"))
			return
		}

		guestID, err := uuid.Parse(chi.URLParam(r, "guestID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid guest id"))
			return
		}

		if err := svc.Delete(r.Context(), middleware.WeddingIDFromContext(r.Context()), guestID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
