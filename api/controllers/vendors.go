package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/vendors"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type createVendorRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Type          string           `json:"type" validate:"required,min=1,max=100"`
	ContactName   *string          `json:"contact_name,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Email         *string          `json:"email,omitempty" validate:"omitempty,email"`
	Location      *string          `json:"location,omitempty"`
	Latitude      *float64         `json:"latitude,omitempty"`
	Longitude     *float64         `json:"longitude,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	PaymentStatus string           `json:"payment_status" validate:"omitempty,oneof=pending partial paid overdue"`
	Shared        bool             `json:"shared"`
	Notes         *string          `json:"notes,omitempty"`
}

type updateVendorRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Type          *string          `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	ContactName   *string          `json:"contact_name,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Email         *string          `json:"email,omitempty" validate:"omitempty,email"`
	Location      *string          `json:"location,omitempty"`
	Latitude      *float64         `json:"latitude,omitempty"`
	Longitude     *float64         `json:"longitude,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	PaymentStatus *string          `json:"payment_status,omitempty" validate:"omitempty,oneof=pending partial paid overdue"`
	Shared        *bool            `json:"shared,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

type rateVendorRequest struct {
	Rating float64 `json:"rating" validate:"required,min=0,max=5"`
}

type assignVendorRequest struct {
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

func CreateVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		var body createVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Create(r.Context(), vendors.CreateParams{
			WeddingID:     middleware.WeddingIDFromContext(r.Context()),
			Name:          body.Name,
			Type:          body.Type,
			ContactName:   body.ContactName,
			Phone:         body.Phone,
			Email:         body.Email,
			Location:      body.Location,
			Latitude:      body.Latitude,
			Longitude:     body.Longitude,
			Cost:          body.Cost,
			PaymentStatus: enums.PaymentStatus(body.PaymentStatus),
			Shared:        body.Shared,
			Notes:         body.Notes,
			CreatedBy:     middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, vendor)
	}
}

func ListVendors(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		shared, err := validators.ParseQueryBool(r, "shared")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), vendors.ListFilter{
			WeddingID: middleware.WeddingIDFromContext(r.Context()),
			Type:      validators.ParseQueryString(r, "type"),
			Shared:    shared,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id"))
			return
		}

		vendor, err := svc.Get(r.Context(), middleware.WeddingIDFromContext(r.Context()), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func UpdateVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id"))
			return
		}

		var body updateVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := vendors.UpdateParams{
			Name:        body.Name,
			Type:        body.Type,
			ContactName: body.ContactName,
			Phone:       body.Phone,
			Email:       body.Email,
			Location:    body.Location,
			Latitude:    body.Latitude,
			Longitude:   body.Longitude,
			Cost:        body.Cost,
			Shared:      body.Shared,
			Notes:       body.Notes,
		}
		if body.PaymentStatus != nil {
			status := enums.PaymentStatus(*body.PaymentStatus)
			params.PaymentStatus = &status
		}

		vendor, err := svc.Update(r.Context(), middleware.WeddingIDFromContext(r.Context()), vendorID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func DeleteVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id"))
			return
		}

		if err := svc.Delete(r.Context(), middleware.WeddingIDFromContext(r.Context()), vendorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func RateVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id"))
			return
		}

		var body rateVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Rate(r.Context(), middleware.WeddingIDFromContext(r.Context()), vendorID, body.Rating)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// AssignVendor sets or clears the user responsible for a vendor. A null
// user_id clears the assignment.
func AssignVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id"))
			return
		}

		var body assignVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Assign(r.Context(), middleware.WeddingIDFromContext(r.Context()), vendorID, body.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

func VendorsByLocation(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		latitude, err := validators.ParseQueryFloat(r, "latitude")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		longitude, err := validators.ParseQueryFloat(r, "longitude")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		radius, err := validators.ParseQueryFloat(r, "radius_km")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := vendors.LocationParams{
			WeddingID: middleware.WeddingIDFromContext(r.Context()),
			Query:     validators.ParseQueryString(r, "query"),
			Latitude:  latitude,
			Longitude: longitude,
			Type:      validators.ParseQueryString(r, "type"),
		}
		if radius != nil {
			params.RadiusKM = *radius
		}

		rows, err := svc.ByLocation(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
