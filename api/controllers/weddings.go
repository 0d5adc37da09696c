package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/memberships"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type createWeddingRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	WeddingDate time.Time `json:"wedding_date" validate:"required"`
	BrideID     uuid.UUID `json:"bride_id" validate:"required"`
	GroomID     uuid.UUID `json:"groom_id" validate:"required"`
	Venue       *string   `json:"venue,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Theme       *string   `json:"theme,omitempty"`
	GuestCount  int       `json:"guest_count" validate:"omitempty,min=0"`
}

type updateWeddingRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	WeddingDate *time.Time `json:"wedding_date,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Theme       *string    `json:"theme,omitempty"`
	GuestCount  *int       `json:"guest_count,omitempty" validate:"omitempty,min=0"`
}

type weddingSettingsRequest struct {
	AppName        *string `json:"app_name,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	Language       *string `json:"language,omitempty" validate:"omitempty,min=2,max=8"`
	DarkMode       *bool   `json:"dark_mode,omitempty"`
}

type assignRoleRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required"`
}

func CreateWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weddings service unavailable"))
			return
		}

		var body createWeddingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Create(r.Context(), weddings.CreateParams{
			Name:        body.Name,
			WeddingDate: body.WeddingDate,
			BrideID:     body.BrideID,
			GroomID:     body.GroomID,
			Venue:       body.Venue,
			Latitude:    body.Latitude,
			Longitude:   body.Longitude,
			Theme:       body.Theme,
			GuestCount:  body.GuestCount,
			CreatedBy:   middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// ListWeddings returns the weddings the caller belongs to. App owners see
// every wedding.
func ListWeddings(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weddings service unavailable"))
			return
		}

		var systemRole *string
		if role := middleware.SystemRoleFromContext(r.Context()); role != "" {
			systemRole = &role
		}

		rows, err := svc.List(r.Context(), middleware.UserIDFromContext(r.Context()), systemRole)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weddings service unavailable"))
			return
		}

		detail, err := svc.Get(r.Context(), middleware.WeddingIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func UpdateWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weddings service unavailable"))
			return
		}

		var body updateWeddingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wedding, err := svc.Update(r.Context(), middleware.WeddingIDFromContext(r.Context()), weddings.UpdateParams{
			Name:        body.Name,
			WeddingDate: body.WeddingDate,
			Venue:       body.Venue,
			Latitude:    body.Latitude,
			Longitude:   body.Longitude,
			Theme:       body.Theme,
			GuestCount:  body.GuestCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wedding)
	}
}

func UpdateWeddingSettings(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weddings service unavailable"))
			return
		}

		var body weddingSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wedding, err := svc.UpdateSettings(r.Context(), middleware.WeddingIDFromContext(r.Context()), weddings.SettingsParams{
			AppName:        body.AppName,
			PrimaryColor:   body.PrimaryColor,
			SecondaryColor: body.SecondaryColor,
			Language:       body.Language,
			DarkMode:       body.DarkMode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wedding)
	}
}

func ArchiveWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weddings service unavailable"))
			return
		}

		if err := svc.Archive(r.Context(), middleware.WeddingIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "archived"})
	}
}

func ListWeddingMembers(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "memberships service unavailable"))
			return
		}

		members, err := svc.Members(r.Context(), middleware.WeddingIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

func AssignWeddingRole(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "memberships service unavailable"))
			return
		}

		var body assignRoleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseWeddingRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown wedding role"))
			return
		}

		assignment, err := svc.Assign(r.Context(), memberships.AssignParams{
			WeddingID:  middleware.WeddingIDFromContext(r.Context()),
			UserID:     body.UserID,
			Role:       role,
			AssignedBy: middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, assignment)
	}
}

func RevokeWeddingRole(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "memberships service unavailable"))
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid user id"))
			return
		}

		if err := svc.Revoke(r.Context(), middleware.WeddingIDFromContext(r.Context()), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "revoked"})
	}
}
