package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/media"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type uploadMediaRequest struct {
	FunctionID           *uuid.UUID `json:"function_id,omitempty"`
	FileName             string     `json:"file_name" validate:"required,min=1,max=255"`
	FileURL              string     `json:"file_url" validate:"required,min=1"`
	FileType             string     `json:"file_type" validate:"required,oneof=image video document"`
	FileSize             int64      `json:"file_size" validate:"required,min=1"`
	Caption              *string    `json:"caption,omitempty"`
	RoleAccess           []string   `json:"role_access,omitempty"`
	Watermark            bool       `json:"watermark"`
	ScreenshotPrevention bool       `json:"screenshot_prevention"`
}

type mediaAccessRequest struct {
	RoleAccess           *[]string `json:"role_access,omitempty"`
	Watermark            *bool     `json:"watermark,omitempty"`
	ScreenshotPrevention *bool     `json:"screenshot_prevention,omitempty"`
}

type rollbackMediaRequest struct {
	VersionID uuid.UUID `json:"version_id" validate:"required"`
}

func (b uploadMediaRequest) toParams(weddingID, uploadedBy uuid.UUID) media.UploadParams {
	return media.UploadParams{
		WeddingID:            weddingID,
		FunctionID:           b.FunctionID,
		UploadedBy:           uploadedBy,
		FileName:             b.FileName,
		FileURL:              b.FileURL,
		FileType:             b.FileType,
		FileSize:             b.FileSize,
		Caption:              b.Caption,
		RoleAccess:           b.RoleAccess,
		Watermark:            b.Watermark,
		ScreenshotPrevention: b.ScreenshotPrevention,
	}
}

func UploadMedia(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		var body uploadMediaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Upload(r.Context(), body.toParams(middleware.WeddingIDFromContext(r.Context()), middleware.UserIDFromContext(r.Context())))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UploadMediaVersion(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		rootID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid media id"))
			return
		}

		var body uploadMediaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UploadVersion(r.Context(), middleware.WeddingIDFromContext(r.Context()), rootID, body.toParams(middleware.WeddingIDFromContext(r.Context()), middleware.UserIDFromContext(r.Context())))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ListMedia returns the wedding's current media versions filtered by the
// caller's role access.
func ListMedia(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		filter := media.ListFilter{
			WeddingID: middleware.WeddingIDFromContext(r.Context()),
			FileType:  validators.ParseQueryString(r, "file_type"),
		}
		functionID, err := validators.ParseQueryUUID(r, "function_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.FunctionID = functionID

		rows, err := svc.List(r.Context(), filter, middleware.WeddingRoleFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func GetMedia(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid media id"))
			return
		}

		item, err := svc.Get(r.Context(), middleware.WeddingIDFromContext(r.Context()), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func ListMediaVersions(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		rootID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid media id"))
			return
		}

		rows, err := svc.Versions(r.Context(), middleware.WeddingIDFromContext(r.Context()), rootID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func RollbackMedia(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		rootID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid media id"))
			return
		}

		var body rollbackMediaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Rollback(r.Context(), middleware.WeddingIDFromContext(r.Context()), rootID, body.VersionID, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func UpdateMediaAccess(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		rootID, err := uuid.Parse(chi.URLParam(r, "mediaID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid media id"))
			return
		}

		var body mediaAccessRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateAccess(r.Context(), middleware.WeddingIDFromContext(r.Context()), rootID, media.AccessParams{
			RoleAccess:           body.RoleAccess,
			Watermark:            body.Watermark,
			ScreenshotPrevention: body.ScreenshotPrevention,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
