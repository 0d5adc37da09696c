package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/api/responses"
	"github.com/pmrathi94/VivahSetu/api/validators"
	"github.com/pmrathi94/VivahSetu/internal/chat"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	pkgerrors "github.com/pmrathi94/VivahSetu/pkg/errors"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
)

type sendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

type editMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

func SendChatMessage(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		var body sendMessageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Send(r.Context(), middleware.WeddingIDFromContext(r.Context()), middleware.UserIDFromContext(r.Context()), body.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}

func ListChatMessages(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), middleware.WeddingIDFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func EditChatMessage(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid message id"))
			return
		}

		var body editMessageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Edit(r.Context(), middleware.WeddingIDFromContext(r.Context()), messageID, middleware.UserIDFromContext(r.Context()), body.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, message)
	}
}

// DeleteChatMessage removes a message. Senders can delete their own;
// wedding admins can delete anyone's.
func DeleteChatMessage(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid message id"))
			return
		}

		role := middleware.WeddingRoleFromContext(r.Context())
		moderator := role == enums.WeddingRoleMainAdmin || role == enums.WeddingRoleFamilyAdmin

		if err := svc.Delete(r.Context(), middleware.WeddingIDFromContext(r.Context()), messageID, middleware.UserIDFromContext(r.Context()), moderator); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
