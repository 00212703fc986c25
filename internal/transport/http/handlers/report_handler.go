package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/ivankudzin/askbox/backend/internal/services/auth"
	reportsvc "github.com/ivankudzin/askbox/backend/internal/services/reports"
	"github.com/ivankudzin/askbox/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/askbox/backend/internal/transport/http/errors"
)

type ReportHandler struct {
	service *reportsvc.Service
}

func NewReportHandler(service *reportsvc.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "REPORT_SERVICE_UNAVAILABLE", "report service is unavailable")
		return
	}

	var req dto.CreateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	reportID, message, err := h.service.Create(r.Context(), identity.UserID, reportsvc.CreateInput{
		UserID:     req.UserID,
		QuestionID: req.QuestionID,
		ReplyID:    req.ReplyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reportsvc.ErrTargetRequired):
			writeBadRequest(w, "INVALID_REQUEST", "User or post id is required")
		case errors.Is(err, reportsvc.ErrMultipleTargets):
			writeBadRequest(w, "INVALID_REQUEST", "You can only report either a user or a post")
		case errors.Is(err, reportsvc.ErrTargetNotFound):
			writeBadRequest(w, "INVALID_REQUEST", "User or post or reply not found")
		case errors.Is(err, reportsvc.ErrSelfReport):
			writeBadRequest(w, "INVALID_REQUEST", "You cannot report yourself")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create report")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CreateReportResponse{
		Message: message,
		ID:      reportID,
	})
}
