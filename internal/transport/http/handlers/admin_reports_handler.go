package handlers

import (
	"errors"
	"net/http"

	modsvc "github.com/ivankudzin/askbox/backend/internal/services/moderation"
	"github.com/ivankudzin/askbox/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/askbox/backend/internal/transport/http/errors"
)

type AdminReportsHandler struct {
	service *modsvc.Service
}

func NewAdminReportsHandler(service *modsvc.Service) *AdminReportsHandler {
	return &AdminReportsHandler{service: service}
}

// Action resolves a pending report: reject, or ban/warn/timeout the
// reported user.
func (h *AdminReportsHandler) Action(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.AdminReportActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	message, err := h.service.ResolveReport(r.Context(), req.ReportID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrReportNotFound):
			writeNotFound(w, "NOT_FOUND", "Report not found")
		case errors.Is(err, modsvc.ErrReportResolved):
			writeBadRequest(w, "INVALID_REQUEST", "Report already resolved")
		case errors.Is(err, modsvc.ErrInvalidAction):
			writeBadRequest(w, "INVALID_REQUEST", "Invalid action")
		case errors.Is(err, modsvc.ErrUserNotFound):
			writeNotFound(w, "NOT_FOUND", "User not found")
		case errors.Is(err, modsvc.ErrNotSanctioned):
			writeBadRequest(w, "INVALID_REQUEST", "User is not banned")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to resolve report")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AdminReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 10)
	filter := r.URL.Query().Get("filter")

	reports, totalPage, err := h.service.ListReports(r.Context(), filter, page, size)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrInvalidFilter):
			writeBadRequest(w, "INVALID_REQUEST", "Invalid filter")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to list reports")
		}
		return
	}

	items := make([]dto.AdminReportItem, 0, len(reports))
	for _, report := range reports {
		item := dto.AdminReportItem{
			ID:             report.ID,
			ReportType:     string(report.ReportType),
			ReportStatus:   string(report.ReportStatus),
			ReportedPostID: report.ReportedPostID,
			ReporterID:     report.ReporterID,
			ReportedUserID: report.ReportedUserID,
			CreatedAt:      report.CreatedAt,
			UpdatedAt:      report.UpdatedAt,
		}
		if report.ReportedPostType != nil {
			postType := string(*report.ReportedPostType)
			item.ReportedPostType = &postType
		}
		items = append(items, item)
	}

	httperrors.Write(w, http.StatusOK, dto.AdminReportsResponse{
		Reports: items,
		Meta:    dto.PageMeta{Page: page, TotalPage: totalPage},
	})
}

// Preview returns the reported content itself. Deleted content previews as
// empty fields instead of an error.
func (h *AdminReportsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	reportID, ok := queryInt64(r, "report_id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid report id")
		return
	}

	preview, err := h.service.PreviewReport(r.Context(), reportID)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrReportNotFound):
			writeNotFound(w, "NOT_FOUND", "Report not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to preview report")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AdminReportPreviewResponse{
		Question: preview.Question,
		Reply:    preview.Reply,
	})
}
