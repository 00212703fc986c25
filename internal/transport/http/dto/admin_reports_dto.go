package dto

import (
	"time"

	"github.com/ivankudzin/askbox/backend/internal/domain/model"
)

type AdminReportActionRequest struct {
	Action   string `json:"action"`
	ReportID int64  `json:"report_id"`
}

type AdminReportItem struct {
	ID               int64     `json:"id"`
	ReportType       string    `json:"report_type"`
	ReportStatus     string    `json:"report_status"`
	ReportedPostID   *int64    `json:"reported_post_id,omitempty"`
	ReportedPostType *string   `json:"reported_post_type,omitempty"`
	ReporterID       int64     `json:"reporter_id"`
	ReportedUserID   int64     `json:"reported_user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AdminReportsResponse struct {
	Reports []AdminReportItem `json:"reports"`
	Meta    PageMeta          `json:"meta"`
}

type AdminReportPreviewResponse struct {
	Question *model.Question `json:"question,omitempty"`
	Reply    *model.Reply    `json:"reply,omitempty"`
}
