package model

import (
	"time"

	"github.com/ivankudzin/askbox/backend/internal/domain/enums"
)

// Report always resolves to exactly one reported user, regardless of whether
// the complaint targets the user directly or one of their posts.
type Report struct {
	ID               int64                   `json:"id"`
	ReportType       enums.ReportType        `json:"report_type"`
	ReportStatus     enums.ReportStatus      `json:"report_status"`
	ReportedPostID   *int64                  `json:"reported_post_id,omitempty"`
	ReportedPostType *enums.ReportedPostType `json:"reported_post_type,omitempty"`
	ReporterID       int64                   `json:"reporter_id"`
	ReportedUserID   int64                   `json:"reported_user_id"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}
