package dto

type CreateReportRequest struct {
	UserID     int64 `json:"user_id,omitempty"`
	QuestionID int64 `json:"question_id,omitempty"`
	ReplyID    int64 `json:"reply_id,omitempty"`
}

type CreateReportResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
