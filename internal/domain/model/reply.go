package model

import "time"

type Reply struct {
	ID          int64     `json:"id"`
	QuestionID  int64     `json:"question_id"`
	OwnerUserID int64     `json:"owner_user_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
