package model

import "time"

type Question struct {
	ID          int64     `json:"id"`
	OwnerUserID int64     `json:"owner_user_id"`
	Content     string    `json:"content"`
	Anonymous   bool      `json:"anonymous"`
	Files       []FileRef `json:"files,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type FileRef struct {
	ID        int64  `json:"id"`
	ObjectKey string `json:"-"`
	URL       string `json:"url,omitempty"`
}
