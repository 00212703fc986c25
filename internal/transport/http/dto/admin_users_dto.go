package dto

import "time"

type AdminUserActionRequest struct {
	Action string `json:"action"`
	UserID int64  `json:"user_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AdminUserItem struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	SanctionStatus    *string    `json:"sanction_status,omitempty"`
	SanctionExpiresAt *time.Time `json:"sanction_expires_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type PageMeta struct {
	Page      int `json:"page"`
	TotalPage int `json:"total_page"`
}

type AdminUsersResponse struct {
	Users []AdminUserItem `json:"users"`
	Meta  PageMeta        `json:"meta"`
}
