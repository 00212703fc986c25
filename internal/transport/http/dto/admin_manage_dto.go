package dto

import "time"

type AddAdminRequest struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateAdminRequest struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminAccountItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminAccountsResponse struct {
	Users []AdminAccountItem `json:"users"`
	Meta  PageMeta           `json:"meta"`
}
