package handlers

import (
	"errors"
	"net/http"

	adminsvc "github.com/ivankudzin/askbox/backend/internal/services/admins"
	modsvc "github.com/ivankudzin/askbox/backend/internal/services/moderation"
	"github.com/ivankudzin/askbox/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/askbox/backend/internal/transport/http/errors"
)

type AdminUsersHandler struct {
	moderation *modsvc.Service
	admins     *adminsvc.Service
}

func NewAdminUsersHandler(moderation *modsvc.Service, admins *adminsvc.Service) *AdminUsersHandler {
	return &AdminUsersHandler{
		moderation: moderation,
		admins:     admins,
	}
}

// Action applies ban/warn/timeout/unban to a user.
func (h *AdminUsersHandler) Action(w http.ResponseWriter, r *http.Request) {
	if h.moderation == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.AdminUserActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	message, err := h.moderation.ApplyUserAction(r.Context(), req.UserID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrUserNotFound):
			writeNotFound(w, "NOT_FOUND", "User not found")
		case errors.Is(err, modsvc.ErrNotSanctioned):
			writeBadRequest(w, "INVALID_REQUEST", "User is not banned")
		case errors.Is(err, modsvc.ErrInvalidAction):
			writeBadRequest(w, "INVALID_REQUEST", "Invalid action")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to apply user action")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AdminUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.admins == nil {
		writeInternal(w, "ADMIN_SERVICE_UNAVAILABLE", "admin service is unavailable")
		return
	}

	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 10)
	filter := r.URL.Query().Get("filter")
	search := r.URL.Query().Get("q")

	items, totalPage, err := h.admins.ListUsers(r.Context(), filter, search, page, size)
	if err != nil {
		switch {
		case errors.Is(err, adminsvc.ErrInvalidFilter):
			writeBadRequest(w, "INVALID_REQUEST", "Invalid filter")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to list users")
		}
		return
	}

	users := make([]dto.AdminUserItem, 0, len(items))
	for _, item := range items {
		user := dto.AdminUserItem{
			ID:        item.User.ID,
			Name:      item.User.Name,
			Username:  item.User.Username,
			Email:     item.User.Email,
			CreatedAt: item.User.CreatedAt,
		}
		if item.SanctionStatus != nil {
			status := string(*item.SanctionStatus)
			user.SanctionStatus = &status
			user.SanctionExpiresAt = item.SanctionExpiresAt
		}
		users = append(users, user)
	}

	httperrors.Write(w, http.StatusOK, dto.AdminUsersResponse{
		Users: users,
		Meta:  dto.PageMeta{Page: page, TotalPage: totalPage},
	})
}
