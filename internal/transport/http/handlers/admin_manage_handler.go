package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	adminsvc "github.com/ivankudzin/askbox/backend/internal/services/admins"
	"github.com/ivankudzin/askbox/backend/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/askbox/backend/internal/transport/http/errors"
)

// AdminManageHandler serves the admin-account management surface. It is
// gated by the static admin key carried in the request, not by JWT.
type AdminManageHandler struct {
	service *adminsvc.Service
}

func NewAdminManageHandler(service *adminsvc.Service) *AdminManageHandler {
	return &AdminManageHandler{service: service}
}

func (h *AdminManageHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ADMIN_SERVICE_UNAVAILABLE", "admin service is unavailable")
		return
	}

	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 10)
	key := r.URL.Query().Get("key")
	search := r.URL.Query().Get("q")

	admins, totalPage, err := h.service.ListAdmins(r.Context(), key, search, page, size)
	if err != nil {
		handleManageError(w, err)
		return
	}

	users := make([]dto.AdminAccountItem, 0, len(admins))
	for _, admin := range admins {
		users = append(users, dto.AdminAccountItem{
			ID:        admin.ID,
			Name:      admin.Name,
			Username:  admin.Username,
			Email:     admin.Email,
			CreatedAt: admin.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.AdminAccountsResponse{
		Users: users,
		Meta:  dto.PageMeta{Page: page, TotalPage: totalPage},
	})
}

func (h *AdminManageHandler) Add(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ADMIN_SERVICE_UNAVAILABLE", "admin service is unavailable")
		return
	}

	var req dto.AddAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := h.service.AddAdmin(r.Context(), req.Key, adminsvc.AdminInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		handleManageError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Admin added"})
}

func (h *AdminManageHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ADMIN_SERVICE_UNAVAILABLE", "admin service is unavailable")
		return
	}

	userID, ok := manageUserIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid admin id")
		return
	}

	var req dto.UpdateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := h.service.UpdateAdmin(r.Context(), req.Key, userID, adminsvc.AdminInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		handleManageError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Admin updated"})
}

func (h *AdminManageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ADMIN_SERVICE_UNAVAILABLE", "admin service is unavailable")
		return
	}

	userID, ok := manageUserIDFromRequest(r)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid admin id")
		return
	}

	if err := h.service.DeleteAdmin(r.Context(), r.URL.Query().Get("key"), userID); err != nil {
		handleManageError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MessageResponse{Message: "Admin deleted"})
}

func (h *AdminManageHandler) CheckKey(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ADMIN_SERVICE_UNAVAILABLE", "admin service is unavailable")
		return
	}

	if err := h.service.CheckKey(r.URL.Query().Get("key")); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func handleManageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, adminsvc.ErrInvalidKey):
		writeUnauthorized(w, "UNAUTHORIZED", "Invalid admin key")
	case errors.Is(err, adminsvc.ErrAdminNotFound):
		writeNotFound(w, "NOT_FOUND", "Admin not found")
	case errors.Is(err, adminsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid admin payload")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to manage admins")
	}
}

func manageUserIDFromRequest(r *http.Request) (int64, bool) {
	rawID := strings.TrimSpace(chi.URLParam(r, "id"))
	if rawID == "" {
		return 0, false
	}
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}
