package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	adminsvc "github.com/ivankudzin/askbox/backend/internal/services/admins"
	modsvc "github.com/ivankudzin/askbox/backend/internal/services/moderation"
)

func TestAdminUsersActionRejectsBadJSON(t *testing.T) {
	h := NewAdminUsersHandler(modsvc.NewService(modsvc.Dependencies{}, modsvc.Config{}), nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/users/actions", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Action(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAdminUsersActionUnknownUser(t *testing.T) {
	h := NewAdminUsersHandler(modsvc.NewService(modsvc.Dependencies{}, modsvc.Config{}), nil)

	body, _ := json.Marshal(map[string]any{"action": "ban", "user_id": 0})
	req := httptest.NewRequest(http.MethodPost, "/admin/users/actions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Action(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusNotFound)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message != "User not found" {
		t.Fatalf("unexpected message: %q", payload.Message)
	}
}

func TestAdminUsersListInvalidFilter(t *testing.T) {
	h := NewAdminUsersHandler(nil, adminsvc.NewService(&adminStoreStub{}, "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/users?filter=shadowbanned", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message != "Invalid filter" {
		t.Fatalf("unexpected message: %q", payload.Message)
	}
}

func TestAdminUsersListEmpty(t *testing.T) {
	h := NewAdminUsersHandler(nil, adminsvc.NewService(&adminStoreStub{}, "s3cret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/users?page=1&size=10", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var payload struct {
		Users []any `json:"users"`
		Meta  struct {
			Page      int `json:"page"`
			TotalPage int `json:"total_page"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Users) != 0 {
		t.Fatalf("expected empty user list, got %d", len(payload.Users))
	}
	if payload.Meta.Page != 1 {
		t.Fatalf("unexpected page: %d", payload.Meta.Page)
	}
}
