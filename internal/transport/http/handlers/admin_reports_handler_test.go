package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"

	pgrepo "github.com/ivankudzin/askbox/backend/internal/repo/postgres"
	modsvc "github.com/ivankudzin/askbox/backend/internal/services/moderation"
)

func TestAdminReportsActionUnknownReport(t *testing.T) {
	h := NewAdminReportsHandler(modsvc.NewService(modsvc.Dependencies{}, modsvc.Config{}))

	body, _ := json.Marshal(map[string]any{"action": "ban", "report_id": 0})
	req := httptest.NewRequest(http.MethodPost, "/admin/reports/actions", bytes.NewReader(body))
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
	if payload.Message != "Report not found" {
		t.Fatalf("unexpected message: %q", payload.Message)
	}
}

func TestAdminReportsListInvalidFilter(t *testing.T) {
	h := NewAdminReportsHandler(modsvc.NewService(modsvc.Dependencies{
		ReportStore: emptyReportStore{},
	}, modsvc.Config{}))

	req := httptest.NewRequest(http.MethodGet, "/admin/reports?filter=weird", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAdminReportsPreviewRejectsBadReportID(t *testing.T) {
	h := NewAdminReportsHandler(modsvc.NewService(modsvc.Dependencies{}, modsvc.Config{}))

	for _, target := range []string{"/admin/reports/preview", "/admin/reports/preview?report_id=abc"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.Preview(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status for %q: got %d want %d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

type emptyReportStore struct{}

func (emptyReportStore) GetByID(context.Context, pgx.Tx, int64) (pgrepo.ReportRecord, error) {
	return pgrepo.ReportRecord{}, pgrepo.ErrReportNotFound
}

func (emptyReportStore) UpdateStatus(context.Context, pgx.Tx, int64, string) error {
	return nil
}

func (emptyReportStore) List(context.Context, string, int, int) ([]pgrepo.ReportRecord, int, error) {
	return nil, 0, nil
}
