package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	exportapi "github.com/myling/study-backend/internal/api/export"
	"github.com/myling/study-backend/internal/entity"
	"go.uber.org/zap"
)

type emptyArchive struct{}

func (emptyArchive) Export(context.Context, *entity.ExportRequest) (*entity.Export, error) {
	return nil, entity.ErrEmptyDocument
}

func (emptyArchive) ExportStudy(context.Context, int64, entity.ExportVariant, entity.ResultFormat) (*entity.Export, error) {
	return nil, entity.ErrStudyNotFound
}

func (emptyArchive) ListExports(context.Context, *entity.ListExportsRequest) (*entity.ListExportsResponse, error) {
	return &entity.ListExportsResponse{}, nil
}

func (emptyArchive) GetExport(context.Context, string) (*entity.Export, error) {
	return nil, entity.ErrExportNotFound
}

func newTestRouter(timeout time.Duration) http.Handler {
	return SetupRouter(exportapi.NewHandler(emptyArchive{}), timeout, zap.NewNop())
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if diff := cmp.Diff(healthResponse{Status: "healthy"}, got); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestRouterMountsExports(t *testing.T) {
	router := newTestRouter(5 * time.Second)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{method: http.MethodGet, path: "/exports", want: http.StatusOK},
		{method: http.MethodGet, path: "/exports/missing", want: http.StatusNotFound},
		{method: http.MethodPost, path: "/studies/7/exports", want: http.StatusNotFound},
		{method: http.MethodOptions, path: "/exports", want: http.StatusNoContent},
		{method: http.MethodGet, path: "/unknown", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
			}
		})
	}
}
