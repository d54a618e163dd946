package export

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/myling/study-backend/internal/entity"
	"github.com/myling/study-backend/internal/usecase/study"
)

type fakeUsecase struct {
	err      error
	exports  []*entity.Export
	lastReq  *entity.ExportRequest
	lastList *entity.ListExportsRequest
	studyID  int64
	variant  entity.ExportVariant
	format   entity.ResultFormat
}

func (f *fakeUsecase) export(title string, format entity.ResultFormat) *entity.Export {
	return &entity.Export{
		ID:          "exp-1",
		Title:       title,
		Format:      format,
		Filename:    title + "." + string(format),
		ContentType: "application/pdf",
		Size:        4,
		Data:        []byte("data"),
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fakeUsecase) Export(_ context.Context, req *entity.ExportRequest) (*entity.Export, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.export(req.Title, req.Format), nil
}

func (f *fakeUsecase) ExportStudy(_ context.Context, id int64, variant entity.ExportVariant, format entity.ResultFormat) (*entity.Export, error) {
	f.studyID, f.variant, f.format = id, variant, format
	if f.err != nil {
		return nil, f.err
	}
	return f.export("Study", format), nil
}

func (f *fakeUsecase) ListExports(_ context.Context, req *entity.ListExportsRequest) (*entity.ListExportsResponse, error) {
	f.lastList = req
	if f.err != nil {
		return nil, f.err
	}
	return &entity.ListExportsResponse{Exports: f.exports}, nil
}

func (f *fakeUsecase) GetExport(_ context.Context, id string) (*entity.Export, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.exports {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, entity.ErrExportNotFound
}

func newRouter(uc ExportUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc))
	return r
}

func TestCreateExport(t *testing.T) {
	uc := &fakeUsecase{}
	body := `{"title":"My Study","paragraphs":[{"sentences":[{"english":"Hi.","korean":"안녕."}]}],"variant":"vocabulary","format":"pdf","words":[{"id":1,"word":"hi"}]}`

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/exports", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="My Study.pdf"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := rec.Header().Get("X-Export-ID"); got != "exp-1" {
		t.Errorf("X-Export-ID = %q", got)
	}
	if rec.Body.String() != "data" {
		t.Errorf("body = %q", rec.Body)
	}

	if uc.lastReq.Variant != entity.VariantVocabulary || len(uc.lastReq.Words) != 1 || uc.lastReq.Paragraphs[0].Sentences[0].Korean != "안녕." {
		t.Errorf("decoded request = %+v", uc.lastReq)
	}
}

func TestCreateExportBadBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeUsecase{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/exports", strings.NewReader("{")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestExportStudy(t *testing.T) {
	uc := &fakeUsecase{}

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/studies/12/exports?format=md", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if uc.studyID != 12 || uc.variant != entity.VariantTranslation || uc.format != entity.FormatMarkdown {
		t.Errorf("ExportStudy called with %d %s %s", uc.studyID, uc.variant, uc.format)
	}

	rec = httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/studies/abc/exports", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status for bad id = %d, want 400", rec.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "study not found", err: &study.OperationError{Op: study.OpLoadStudy, Err: entity.ErrStudyNotFound}, want: http.StatusNotFound},
		{name: "archive off", err: entity.ErrArchiveOff, want: http.StatusNotFound},
		{name: "variant", err: entity.ErrInvalidVariant, want: http.StatusBadRequest},
		{name: "empty", err: entity.ErrEmptyDocument, want: http.StatusBadRequest},
		{name: "backend", err: &study.OperationError{Op: study.OpLoadStudy, Err: errors.New("boom")}, want: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&fakeUsecase{err: tt.err}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/studies/1/exports", nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var resp entity.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil || resp.Error != http.StatusText(tt.want) {
				t.Errorf("error body = %+v, %v", resp, err)
			}
		})
	}
}

func TestListAndGetExports(t *testing.T) {
	uc := &fakeUsecase{}
	uc.exports = []*entity.Export{uc.export("A", entity.FormatPDF)}

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exports?skip=2&limit=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if uc.lastList.Skip != 2 || uc.lastList.Limit != 5 {
		t.Errorf("list request = %+v", uc.lastList)
	}

	var resp entity.ListExportSummariesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []*entity.ExportSummary{{
		ID:          "exp-1",
		Title:       "A",
		Format:      entity.FormatPDF,
		Filename:    "A.pdf",
		ContentType: "application/pdf",
		Size:        4,
		CreatedAt:   "2024-05-01T10:00:00Z",
	}}
	if diff := cmp.Diff(want, resp.Exports); diff != "" {
		t.Errorf("exports mismatch (-want +got):\n%s", diff)
	}

	rec = httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exports/exp-1", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "data" {
		t.Errorf("GetExport = %d %q", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exports/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing export status = %d, want 404", rec.Code)
	}
}

func TestContentDisposition(t *testing.T) {
	tests := map[string]string{
		"Test.pdf":  `attachment; filename="Test.pdf"`,
		"영어 공부.pdf": `attachment; filename="__ __.pdf"; filename*=UTF-8''%EC%98%81%EC%96%B4%20%EA%B3%B5%EB%B6%80.pdf`,
	}
	for name, want := range tests {
		if got := contentDisposition(name); got != want {
			t.Errorf("contentDisposition(%q) = %q, want %q", name, got, want)
		}
	}
}
