package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/exports", nil))

	if rec.Code != http.StatusNoContent || called {
		t.Errorf("preflight = %d, handler called = %v", rec.Code, called)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != "Content-Disposition, X-Export-ID" {
		t.Errorf("Access-Control-Expose-Headers = %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/exports", nil))
	if !called || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("GET not passed through with CORS headers")
	}
}

func TestLoggerInjectsRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(Logger(zap.New(core)))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		ctxzap.Info(r.Context(), "inside")
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	inside := logs.FilterMessage("inside").All()
	if len(inside) != 1 || inside[0].ContextMap()["request_id"] == "" {
		t.Errorf("request logger not in context: %+v", inside)
	}
	finish := logs.FilterMessage("Finish handle HTTP request").All()
	if len(finish) != 1 || finish[0].ContextMap()["status"] != int64(http.StatusTeapot) {
		t.Errorf("finish log = %+v", finish)
	}
}
