package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/myling/study-backend/internal/api/docs"
	exportapi "github.com/myling/study-backend/internal/api/export"
	"github.com/myling/study-backend/internal/api/middleware"
	"github.com/myling/study-backend/internal/pkg/response"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 60 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

// SetupRouter mounts the health, documentation and export endpoints.
// A non-positive requestTimeout falls back to one minute.
func SetupRouter(exportHandler *exportapi.Handler, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", health)

	docs.RegisterRoutes(r)
	exportapi.RegisterRoutes(r, exportHandler)

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, healthResponse{Status: "healthy"}); err != nil {
		ctxzap.Warn(r.Context(), "failed to write health response", zap.Error(err))
	}
}
