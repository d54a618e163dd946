package export

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers export routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/exports", func(r chi.Router) {
		r.Post("/", h.CreateExport)
		r.Get("/", h.ListExports)
		r.Get("/{export_id}", h.GetExport)
	})

	r.Post("/studies/{study_id}/exports", h.ExportStudy)
}
