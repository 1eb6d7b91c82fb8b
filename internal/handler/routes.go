package handler

import "github.com/go-chi/chi/v5"

// RegisterSolveRoutes registers the per-year solve/validate routes.
func RegisterSolveRoutes(r chi.Router, h *SolveHandler) {
	r.Route("/years/{year}", func(r chi.Router) {
		r.Post("/solve", h.Solve)
		r.Post("/validate", h.Validate)
	})
}

// RegisterExportRoutes registers the per-year spreadsheet export route.
func RegisterExportRoutes(r chi.Router, h *ExportHandler) {
	r.Get("/years/{year}/export.xlsx", h.Export)
}

// RegisterRolloverRoutes registers the rollover route.
func RegisterRolloverRoutes(r chi.Router, h *RolloverHandler) {
	r.Post("/rollover", h.Rollover)
}
