// internal/app/features/upload/routes.go
package upload

import "github.com/go-chi/chi/v5"

// Routes registers the upload endpoints on r. They live at the router
// root so the paths match the original service.
func Routes(r chi.Router, h *Handler) {
	r.Post("/upload", h.Upload)
	r.Get("/lines", h.Lines)
	r.Get("/download_template", h.Template)
}
