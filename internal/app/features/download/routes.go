// internal/app/features/download/routes.go
package download

import "github.com/go-chi/chi/v5"

// Routes registers the download endpoint on r, at the router root so the
// path matches the original service.
func Routes(r chi.Router, h *Handler) {
	r.Get("/download_ready_csv", h.ReadyCSV)
}
