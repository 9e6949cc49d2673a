// internal/app/features/process/routes.go
package process

import "github.com/go-chi/chi/v5"

// Routes registers the processing endpoints on r, at the router root so
// the paths match the original service.
func Routes(r chi.Router, h *Handler) {
	r.Post("/process_clone", h.Clone)
	r.Post("/process_edit", h.Edit)
	r.Post("/process_copy", h.Copy)
}
