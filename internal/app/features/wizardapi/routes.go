// internal/app/features/wizardapi/routes.go
package wizardapi

import "github.com/go-chi/chi/v5"

// Routes returns the wizard API subrouter, mounted at /wizard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.State)
	r.Post("/view", h.View)
	r.Post("/select", h.Select)
	r.Post("/deselect", h.Deselect)
	r.Post("/select_all", h.SelectAll)
	r.Post("/deselect_all", h.DeselectAll)
	r.Post("/selection_reset", h.ResetRequest)
	r.Post("/selection_reset/confirm", h.ResetConfirm)
	r.Post("/selection_reset/cancel", h.ResetCancel)
	r.Post("/action", h.ChooseAction)
	r.Post("/edit", h.Edit)
	r.Post("/next", h.Next)
	r.Post("/back", h.Back)
	r.Post("/home", h.Home)
	r.Post("/submit", h.Submit)
	r.Get("/review", h.Review)
	r.Post("/downloaded", h.Downloaded)
	return r
}
