package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/uruz/internal/habitservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *habitservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/habits", func(r chi.Router) {
		r.Get("/", h.ListHabits)
		r.Post("/", h.CreateHabit)
		r.Get("/stats/summary", h.HabitStats)
		r.Get("/{id}", h.GetHabit)
		r.Patch("/{id}", h.UpdateHabit)
		r.Delete("/{id}", h.DeleteHabit)
		r.Post("/{id}/complete", h.CompleteHabit)
	})

	r.Route("/dailies", func(r chi.Router) {
		r.Get("/", h.ListDailies)
		r.Post("/", h.CreateDaily)
		r.Get("/{id}", h.GetDaily)
		r.Patch("/{id}", h.UpdateDaily)
		r.Delete("/{id}", h.DeleteDaily)
		r.Post("/{id}/complete", h.CompleteDaily)
	})

	return r
}
