package wire

import (
	"movie-ticketing/internal/adaptor"
	"movie-ticketing/pkg/middleware"
	"movie-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShow(
	r chi.Router,
	showHandler *adaptor.ShowHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/shows - List shows (?movie=&theater=&date=&city=)
	r.Get("/api/shows", showHandler.GetShows)

	// GET /api/shows/{id} - Show details with its show times
	r.Get("/api/shows/{id}", showHandler.GetShow)

	// GET /api/shows/{id}/seats/{showTimeId} - Live seat map
	r.Get("/api/shows/{id}/seats/{showTimeId}", showHandler.GetSeatMap)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// PUT /api/shows/{id}/hold-seats - Hold seats during checkout
		r.Put("/api/shows/{id}/hold-seats", showHandler.HoldSeats)

		// PUT /api/shows/release-seats - Drop own holds early
		r.Put("/api/shows/release-seats", showHandler.ReleaseSeats)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/shows", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/", showHandler.CreateShow)
		r.Put("/{id}", showHandler.UpdateShow)
		r.Delete("/{id}", showHandler.DeleteShow)
	})
}
