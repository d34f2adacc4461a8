package wire

import (
	"movie-ticketing/internal/adaptor"
	"movie-ticketing/pkg/middleware"
	"movie-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTheater(
	r chi.Router,
	theaterHandler *adaptor.TheaterHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/theaters - List theaters (?city=)
	r.Get("/api/theaters", theaterHandler.GetTheaters)

	// GET /api/theaters/{id} - Theater details with screens
	r.Get("/api/theaters/{id}", theaterHandler.GetTheater)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/theaters", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/", theaterHandler.CreateTheater)
		r.Put("/{id}", theaterHandler.UpdateTheater)
		r.Delete("/{id}", theaterHandler.DeleteTheater)
	})
}
