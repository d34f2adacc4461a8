package wire

import (
	"movie-ticketing/internal/adaptor"
	"movie-ticketing/pkg/middleware"
	"movie-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/events - List events (?category=&city=&date=)
	r.Get("/api/events", eventHandler.GetEvents)

	// GET /api/events/categories - Category counts for browsing
	r.Get("/api/events/categories", eventHandler.GetEventCategories)

	// GET /api/events/{id} - Event details
	r.Get("/api/events/{id}", eventHandler.GetEvent)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// POST /api/events/{id}/rate - Rate an event
		r.Post("/api/events/{id}/rate", eventHandler.RateEvent)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/events", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.Admin(log))

		r.Post("/", eventHandler.CreateEvent)
		r.Put("/{id}", eventHandler.UpdateEvent)
		r.Delete("/{id}", eventHandler.DeleteEvent)
	})
}
