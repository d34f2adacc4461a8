package wire

import (
	"movie-ticketing/internal/adaptor"
	"movie-ticketing/pkg/middleware"
	"movie-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/bookings/ticket/{bookingId} - Ticket lookup by reference,
	// safe to share; exposes no account data
	r.Get("/api/bookings/ticket/{bookingId}", bookingHandler.GetTicket)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// POST /api/bookings - Book seats for a show time
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Caller's booking history
		r.Get("/api/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - Booking details (owner only)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id}/cancel - Cancel and refund (owner only)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})
}
