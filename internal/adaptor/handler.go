package adaptor

import (
	"movie-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Theater *TheaterHandler
	Show    *ShowHandler
	Booking *BookingHandler
	Event   *EventHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Theater: NewTheaterHandler(service.Theater, log),
		Show:    NewShowHandler(service.Show, log),
		Booking: NewBookingHandler(service.Booking, log),
		Event:   NewEventHandler(service.Event, log),
	}
}
