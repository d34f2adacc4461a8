package usecase

import (
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Theater TheaterService
	Show    ShowService
	Booking BookingService
	Event   EventService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Theater: NewTheaterService(repo, log),
		Show:    NewShowService(repo, log),
		Booking: NewBookingService(repo, config, log),
		Event:   NewEventService(repo, log),
	}
}
