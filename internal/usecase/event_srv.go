package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/dto/response"
	"movie-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type EventService interface {
	// Public endpoints
	GetEvent(ctx context.Context, id string) (*response.EventResponse, error)
	ListEvents(ctx context.Context, filter repository.EventFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	GetCategories(ctx context.Context) ([]repository.CategoryCount, error)

	// Protected endpoints
	RateEvent(ctx context.Context, id string, req *request.RateEventRequest) (*response.EventRatingResponse, error)

	// Admin endpoints
	CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, id string, req *request.UpdateEventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, id string) error
}

type eventService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEventService(repo *repository.Repository, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		log:  log.With(zap.String("service", "event")),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	dates, err := buildEventDates(req.Dates)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    entity.EventCategory(req.Category),
		PosterImage: req.PosterImage,
		BannerImage: req.BannerImage,
		Venue: entity.EventVenue{
			Name:     req.Venue.Name,
			Address:  req.Venue.Address,
			City:     req.Venue.City,
			Capacity: req.Venue.Capacity,
		},
		Organizer: entity.EventOrganizer{
			Name:  req.Organizer.Name,
			Phone: req.Organizer.Phone,
			Email: req.Organizer.Email,
		},
		Dates:  dates,
		Status: entity.EventStatusActive,
	}
	event.Base = entity.NewBase()

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event", zap.Error(err))
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("title", event.Title))

	resp := response.EventToResponse(event)
	return &resp, nil
}

func buildEventDates(inputs []request.EventDateInput) ([]entity.EventDate, error) {
	dates := make([]entity.EventDate, len(inputs))
	for i, in := range inputs {
		date, err := utils.ParseDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid event date %s: %w", in.Date, err)
		}

		types := make([]entity.TicketType, len(in.TicketTypes))
		for j, tt := range in.TicketTypes {
			types[j] = entity.TicketType{
				Name:           tt.Name,
				Price:          tt.Price,
				TotalSeats:     tt.TotalSeats,
				AvailableSeats: tt.TotalSeats,
				Benefits:       tt.Benefits,
			}
		}

		dates[i] = entity.EventDate{
			Date:        date,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			TicketTypes: types,
			Status:      "Active",
		}
	}
	return dates, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*response.EventResponse, error) {
	eventID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", id, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter repository.EventFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	if filter.Category != "" && !entity.ValidEventCategory(filter.Category) {
		return nil, fmt.Errorf("invalid event category %s", filter.Category)
	}

	events, err := s.repo.Event.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	total, err := s.repo.Event.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	items := make([]response.EventResponse, len(events))
	for i, e := range events {
		items[i] = response.EventToResponse(e)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *eventService) GetCategories(ctx context.Context) ([]repository.CategoryCount, error) {
	categories, err := s.repo.Event.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("get event categories: %w", err)
	}
	return categories, nil
}

func (s *eventService) RateEvent(ctx context.Context, id string, req *request.RateEventRequest) (*response.EventRatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	eventID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", id, err)
	}

	if err := s.repo.Event.Rate(ctx, eventID, req.Rating); err != nil {
		s.log.Error("Failed to rate event", zap.Error(err))
		return nil, fmt.Errorf("rate event: %w", err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}

	return &response.EventRatingResponse{
		EventID:       event.ID.String(),
		RatingAverage: event.RatingAverage,
		RatingCount:   event.RatingCount,
	}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	eventID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", id, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Category != "" {
		event.Category = entity.EventCategory(req.Category)
	}
	if req.PosterImage != "" {
		event.PosterImage = req.PosterImage
	}
	if req.BannerImage != "" {
		event.BannerImage = req.BannerImage
	}
	if req.Venue != nil {
		event.Venue = entity.EventVenue{
			Name:     req.Venue.Name,
			Address:  req.Venue.Address,
			City:     req.Venue.City,
			Capacity: req.Venue.Capacity,
		}
	}
	if req.Organizer != nil {
		event.Organizer = entity.EventOrganizer{
			Name:  req.Organizer.Name,
			Phone: req.Organizer.Phone,
			Email: req.Organizer.Email,
		}
	}
	if len(req.Dates) > 0 {
		dates, err := buildEventDates(req.Dates)
		if err != nil {
			return nil, err
		}
		event.Dates = dates
	}
	if req.Status != "" {
		event.Status = entity.EventStatus(req.Status)
	}
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event", zap.Error(err))
		return nil, fmt.Errorf("update event: %w", err)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	eventID, err := utils.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid event ID format %s: %w", id, err)
	}

	if err := s.repo.Event.Delete(ctx, eventID); err != nil {
		s.log.Error("Failed to delete event", zap.Error(err))
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.Info("Event deleted", zap.String("event_id", id))
	return nil
}
