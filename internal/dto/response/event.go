package response

import (
	"time"

	"movie-ticketing/internal/data/entity"
)

type EventDateResponse struct {
	Date        string              `json:"date"`
	StartTime   string              `json:"start_time"`
	EndTime     string              `json:"end_time,omitempty"`
	TicketTypes []entity.TicketType `json:"ticket_types"`
	Status      string              `json:"status"`
}

type EventResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description,omitempty"`
	Category      entity.EventCategory  `json:"category"`
	PosterImage   string                `json:"poster_image,omitempty"`
	BannerImage   string                `json:"banner_image,omitempty"`
	Venue         entity.EventVenue     `json:"venue"`
	Organizer     entity.EventOrganizer `json:"organizer"`
	Dates         []EventDateResponse   `json:"dates"`
	RatingAverage float64               `json:"rating_average"`
	RatingCount   int                   `json:"rating_count"`
	Status        entity.EventStatus    `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
}

type EventRatingResponse struct {
	EventID       string  `json:"event_id"`
	RatingAverage float64 `json:"rating_average"`
	RatingCount   int     `json:"rating_count"`
}

// Helper converters
func EventToResponse(event *entity.Event) EventResponse {
	dates := make([]EventDateResponse, len(event.Dates))
	for i, d := range event.Dates {
		dates[i] = EventDateResponse{
			Date:        d.Date.Format("2006-01-02"),
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			TicketTypes: d.TicketTypes,
			Status:      d.Status,
		}
	}

	return EventResponse{
		ID:            event.ID.String(),
		Title:         event.Title,
		Description:   event.Description,
		Category:      event.Category,
		PosterImage:   event.PosterImage,
		BannerImage:   event.BannerImage,
		Venue:         event.Venue,
		Organizer:     event.Organizer,
		Dates:         dates,
		RatingAverage: event.RatingAverage,
		RatingCount:   event.RatingCount,
		Status:        event.Status,
		CreatedAt:     event.CreatedAt,
	}
}
