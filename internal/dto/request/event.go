package request

type TicketTypeInput struct {
	Name       string   `json:"name" validate:"required"`
	Price      int      `json:"price" validate:"required,min=1"`
	TotalSeats int      `json:"total_seats" validate:"required,min=1"`
	Benefits   []string `json:"benefits"`
}

type EventDateInput struct {
	Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string            `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string            `json:"end_time" validate:"omitempty,datetime=15:04"`
	TicketTypes []TicketTypeInput `json:"ticket_types" validate:"required,min=1,dive"`
}

type EventVenueInput struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Capacity int    `json:"capacity" validate:"min=0"`
}

type EventOrganizerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CreateEventRequest struct {
	Title       string              `json:"title" validate:"required,min=2"`
	Description string              `json:"description" validate:"required"`
	Category    string              `json:"category" validate:"required,oneof=Concert Theatre Sports Comedy Workshop Exhibition Dance Other"`
	PosterImage string              `json:"poster_image"`
	BannerImage string              `json:"banner_image"`
	Venue       EventVenueInput     `json:"venue" validate:"required"`
	Organizer   EventOrganizerInput `json:"organizer"`
	Dates       []EventDateInput    `json:"dates" validate:"required,min=1,dive"`
}

type UpdateEventRequest struct {
	Title       string               `json:"title" validate:"omitempty,min=2"`
	Description string               `json:"description"`
	Category    string               `json:"category" validate:"omitempty,oneof=Concert Theatre Sports Comedy Workshop Exhibition Dance Other"`
	PosterImage string               `json:"poster_image"`
	BannerImage string               `json:"banner_image"`
	Venue       *EventVenueInput     `json:"venue"`
	Organizer   *EventOrganizerInput `json:"organizer"`
	Dates       []EventDateInput     `json:"dates" validate:"omitempty,min=1,dive"`
	Status      string               `json:"status" validate:"omitempty,oneof=Active Inactive Cancelled"`
}

type RateEventRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}
