package entity

import "time"

type EventStatus string

const (
	EventStatusActive    EventStatus = "Active"
	EventStatusInactive  EventStatus = "Inactive"
	EventStatusCancelled EventStatus = "Cancelled"
)

type EventCategory string

const (
	EventCategoryConcert    EventCategory = "Concert"
	EventCategoryTheatre    EventCategory = "Theatre"
	EventCategorySports     EventCategory = "Sports"
	EventCategoryComedy     EventCategory = "Comedy"
	EventCategoryWorkshop   EventCategory = "Workshop"
	EventCategoryExhibition EventCategory = "Exhibition"
	EventCategoryDance      EventCategory = "Dance"
	EventCategoryOther      EventCategory = "Other"
)

func ValidEventCategory(c EventCategory) bool {
	switch c {
	case EventCategoryConcert, EventCategoryTheatre, EventCategorySports,
		EventCategoryComedy, EventCategoryWorkshop, EventCategoryExhibition,
		EventCategoryDance, EventCategoryOther:
		return true
	}
	return false
}

type EventVenue struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

type EventOrganizer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type TicketType struct {
	Name           string   `json:"name"` // General, VIP, Premium
	Price          int      `json:"price"`
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats int      `json:"available_seats"`
	Benefits       []string `json:"benefits,omitempty"`
}

type EventDate struct {
	Date        time.Time    `json:"date"`
	StartTime   string       `json:"start_time"` // "HH:MM"
	EndTime     string       `json:"end_time,omitempty"`
	TicketTypes []TicketType `json:"ticket_types"`
	Status      string       `json:"status"` // Active, Sold Out, Cancelled
}

type Event struct {
	Base
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Category      EventCategory  `db:"category"`
	PosterImage   string         `db:"poster_image"`
	BannerImage   string         `db:"banner_image"`
	Venue         EventVenue
	Organizer     EventOrganizer
	Dates         []EventDate
	RatingAverage float64     `db:"rating_average"`
	RatingCount   int         `db:"rating_count"`
	Status        EventStatus `db:"status"`
}
