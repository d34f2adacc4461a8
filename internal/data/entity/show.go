package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type ShowStatus string

const (
	ShowStatusActive     ShowStatus = "Active"
	ShowStatusInactive   ShowStatus = "Inactive"
	ShowStatusComingSoon ShowStatus = "Coming Soon"
)

type ShowTimeStatus string

const (
	ShowTimeStatusActive    ShowTimeStatus = "Active"
	ShowTimeStatusCancelled ShowTimeStatus = "Cancelled"
	ShowTimeStatusFull      ShowTimeStatus = "Full"
)

type ShowFormat string

const (
	ShowFormat2D   ShowFormat = "2D"
	ShowFormat3D   ShowFormat = "3D"
	ShowFormatIMAX ShowFormat = "IMAX"
	ShowFormat4DX  ShowFormat = "4DX"
)

// MovieSnapshot is the movie reference carried on a show. Movie data comes
// from an external catalog and is denormalized here at show-creation time.
type MovieSnapshot struct {
	TmdbID     int      `db:"movie_tmdb_id"`
	Title      string   `db:"movie_title"`
	PosterPath string   `db:"poster_path"`
	Duration   int      `db:"duration"` // minutes
	Genre      []string `db:"genre"`
	Rating     string   `db:"rating"` // U, UA, A
	Language   string   `db:"language"`
}

type Show struct {
	Base
	Movie      MovieSnapshot
	TheaterID  uuid.UUID  `db:"theater_id"`
	ScreenID   string     `db:"screen_id"`
	ScreenName string     `db:"screen_name"`
	Format     ShowFormat `db:"format"`
	StartDate  time.Time  `db:"start_date"`
	EndDate    time.Time  `db:"end_date"`
	Status     ShowStatus `db:"status"`
	ShowTimes  []ShowTime
}

// SeatPrices is the per-seat-type price table of a single show-time.
type SeatPrices struct {
	Premium int `db:"price_premium" json:"Premium"`
	Gold    int `db:"price_gold" json:"Gold"`
	Silver  int `db:"price_silver" json:"Silver"`
	Regular int `db:"price_regular" json:"Regular"`
}

// For returns the price for a seat type.
func (p SeatPrices) For(t SeatType) (int, bool) {
	switch t {
	case SeatTypePremium:
		return p.Premium, true
	case SeatTypeGold:
		return p.Gold, true
	case SeatTypeSilver:
		return p.Silver, true
	case SeatTypeRegular:
		return p.Regular, true
	}
	return 0, false
}

// ShowTime is one scheduled screening with its own seat inventory.
// Invariant: AvailableSeats + len(BookedSeats) equals the screen capacity.
type ShowTime struct {
	Base
	ShowID         uuid.UUID      `db:"show_id"`
	Date           time.Time      `db:"show_date"`
	Time           string         `db:"show_time"` // "HH:MM"
	Prices         SeatPrices
	AvailableSeats int            `db:"available_seats"`
	BookedSeats    []string       `db:"booked_seats"`
	Status         ShowTimeStatus `db:"status"`
}

// StartsAt resolves the scheduled start instant from date plus time-of-day.
func (st *ShowTime) StartsAt() (time.Time, error) {
	t, err := time.Parse("15:04", st.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse show time %q: %w", st.Time, err)
	}
	d := st.Date
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location()), nil
}

// ParseSeatNumber splits a seat identifier like "A12" into its row letter
// and column index.
func ParseSeatNumber(seat string) (row string, col int, err error) {
	if len(seat) < 2 {
		return "", 0, fmt.Errorf("invalid seat number %q", seat)
	}
	row = seat[:1]
	if row[0] < 'A' || row[0] > 'Z' {
		return "", 0, fmt.Errorf("invalid seat row in %q", seat)
	}
	col, err = strconv.Atoi(seat[1:])
	if err != nil || col < 1 {
		return "", 0, fmt.Errorf("invalid seat column in %q", seat)
	}
	return row, col, nil
}
