package response

import (
	"time"

	"movie-ticketing/internal/data/entity"
)

type MovieResponse struct {
	TmdbID     int      `json:"tmdb_id"`
	Title      string   `json:"title"`
	PosterPath string   `json:"poster_path,omitempty"`
	Duration   int      `json:"duration"`
	Genre      []string `json:"genre,omitempty"`
	Rating     string   `json:"rating,omitempty"`
	Language   string   `json:"language,omitempty"`
}

type ShowTimeResponse struct {
	ID             string                `json:"id"`
	Date           string                `json:"date"`
	Time           string                `json:"time"`
	Prices         entity.SeatPrices     `json:"prices"`
	AvailableSeats int                   `json:"available_seats"`
	Status         entity.ShowTimeStatus `json:"status"`
}

type ShowResponse struct {
	ID         string            `json:"id"`
	Movie      MovieResponse     `json:"movie"`
	TheaterID  string            `json:"theater_id"`
	ScreenID   string            `json:"screen_id"`
	ScreenName string            `json:"screen_name"`
	Format     entity.ShowFormat `json:"format"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	Status     entity.ShowStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

type ShowDetailResponse struct {
	ShowResponse
	ShowTimes []ShowTimeResponse `json:"show_times"`
}

// SeatStateResponse is one seat on the seat map with its live state.
type SeatStateResponse struct {
	SeatNumber string          `json:"seat_number"`
	SeatType   entity.SeatType `json:"seat_type"`
	Price      int             `json:"price"`
	IsBooked   bool            `json:"is_booked"`
	IsHeld     bool            `json:"is_held"`
}

type SeatMapResponse struct {
	ShowTimeID     string              `json:"show_time_id"`
	ScreenName     string              `json:"screen_name"`
	Rows           int                 `json:"rows"`
	SeatsPerRow    int                 `json:"seats_per_row"`
	AvailableSeats int                 `json:"available_seats"`
	Seats          []SeatStateResponse `json:"seats"`
}

// Helper converters
func ShowTimeToResponse(st *entity.ShowTime) ShowTimeResponse {
	return ShowTimeResponse{
		ID:             st.ID.String(),
		Date:           st.Date.Format("2006-01-02"),
		Time:           st.Time,
		Prices:         st.Prices,
		AvailableSeats: st.AvailableSeats,
		Status:         st.Status,
	}
}

func ShowToResponse(show *entity.Show) ShowResponse {
	return ShowResponse{
		ID: show.ID.String(),
		Movie: MovieResponse{
			TmdbID:     show.Movie.TmdbID,
			Title:      show.Movie.Title,
			PosterPath: show.Movie.PosterPath,
			Duration:   show.Movie.Duration,
			Genre:      show.Movie.Genre,
			Rating:     show.Movie.Rating,
			Language:   show.Movie.Language,
		},
		TheaterID:  show.TheaterID.String(),
		ScreenID:   show.ScreenID,
		ScreenName: show.ScreenName,
		Format:     show.Format,
		StartDate:  show.StartDate.Format("2006-01-02"),
		EndDate:    show.EndDate.Format("2006-01-02"),
		Status:     show.Status,
		CreatedAt:  show.CreatedAt,
	}
}

func ShowToDetailResponse(show *entity.Show) ShowDetailResponse {
	times := make([]ShowTimeResponse, len(show.ShowTimes))
	for i := range show.ShowTimes {
		times[i] = ShowTimeToResponse(&show.ShowTimes[i])
	}
	return ShowDetailResponse{
		ShowResponse: ShowToResponse(show),
		ShowTimes:    times,
	}
}
