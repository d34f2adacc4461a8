package request

type MovieInput struct {
	TmdbID     int      `json:"tmdb_id" validate:"required,min=1"`
	Title      string   `json:"title" validate:"required"`
	PosterPath string   `json:"poster_path"`
	Duration   int      `json:"duration" validate:"min=0"`
	Genre      []string `json:"genre"`
	Rating     string   `json:"rating" validate:"omitempty,oneof=U UA A"`
	Language   string   `json:"language"`
}

type ShowTimeInput struct {
	Date   string         `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string         `json:"time" validate:"required,datetime=15:04"`
	Prices map[string]int `json:"prices" validate:"required"`
}

type CreateShowRequest struct {
	Movie     MovieInput      `json:"movie" validate:"required"`
	TheaterID string          `json:"theater_id" validate:"required,uuid4"`
	ScreenID  string          `json:"screen_id" validate:"required"`
	Format    string          `json:"format" validate:"required,oneof=2D 3D IMAX 4DX"`
	StartDate string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	ShowTimes []ShowTimeInput `json:"show_times" validate:"required,min=1,dive"`
}

type UpdateShowRequest struct {
	Movie     *MovieInput `json:"movie"`
	Format    string      `json:"format" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
	StartDate string      `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string      `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string      `json:"status" validate:"omitempty,oneof=Active Inactive 'Coming Soon'"`
}
