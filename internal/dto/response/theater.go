package response

import (
	"time"

	"movie-ticketing/internal/data/entity"
)

type TheaterResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Address   string               `json:"address"`
	City      string               `json:"city"`
	State     string               `json:"state"`
	Pincode   string               `json:"pincode"`
	Latitude  *float64             `json:"latitude,omitempty"`
	Longitude *float64             `json:"longitude,omitempty"`
	Amenities []string             `json:"amenities,omitempty"`
	Phone     string               `json:"phone,omitempty"`
	Email     string               `json:"email,omitempty"`
	Status    entity.TheaterStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type TheaterDetailResponse struct {
	TheaterResponse
	Screens []ScreenResponse `json:"screens,omitempty"`
}

type ScreenResponse struct {
	ID       string            `json:"id"`
	ScreenID string            `json:"screen_id"`
	Name     string            `json:"name"`
	Capacity int               `json:"capacity"`
	Layout   entity.SeatLayout `json:"layout"`
}

// Helper converters
func TheaterToResponse(theater *entity.Theater) TheaterResponse {
	return TheaterResponse{
		ID:        theater.ID.String(),
		Name:      theater.Name,
		Address:   theater.Address,
		City:      theater.City,
		State:     theater.State,
		Pincode:   theater.Pincode,
		Latitude:  theater.Latitude,
		Longitude: theater.Longitude,
		Amenities: theater.Amenities,
		Phone:     theater.Phone,
		Email:     theater.Email,
		Status:    theater.Status,
		CreatedAt: theater.CreatedAt,
		UpdatedAt: theater.UpdatedAt,
	}
}

func ScreenToResponse(screen *entity.Screen) ScreenResponse {
	return ScreenResponse{
		ID:       screen.ID.String(),
		ScreenID: screen.ScreenID,
		Name:     screen.Name,
		Capacity: screen.Capacity,
		Layout:   screen.Layout,
	}
}

func TheaterToDetailResponse(theater *entity.Theater) TheaterDetailResponse {
	screens := make([]ScreenResponse, len(theater.Screens))
	for i := range theater.Screens {
		screens[i] = ScreenToResponse(&theater.Screens[i])
	}
	return TheaterDetailResponse{
		TheaterResponse: TheaterToResponse(theater),
		Screens:         screens,
	}
}
