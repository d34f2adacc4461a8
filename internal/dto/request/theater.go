package request

type SeatTypeRowsInput struct {
	Type  string   `json:"type" validate:"required,oneof=Premium Gold Silver Regular"`
	Price int      `json:"price" validate:"required,min=1"`
	Rows  []string `json:"rows" validate:"required,min=1,dive,len=1"`
}

type SeatLayoutInput struct {
	Rows        int                 `json:"rows" validate:"required,min=1,max=26"`
	SeatsPerRow int                 `json:"seats_per_row" validate:"required,min=1,max=50"`
	SeatTypes   []SeatTypeRowsInput `json:"seat_types" validate:"required,min=1,dive"`
}

type ScreenInput struct {
	ScreenID string          `json:"screen_id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Layout   SeatLayoutInput `json:"seat_layout" validate:"required"`
}

type CreateTheaterRequest struct {
	Name      string        `json:"name" validate:"required,min=2"`
	Address   string        `json:"address" validate:"required"`
	City      string        `json:"city" validate:"required"`
	State     string        `json:"state" validate:"required"`
	Pincode   string        `json:"pincode" validate:"required"`
	Latitude  *float64      `json:"latitude"`
	Longitude *float64      `json:"longitude"`
	Amenities []string      `json:"amenities"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email" validate:"omitempty,email"`
	Screens   []ScreenInput `json:"screens" validate:"required,min=1,dive"`
}

type UpdateTheaterRequest struct {
	Name      string   `json:"name" validate:"omitempty,min=2"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Pincode   string   `json:"pincode"`
	Amenities []string `json:"amenities"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Status    string   `json:"status" validate:"omitempty,oneof=Active Inactive Maintenance"`
}
