package request

// SeatSelection is one requested seat. SeatType and Price are what the
// client displayed to the user; the server re-derives both from the screen
// layout and the show-time price table and rejects mismatches.
type SeatSelection struct {
	SeatNumber string `json:"seat_number" validate:"required,min=2,max=4"`
	SeatType   string `json:"seat_type" validate:"required,oneof=Premium Gold Silver Regular"`
	Price      int    `json:"price" validate:"required,min=1"`
}

type CreateBookingRequest struct {
	ShowID        string          `json:"show_id" validate:"required,uuid4"`
	ShowTimeID    string          `json:"show_time_id" validate:"required,uuid4"`
	Seats         []SeatSelection `json:"seats" validate:"required,min=1,max=10,dive"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof='Credit Card' 'Debit Card' UPI 'Net Banking' Wallet"`
}

type HoldSeatsRequest struct {
	ShowTimeID string   `json:"show_time_id" validate:"required,uuid4"`
	Seats      []string `json:"seats" validate:"required,min=1,max=10,dive,min=2,max=4"`
}
