package response

import (
	"time"

	"movie-ticketing/internal/data/entity"
)

type BookedSeatResponse struct {
	SeatNumber string          `json:"seat_number"`
	SeatType   entity.SeatType `json:"seat_type"`
	Price      int             `json:"price"`
}

type PaymentResponse struct {
	Method        entity.PaymentMethod `json:"method"`
	TransactionID string               `json:"transaction_id"`
	Status        entity.PaymentStatus `json:"status"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
}

type CancellationResponse struct {
	CanCancel    bool      `json:"can_cancel"`
	CancelBefore time.Time `json:"cancel_before"`
	RefundAmount *int      `json:"refund_amount,omitempty"`
}

type BookingResponse struct {
	ID             string               `json:"id"`
	BookingID      string               `json:"booking_id"`
	UserID         string               `json:"user_id"`
	ShowID         string               `json:"show_id"`
	ShowTimeID     string               `json:"show_time_id"`
	MovieTitle     string               `json:"movie_title"`
	PosterPath     string               `json:"poster_path,omitempty"`
	MovieLanguage  string               `json:"movie_language,omitempty"`
	TheaterName    string               `json:"theater_name"`
	TheaterAddress string               `json:"theater_address"`
	ScreenName     string               `json:"screen_name"`
	ShowDate       string               `json:"show_date"`
	ShowTime       string               `json:"show_time"`
	Seats          []BookedSeatResponse `json:"seats"`
	TotalAmount    int                  `json:"total_amount"`
	ConvenienceFee int                  `json:"convenience_fee"`
	Taxes          int                  `json:"taxes"`
	FinalAmount    int                  `json:"final_amount"`
	Payment        PaymentResponse      `json:"payment"`
	Status         entity.BookingStatus `json:"status"`
	QRCode         string               `json:"qr_code"`
	Cancellation   CancellationResponse `json:"cancellation"`
	CreatedAt      time.Time            `json:"created_at"`
}

// TicketResponse is the public ticket view keyed by booking id. It carries
// everything the gate needs and nothing about the account that paid.
type TicketResponse struct {
	BookingID   string               `json:"booking_id"`
	MovieTitle  string               `json:"movie_title"`
	TheaterName string               `json:"theater_name"`
	ScreenName  string               `json:"screen_name"`
	ShowDate    string               `json:"show_date"`
	ShowTime    string               `json:"show_time"`
	Seats       []string             `json:"seats"`
	Status      entity.BookingStatus `json:"status"`
	QRCode      string               `json:"qr_code"`
}

type CancelBookingResponse struct {
	BookingID          string               `json:"booking_id"`
	Status             entity.BookingStatus `json:"status"`
	RefundAmount       int                  `json:"refund_amount"`
	CancellationCharge int                  `json:"cancellation_charge"`
}

type HoldSeatsResponse struct {
	ShowTimeID string    `json:"show_time_id"`
	Seats      []string  `json:"seats"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	seats := make([]BookedSeatResponse, len(b.Seats))
	for i, s := range b.Seats {
		seats[i] = BookedSeatResponse{SeatNumber: s.SeatNumber, SeatType: s.SeatType, Price: s.Price}
	}

	return BookingResponse{
		ID:             b.ID.String(),
		BookingID:      b.BookingID,
		UserID:         b.UserID.String(),
		ShowID:         b.ShowID.String(),
		ShowTimeID:     b.ShowTimeID.String(),
		MovieTitle:     b.Movie.Title,
		PosterPath:     b.Movie.PosterPath,
		MovieLanguage:  b.Movie.Language,
		TheaterName:    b.TheaterName,
		TheaterAddress: b.TheaterAddress,
		ScreenName:     b.ScreenName,
		ShowDate:       b.ShowDate.Format("2006-01-02"),
		ShowTime:       b.ShowTime,
		Seats:          seats,
		TotalAmount:    b.TotalAmount,
		ConvenienceFee: b.ConvenienceFee,
		Taxes:          b.Taxes,
		FinalAmount:    b.FinalAmount,
		Payment: PaymentResponse{
			Method:        b.Payment.Method,
			TransactionID: b.Payment.TransactionID,
			Status:        b.Payment.Status,
			PaidAt:        b.Payment.PaidAt,
		},
		Status:       b.Status,
		QRCode:       b.QRCode,
		Cancellation: CancellationResponse{
			CanCancel:    b.Cancellation.CanCancel,
			CancelBefore: b.Cancellation.CancelBefore,
			RefundAmount: b.Cancellation.RefundAmount,
		},
		CreatedAt: b.CreatedAt,
	}
}

func BookingToTicket(b *entity.Booking) TicketResponse {
	return TicketResponse{
		BookingID:   b.BookingID,
		MovieTitle:  b.Movie.Title,
		TheaterName: b.TheaterName,
		ScreenName:  b.ScreenName,
		ShowDate:    b.ShowDate.Format("2006-01-02"),
		ShowTime:    b.ShowTime,
		Seats:       b.SeatNumbers(),
		Status:      b.Status,
		QRCode:      b.QRCode,
	}
}
