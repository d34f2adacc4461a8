package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusRefunded  BookingStatus = "Refunded"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusSuccess  PaymentStatus = "Success"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "Credit Card"
	PaymentMethodDebitCard  PaymentMethod = "Debit Card"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodNetBanking PaymentMethod = "Net Banking"
	PaymentMethodWallet     PaymentMethod = "Wallet"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodUPI,
		PaymentMethodNetBanking, PaymentMethodWallet:
		return true
	}
	return false
}

// BookedSeat is the per-seat snapshot on a booking: identity, type and the
// price actually charged.
type BookedSeat struct {
	SeatNumber string   `json:"seat_number"`
	SeatType   SeatType `json:"seat_type"`
	Price      int      `json:"price"`
}

type Payment struct {
	Method        PaymentMethod `db:"payment_method"`
	TransactionID string        `db:"transaction_id"`
	Status        PaymentStatus `db:"payment_status"`
	PaidAt        *time.Time    `db:"paid_at"`
}

type CancellationPolicy struct {
	CanCancel    bool      `db:"can_cancel"`
	CancelBefore time.Time `db:"cancel_before"`
	RefundAmount *int      `db:"refund_amount"` // set once cancelled
}

// Booking is an immutable purchase snapshot. Catalog fields are copied in at
// confirmation time so later show or theater edits never change a ticket.
// Only cancellation mutates it: status, payment status and refund amount.
type Booking struct {
	Base
	BookingID      string    `db:"booking_id"` // human-readable, globally unique
	UserID         uuid.UUID `db:"user_id"`
	ShowID         uuid.UUID `db:"show_id"`
	ShowTimeID     uuid.UUID `db:"show_time_id"`
	Movie          MovieSnapshot
	TheaterID      uuid.UUID `db:"theater_id"`
	TheaterName    string    `db:"theater_name"`
	TheaterAddress string    `db:"theater_address"`
	ScreenID       string    `db:"screen_id"`
	ScreenName     string    `db:"screen_name"`
	ShowDate       time.Time `db:"show_date"`
	ShowTime       string    `db:"show_time"`
	Seats          []BookedSeat
	TotalAmount    int `db:"total_amount"`
	ConvenienceFee int `db:"convenience_fee"`
	Taxes          int `db:"taxes"`
	FinalAmount    int `db:"final_amount"`
	Payment        Payment
	Status         BookingStatus `db:"status"`
	QRCode         string        `db:"qr_code"`
	Cancellation   CancellationPolicy
}

// SeatNumbers lists the seat identifiers of the booking.
func (b *Booking) SeatNumbers() []string {
	numbers := make([]string, len(b.Seats))
	for i, s := range b.Seats {
		numbers[i] = s.SeatNumber
	}
	return numbers
}
