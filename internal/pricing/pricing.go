// Package pricing computes the charge breakdown for a set of priced seats
// and the refund split on cancellation. All amounts are integer currency
// units.
package pricing

import (
	"errors"
	"math"

	"movie-ticketing/internal/data/entity"
)

const (
	convenienceFeeRate = 0.02
	taxRate            = 0.18
)

// Quote is the full charge breakdown for a booking.
type Quote struct {
	Subtotal       int
	ConvenienceFee int
	Taxes          int
	FinalAmount    int
}

var ErrNoSeats = errors.New("no seats to price")
var ErrInvalidPrice = errors.New("seat price must be positive")

// roundHalfUp rounds to the nearest integer unit, halves away from zero.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Compute prices a seat list. The convenience fee is rounded first, then
// taxes are computed on subtotal plus fee and rounded separately; the final
// amount is the sum of the three. Rounding each stage independently is what
// the ledger stores, so totals are reproducible from the parts.
func Compute(seats []entity.BookedSeat) (Quote, error) {
	if len(seats) == 0 {
		return Quote{}, ErrNoSeats
	}

	subtotal := 0
	for _, seat := range seats {
		if seat.Price <= 0 {
			return Quote{}, ErrInvalidPrice
		}
		subtotal += seat.Price
	}

	fee := roundHalfUp(float64(subtotal) * convenienceFeeRate)
	taxes := roundHalfUp(float64(subtotal+fee) * taxRate)

	return Quote{
		Subtotal:       subtotal,
		ConvenienceFee: fee,
		Taxes:          taxes,
		FinalAmount:    subtotal + fee + taxes,
	}, nil
}

// CancellationCharge is a percentage of the final amount, capped at an
// absolute maximum.
func CancellationCharge(finalAmount, pct, maxCharge int) int {
	charge := roundHalfUp(float64(finalAmount) * float64(pct) / 100)
	if charge > maxCharge {
		return maxCharge
	}
	return charge
}
