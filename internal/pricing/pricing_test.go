package pricing_test

import (
	"testing"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func seats(prices ...int) []entity.BookedSeat {
	out := make([]entity.BookedSeat, len(prices))
	for i, p := range prices {
		out[i] = entity.BookedSeat{SeatNumber: "A1", SeatType: entity.SeatTypeRegular, Price: p}
	}
	return out
}

func TestCompute_ReferenceBreakdown(t *testing.T) {
	// 100 + 250 = 350; fee 2% = 7; taxes 18% of 357 = 64.26 -> 64; final 421
	quote, err := pricing.Compute(seats(100, 250))

	assert.NoError(t, err)
	assert.Equal(t, 350, quote.Subtotal)
	assert.Equal(t, 7, quote.ConvenienceFee)
	assert.Equal(t, 64, quote.Taxes)
	assert.Equal(t, 421, quote.FinalAmount)
}

func TestCompute_TwoStageRounding(t *testing.T) {
	// Fee must be rounded before taxes are computed: subtotal 130 gives
	// fee 2.6 -> 3 (not 2.6 carried forward), taxes 18% of 133 = 23.94 -> 24.
	quote, err := pricing.Compute(seats(130))

	assert.NoError(t, err)
	assert.Equal(t, 3, quote.ConvenienceFee)
	assert.Equal(t, 24, quote.Taxes)
	assert.Equal(t, 157, quote.FinalAmount)
}

func TestCompute_HalfRoundsUp(t *testing.T) {
	// Subtotal 125: fee 2.5 rounds up to 3.
	quote, err := pricing.Compute(seats(125))

	assert.NoError(t, err)
	assert.Equal(t, 3, quote.ConvenienceFee)
}

func TestCompute_RejectsEmptySeatList(t *testing.T) {
	_, err := pricing.Compute(nil)
	assert.ErrorIs(t, err, pricing.ErrNoSeats)
}

func TestCompute_RejectsNonPositivePrice(t *testing.T) {
	_, err := pricing.Compute(seats(100, 0))
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)

	_, err = pricing.Compute(seats(-50))
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)
}

func TestCancellationCharge_Capped(t *testing.T) {
	// 10% of 5000 is 500, capped at 200.
	assert.Equal(t, 200, pricing.CancellationCharge(5000, 10, 200))
}

func TestCancellationCharge_BelowCap(t *testing.T) {
	assert.Equal(t, 100, pricing.CancellationCharge(1000, 10, 200))
}
