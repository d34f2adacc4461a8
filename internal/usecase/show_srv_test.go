package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/usecase"
	"movie-ticketing/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newShowFixture(t *testing.T) (*bookingFixture, usecase.ShowService) {
	t.Helper()
	f := newBookingFixture(t)

	repo := repository.NewRepository(stubDB{}, nil, 10*time.Minute, zap.NewNop())
	repo.Theater = f.theaters
	repo.Show = f.shows
	repo.Booking = f.bookings
	repo.Hold = f.holds

	return f, usecase.NewShowService(repo, zap.NewNop())
}

func TestGetSeatMap(t *testing.T) {
	f, service := newShowFixture(t)
	f.showTime.BookedSeats = []string{"A1", "B5"}
	f.showTime.AvailableSeats = 8

	seatMap, err := service.GetSeatMap(context.Background(), f.show.ID.String(), f.showTime.ID.String())
	require.NoError(t, err)

	// 2 rows of 5 seats each
	require.Len(t, seatMap.Seats, 10)
	assert.Equal(t, 8, seatMap.AvailableSeats)

	byNumber := make(map[string]int, len(seatMap.Seats))
	for i, seat := range seatMap.Seats {
		byNumber[seat.SeatNumber] = i
	}

	a1 := seatMap.Seats[byNumber["A1"]]
	assert.True(t, a1.IsBooked)
	assert.Equal(t, entity.SeatTypePremium, a1.SeatType)
	assert.Equal(t, 250, a1.Price)

	b3 := seatMap.Seats[byNumber["B3"]]
	assert.False(t, b3.IsBooked)
	assert.Equal(t, entity.SeatTypeRegular, b3.SeatType)
	assert.Equal(t, 100, b3.Price)
}

func TestHoldSeats_RejectsBookedSeat(t *testing.T) {
	f, service := newShowFixture(t)
	f.showTime.BookedSeats = []string{"A1"}

	req := &request.HoldSeatsRequest{
		ShowTimeID: f.showTime.ID.String(),
		Seats:      []string{"A1", "A2"},
	}

	_, err := service.HoldSeats(context.Background(), f.userID.String(), f.show.ID.String(), req)
	require.Error(t, err)

	var conflict *repository.SeatConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"A1"}, conflict.Seats)
}

func TestHoldSeats_Success(t *testing.T) {
	f, service := newShowFixture(t)

	req := &request.HoldSeatsRequest{
		ShowTimeID: f.showTime.ID.String(),
		Seats:      []string{"A1", "A2"},
	}

	hold, err := service.HoldSeats(context.Background(), f.userID.String(), f.show.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, hold.Seats)
	assert.True(t, hold.ExpiresAt.After(time.Now()))
}

func TestHoldSeats_InactiveShow(t *testing.T) {
	f, service := newShowFixture(t)
	f.show.Status = entity.ShowStatusInactive

	req := &request.HoldSeatsRequest{
		ShowTimeID: f.showTime.ID.String(),
		Seats:      []string{"A1"},
	}

	_, err := service.HoldSeats(context.Background(), f.userID.String(), f.show.ID.String(), req)
	assert.ErrorIs(t, err, repository.ErrShowInactive)
}

func TestCreateShow_PricesEverySeatType(t *testing.T) {
	f, service := newShowFixture(t)

	req := &request.CreateShowRequest{
		Movie: request.MovieInput{
			TmdbID:   550,
			Title:    "Fight Club",
			Duration: 139,
		},
		TheaterID: f.show.TheaterID.String(),
		ScreenID:  "SCRN-1",
		Format:    "2D",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-20",
		ShowTimes: []request.ShowTimeInput{
			{
				Date:   "2026-09-10",
				Time:   "18:00",
				Prices: map[string]int{"Premium": 300}, // Regular missing
			},
		},
	}

	_, err := service.CreateShow(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price for seat type Regular")
}

func TestCreateShow_Success(t *testing.T) {
	f, service := newShowFixture(t)

	req := &request.CreateShowRequest{
		Movie: request.MovieInput{
			TmdbID:   550,
			Title:    "Fight Club",
			Duration: 139,
		},
		TheaterID: f.show.TheaterID.String(),
		ScreenID:  "SCRN-1",
		Format:    "IMAX",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-20",
		ShowTimes: []request.ShowTimeInput{
			{
				Date:   "2026-09-10",
				Time:   "18:00",
				Prices: map[string]int{"Premium": 300, "Regular": 120},
			},
			{
				Date:   "2026-09-11",
				Time:   "21:30",
				Prices: map[string]int{"Premium": 350, "Regular": 150},
			},
		},
	}

	show, err := service.CreateShow(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, show.ShowTimes, 2)

	// Inventory starts at full screen capacity.
	assert.Equal(t, 10, show.ShowTimes[0].AvailableSeats)
	assert.Equal(t, 300, show.ShowTimes[0].Prices.Premium)
	assert.Equal(t, entity.ShowTimeStatusActive, show.ShowTimes[0].Status)
	assert.Equal(t, entity.ShowFormat("IMAX"), show.Format)
}

func TestGetSeatMap_UnknownShowTime(t *testing.T) {
	f, service := newShowFixture(t)

	_, err := service.GetSeatMap(context.Background(), f.show.ID.String(), utils.GenerateUUID().String())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
