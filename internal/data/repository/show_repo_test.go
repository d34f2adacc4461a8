package repository_test

import (
	"context"
	"testing"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reserveFixture struct {
	mock pgxmock.PgxPoolIface
	repo repository.ShowRepository

	showID     uuid.UUID
	showTimeID uuid.UUID
}

func newReserveFixture(t *testing.T) *reserveFixture {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &reserveFixture{
		mock:       mock,
		repo:       repository.NewShowRepository(mock, zap.NewNop()),
		showID:     uuid.New(),
		showTimeID: uuid.New(),
	}
}

func (f *reserveFixture) begin(t *testing.T) pgx.Tx {
	t.Helper()
	f.mock.ExpectBegin()
	tx, err := f.mock.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestReserveSeats_Success(t *testing.T) {
	f := newReserveFixture(t)
	seats := []string{"A1", "B3"}

	tx := f.begin(t)
	f.mock.ExpectExec("UPDATE show_times").
		WithArgs(f.showTimeID, f.showID, seats).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := f.repo.ReserveSeats(context.Background(), tx, f.showID, f.showTimeID, seats)
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReserveSeats_ConflictEnumeratesEveryContestedSeat(t *testing.T) {
	f := newReserveFixture(t)
	seats := []string{"A1", "B5", "C2"}

	tx := f.begin(t)
	f.mock.ExpectExec("UPDATE show_times").
		WithArgs(f.showTimeID, f.showID, seats).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectQuery("SELECT st.status, st.booked_seats, s.status").
		WithArgs(f.showTimeID, f.showID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "booked_seats", "show_status"}).
			AddRow(entity.ShowTimeStatusActive, []string{"A1", "B3", "B5"}, entity.ShowStatusActive))

	err := f.repo.ReserveSeats(context.Background(), tx, f.showID, f.showTimeID, seats)

	var conflict *repository.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A1", "B5"}, conflict.Seats)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReserveSeats_UnknownShowTime(t *testing.T) {
	f := newReserveFixture(t)
	seats := []string{"A1"}

	tx := f.begin(t)
	f.mock.ExpectExec("UPDATE show_times").
		WithArgs(f.showTimeID, f.showID, seats).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectQuery("SELECT st.status, st.booked_seats, s.status").
		WithArgs(f.showTimeID, f.showID).
		WillReturnError(pgx.ErrNoRows)

	err := f.repo.ReserveSeats(context.Background(), tx, f.showID, f.showTimeID, seats)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReserveSeats_InactiveShow(t *testing.T) {
	f := newReserveFixture(t)
	seats := []string{"A1"}

	tx := f.begin(t)
	f.mock.ExpectExec("UPDATE show_times").
		WithArgs(f.showTimeID, f.showID, seats).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectQuery("SELECT st.status, st.booked_seats, s.status").
		WithArgs(f.showTimeID, f.showID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "booked_seats", "show_status"}).
			AddRow(entity.ShowTimeStatusActive, []string{}, entity.ShowStatusInactive))

	err := f.repo.ReserveSeats(context.Background(), tx, f.showID, f.showTimeID, seats)
	assert.ErrorIs(t, err, repository.ErrShowInactive)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReserveSeats_FullShowTime(t *testing.T) {
	f := newReserveFixture(t)
	seats := []string{"C4"}

	tx := f.begin(t)
	f.mock.ExpectExec("UPDATE show_times").
		WithArgs(f.showTimeID, f.showID, seats).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectQuery("SELECT st.status, st.booked_seats, s.status").
		WithArgs(f.showTimeID, f.showID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "booked_seats", "show_status"}).
			AddRow(entity.ShowTimeStatusFull, []string{"A1", "A2"}, entity.ShowStatusActive))

	err := f.repo.ReserveSeats(context.Background(), tx, f.showID, f.showTimeID, seats)
	assert.ErrorIs(t, err, repository.ErrShowInactive)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReserveSeats_NotEnoughSeatsLeft(t *testing.T) {
	f := newReserveFixture(t)
	seats := []string{"A3", "A4"}

	tx := f.begin(t)
	f.mock.ExpectExec("UPDATE show_times").
		WithArgs(f.showTimeID, f.showID, seats).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectQuery("SELECT st.status, st.booked_seats, s.status").
		WithArgs(f.showTimeID, f.showID).
		WillReturnRows(pgxmock.NewRows([]string{"status", "booked_seats", "show_status"}).
			AddRow(entity.ShowTimeStatusActive, []string{"A1"}, entity.ShowStatusActive))

	err := f.repo.ReserveSeats(context.Background(), tx, f.showID, f.showTimeID, seats)
	assert.ErrorIs(t, err, repository.ErrShowInactive)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReleaseSeats_CreditsOnlyRemovedSeats(t *testing.T) {
	f := newReserveFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booked_seats, available_seats, status FROM show_times").
		WithArgs(f.showTimeID).
		WillReturnRows(pgxmock.NewRows([]string{"booked_seats", "available_seats", "status"}).
			AddRow([]string{"A1", "B3"}, 0, entity.ShowTimeStatusFull))
	f.mock.ExpectExec("UPDATE show_times").
		WithArgs(f.showTimeID, []string{"B3"}, 1, entity.ShowTimeStatusActive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectCommit()

	removed, err := f.repo.ReleaseSeats(context.Background(), f.showTimeID, []string{"A1", "C9"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReleaseSeats_NothingBookedIsANoOp(t *testing.T) {
	f := newReserveFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booked_seats, available_seats, status FROM show_times").
		WithArgs(f.showTimeID).
		WillReturnRows(pgxmock.NewRows([]string{"booked_seats", "available_seats", "status"}).
			AddRow([]string{"D7"}, 9, entity.ShowTimeStatusActive))
	f.mock.ExpectRollback()

	removed, err := f.repo.ReleaseSeats(context.Background(), f.showTimeID, []string{"A1"})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReleaseSeats_UnknownShowTime(t *testing.T) {
	f := newReserveFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booked_seats, available_seats, status FROM show_times").
		WithArgs(f.showTimeID).
		WillReturnError(pgx.ErrNoRows)
	f.mock.ExpectRollback()

	_, err := f.repo.ReleaseSeats(context.Background(), f.showTimeID, []string{"A1"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
