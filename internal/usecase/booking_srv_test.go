package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/usecase"
	"movie-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---------- stubs for the transaction plumbing ----------

type stubTx struct{}

func (stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(ctx context.Context) error          { return nil }
func (stubTx) Rollback(ctx context.Context) error        { return nil }
func (stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (stubTx) Conn() *pgx.Conn                                               { return nil }

type stubDB struct{}

func (stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}
func (stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}
func (stubDB) Begin(ctx context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubDB) Ping(ctx context.Context) error            { return nil }
func (stubDB) Close()                                    {}

// ---------- repository fakes ----------

type fakeTheaterRepo struct {
	theater *entity.Theater
	screen  *entity.Screen
}

func (f *fakeTheaterRepo) Create(ctx context.Context, theater *entity.Theater) error { return nil }
func (f *fakeTheaterRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error) {
	if f.theater != nil && f.theater.ID == id {
		return f.theater, nil
	}
	return nil, nil
}
func (f *fakeTheaterRepo) FindScreen(ctx context.Context, theaterID uuid.UUID, screenID string) (*entity.Screen, error) {
	if f.screen != nil && f.screen.TheaterID == theaterID && f.screen.ScreenID == screenID {
		return f.screen, nil
	}
	return nil, nil
}
func (f *fakeTheaterRepo) FindAll(ctx context.Context, city string, limit, offset int) ([]*entity.Theater, error) {
	return nil, nil
}
func (f *fakeTheaterRepo) Count(ctx context.Context, city string) (int64, error)     { return 0, nil }
func (f *fakeTheaterRepo) Update(ctx context.Context, theater *entity.Theater) error { return nil }
func (f *fakeTheaterRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

type fakeShowRepo struct {
	show     *entity.Show
	showTime *entity.ShowTime

	reserveErr error
	reserved   [][]string

	released   []string
	releaseErr error
}

func (f *fakeShowRepo) Create(ctx context.Context, show *entity.Show) error { return nil }
func (f *fakeShowRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	if f.show != nil && f.show.ID == id {
		return f.show, nil
	}
	return nil, nil
}
func (f *fakeShowRepo) FindShowTime(ctx context.Context, showTimeID uuid.UUID) (*entity.ShowTime, error) {
	if f.showTime != nil && f.showTime.ID == showTimeID {
		return f.showTime, nil
	}
	return nil, nil
}
func (f *fakeShowRepo) FindAll(ctx context.Context, filter repository.ShowFilter) ([]*entity.Show, error) {
	return nil, nil
}
func (f *fakeShowRepo) Update(ctx context.Context, show *entity.Show) error { return nil }
func (f *fakeShowRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (f *fakeShowRepo) ReserveSeats(ctx context.Context, tx pgx.Tx, showID, showTimeID uuid.UUID, seats []string) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, seats)
	return nil
}
func (f *fakeShowRepo) ReleaseSeats(ctx context.Context, showTimeID uuid.UUID, seats []string) (int, error) {
	if f.releaseErr != nil {
		return 0, f.releaseErr
	}
	f.released = append(f.released, seats...)
	return len(seats), nil
}

type fakeBookingRepo struct {
	createErrs []error // popped per Create call, nil entry means success
	created    []*entity.Booking

	byID map[uuid.UUID]*entity.Booking

	cancelOK     bool
	cancelCalls  int
	cancelRefund int
}

func (f *fakeBookingRepo) Create(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	f.created = append(f.created, booking)
	return nil
}
func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.byID[id], nil
}
func (f *fakeBookingRepo) FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	for _, b := range f.byID {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, nil
}
func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.byID {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(bookings)), nil
}
func (f *fakeBookingRepo) Cancel(ctx context.Context, id uuid.UUID, refundAmount int) (bool, error) {
	f.cancelCalls++
	f.cancelRefund = refundAmount
	return f.cancelOK, nil
}

type fakeHoldRepo struct {
	heldByOthers []string
	released     [][]string
}

func (f *fakeHoldRepo) HoldSeats(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) ([]string, time.Time, error) {
	return nil, time.Now().Add(10 * time.Minute), nil
}
func (f *fakeHoldRepo) ReleaseSeats(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) error {
	f.released = append(f.released, seats)
	return nil
}
func (f *fakeHoldRepo) HeldByOthers(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) ([]string, error) {
	return f.heldByOthers, nil
}
func (f *fakeHoldRepo) HeldSeats(ctx context.Context, showTimeID uuid.UUID, seats []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

// ---------- fixture ----------

type bookingFixture struct {
	service  usecase.BookingService
	theaters *fakeTheaterRepo
	shows    *fakeShowRepo
	bookings *fakeBookingRepo
	holds    *fakeHoldRepo

	userID   uuid.UUID
	show     *entity.Show
	showTime *entity.ShowTime
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	theater := &entity.Theater{
		Name:    "PVR Phoenix",
		Address: "Lower Parel",
		City:    "Mumbai",
		Status:  entity.TheaterStatusActive,
	}
	theater.Base = entity.NewBase()

	screen := &entity.Screen{
		TheaterID: theater.ID,
		ScreenID:  "SCRN-1",
		Name:      "Audi 1",
		Capacity:  10,
		Layout: entity.SeatLayout{
			Rows:        2,
			SeatsPerRow: 5,
			SeatTypes: []entity.SeatTypeRows{
				{Type: entity.SeatTypePremium, Price: 250, Rows: []string{"A"}},
				{Type: entity.SeatTypeRegular, Price: 100, Rows: []string{"B"}},
			},
		},
	}
	screen.BaseSimple = entity.NewBaseSimple()

	show := &entity.Show{
		Movie: entity.MovieSnapshot{
			TmdbID:   550,
			Title:    "Fight Club",
			Duration: 139,
			Language: "English",
		},
		TheaterID:  theater.ID,
		ScreenID:   screen.ScreenID,
		ScreenName: screen.Name,
		Format:     entity.ShowFormat2D,
		Status:     entity.ShowStatusActive,
	}
	show.Base = entity.NewBase()

	tomorrow := time.Now().AddDate(0, 0, 1)
	showTime := &entity.ShowTime{
		ShowID: show.ID,
		Date:   time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.Local),
		Time:   "18:00",
		Prices: entity.SeatPrices{
			Premium: 250,
			Regular: 100,
		},
		AvailableSeats: 10,
		BookedSeats:    []string{},
		Status:         entity.ShowTimeStatusActive,
	}
	showTime.Base = entity.NewBase()

	theaters := &fakeTheaterRepo{theater: theater, screen: screen}
	shows := &fakeShowRepo{show: show, showTime: showTime}
	bookings := &fakeBookingRepo{byID: map[uuid.UUID]*entity.Booking{}, cancelOK: true}
	holds := &fakeHoldRepo{}

	repo := repository.NewRepository(stubDB{}, nil, 10*time.Minute, zap.NewNop())
	repo.Theater = theaters
	repo.Show = shows
	repo.Booking = bookings
	repo.Hold = holds

	config := &utils.Config{
		Booking: utils.BookingConfig{
			HoldMinutes:        10,
			CancelCutoffHours:  2,
			CancellationFeePct: 10,
			CancellationFeeCap: 200,
		},
	}

	return &bookingFixture{
		service:  usecase.NewBookingService(repo, config, zap.NewNop()),
		theaters: theaters,
		shows:    shows,
		bookings: bookings,
		holds:    holds,
		userID:   uuid.New(),
		show:     show,
		showTime: showTime,
	}
}

func (f *bookingFixture) createRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ShowID:     f.show.ID.String(),
		ShowTimeID: f.showTime.ID.String(),
		Seats: []request.SeatSelection{
			{SeatNumber: "A1", SeatType: "Premium", Price: 250},
			{SeatNumber: "B3", SeatType: "Regular", Price: 100},
		},
		PaymentMethod: "UPI",
	}
}

// ---------- create ----------

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, strings.HasPrefix(resp.BookingID, "BMS"))
	assert.Equal(t, 350, resp.TotalAmount)
	assert.Equal(t, 7, resp.ConvenienceFee)
	assert.Equal(t, 64, resp.Taxes)
	assert.Equal(t, 421, resp.FinalAmount)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, entity.PaymentStatusSuccess, resp.Payment.Status)
	assert.Equal(t, "Fight Club", resp.MovieTitle)
	assert.Equal(t, "PVR Phoenix", resp.TheaterName)
	assert.Contains(t, resp.QRCode, resp.BookingID)

	require.Len(t, f.shows.reserved, 1)
	assert.Equal(t, []string{"A1", "B3"}, f.shows.reserved[0])
	require.Len(t, f.bookings.created, 1)

	// Holds belonging to the booker are consumed after commit.
	require.Len(t, f.holds.released, 1)
	assert.Equal(t, []string{"A1", "B3"}, f.holds.released[0])
}

func TestCreateBooking_SeatConflict(t *testing.T) {
	f := newBookingFixture(t)
	f.shows.reserveErr = &repository.SeatConflictError{Seats: []string{"A1"}}

	resp, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest())
	require.Error(t, err)
	assert.Nil(t, resp)

	var conflict *repository.SeatConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"A1"}, conflict.Seats)
	assert.Empty(t, f.bookings.created)
}

func TestCreateBooking_PriceMismatch(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest()
	req.Seats[0].Price = 120 // stale client price

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrPriceMismatch)
	assert.Empty(t, f.shows.reserved)
}

func TestCreateBooking_WrongSeatType(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest()
	req.Seats[1].SeatType = "Premium"
	req.Seats[1].Price = 250

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), req)
	assert.ErrorIs(t, err, usecase.ErrPriceMismatch)
}

func TestCreateBooking_SeatsHeldByOther(t *testing.T) {
	f := newBookingFixture(t)
	f.holds.heldByOthers = []string{"B3"}

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest())
	require.Error(t, err)

	var held *usecase.SeatsHeldError
	require.True(t, errors.As(err, &held))
	assert.Equal(t, []string{"B3"}, held.Seats)
	assert.Empty(t, f.shows.reserved)
}

func TestCreateBooking_RetriesDuplicateBookingID(t *testing.T) {
	f := newBookingFixture(t)
	f.bookings.createErrs = []error{repository.ErrDuplicateBookingID, nil}

	resp, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, f.bookings.created, 1)
}

func TestCreateBooking_DuplicateBookingIDExhausted(t *testing.T) {
	f := newBookingFixture(t)
	f.bookings.createErrs = []error{
		repository.ErrDuplicateBookingID,
		repository.ErrDuplicateBookingID,
		repository.ErrDuplicateBookingID,
	}

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest())
	assert.ErrorIs(t, err, repository.ErrDuplicateBookingID)
	assert.Empty(t, f.bookings.created)
}

func TestCreateBooking_DuplicateSeat(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest()
	req.Seats[1] = req.Seats[0]

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate seat")
}

func TestCreateBooking_SeatOutsideLayout(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest()
	req.Seats[0] = request.SeatSelection{SeatNumber: "C1", SeatType: "Regular", Price: 100}

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside screen layout")
}

func TestCreateBooking_InactiveShowTime(t *testing.T) {
	f := newBookingFixture(t)
	f.showTime.Status = entity.ShowTimeStatusFull

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest())
	assert.ErrorIs(t, err, repository.ErrShowInactive)
}

func TestCreateBooking_ShowTimeOfDifferentShow(t *testing.T) {
	f := newBookingFixture(t)
	f.showTime.ShowID = uuid.New()

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// ---------- cancel ----------

func confirmedBooking(f *bookingFixture, startsIn time.Duration) *entity.Booking {
	startsAt := time.Now().Add(startsIn)
	booking := &entity.Booking{
		BookingID:   "BMS123456ABCD",
		UserID:      f.userID,
		ShowID:      f.show.ID,
		ShowTimeID:  f.showTime.ID,
		Movie:       f.show.Movie,
		TheaterID:   f.show.TheaterID,
		TheaterName: "PVR Phoenix",
		ScreenName:  "Audi 1",
		ShowDate:    time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, startsAt.Location()),
		ShowTime:    startsAt.Format("15:04"),
		Seats: []entity.BookedSeat{
			{SeatNumber: "A1", SeatType: entity.SeatTypePremium, Price: 250},
			{SeatNumber: "B3", SeatType: entity.SeatTypeRegular, Price: 100},
		},
		TotalAmount:    350,
		ConvenienceFee: 7,
		Taxes:          64,
		FinalAmount:    421,
		Status:         entity.BookingStatusConfirmed,
	}
	booking.Base = entity.NewBase()
	f.bookings.byID[booking.ID] = booking
	return booking
}

func TestCancelBooking_Success(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 5*time.Hour)

	resp, err := f.service.CancelBooking(context.Background(), f.userID.String(), booking.ID.String())
	require.NoError(t, err)
	require.NotNil(t, resp)

	// 10% of 421 rounds to 42, under the 200 cap.
	assert.Equal(t, 42, resp.CancellationCharge)
	assert.Equal(t, 379, resp.RefundAmount)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, 379, f.bookings.cancelRefund)

	// Seats go back to the pool.
	assert.Equal(t, []string{"A1", "B3"}, f.shows.released)
}

func TestCancelBooking_WindowClosed(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 1*time.Hour)

	_, err := f.service.CancelBooking(context.Background(), f.userID.String(), booking.ID.String())
	assert.ErrorIs(t, err, usecase.ErrCancellationWindowClosed)
	assert.Zero(t, f.bookings.cancelCalls)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 5*time.Hour)
	booking.Status = entity.BookingStatusRefunded

	_, err := f.service.CancelBooking(context.Background(), f.userID.String(), booking.ID.String())
	assert.ErrorIs(t, err, usecase.ErrAlreadyCancelled)
}

func TestCancelBooking_LostRace(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 5*time.Hour)
	f.bookings.cancelOK = false

	_, err := f.service.CancelBooking(context.Background(), f.userID.String(), booking.ID.String())
	assert.ErrorIs(t, err, usecase.ErrAlreadyCancelled)
	assert.Empty(t, f.shows.released)
}

func TestCancelBooking_Forbidden(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 5*time.Hour)

	_, err := f.service.CancelBooking(context.Background(), uuid.New().String(), booking.ID.String())
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

// ---------- reads ----------

func TestGetBooking_OwnerOnly(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 5*time.Hour)

	resp, err := f.service.GetBooking(context.Background(), f.userID.String(), booking.ID.String())
	require.NoError(t, err)
	assert.Equal(t, booking.BookingID, resp.BookingID)

	_, err = f.service.GetBooking(context.Background(), uuid.New().String(), booking.ID.String())
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestGetTicket_PublicAndAnonymous(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 5*time.Hour)

	ticket, err := f.service.GetTicket(context.Background(), booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, booking.BookingID, ticket.BookingID)
	assert.Equal(t, []string{"A1", "B3"}, ticket.Seats)
}

func TestGetTicket_CancelledBookingIsInvalid(t *testing.T) {
	f := newBookingFixture(t)
	booking := confirmedBooking(f, 5*time.Hour)
	booking.Status = entity.BookingStatusCancelled
	booking.Payment.Status = entity.PaymentStatusRefunded

	_, err := f.service.GetTicket(context.Background(), booking.BookingID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetTicket_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetTicket(context.Background(), "BMS000000XXXX")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
