package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/dto/response"
	"movie-ticketing/internal/pricing"
	"movie-ticketing/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// bookingIDAttempts bounds regeneration when the human-readable booking id
// collides with an existing row.
const bookingIDAttempts = 3

type BookingService interface {
	// Protected endpoints
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, userID string, id string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID string, id string) (*response.CancelBookingResponse, error)

	// Public: ticket lookup by booking reference, no account data exposed
	GetTicket(ctx context.Context, bookingID string) (*response.TicketResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if !entity.ValidPaymentMethod(entity.PaymentMethod(req.PaymentMethod)) {
		return nil, fmt.Errorf("invalid payment method %s", req.PaymentMethod)
	}

	show, showTime, screen, err := s.loadBookingTargets(ctx, req.ShowID, req.ShowTimeID)
	if err != nil {
		return nil, err
	}

	startsAt, err := showTime.StartsAt()
	if err != nil {
		return nil, fmt.Errorf("resolve show start: %w", err)
	}
	if !startsAt.After(time.Now()) {
		return nil, fmt.Errorf("cannot book: show already started")
	}

	// Prices and seat types come from the catalog, never from the client.
	// The request's values are only checked so a stale client fails loudly
	// instead of paying a surprise amount.
	seats, err := deriveSeats(screen, showTime, req.Seats)
	if err != nil {
		return nil, err
	}

	seatNumbers := make([]string, len(seats))
	for i, seat := range seats {
		seatNumbers[i] = seat.SeatNumber
	}

	heldByOthers, err := s.repo.Hold.HeldByOthers(ctx, showTime.ID, userUUID, seatNumbers)
	if err != nil {
		s.log.Warn("Failed to check seat holds", zap.Error(err))
	} else if len(heldByOthers) > 0 {
		return nil, &SeatsHeldError{Seats: heldByOthers}
	}

	quote, err := pricing.Compute(seats)
	if err != nil {
		return nil, fmt.Errorf("compute price: %w", err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, show.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("get theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", show.TheaterID.String(), repository.ErrNotFound)
	}

	now := time.Now()
	cancelBefore := startsAt.Add(-time.Duration(s.config.Booking.CancelCutoffHours) * time.Hour)

	booking := &entity.Booking{
		UserID:         userUUID,
		ShowID:         show.ID,
		ShowTimeID:     showTime.ID,
		Movie:          show.Movie,
		TheaterID:      theater.ID,
		TheaterName:    theater.Name,
		TheaterAddress: theater.Address,
		ScreenID:       show.ScreenID,
		ScreenName:     show.ScreenName,
		ShowDate:       showTime.Date,
		ShowTime:       showTime.Time,
		Seats:          seats,
		TotalAmount:    quote.Subtotal,
		ConvenienceFee: quote.ConvenienceFee,
		Taxes:          quote.Taxes,
		FinalAmount:    quote.FinalAmount,
		Payment: entity.Payment{
			Method:        entity.PaymentMethod(req.PaymentMethod),
			TransactionID: utils.GenerateTransactionID(),
			Status:        entity.PaymentStatusSuccess,
			PaidAt:        &now,
		},
		Status: entity.BookingStatusConfirmed,
		Cancellation: entity.CancellationPolicy{
			CanCancel:    now.Before(cancelBefore),
			CancelBefore: cancelBefore,
		},
	}
	booking.Base = entity.NewBase()

	// Reservation and ledger insert commit together; a failure in either
	// leaves no trace of the other. Only the booking id regenerates on
	// collision, the reservation conflict errors are final.
	for attempt := 0; ; attempt++ {
		booking.BookingID = utils.GenerateBookingID()
		booking.QRCode = utils.GenerateQRCode(booking.BookingID)

		err = s.repo.WithTx(ctx, func(tx pgx.Tx) error {
			if err := s.repo.Show.ReserveSeats(ctx, tx, show.ID, showTime.ID, seatNumbers); err != nil {
				return err
			}
			return s.repo.Booking.Create(ctx, tx, booking)
		})
		if errors.Is(err, repository.ErrDuplicateBookingID) && attempt < bookingIDAttempts-1 {
			continue
		}
		break
	}
	if err != nil {
		var conflict *repository.SeatConflictError
		if errors.As(err, &conflict) {
			s.log.Info("Booking lost seat race",
				zap.String("show_time_id", showTime.ID.String()),
				zap.Strings("conflicts", conflict.Seats))
			return nil, err
		}
		s.log.Error("Failed to create booking", zap.Error(err))
		return nil, err
	}

	// Holds are a pre-payment courtesy; once the seats are booked the
	// keys are noise. Expiry cleans them up if this fails.
	if err := s.repo.Hold.ReleaseSeats(ctx, showTime.ID, userUUID, seatNumbers); err != nil {
		s.log.Warn("Failed to release holds after booking", zap.Error(err))
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.BookingID),
		zap.String("user_id", userID),
		zap.Int("seats", len(seats)),
		zap.Int("final_amount", booking.FinalAmount))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID string, id string) (*response.BookingResponse, error) {
	booking, err := s.findOwnedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID string, id string) (*response.CancelBookingResponse, error) {
	booking, err := s.findOwnedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusConfirmed {
		return nil, ErrAlreadyCancelled
	}

	startsAt, err := utils.CombineDateTime(booking.ShowDate, booking.ShowTime)
	if err != nil {
		return nil, fmt.Errorf("resolve show start: %w", err)
	}
	cutoff := startsAt.Add(-time.Duration(s.config.Booking.CancelCutoffHours) * time.Hour)
	if !time.Now().Before(cutoff) {
		return nil, ErrCancellationWindowClosed
	}

	charge := pricing.CancellationCharge(booking.FinalAmount,
		s.config.Booking.CancellationFeePct, s.config.Booking.CancellationFeeCap)
	refund := booking.FinalAmount - charge

	cancelled, err := s.repo.Booking.Cancel(ctx, booking.ID, refund)
	if err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err))
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if !cancelled {
		// Lost a race with another cancel; that one recorded the refund.
		return nil, ErrAlreadyCancelled
	}

	// Release is idempotent and its own serialization point; a failure
	// here leaves the seats blocked but the refund stands.
	released, err := s.repo.Show.ReleaseSeats(ctx, booking.ShowTimeID, booking.SeatNumbers())
	if err != nil {
		s.log.Error("Failed to release seats after cancellation",
			zap.Error(err),
			zap.String("booking_id", booking.BookingID),
			zap.Strings("seats", booking.SeatNumbers()))
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.BookingID),
		zap.Int("refund_amount", refund),
		zap.Int("cancellation_charge", charge),
		zap.Int("seats_released", released))

	return &response.CancelBookingResponse{
		BookingID:          booking.BookingID,
		Status:             entity.BookingStatusCancelled,
		RefundAmount:       refund,
		CancellationCharge: charge,
	}, nil
}

func (s *bookingService) GetTicket(ctx context.Context, bookingID string) (*response.TicketResponse, error) {
	booking, err := s.repo.Booking.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	// A cancelled or refunded booking must scan as an invalid ticket.
	if booking == nil || booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
	}

	resp := response.BookingToTicket(booking)
	return &resp, nil
}

// findOwnedBooking loads a booking and verifies the caller owns it.
func (s *bookingService) findOwnedBooking(ctx context.Context, userID string, id string) (*entity.Booking, error) {
	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	bookingUUID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", id, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	if booking.UserID != userUUID {
		return nil, ErrForbidden
	}

	return booking, nil
}

func (s *bookingService) loadBookingTargets(ctx context.Context, showID, showTimeID string) (*entity.Show, *entity.ShowTime, *entity.Screen, error) {
	showUUID, err := utils.ParseUUID(showID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}
	showTimeUUID, err := utils.ParseUUID(showTimeID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid show time ID format %s: %w", showTimeID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showUUID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get show: %w", err)
	}
	if show == nil {
		return nil, nil, nil, fmt.Errorf("show %s: %w", showID, repository.ErrNotFound)
	}
	if show.Status != entity.ShowStatusActive {
		return nil, nil, nil, repository.ErrShowInactive
	}

	showTime, err := s.repo.Show.FindShowTime(ctx, showTimeUUID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get show time: %w", err)
	}
	if showTime == nil || showTime.ShowID != show.ID {
		return nil, nil, nil, fmt.Errorf("show time %s: %w", showTimeID, repository.ErrNotFound)
	}
	if showTime.Status != entity.ShowTimeStatusActive {
		return nil, nil, nil, repository.ErrShowInactive
	}

	screen, err := s.repo.Theater.FindScreen(ctx, show.TheaterID, show.ScreenID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return nil, nil, nil, fmt.Errorf("screen %s: %w", show.ScreenID, repository.ErrNotFound)
	}

	return show, showTime, screen, nil
}

// deriveSeats resolves each requested seat against the screen layout and
// the show-time price table. Client-sent type and price must agree with
// the derived values.
func deriveSeats(screen *entity.Screen, showTime *entity.ShowTime, selections []request.SeatSelection) ([]entity.BookedSeat, error) {
	seatNumbers := make([]string, len(selections))
	for i, sel := range selections {
		seatNumbers[i] = sel.SeatNumber
	}
	if err := validateSeatNumbers(screen, seatNumbers); err != nil {
		return nil, err
	}

	seats := make([]entity.BookedSeat, len(selections))
	for i, sel := range selections {
		row := sel.SeatNumber[:1]
		seatType := screen.SeatTypeForRow(row)
		price, ok := showTime.Prices.For(seatType)
		if !ok || price < 1 {
			return nil, fmt.Errorf("no price for seat type %s at seat %s", seatType, sel.SeatNumber)
		}

		if entity.SeatType(sel.SeatType) != seatType || sel.Price != price {
			return nil, fmt.Errorf("%w: seat %s is %s at %d", ErrPriceMismatch, sel.SeatNumber, seatType, price)
		}

		seats[i] = entity.BookedSeat{
			SeatNumber: sel.SeatNumber,
			SeatType:   seatType,
			Price:      price,
		}
	}
	return seats, nil
}
