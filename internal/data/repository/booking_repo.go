package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create inserts the ledger row inside the caller's transaction so it
	// commits atomically with the seat reservation. Returns
	// ErrDuplicateBookingID when the human-readable id collides.
	Create(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Cancel flips a Confirmed booking to Cancelled/Refunded and records
	// the refund. The status guard makes retries report false instead of
	// refunding twice.
	Cancel(ctx context.Context, id uuid.UUID, refundAmount int) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_id, user_id, show_id, show_time_id,
	movie_tmdb_id, movie_title, poster_path,
	theater_id, theater_name, theater_address, screen_id, screen_name,
	show_date, show_time, seats,
	total_amount, convenience_fee, taxes, final_amount,
	payment_method, transaction_id, payment_status, paid_at,
	status, qr_code, can_cancel, cancel_before, refund_amount,
	created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	seats, err := json.Marshal(booking.Seats)
	if err != nil {
		return fmt.Errorf("marshal booking seats: %w", err)
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.BookingID,
		booking.UserID,
		booking.ShowID,
		booking.ShowTimeID,
		booking.Movie.TmdbID,
		booking.Movie.Title,
		booking.Movie.PosterPath,
		booking.TheaterID,
		booking.TheaterName,
		booking.TheaterAddress,
		booking.ScreenID,
		booking.ScreenName,
		booking.ShowDate,
		booking.ShowTime,
		seats,
		booking.TotalAmount,
		booking.ConvenienceFee,
		booking.Taxes,
		booking.FinalAmount,
		booking.Payment.Method,
		booking.Payment.TransactionID,
		booking.Payment.Status,
		booking.Payment.PaidAt,
		booking.Status,
		booking.QRCode,
		booking.Cancellation.CanCancel,
		booking.Cancellation.CancelBefore,
		booking.Cancellation.RefundAmount,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBookingID
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.BookingID),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingID, err)
	}

	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var seats []byte

	err := row.Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.UserID,
		&booking.ShowID,
		&booking.ShowTimeID,
		&booking.Movie.TmdbID,
		&booking.Movie.Title,
		&booking.Movie.PosterPath,
		&booking.TheaterID,
		&booking.TheaterName,
		&booking.TheaterAddress,
		&booking.ScreenID,
		&booking.ScreenName,
		&booking.ShowDate,
		&booking.ShowTime,
		&seats,
		&booking.TotalAmount,
		&booking.ConvenienceFee,
		&booking.Taxes,
		&booking.FinalAmount,
		&booking.Payment.Method,
		&booking.Payment.TransactionID,
		&booking.Payment.Status,
		&booking.Payment.PaidAt,
		&booking.Status,
		&booking.QRCode,
		&booking.Cancellation.CanCancel,
		&booking.Cancellation.CancelBefore,
		&booking.Cancellation.RefundAmount,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(seats, &booking.Seats); err != nil {
		return nil, fmt.Errorf("unmarshal booking seats: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_id = $1`, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find booking by booking ID %s: %w", bookingID, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID, refundAmount int) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'Cancelled', payment_status = 'Refunded', refund_amount = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'Confirmed'
	`

	result, err := r.db.Exec(ctx, query, id, refundAmount)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
