package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ShowFilter narrows show listings. Zero values mean "no filter".
type ShowFilter struct {
	MovieTmdbID int
	TheaterID   uuid.UUID
	Date        time.Time
	City        string
}

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error)
	FindShowTime(ctx context.Context, showTimeID uuid.UUID) (*entity.ShowTime, error)
	FindAll(ctx context.Context, filter ShowFilter) ([]*entity.Show, error)
	Update(ctx context.Context, show *entity.Show) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Seat inventory. ReserveSeats is a single conditional update: it
	// appends the seats, decrements the available counter and flips the
	// show-time to Full only when no requested seat is already booked.
	// Two overlapping concurrent requests can never both succeed.
	ReserveSeats(ctx context.Context, tx pgx.Tx, showID, showTimeID uuid.UUID, seats []string) error
	ReleaseSeats(ctx context.Context, showTimeID uuid.UUID, seats []string) (int, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	query := `
		INSERT INTO shows (id, movie_tmdb_id, movie_title, poster_path, duration, genre, rating, language,
		                   theater_id, screen_id, screen_name, format, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		show.ID,
		show.Movie.TmdbID,
		show.Movie.Title,
		show.Movie.PosterPath,
		show.Movie.Duration,
		show.Movie.Genre,
		show.Movie.Rating,
		show.Movie.Language,
		show.TheaterID,
		show.ScreenID,
		show.ScreenName,
		show.Format,
		show.StartDate,
		show.EndDate,
		show.Status,
		show.CreatedAt,
		show.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.String("movie_title", show.Movie.Title),
			zap.String("theater_id", show.TheaterID.String()),
		)
		return fmt.Errorf("create show for %s: %w", show.Movie.Title, err)
	}

	for i := range show.ShowTimes {
		if err := r.createShowTime(ctx, &show.ShowTimes[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *showRepository) createShowTime(ctx context.Context, st *entity.ShowTime) error {
	query := `
		INSERT INTO show_times (id, show_id, show_date, show_time, price_premium, price_gold, price_silver, price_regular,
		                        available_seats, booked_seats, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		st.ID,
		st.ShowID,
		st.Date,
		st.Time,
		st.Prices.Premium,
		st.Prices.Gold,
		st.Prices.Silver,
		st.Prices.Regular,
		st.AvailableSeats,
		st.BookedSeats,
		st.Status,
		st.CreatedAt,
		st.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create show time",
			zap.Error(err),
			zap.String("show_id", st.ShowID.String()),
			zap.String("time", st.Time),
		)
		return fmt.Errorf("create show time %s: %w", st.Time, err)
	}

	return nil
}

const showColumns = `id, movie_tmdb_id, movie_title, poster_path, duration, genre, rating, language,
	theater_id, screen_id, screen_name, format, start_date, end_date, status, created_at, updated_at`

func scanShow(row pgx.Row) (*entity.Show, error) {
	var show entity.Show
	err := row.Scan(
		&show.ID,
		&show.Movie.TmdbID,
		&show.Movie.Title,
		&show.Movie.PosterPath,
		&show.Movie.Duration,
		&show.Movie.Genre,
		&show.Movie.Rating,
		&show.Movie.Language,
		&show.TheaterID,
		&show.ScreenID,
		&show.ScreenName,
		&show.Format,
		&show.StartDate,
		&show.EndDate,
		&show.Status,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &show, nil
}

const showTimeColumns = `id, show_id, show_date, show_time, price_premium, price_gold, price_silver, price_regular,
	available_seats, booked_seats, status, created_at, updated_at`

func scanShowTime(row pgx.Row) (*entity.ShowTime, error) {
	var st entity.ShowTime
	err := row.Scan(
		&st.ID,
		&st.ShowID,
		&st.Date,
		&st.Time,
		&st.Prices.Premium,
		&st.Prices.Gold,
		&st.Prices.Silver,
		&st.Prices.Regular,
		&st.AvailableSeats,
		&st.BookedSeats,
		&st.Status,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *showRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Show, error) {
	show, err := scanShow(r.db.QueryRow(ctx, `SELECT `+showColumns+` FROM shows WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show by ID %s: %w", id.String(), err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+showTimeColumns+` FROM show_times WHERE show_id = $1 ORDER BY show_date, show_time`, id)
	if err != nil {
		r.log.Error("Failed to find show times",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return nil, fmt.Errorf("find show times for show %s: %w", id.String(), err)
	}
	defer rows.Close()

	for rows.Next() {
		st, err := scanShowTime(rows)
		if err != nil {
			r.log.Error("Failed to scan show time row", zap.Error(err))
			return nil, fmt.Errorf("scan show time row: %w", err)
		}
		show.ShowTimes = append(show.ShowTimes, *st)
	}

	return show, nil
}

func (r *showRepository) FindShowTime(ctx context.Context, showTimeID uuid.UUID) (*entity.ShowTime, error) {
	st, err := scanShowTime(r.db.QueryRow(ctx,
		`SELECT `+showTimeColumns+` FROM show_times WHERE id = $1`, showTimeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show time",
			zap.Error(err),
			zap.String("show_time_id", showTimeID.String()),
		)
		return nil, fmt.Errorf("find show time %s: %w", showTimeID.String(), err)
	}

	return st, nil
}

func (r *showRepository) FindAll(ctx context.Context, filter ShowFilter) ([]*entity.Show, error) {
	query := `
		SELECT DISTINCT s.id, s.movie_tmdb_id, s.movie_title, s.poster_path, s.duration, s.genre, s.rating, s.language,
		       s.theater_id, s.screen_id, s.screen_name, s.format, s.start_date, s.end_date, s.status, s.created_at, s.updated_at
		FROM shows s
		JOIN theaters t ON t.id = s.theater_id
		JOIN show_times st ON st.show_id = s.id
		WHERE s.status = 'Active'
		  AND ($1 = 0 OR s.movie_tmdb_id = $1)
		  AND ($2::uuid IS NULL OR s.theater_id = $2)
		  AND ($3::date IS NULL OR st.show_date = $3)
		  AND ($4 = '' OR LOWER(t.city) = LOWER($4))
		ORDER BY s.start_date, s.movie_title
	`

	var theaterID any
	if filter.TheaterID != uuid.Nil {
		theaterID = filter.TheaterID
	}
	var date any
	if !filter.Date.IsZero() {
		date = filter.Date
	}

	rows, err := r.db.Query(ctx, query, filter.MovieTmdbID, theaterID, date, filter.City)
	if err != nil {
		r.log.Error("Failed to find shows", zap.Error(err))
		return nil, fmt.Errorf("find shows: %w", err)
	}
	defer rows.Close()

	var shows []*entity.Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			r.log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("scan show row: %w", err)
		}
		shows = append(shows, show)
	}

	return shows, nil
}

func (r *showRepository) Update(ctx context.Context, show *entity.Show) error {
	query := `
		UPDATE shows
		SET movie_title = $2, poster_path = $3, duration = $4, genre = $5, rating = $6, language = $7,
		    format = $8, start_date = $9, end_date = $10, status = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		show.ID,
		show.Movie.Title,
		show.Movie.PosterPath,
		show.Movie.Duration,
		show.Movie.Genre,
		show.Movie.Rating,
		show.Movie.Language,
		show.Format,
		show.StartDate,
		show.EndDate,
		show.Status,
		show.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update show",
			zap.Error(err),
			zap.String("show_id", show.ID.String()),
		)
		return fmt.Errorf("update show %s: %w", show.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *showRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete show",
			zap.Error(err),
			zap.String("show_id", id.String()),
		)
		return fmt.Errorf("delete show %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Show deleted", zap.String("show_id", id.String()))
	return nil
}

// ReserveSeats applies the whole check-and-update in one round trip. The
// WHERE clause only matches when the show-time is Active, belongs to an
// Active show, has room, and none of the requested seats appear in
// booked_seats (&& is array overlap). Zero rows affected means the guard
// failed; the follow-up read inside the same transaction tells which way.
func (r *showRepository) ReserveSeats(ctx context.Context, tx pgx.Tx, showID, showTimeID uuid.UUID, seats []string) error {
	query := `
		UPDATE show_times
		SET booked_seats = booked_seats || $3::text[],
		    available_seats = available_seats - cardinality($3::text[]),
		    status = CASE WHEN available_seats - cardinality($3::text[]) = 0 THEN 'Full' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1
		  AND show_id = $2
		  AND status = 'Active'
		  AND available_seats >= cardinality($3::text[])
		  AND NOT (booked_seats && $3::text[])
		  AND EXISTS (SELECT 1 FROM shows WHERE id = $2 AND status = 'Active')
	`

	result, err := tx.Exec(ctx, query, showTimeID, showID, seats)
	if err != nil {
		r.log.Error("Failed to reserve seats",
			zap.Error(err),
			zap.String("show_time_id", showTimeID.String()),
			zap.Strings("seats", seats),
		)
		return fmt.Errorf("reserve seats on show time %s: %w", showTimeID.String(), err)
	}

	if result.RowsAffected() > 0 {
		r.log.Info("Seats reserved",
			zap.String("show_time_id", showTimeID.String()),
			zap.Strings("seats", seats),
		)
		return nil
	}

	return r.classifyReserveFailure(ctx, tx, showID, showTimeID, seats)
}

// classifyReserveFailure re-reads the show-time to turn a guarded no-op
// into the precise error the caller needs.
func (r *showRepository) classifyReserveFailure(ctx context.Context, tx pgx.Tx, showID, showTimeID uuid.UUID, seats []string) error {
	var stStatus entity.ShowTimeStatus
	var showStatus entity.ShowStatus
	var booked []string
	err := tx.QueryRow(ctx, `
		SELECT st.status, st.booked_seats, s.status
		FROM show_times st
		JOIN shows s ON s.id = st.show_id
		WHERE st.id = $1 AND st.show_id = $2
	`, showTimeID, showID).Scan(&stStatus, &booked, &showStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect show time %s: %w", showTimeID.String(), err)
	}

	if conflicts := intersectSeats(booked, seats); len(conflicts) > 0 {
		return &SeatConflictError{Seats: conflicts}
	}

	if showStatus != entity.ShowStatusActive || stStatus != entity.ShowTimeStatusActive {
		return ErrShowInactive
	}

	// Active with no overlap but the update still missed: not enough
	// seats left for the request size.
	return ErrShowInactive
}

func intersectSeats(booked, requested []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, s := range booked {
		taken[s] = struct{}{}
	}

	var conflicts []string
	for _, s := range requested {
		if _, ok := taken[s]; ok {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}

// ReleaseSeats removes the seats from booked_seats and credits the counter
// by the number actually removed, so retries are idempotent. The row lock
// taken by SELECT ... FOR UPDATE serializes against concurrent reservations.
func (r *showRepository) ReleaseSeats(ctx context.Context, showTimeID uuid.UUID, seats []string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin release transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var booked []string
	var available int
	var status entity.ShowTimeStatus
	err = tx.QueryRow(ctx,
		`SELECT booked_seats, available_seats, status FROM show_times WHERE id = $1 FOR UPDATE`,
		showTimeID).Scan(&booked, &available, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock show time %s: %w", showTimeID.String(), err)
	}

	release := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		release[s] = struct{}{}
	}

	remaining := make([]string, 0, len(booked))
	removed := 0
	for _, s := range booked {
		if _, ok := release[s]; ok {
			removed++
			continue
		}
		remaining = append(remaining, s)
	}

	if removed == 0 {
		// Nothing to do; tolerate the retry.
		return 0, nil
	}

	newStatus := status
	if status == entity.ShowTimeStatusFull {
		newStatus = entity.ShowTimeStatusActive
	}

	_, err = tx.Exec(ctx, `
		UPDATE show_times
		SET booked_seats = $2, available_seats = available_seats + $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`, showTimeID, remaining, removed, newStatus)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("show_time_id", showTimeID.String()),
			zap.Strings("seats", seats),
		)
		return 0, fmt.Errorf("release seats on show time %s: %w", showTimeID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit seat release: %w", err)
	}

	r.log.Info("Seats released",
		zap.String("show_time_id", showTimeID.String()),
		zap.Int("removed", removed),
	)
	return removed, nil
}
