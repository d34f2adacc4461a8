package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventFilter struct {
	Category entity.EventCategory
	City     string
	Date     time.Time
}

type CategoryCount struct {
	Category entity.EventCategory
	Count    int64
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindAll(ctx context.Context, filter EventFilter, limit, offset int) ([]*entity.Event, error)
	Count(ctx context.Context, filter EventFilter) (int64, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Rate folds a new rating into the running average in one atomic
	// statement; concurrent raters never lose an update.
	Rate(ctx context.Context, id uuid.UUID, rating int) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, title, description, category, poster_image, banner_image,
	venue, organizer, dates, rating_average, rating_count, status, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	venue, err := json.Marshal(event.Venue)
	if err != nil {
		return fmt.Errorf("marshal event venue: %w", err)
	}
	organizer, err := json.Marshal(event.Organizer)
	if err != nil {
		return fmt.Errorf("marshal event organizer: %w", err)
	}
	dates, err := json.Marshal(event.Dates)
	if err != nil {
		return fmt.Errorf("marshal event dates: %w", err)
	}

	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.PosterImage,
		event.BannerImage,
		venue,
		organizer,
		dates,
		event.RatingAverage,
		event.RatingCount,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("title", event.Title),
		)
		return fmt.Errorf("create event %s: %w", event.Title, err)
	}

	return nil
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	var venue, organizer, dates []byte

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Category,
		&event.PosterImage,
		&event.BannerImage,
		&venue,
		&organizer,
		&dates,
		&event.RatingAverage,
		&event.RatingCount,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(venue, &event.Venue); err != nil {
		return nil, fmt.Errorf("unmarshal event venue: %w", err)
	}
	if err := json.Unmarshal(organizer, &event.Organizer); err != nil {
		return nil, fmt.Errorf("unmarshal event organizer: %w", err)
	}
	if err := json.Unmarshal(dates, &event.Dates); err != nil {
		return nil, fmt.Errorf("unmarshal event dates: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, filter EventFilter, limit, offset int) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = 'Active'
		  AND ($1 = '' OR category = $1)
		  AND ($2 = '' OR LOWER(venue->>'city') = LOWER($2))
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, string(filter.Category), filter.City, limit, offset)
	if err != nil {
		r.log.Error("Failed to find events", zap.Error(err))
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *eventRepository) Count(ctx context.Context, filter EventFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM events
		WHERE status = 'Active'
		  AND ($1 = '' OR category = $1)
		  AND ($2 = '' OR LOWER(venue->>'city') = LOWER($2))
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, string(filter.Category), filter.City).Scan(&count); err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}

	return count, nil
}

func (r *eventRepository) Categories(ctx context.Context) ([]CategoryCount, error) {
	query := `
		SELECT category, COUNT(*)
		FROM events
		WHERE status = 'Active'
		GROUP BY category
		ORDER BY category
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list event categories", zap.Error(err))
		return nil, fmt.Errorf("list event categories: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		counts = append(counts, cc)
	}

	return counts, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	venue, err := json.Marshal(event.Venue)
	if err != nil {
		return fmt.Errorf("marshal event venue: %w", err)
	}
	organizer, err := json.Marshal(event.Organizer)
	if err != nil {
		return fmt.Errorf("marshal event organizer: %w", err)
	}
	dates, err := json.Marshal(event.Dates)
	if err != nil {
		return fmt.Errorf("marshal event dates: %w", err)
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, category = $4, poster_image = $5, banner_image = $6,
		    venue = $7, organizer = $8, dates = $9, status = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.PosterImage,
		event.BannerImage,
		venue,
		organizer,
		dates,
		event.Status,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Event deleted", zap.String("event_id", id.String()))
	return nil
}

func (r *eventRepository) Rate(ctx context.Context, id uuid.UUID, rating int) error {
	// Running mean computed in the database so concurrent ratings never
	// read-modify-write over each other.
	query := `
		UPDATE events
		SET rating_average = (rating_average * rating_count + $2) / (rating_count + 1),
		    rating_count = rating_count + 1,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, rating)
	if err != nil {
		r.log.Error("Failed to rate event",
			zap.Error(err),
			zap.String("event_id", id.String()),
			zap.Int("rating", rating),
		)
		return fmt.Errorf("rate event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
