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
	"go.uber.org/zap"
)

type TheaterRepository interface {
	Create(ctx context.Context, theater *entity.Theater) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error)
	FindScreen(ctx context.Context, theaterID uuid.UUID, screenID string) (*entity.Screen, error)
	FindAll(ctx context.Context, city string, limit, offset int) ([]*entity.Theater, error)
	Count(ctx context.Context, city string) (int64, error)
	Update(ctx context.Context, theater *entity.Theater) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type theaterRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTheaterRepository(db database.PgxIface, log *zap.Logger) TheaterRepository {
	return &theaterRepository{
		db:  db,
		log: log.With(zap.String("repository", "theater")),
	}
}

func (r *theaterRepository) Create(ctx context.Context, theater *entity.Theater) error {
	query := `
		INSERT INTO theaters (id, name, address, city, state, pincode, latitude, longitude, amenities, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		theater.ID,
		theater.Name,
		theater.Address,
		theater.City,
		theater.State,
		theater.Pincode,
		theater.Latitude,
		theater.Longitude,
		theater.Amenities,
		theater.Phone,
		theater.Email,
		theater.Status,
		theater.CreatedAt,
		theater.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create theater",
			zap.Error(err),
			zap.String("name", theater.Name),
		)
		return fmt.Errorf("create theater %s: %w", theater.Name, err)
	}

	for i := range theater.Screens {
		if err := r.createScreen(ctx, &theater.Screens[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *theaterRepository) createScreen(ctx context.Context, screen *entity.Screen) error {
	layout, err := json.Marshal(screen.Layout)
	if err != nil {
		return fmt.Errorf("marshal screen layout: %w", err)
	}

	query := `
		INSERT INTO screens (id, theater_id, screen_id, name, capacity, layout, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Exec(ctx, query,
		screen.ID,
		screen.TheaterID,
		screen.ScreenID,
		screen.Name,
		screen.Capacity,
		layout,
		screen.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create screen",
			zap.Error(err),
			zap.String("theater_id", screen.TheaterID.String()),
			zap.String("screen_id", screen.ScreenID),
		)
		return fmt.Errorf("create screen %s: %w", screen.ScreenID, err)
	}

	return nil
}

func (r *theaterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error) {
	query := `
		SELECT id, name, address, city, state, pincode, latitude, longitude, amenities, phone, email, status, created_at, updated_at
		FROM theaters
		WHERE id = $1
	`

	var theater entity.Theater
	err := r.db.QueryRow(ctx, query, id).Scan(
		&theater.ID,
		&theater.Name,
		&theater.Address,
		&theater.City,
		&theater.State,
		&theater.Pincode,
		&theater.Latitude,
		&theater.Longitude,
		&theater.Amenities,
		&theater.Phone,
		&theater.Email,
		&theater.Status,
		&theater.CreatedAt,
		&theater.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theater by ID",
			zap.Error(err),
			zap.String("theater_id", id.String()),
		)
		return nil, fmt.Errorf("find theater by ID %s: %w", id.String(), err)
	}

	screens, err := r.findScreens(ctx, id)
	if err != nil {
		return nil, err
	}
	theater.Screens = screens

	return &theater, nil
}

func (r *theaterRepository) findScreens(ctx context.Context, theaterID uuid.UUID) ([]entity.Screen, error) {
	query := `
		SELECT id, theater_id, screen_id, name, capacity, layout, created_at
		FROM screens
		WHERE theater_id = $1
		ORDER BY screen_id
	`

	rows, err := r.db.Query(ctx, query, theaterID)
	if err != nil {
		r.log.Error("Failed to find screens",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return nil, fmt.Errorf("find screens for theater %s: %w", theaterID.String(), err)
	}
	defer rows.Close()

	var screens []entity.Screen
	for rows.Next() {
		screen, err := scanScreen(rows)
		if err != nil {
			r.log.Error("Failed to scan screen row", zap.Error(err))
			return nil, err
		}
		screens = append(screens, *screen)
	}

	return screens, nil
}

func scanScreen(row pgx.Row) (*entity.Screen, error) {
	var screen entity.Screen
	var layout []byte

	err := row.Scan(
		&screen.ID,
		&screen.TheaterID,
		&screen.ScreenID,
		&screen.Name,
		&screen.Capacity,
		&layout,
		&screen.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan screen row: %w", err)
	}

	if err := json.Unmarshal(layout, &screen.Layout); err != nil {
		return nil, fmt.Errorf("unmarshal screen layout: %w", err)
	}

	return &screen, nil
}

func (r *theaterRepository) FindScreen(ctx context.Context, theaterID uuid.UUID, screenID string) (*entity.Screen, error) {
	query := `
		SELECT id, theater_id, screen_id, name, capacity, layout, created_at
		FROM screens
		WHERE theater_id = $1 AND screen_id = $2
	`

	screen, err := scanScreen(r.db.QueryRow(ctx, query, theaterID, screenID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to find screen",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
			zap.String("screen_id", screenID),
		)
		return nil, fmt.Errorf("find screen %s in theater %s: %w", screenID, theaterID.String(), err)
	}

	return screen, nil
}

func (r *theaterRepository) FindAll(ctx context.Context, city string, limit, offset int) ([]*entity.Theater, error) {
	query := `
		SELECT id, name, address, city, state, pincode, latitude, longitude, amenities, phone, email, status, created_at, updated_at
		FROM theaters
		WHERE status = 'Active' AND ($1 = '' OR LOWER(city) = LOWER($1))
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, city, limit, offset)
	if err != nil {
		r.log.Error("Failed to find theaters",
			zap.Error(err),
			zap.String("city", city),
		)
		return nil, fmt.Errorf("find theaters: %w", err)
	}
	defer rows.Close()

	var theaters []*entity.Theater
	for rows.Next() {
		var theater entity.Theater
		err := rows.Scan(
			&theater.ID,
			&theater.Name,
			&theater.Address,
			&theater.City,
			&theater.State,
			&theater.Pincode,
			&theater.Latitude,
			&theater.Longitude,
			&theater.Amenities,
			&theater.Phone,
			&theater.Email,
			&theater.Status,
			&theater.CreatedAt,
			&theater.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan theater row", zap.Error(err))
			return nil, fmt.Errorf("scan theater row: %w", err)
		}
		theaters = append(theaters, &theater)
	}

	return theaters, nil
}

func (r *theaterRepository) Count(ctx context.Context, city string) (int64, error) {
	query := `SELECT COUNT(*) FROM theaters WHERE status = 'Active' AND ($1 = '' OR LOWER(city) = LOWER($1))`

	var count int64
	if err := r.db.QueryRow(ctx, query, city).Scan(&count); err != nil {
		r.log.Error("Failed to count theaters", zap.Error(err))
		return 0, fmt.Errorf("count theaters: %w", err)
	}

	return count, nil
}

func (r *theaterRepository) Update(ctx context.Context, theater *entity.Theater) error {
	query := `
		UPDATE theaters
		SET name = $2, address = $3, city = $4, state = $5, pincode = $6,
		    latitude = $7, longitude = $8, amenities = $9, phone = $10,
		    email = $11, status = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		theater.ID,
		theater.Name,
		theater.Address,
		theater.City,
		theater.State,
		theater.Pincode,
		theater.Latitude,
		theater.Longitude,
		theater.Amenities,
		theater.Phone,
		theater.Email,
		theater.Status,
		theater.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update theater",
			zap.Error(err),
			zap.String("theater_id", theater.ID.String()),
		)
		return fmt.Errorf("update theater %s: %w", theater.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *theaterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM theaters WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete theater",
			zap.Error(err),
			zap.String("theater_id", id.String()),
		)
		return fmt.Errorf("delete theater %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Theater deleted", zap.String("theater_id", id.String()))
	return nil
}
