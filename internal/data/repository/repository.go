package repository

import (
	"context"
	"fmt"
	"time"

	"movie-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Theater TheaterRepository
	Show    ShowRepository
	Booking BookingRepository
	Hold    HoldRepository
	Event   EventRepository

	db database.PgxIface
}

func NewRepository(db database.PgxIface, rdb *redis.Client, holdTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Theater: NewTheaterRepository(db, log),
		Show:    NewShowRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Hold:    NewHoldRepository(rdb, holdTTL, log),
		Event:   NewEventRepository(db, log),
		db:      db,
	}
}

// WithTx runs fn inside a single database transaction. The seat reservation
// and the ledger insert of a booking must commit or fail together; this is
// the compensation guarantee for mid-workflow failures.
func (r *Repository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
