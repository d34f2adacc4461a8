package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HoldRepository tracks temporary seat holds in Redis. Each held seat is one
// key holding the user id that owns it; key TTL is the expiry, so Held seats
// fall back to Free with no sweeper. A hold never blocks its own holder: the
// booking workflow consumes the caller's holds and only conflicts on seats
// held by someone else.
type HoldRepository interface {
	HoldSeats(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) ([]string, time.Time, error)
	ReleaseSeats(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) error
	HeldByOthers(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) ([]string, error)
	HeldSeats(ctx context.Context, showTimeID uuid.UUID, seats []string) (map[string]bool, error)
}

type holdRepository struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewHoldRepository(rdb *redis.Client, ttl time.Duration, log *zap.Logger) HoldRepository {
	return &holdRepository{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "hold")),
	}
}

func holdKey(showTimeID uuid.UUID, seat string) string {
	return fmt.Sprintf("hold:%s:%s", showTimeID.String(), seat)
}

// HoldSeats takes every seat or none. A SetNX that loses means another user
// holds that seat; refreshing one's own hold is allowed. On any conflict the
// keys acquired in this call are released again.
func (r *holdRepository) HoldSeats(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) ([]string, time.Time, error) {
	owner := userID.String()
	expiresAt := time.Now().Add(r.ttl)

	var acquired []string
	var conflicts []string

	for _, seat := range seats {
		key := holdKey(showTimeID, seat)

		ok, err := r.rdb.SetNX(ctx, key, owner, r.ttl).Result()
		if err != nil {
			r.releaseOwn(ctx, showTimeID, owner, acquired)
			return nil, time.Time{}, fmt.Errorf("hold seat %s: %w", seat, err)
		}
		if ok {
			acquired = append(acquired, seat)
			continue
		}

		holder, err := r.rdb.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			r.releaseOwn(ctx, showTimeID, owner, acquired)
			return nil, time.Time{}, fmt.Errorf("check seat hold %s: %w", seat, err)
		}
		if holder == owner {
			// Refresh our own hold.
			if err := r.rdb.Expire(ctx, key, r.ttl).Err(); err != nil {
				r.releaseOwn(ctx, showTimeID, owner, acquired)
				return nil, time.Time{}, fmt.Errorf("refresh seat hold %s: %w", seat, err)
			}
			acquired = append(acquired, seat)
			continue
		}

		conflicts = append(conflicts, seat)
	}

	if len(conflicts) > 0 {
		r.releaseOwn(ctx, showTimeID, owner, acquired)
		return conflicts, time.Time{}, nil
	}

	r.log.Info("Seats held",
		zap.String("show_time_id", showTimeID.String()),
		zap.Strings("seats", seats),
		zap.Time("expires_at", expiresAt),
	)
	return nil, expiresAt, nil
}

func (r *holdRepository) releaseOwn(ctx context.Context, showTimeID uuid.UUID, owner string, seats []string) {
	for _, seat := range seats {
		key := holdKey(showTimeID, seat)
		holder, err := r.rdb.Get(ctx, key).Result()
		if err != nil || holder != owner {
			continue
		}
		if err := r.rdb.Del(ctx, key).Err(); err != nil {
			r.log.Warn("Failed to release seat hold",
				zap.Error(err),
				zap.String("seat", seat),
			)
		}
	}
}

// ReleaseSeats drops the caller's holds; seats held by someone else or not
// held at all are left alone.
func (r *holdRepository) ReleaseSeats(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) error {
	r.releaseOwn(ctx, showTimeID, userID.String(), seats)
	return nil
}

// HeldByOthers returns the subset of seats currently held by a different
// user. Expired holds do not count: the keys are simply gone.
func (r *holdRepository) HeldByOthers(ctx context.Context, showTimeID, userID uuid.UUID, seats []string) ([]string, error) {
	if len(seats) == 0 {
		return nil, nil
	}

	keys := make([]string, len(seats))
	for i, seat := range seats {
		keys[i] = holdKey(showTimeID, seat)
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("check seat holds: %w", err)
	}

	owner := userID.String()
	var held []string
	for i, v := range values {
		holder, ok := v.(string)
		if ok && holder != "" && holder != owner {
			held = append(held, seats[i])
		}
	}

	return held, nil
}

// HeldSeats reports which of the given seats carry any live hold, for the
// seat-map view.
func (r *holdRepository) HeldSeats(ctx context.Context, showTimeID uuid.UUID, seats []string) (map[string]bool, error) {
	held := make(map[string]bool, len(seats))
	if len(seats) == 0 {
		return held, nil
	}

	keys := make([]string, len(seats))
	for i, seat := range seats {
		keys[i] = holdKey(showTimeID, seat)
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list seat holds: %w", err)
	}

	for i, v := range values {
		if holder, ok := v.(string); ok && holder != "" {
			held[seats[i]] = true
		}
	}

	return held, nil
}
