package repository_test

import (
	"context"
	"testing"
	"time"

	"movie-ticketing/internal/data/repository"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const holdTTL = 10 * time.Minute

func holdKey(showTimeID uuid.UUID, seat string) string {
	return "hold:" + showTimeID.String() + ":" + seat
}

func TestHoldSeats_AllAcquired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.NewHoldRepository(db, holdTTL, zap.NewNop())

	showTimeID := uuid.New()
	userID := uuid.New()

	mock.ExpectSetNX(holdKey(showTimeID, "A1"), userID.String(), holdTTL).SetVal(true)
	mock.ExpectSetNX(holdKey(showTimeID, "A2"), userID.String(), holdTTL).SetVal(true)

	conflicts, expiresAt, err := repo.HoldSeats(context.Background(), showTimeID, userID, []string{"A1", "A2"})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.WithinDuration(t, time.Now().Add(holdTTL), expiresAt, time.Second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldSeats_ConflictRollsBackAcquired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.NewHoldRepository(db, holdTTL, zap.NewNop())

	showTimeID := uuid.New()
	userID := uuid.New()
	other := uuid.New().String()

	// A1 acquired, A2 already held by someone else.
	mock.ExpectSetNX(holdKey(showTimeID, "A1"), userID.String(), holdTTL).SetVal(true)
	mock.ExpectSetNX(holdKey(showTimeID, "A2"), userID.String(), holdTTL).SetVal(false)
	mock.ExpectGet(holdKey(showTimeID, "A2")).SetVal(other)

	// All-or-nothing: the A1 hold is released again.
	mock.ExpectGet(holdKey(showTimeID, "A1")).SetVal(userID.String())
	mock.ExpectDel(holdKey(showTimeID, "A1")).SetVal(1)

	conflicts, _, err := repo.HoldSeats(context.Background(), showTimeID, userID, []string{"A1", "A2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, conflicts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldSeats_RefreshesOwnHold(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.NewHoldRepository(db, holdTTL, zap.NewNop())

	showTimeID := uuid.New()
	userID := uuid.New()

	mock.ExpectSetNX(holdKey(showTimeID, "A1"), userID.String(), holdTTL).SetVal(false)
	mock.ExpectGet(holdKey(showTimeID, "A1")).SetVal(userID.String())
	mock.ExpectExpire(holdKey(showTimeID, "A1"), holdTTL).SetVal(true)

	conflicts, _, err := repo.HoldSeats(context.Background(), showTimeID, userID, []string{"A1"})
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseSeats_OnlyOwnHolds(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.NewHoldRepository(db, holdTTL, zap.NewNop())

	showTimeID := uuid.New()
	userID := uuid.New()
	other := uuid.New().String()

	mock.ExpectGet(holdKey(showTimeID, "A1")).SetVal(userID.String())
	mock.ExpectDel(holdKey(showTimeID, "A1")).SetVal(1)
	mock.ExpectGet(holdKey(showTimeID, "A2")).SetVal(other)

	err := repo.ReleaseSeats(context.Background(), showTimeID, userID, []string{"A1", "A2"})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHeldByOthers(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.NewHoldRepository(db, holdTTL, zap.NewNop())

	showTimeID := uuid.New()
	userID := uuid.New()
	other := uuid.New().String()

	mock.ExpectMGet(
		holdKey(showTimeID, "A1"),
		holdKey(showTimeID, "A2"),
		holdKey(showTimeID, "A3"),
	).SetVal([]interface{}{userID.String(), other, nil})

	held, err := repo.HeldByOthers(context.Background(), showTimeID, userID, []string{"A1", "A2", "A3"})
	require.NoError(t, err)

	// Own holds and expired keys are not conflicts.
	assert.Equal(t, []string{"A2"}, held)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHeldSeats_ForSeatMap(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := repository.NewHoldRepository(db, holdTTL, zap.NewNop())

	showTimeID := uuid.New()
	holder := uuid.New().String()

	mock.ExpectMGet(
		holdKey(showTimeID, "A1"),
		holdKey(showTimeID, "A2"),
	).SetVal([]interface{}{holder, nil})

	held, err := repo.HeldSeats(context.Background(), showTimeID, []string{"A1", "A2"})
	require.NoError(t, err)
	assert.True(t, held["A1"])
	assert.False(t, held["A2"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
