package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrForbidden is returned when a caller touches a booking owned by
// someone else.
var ErrForbidden = errors.New("booking belongs to another user")

// ErrCancellationWindowClosed is returned when a cancellation arrives too
// close to show start.
var ErrCancellationWindowClosed = errors.New("cancellation window closed")

// ErrAlreadyCancelled is returned on repeat cancellations; the first
// cancellation already recorded the refund.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrPriceMismatch is returned when a client-sent seat price or type does
// not match what the screen layout and show-time price table say. Prices
// are always re-derived server-side; a stale client must refresh.
var ErrPriceMismatch = errors.New("seat price mismatch")

// SeatsHeldError reports seats currently held by other users. The hold
// expires on its own; the caller can retry or pick other seats.
type SeatsHeldError struct {
	Seats []string
}

func (e *SeatsHeldError) Error() string {
	return fmt.Sprintf("seats held by another user: %s", strings.Join(e.Seats, ", "))
}
