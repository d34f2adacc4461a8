// Package repository error values shared across repositories. Sentinels let
// the usecase and handler layers branch on failure kinds without string
// matching; storage errors that are none of these are wrapped and treated
// as internal.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a show, show-time, theater, event or booking
// does not exist (or is not visible to the caller).
var ErrNotFound = errors.New("not found")

// ErrShowInactive is returned when a reservation arrives for a show-time
// that is Cancelled or Full, or for a show that is not Active.
var ErrShowInactive = errors.New("show not accepting bookings")

// ErrDuplicateBookingID is returned when the ledger's unique constraint on
// the human-readable booking id fires. Callers regenerate the id and retry.
var ErrDuplicateBookingID = errors.New("duplicate booking id")

// SeatConflictError reports a reservation that overlapped already-taken
// seats. Seats carries every conflicting seat number so the caller can tell
// the user exactly which seats to reselect. The whole request fails; no
// partial reservation happens.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats no longer available: %s", strings.Join(e.Seats, ", "))
}
