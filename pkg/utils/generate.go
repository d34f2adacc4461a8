package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BOOKING ID ====================

const bookingIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingID creates a human-readable booking reference.
// Format: BMS + last 6 digits of unix millis + 4 random alphanumerics.
// Collisions are possible; the ledger's unique constraint is the real
// guard and callers regenerate on conflict.
func GenerateBookingID() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	timePart := millis[len(millis)-6:]

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = bookingIDAlphabet[rand.Intn(len(bookingIDAlphabet))]
	}

	return fmt.Sprintf("BMS%s%s", timePart, suffix)
}

// ==================== PAYMENT ====================

// GenerateTransactionID creates a simulated payment transaction reference.
func GenerateTransactionID() string {
	return fmt.Sprintf("TXN%d", time.Now().UnixMilli())
}

// GenerateQRCode derives the opaque ticket-validation token for a booking.
func GenerateQRCode(bookingID string) string {
	return fmt.Sprintf("BMS_QR_%s_%d", bookingID, time.Now().UnixMilli())
}
