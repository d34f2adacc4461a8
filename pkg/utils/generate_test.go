package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingID(t *testing.T) {
	id := GenerateBookingID()

	assert.Len(t, id, 13)
	assert.True(t, strings.HasPrefix(id, "BMS"))

	for _, c := range id[3:9] {
		assert.Contains(t, "0123456789", string(c))
	}
	for _, c := range id[9:] {
		assert.Contains(t, bookingIDAlphabet, string(c))
	}
}

func TestGenerateQRCode(t *testing.T) {
	qr := GenerateQRCode("BMS123456ABCD")

	assert.True(t, strings.HasPrefix(qr, "BMS_QR_BMS123456ABCD_"))
}

func TestGenerateTransactionID(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateTransactionID(), "TXN"))
}
