package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{
		PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodUPI,
		PaymentMethodNetBanking, PaymentMethodWallet,
	} {
		assert.True(t, ValidPaymentMethod(m), string(m))
	}

	assert.False(t, ValidPaymentMethod("Cash"))
	assert.False(t, ValidPaymentMethod(""))
	assert.False(t, ValidPaymentMethod("upi"))
}

func TestValidEventCategory(t *testing.T) {
	for _, c := range []EventCategory{
		EventCategoryConcert, EventCategoryTheatre, EventCategorySports,
		EventCategoryComedy, EventCategoryWorkshop, EventCategoryExhibition,
		EventCategoryDance, EventCategoryOther,
	} {
		assert.True(t, ValidEventCategory(c), string(c))
	}

	assert.False(t, ValidEventCategory("Karaoke"))
	assert.False(t, ValidEventCategory(""))
}
