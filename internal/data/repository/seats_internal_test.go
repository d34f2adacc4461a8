package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersectSeats(t *testing.T) {
	booked := []string{"A1", "B3", "B5"}

	assert.Equal(t, []string{"A1", "B5"}, intersectSeats(booked, []string{"A1", "B5", "C2"}))
	assert.Equal(t, []string{"B3"}, intersectSeats(booked, []string{"B3"}))
	assert.Nil(t, intersectSeats(booked, []string{"C1", "C2"}))
	assert.Nil(t, intersectSeats(nil, []string{"A1"}))
	assert.Nil(t, intersectSeats(booked, nil))
}
