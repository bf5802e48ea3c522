package supply

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeadTimeDays(t *testing.T) {
	cases := []struct {
		quantity int64
		days     int
	}{
		{1, 0},
		{10, 0},
		{11, 1},
		{100, 1},
		{101, 4},
		{1000, 4},
		{1001, 7},
		{50000, 7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.days, LeadTimeDays(tc.quantity), "quantity %d", tc.quantity)
	}
}

func TestDeliveryDate(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, from, DeliveryDate(from, 10))
	assert.Equal(t, from.AddDate(0, 0, 1), DeliveryDate(from, 11))
	assert.Equal(t, from.AddDate(0, 0, 4), DeliveryDate(from, 1000))
	assert.Equal(t, from.AddDate(0, 0, 7), DeliveryDate(from, 1001))
}
