package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	valid := []string{"pending", "confirmed", "preparing", "outfordelivery", "delivered", "cancelled"}
	for _, s := range valid {
		status, err := ParseOrderStatus(s)
		assert.NoError(t, err, s)
		assert.Equal(t, OrderStatus(s), status)
	}

	for _, s := range []string{"", "Pending", "shipped", "out_for_delivery"} {
		_, err := ParseOrderStatus(s)
		assert.ErrorIs(t, err, ErrInvalidOrderStatus, s)
	}
}
