package models_test

import (
	"strings"
	"testing"

	"pasar/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPending, models.OrderShipped, false},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderProcessing, models.OrderShipped, true},
		{models.OrderProcessing, models.OrderCancelled, true},
		{models.OrderProcessing, models.OrderDelivered, false},
		{models.OrderProcessing, models.OrderPending, false},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderShipped, models.OrderCancelled, true},
		{models.OrderShipped, models.OrderProcessing, false},
		// Terminal states accept no further transitions.
		{models.OrderDelivered, models.OrderPending, false},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderPending, false},
		{models.OrderCancelled, models.OrderDelivered, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.OrderPending, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled,
	} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, models.OrderStatus("refunded").Valid())
	assert.False(t, models.OrderStatus("").Valid())
}

func TestOrderCanBeCancelled(t *testing.T) {
	assert.True(t, (&models.Order{Status: models.OrderPending}).CanBeCancelled())
	assert.True(t, (&models.Order{Status: models.OrderProcessing}).CanBeCancelled())
	assert.False(t, (&models.Order{Status: models.OrderShipped}).CanBeCancelled())
	assert.False(t, (&models.Order{Status: models.OrderDelivered}).CanBeCancelled())
	assert.False(t, (&models.Order{Status: models.OrderCancelled}).CanBeCancelled())
}

func TestNewOrderNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := models.NewOrderNumber()
		assert.True(t, strings.HasPrefix(number, "ORD-"))
		assert.Len(t, number, len("ORD-")+12)
		assert.False(t, seen[number], "order numbers should not repeat")
		seen[number] = true
	}
}
