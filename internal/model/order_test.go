package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusFlow(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderNew, OrderConfirmed, true},
		{OrderNew, OrderCanceled, true},
		{OrderNew, OrderDelivered, false},
		{OrderConfirmed, OrderInProgress, true},
		{OrderInProgress, OrderReady, true},
		{OrderReady, OrderDelivered, true},
		{OrderDelivered, OrderNew, false},
		{OrderDelivered, OrderCanceled, false},
		{OrderCanceled, OrderConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderNew))
	assert.True(t, ValidOrderStatus(OrderDelivered))
	assert.False(t, ValidOrderStatus(OrderStatus("enviado")))
	assert.False(t, ValidOrderStatus(OrderStatus("")))
}
