package stock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderProcessing, OrderShipped, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},
		{OrderDelivered, OrderReturned, true},
		{OrderDelivered, OrderCancelled, true},
		{OrderCancelled, OrderShipped, false},
		{OrderCancelled, OrderCancelled, false},
		{OrderReturned, OrderPending, false},
		{OrderShipped, OrderPending, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, CanTransitionOrder(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	require.True(t, IsTerminalOrder(OrderCancelled))
	require.True(t, IsTerminalOrder(OrderReturned))
	require.False(t, IsTerminalOrder(OrderDelivered))

	require.True(t, IsTerminalReturn(ReturnRejected))
	require.True(t, IsTerminalReturn(ReturnCompleted))
	require.False(t, IsTerminalReturn(ReturnApproved))
}

func TestReturnTransitions(t *testing.T) {
	require.True(t, CanTransitionReturn(ReturnPending, ReturnApproved))
	require.True(t, CanTransitionReturn(ReturnPending, ReturnRejected))
	require.True(t, CanTransitionReturn(ReturnApproved, ReturnCompleted))
	require.False(t, CanTransitionReturn(ReturnPending, ReturnCompleted))
	require.False(t, CanTransitionReturn(ReturnRejected, ReturnCompleted))
	require.False(t, CanTransitionReturn(ReturnCompleted, ReturnPending))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "confirmed", "shipped", "delivered", "cancelled", "returned"} {
		require.True(t, ValidOrderStatus(s), s)
	}
	require.False(t, ValidOrderStatus("paid"))
	require.False(t, ValidOrderStatus(""))
}
