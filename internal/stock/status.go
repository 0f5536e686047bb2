package stock

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderReturned   OrderStatus = "returned"
)

// Transitions autorisées. "cancelled" est atteignable depuis tout état non terminal,
// "returned" seulement après livraison (via le circuit retour).
var validNextOrder = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:    {OrderProcessing: true, OrderConfirmed: true, OrderCancelled: true},
	OrderProcessing: {OrderConfirmed: true, OrderShipped: true, OrderCancelled: true},
	OrderConfirmed:  {OrderShipped: true, OrderCancelled: true},
	OrderShipped:    {OrderDelivered: true, OrderCancelled: true},
	OrderDelivered:  {OrderReturned: true, OrderCancelled: true},
	OrderCancelled:  {},
	OrderReturned:   {},
}

func CanTransitionOrder(from, to OrderStatus) bool {
	return validNextOrder[from][to]
}

func IsTerminalOrder(s OrderStatus) bool {
	return len(validNextOrder[s]) == 0 && (s == OrderCancelled || s == OrderReturned)
}

func ValidOrderStatus(s string) bool {
	_, ok := validNextOrder[OrderStatus(s)]
	return ok
}

type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnCompleted ReturnStatus = "completed"
)

// pending -> approved|rejected ; approved -> completed. rejected et completed sont terminaux.
var validNextReturn = map[ReturnStatus]map[ReturnStatus]bool{
	ReturnPending:   {ReturnApproved: true, ReturnRejected: true},
	ReturnApproved:  {ReturnCompleted: true},
	ReturnRejected:  {},
	ReturnCompleted: {},
}

func CanTransitionReturn(from, to ReturnStatus) bool {
	return validNextReturn[from][to]
}

func IsTerminalReturn(s ReturnStatus) bool {
	return s == ReturnRejected || s == ReturnCompleted
}
