package commerce

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// Next returns the status that a processing request advances the order to.
// Processing moves to Shipped, Shipped moves to Delivered, and anything else
// (already delivered, or an unrecognized value) lands on Delivered so the
// terminal state is an idempotent fallback.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case StatusProcessing:
		return StatusShipped
	case StatusShipped:
		return StatusDelivered
	default:
		return StatusDelivered
	}
}

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered
}

// Valid reports whether the status is one of the three known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}
