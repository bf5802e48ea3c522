package supply

import "time"

// LeadTimeDays returns the supplier lead time for an order of the given
// quantity. Up to 10 units ship same day; larger orders take longer.
func LeadTimeDays(quantity int64) int {
	switch {
	case quantity <= 10:
		return 0
	case quantity <= 100:
		return 1
	case quantity <= 1000:
		return 4
	default:
		return 7
	}
}

// DeliveryDate estimates when an order placed on the given date arrives.
func DeliveryDate(from time.Time, quantity int64) time.Time {
	return from.AddDate(0, 0, LeadTimeDays(quantity))
}
