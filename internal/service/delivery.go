package service

import "time"

// Orders ship in three or four days
const (
	minDeliveryDays    = 3
	deliveryDaysSpread = 2
)

// DeliveryDateLayout formats expected delivery dates
const DeliveryDateLayout = "2006-01-02"

// ExpectedDeliveryDate estimates when an order placed at from arrives. intn
// has the signature of rand.Intn and picks the extra day.
func ExpectedDeliveryDate(from time.Time, intn func(n int) int) time.Time {
	return from.AddDate(0, 0, minDeliveryDays+intn(deliveryDaysSpread))
}
