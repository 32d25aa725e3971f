package playtomic

import "time"

// PlaytomicClient defines the interface for interacting with the Playtomic API.
// This allows for mock implementations to be used in tests.
type PlaytomicClient interface {
	ListBookings(from time.Time) ([]BookingSummary, error)
	GetBooking(bookingID string) (Booking, error)
}
