package playtomic

import (
	"sync"
	"time"
)

// MockClient is a mock implementation of the PlaytomicClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	ListBookingsFunc func(from time.Time) ([]BookingSummary, error)
	GetBookingFunc   func(bookingID string) (Booking, error)

	// Call records
	ListBookingsCalls []time.Time
	GetBookingCalls   []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListBookingsCalls = nil
	m.GetBookingCalls = nil
}

func (m *MockClient) ListBookings(from time.Time) ([]BookingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListBookingsCalls = append(m.ListBookingsCalls, from)
	if m.ListBookingsFunc != nil {
		return m.ListBookingsFunc(from)
	}
	return []BookingSummary{}, nil
}

func (m *MockClient) GetBooking(bookingID string) (Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetBookingCalls = append(m.GetBookingCalls, bookingID)
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(bookingID)
	}
	return Booking{ID: bookingID}, nil
}
