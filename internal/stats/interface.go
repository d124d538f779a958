package stats

// StatsStore tracks coarse usage counters and per-day reservation volume.
// Counters survive restarts so the numbers are meaningful over time.
type StatsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
	BookingsPerDay() (map[string]int, error)
}

// Well-known counter keys.
const (
	KeyBookingsCreated   = "bookings_created"
	KeyBookingsCancelled = "bookings_cancelled"
	KeySeatsClaimed      = "seats_claimed"
	KeySeatsReleased     = "seats_released"
)
