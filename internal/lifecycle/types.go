package lifecycle

import (
	"time"

	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/metrics"
	"github.com/mauv0809/padel-reserva/internal/notifier"
	"github.com/mauv0809/padel-reserva/internal/pubsub"
	"github.com/mauv0809/padel-reserva/internal/roster"
	"github.com/mauv0809/padel-reserva/internal/stats"
)

// Controller drives a booking from creation to cancellation and owns the
// side effects along the way (events, announcements, counters).
type Controller struct {
	store    booking.BookingStore
	roster   *roster.Manager
	notifier notifier.Notifier
	pubsub   pubsub.PubSubClient
	stats    stats.StatsStore
	metrics  metrics.Metrics
	now      func() time.Time
}

// MyBooking is a booking annotated for a specific user's listing.
type MyBooking struct {
	*booking.Booking
	IsOwner     bool `json:"is_owner"`
	IsPlayer    bool `json:"is_player"`
	PlayerCount int  `json:"player_count"`
}

// OpenMatch is a public booking with at least one free seat, annotated
// with its roster for the quick-join view.
type OpenMatch struct {
	*booking.Booking
	Players      []booking.RosterEntry `json:"players"`
	PlayerCount  int                   `json:"player_count"`
	SeatsLeft    int                   `json:"seats_left"`
	AverageLevel float64               `json:"average_level"`
}

// BookingEvent is the msgpack payload published for lifecycle events.
type BookingEvent struct {
	BookingID string `msgpack:"booking_id"`
	Date      string `msgpack:"date"`
	StartTime string `msgpack:"start_time"`
	UserID    string `msgpack:"user_id"`
}
