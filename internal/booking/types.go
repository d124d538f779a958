package booking

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/padel-reserva/internal/players"
	"github.com/mauv0809/padel-reserva/internal/slots"
)

// store handles all database operations for bookings and rosters.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Booking is a reservation of one slot on one date by one owning user.
type Booking struct {
	ID        string           `json:"id"`
	Date      slots.Date       `json:"date"`
	StartTime slots.TimeOfDay  `json:"start_time"`
	EndTime   slots.TimeOfDay  `json:"end_time"`
	OwnerID   string           `json:"owner_id"`
	IsPrivate bool             `json:"is_private"`
	CreatedAt time.Time        `json:"created_at"`
	Owner     *players.Profile `json:"owner,omitempty"`
}

// RosterEntry is one player's seat on a non-private booking, joined with the
// public profile for display.
type RosterEntry struct {
	BookingID string          `json:"booking_id"`
	UserID    string          `json:"user_id"`
	JoinedAt  time.Time       `json:"joined_at"`
	Player    players.Profile `json:"player"`
}

// QueryFilter narrows QueryBookings. Zero-value fields are ignored; results
// are always ordered by (date, start_time) ascending.
type QueryFilter struct {
	Date       *slots.Date
	From       *slots.Date
	OwnerID    string
	IDs        []string
	PublicOnly bool
}
