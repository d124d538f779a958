// Package roster manages the up-to-four-player roster of a non-private
// booking: who is in, who may join, and the facts match cards display.
package roster

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-reserva/internal/booking"
)

// Capacity is the number of players a padel match holds.
const Capacity = 4

// ErrPrivateBooking is returned when joining a private booking: the owner
// already has four players arranged outside the system.
var ErrPrivateBooking = errors.New("booking is private")

// Manager owns roster semantics on top of the booking store.
type Manager struct {
	store booking.BookingStore
}

// New creates a roster Manager.
func New(store booking.BookingStore) *Manager {
	return &Manager{store: store}
}

// ListPlayers returns the booking's roster joined with public profiles,
// first joiner first. Any split into two teams of two is a display concern
// over this order; the roster itself has no team structure.
func (m *Manager) ListPlayers(bookingID string) ([]booking.RosterEntry, error) {
	entries, err := m.store.RosterEntries(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for booking %s: %w", bookingID, err)
	}
	return entries, nil
}

// Join seats userID on the booking. The membership and capacity pre-checks
// only exist to fail fast with a specific error; the insert's own
// constraints decide the race.
func (m *Manager) Join(bookingID, userID string) (*booking.RosterEntry, error) {
	b, err := m.store.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if b.IsPrivate {
		return nil, ErrPrivateBooking
	}

	entries, err := m.store.RosterEntries(bookingID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.UserID == userID {
			return nil, booking.ErrAlreadyMember
		}
	}
	if len(entries) >= Capacity {
		return nil, booking.ErrRosterFull
	}

	entry, err := m.store.InsertRosterEntry(bookingID, userID)
	if err != nil {
		return nil, err
	}
	log.Info("User joined match", "bookingID", bookingID, "userID", userID, "players", len(entries)+1)
	return entry, nil
}

// Leave removes userID's seat. Leaving a booking one is not part of is a
// successful no-op.
func (m *Manager) Leave(bookingID, userID string) error {
	return m.store.DeleteRosterEntry(bookingID, userID)
}

// IsFull reports whether the roster has reached capacity.
func (m *Manager) IsFull(bookingID string) (bool, error) {
	entries, err := m.store.RosterEntries(bookingID)
	if err != nil {
		return false, err
	}
	return len(entries) >= Capacity, nil
}

// IsMember reports whether userID holds a seat on the booking.
func (m *Manager) IsMember(bookingID, userID string) (bool, error) {
	entries, err := m.store.RosterEntries(bookingID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// AverageLevel is the arithmetic mean of the players' 1-10 skill levels.
// The second return is false for an empty roster; there is no division in
// that case.
func AverageLevel(entries []booking.RosterEntry) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	total := 0
	for _, e := range entries {
		total += e.Player.Level
	}
	return float64(total) / float64(len(entries)), true
}
