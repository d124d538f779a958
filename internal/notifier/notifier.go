package notifier

import (
	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/players"
)

// Notifier defines a high-level interface for announcing booking events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly reserved slot
	SendBookingCreated(b *booking.Booking, roster []booking.RosterEntry, dryRun bool) error
	// For a cancelled reservation
	SendBookingCancelled(b *booking.Booking, dryRun bool) error
	// For a player claiming a seat
	SendPlayerJoined(b *booking.Booking, player players.Profile, seatsLeft int, dryRun bool) error
	// For a match that just filled its fourth seat
	SendRosterFull(b *booking.Booking, roster []booking.RosterEntry, dryRun bool) error
}
