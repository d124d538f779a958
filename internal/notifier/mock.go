package notifier

import (
	"sync"

	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/players"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendBookingCreatedFunc   func(b *booking.Booking, roster []booking.RosterEntry, dryRun bool) error
	SendBookingCancelledFunc func(b *booking.Booking, dryRun bool) error
	SendPlayerJoinedFunc     func(b *booking.Booking, player players.Profile, seatsLeft int, dryRun bool) error
	SendRosterFullFunc       func(b *booking.Booking, roster []booking.RosterEntry, dryRun bool) error

	// Call records
	SendBookingCreatedCalls   []*booking.Booking
	SendBookingCancelledCalls []*booking.Booking
	SendPlayerJoinedCalls     []PlayerJoinedCall
	SendRosterFullCalls       []*booking.Booking
}

// PlayerJoinedCall holds the arguments for a call to SendPlayerJoined.
type PlayerJoinedCall struct {
	Booking   *booking.Booking
	Player    players.Profile
	SeatsLeft int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingCreatedCalls = nil
	m.SendBookingCancelledCalls = nil
	m.SendPlayerJoinedCalls = nil
	m.SendRosterFullCalls = nil
}

func (m *Mock) SendBookingCreated(b *booking.Booking, roster []booking.RosterEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingCreatedCalls = append(m.SendBookingCreatedCalls, b)
	if m.SendBookingCreatedFunc != nil {
		return m.SendBookingCreatedFunc(b, roster, dryRun)
	}
	return nil
}

func (m *Mock) SendBookingCancelled(b *booking.Booking, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendBookingCancelledCalls = append(m.SendBookingCancelledCalls, b)
	if m.SendBookingCancelledFunc != nil {
		return m.SendBookingCancelledFunc(b, dryRun)
	}
	return nil
}

func (m *Mock) SendPlayerJoined(b *booking.Booking, player players.Profile, seatsLeft int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerJoinedCalls = append(m.SendPlayerJoinedCalls, PlayerJoinedCall{Booking: b, Player: player, SeatsLeft: seatsLeft})
	if m.SendPlayerJoinedFunc != nil {
		return m.SendPlayerJoinedFunc(b, player, seatsLeft, dryRun)
	}
	return nil
}

func (m *Mock) SendRosterFull(b *booking.Booking, roster []booking.RosterEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRosterFullCalls = append(m.SendRosterFullCalls, b)
	if m.SendRosterFullFunc != nil {
		return m.SendRosterFullFunc(b, roster, dryRun)
	}
	return nil
}
