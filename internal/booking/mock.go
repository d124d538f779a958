package booking

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is an in-memory BookingStore for tests. It enforces the same
// slot, membership and capacity constraints as the schema, and lets tests
// inject failures per method. It is safe for concurrent use.
type MockStore struct {
	mu       sync.Mutex
	bookings map[string]*Booking
	rosters  map[string][]RosterEntry

	// Failure injection: when set, the matching method returns the error
	// instead of mutating state.
	InsertBookingErr     error
	InsertRosterEntryErr error
	DeleteBookingErr     error

	// Call records
	DeleteBookingCalls     []string
	DeleteRosterEntryCalls []struct{ BookingID, UserID string }
}

var _ BookingStore = (*MockStore)(nil)

// NewMock creates a new mock BookingStore.
func NewMock() *MockStore {
	return &MockStore{
		bookings: make(map[string]*Booking),
		rosters:  make(map[string][]RosterEntry),
	}
}

func (m *MockStore) InsertBooking(b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertBookingErr != nil {
		return m.InsertBookingErr
	}
	for _, existing := range m.bookings {
		if existing.Date == b.Date && existing.StartTime == b.StartTime {
			return ErrSlotTaken
		}
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *MockStore) GetBooking(id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MockStore) DeleteBooking(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteBookingCalls = append(m.DeleteBookingCalls, id)
	if m.DeleteBookingErr != nil {
		return m.DeleteBookingErr
	}
	if _, ok := m.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(m.rosters, id)
	delete(m.bookings, id)
	return nil
}

func (m *MockStore) QueryBookings(f QueryFilter) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idSet := make(map[string]bool, len(f.IDs))
	for _, id := range f.IDs {
		idSet[id] = true
	}

	var out []*Booking
	for _, b := range m.bookings {
		if f.Date != nil && b.Date != *f.Date {
			continue
		}
		if f.From != nil && b.Date.Before(*f.From) {
			continue
		}
		if f.OwnerID != "" && b.OwnerID != f.OwnerID {
			continue
		}
		if len(f.IDs) > 0 && !idSet[b.ID] {
			continue
		}
		if f.PublicOnly && b.IsPrivate {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (m *MockStore) BookingIDsForPlayer(userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for bookingID, entries := range m.rosters {
		for _, e := range entries {
			if e.UserID == userID {
				ids = append(ids, bookingID)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockStore) InsertRosterEntry(bookingID, userID string) (*RosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertRosterEntryErr != nil {
		return nil, m.InsertRosterEntryErr
	}
	entries := m.rosters[bookingID]
	for _, e := range entries {
		if e.UserID == userID {
			return nil, ErrAlreadyMember
		}
	}
	if len(entries) >= 4 {
		return nil, ErrRosterFull
	}
	entry := RosterEntry{BookingID: bookingID, UserID: userID, JoinedAt: time.Now()}
	m.rosters[bookingID] = append(entries, entry)
	return &entry, nil
}

func (m *MockStore) DeleteRosterEntry(bookingID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteRosterEntryCalls = append(m.DeleteRosterEntryCalls, struct{ BookingID, UserID string }{bookingID, userID})
	entries := m.rosters[bookingID]
	for i, e := range entries {
		if e.UserID == userID {
			m.rosters[bookingID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockStore) RosterEntries(bookingID string) ([]RosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RosterEntry(nil), m.rosters[bookingID]...), nil
}

func (m *MockStore) RosterCounts(bookingIDs []string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, id := range bookingIDs {
		if n := len(m.rosters[id]); n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}
