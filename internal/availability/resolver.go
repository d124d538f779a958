package availability

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/slots"
)

// New creates a Resolver backed by the given store.
func New(store booking.BookingStore) *Resolver {
	return &Resolver{
		store: store,
		now:   time.Now,
	}
}

// NewWithClock creates a Resolver with an injected clock, for tests.
func NewWithClock(store booking.BookingStore, now func() time.Time) *Resolver {
	return &Resolver{
		store: store,
		now:   now,
	}
}

// GetAvailability returns the day's slots annotated for userID. Slots that
// have already started are dropped when day is today; future days keep the
// full sequence. Days beyond the booking horizon return
// slots.ErrTooFarAhead rather than an empty list.
//
// The result is derived and read-only: two calls with unchanged backing data
// return identical output, strictly increasing in time with no duplicates.
func (r *Resolver) GetAvailability(day slots.Date, userID string) ([]Slot, error) {
	now := r.now()
	if slots.TooFarAhead(day, now) {
		return nil, slots.ErrTooFarAhead
	}

	bookings, err := r.store.QueryBookings(booking.QueryFilter{Date: &day})
	if err != nil {
		log.Error("Failed to fetch bookings for availability", "error", err, "date", day)
		return nil, err
	}

	// The UNIQUE(date, start_time) constraint guarantees at most one
	// booking per start time.
	ownerByStart := make(map[slots.TimeOfDay]string, len(bookings))
	for _, b := range bookings {
		ownerByStart[b.StartTime] = b.OwnerID
	}

	var out []Slot
	for _, start := range slots.StartTimes() {
		if slots.HasPassed(day, start, now) {
			continue
		}
		status := StatusFree
		if owner, ok := ownerByStart[start]; ok {
			if owner == userID {
				status = StatusMine
			} else {
				status = StatusOther
			}
		}
		out = append(out, Slot{
			Time:    start,
			EndTime: slots.DisplayEnd(start),
			Status:  status,
		})
	}
	return out, nil
}
