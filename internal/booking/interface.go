package booking

// BookingStore defines the repository interface for bookings and rosters.
// Slot exclusivity (one booking per date+start_time) and roster exclusivity
// (one entry per booking+user, at most four per booking) are enforced by the
// schema; the store translates violations into the package sentinels.
type BookingStore interface {
	// InsertBooking assigns an ID and persists the booking.
	// Returns ErrSlotTaken on a date+start_time collision.
	InsertBooking(b *Booking) error
	// GetBooking retrieves one booking, or ErrNotFound.
	GetBooking(id string) (*Booking, error)
	// DeleteBooking removes the booking and its entire roster in one
	// transaction, roster rows first.
	DeleteBooking(id string) error
	// QueryBookings returns bookings matching the filter, ordered by
	// (date, start_time) ascending, owner profile joined.
	QueryBookings(f QueryFilter) ([]*Booking, error)
	// BookingIDsForPlayer returns the IDs of bookings where the user holds
	// a roster entry.
	BookingIDsForPlayer(userID string) ([]string, error)

	// InsertRosterEntry seats a user on a booking.
	// Returns ErrAlreadyMember or ErrRosterFull on constraint violation.
	InsertRosterEntry(bookingID, userID string) (*RosterEntry, error)
	// DeleteRosterEntry removes a user's seat. Removing a seat that does
	// not exist is not an error.
	DeleteRosterEntry(bookingID, userID string) error
	// RosterEntries returns a booking's roster joined with player
	// profiles, ordered by joined_at ascending.
	RosterEntries(bookingID string) ([]RosterEntry, error)
	// RosterCounts returns the roster size per booking ID.
	RosterCounts(bookingIDs []string) (map[string]int, error)
}
