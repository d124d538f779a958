package booking

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-reserva/internal/players"
	"github.com/mauv0809/padel-reserva/internal/slots"
)

// New creates a new BookingStore.
func New(db *sql.DB) BookingStore {
	return &store{
		db: db,
	}
}

// InsertBooking persists a booking. The UNIQUE(date, start_time) constraint
// is the authoritative slot-exclusivity check; a violation comes back as
// ErrSlotTaken.
func (s *store) InsertBooking(b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO bookings (id, date, start_time, end_time, owner_id, is_private, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Date.String(), b.StartTime.String(), b.EndTime.String(), b.OwnerID, b.IsPrivate, b.CreatedAt.Unix())
	if err != nil {
		return translateConstraint(err)
	}

	log.Info("Created booking", "bookingID", b.ID, "date", b.Date, "start", b.StartTime, "owner", b.OwnerID, "private", b.IsPrivate)
	return nil
}

// GetBooking retrieves a single booking with its owner profile.
func (s *store) GetBooking(id string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(bookingSelect+" WHERE b.id = ?", id)
	b, err := scanBooking(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	return b, nil
}

// DeleteBooking removes the booking's roster rows and then the booking row,
// in one transaction.
func (s *store) DeleteBooking(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM booking_players WHERE booking_id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete roster for booking %s: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Deleted booking and roster", "bookingID", id)
	return nil
}

// QueryBookings returns bookings matching the filter, ordered by
// (date, start_time) ascending.
func (s *store) QueryBookings(f QueryFilter) ([]*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := bookingSelect
	var conds []string
	var args []any

	if f.Date != nil {
		conds = append(conds, "b.date = ?")
		args = append(args, f.Date.String())
	}
	if f.From != nil {
		conds = append(conds, "b.date >= ?")
		args = append(args, f.From.String())
	}
	if f.OwnerID != "" {
		conds = append(conds, "b.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if len(f.IDs) > 0 {
		conds = append(conds, "b.id IN ("+placeholders(len(f.IDs))+")")
		args = append(args, toAnySlice(f.IDs)...)
	}
	if f.PublicOnly {
		conds = append(conds, "b.is_private = 0")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY b.date ASC, b.start_time ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query bookings", "error", err)
		return nil, err
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			log.Error("Failed to scan booking row", "error", err)
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// BookingIDsForPlayer returns the bookings where the user holds a roster seat.
func (s *store) BookingIDsForPlayer(userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT booking_id FROM booking_players WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertRosterEntry seats a user. The composite primary key rejects a
// duplicate seat and the capacity trigger rejects a fifth; both come back as
// the package sentinels regardless of what any earlier pre-check observed.
func (s *store) InsertRosterEntry(bookingID, userID string) (*RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	joinedAt := time.Now()
	_, err := s.db.Exec(`
		INSERT INTO booking_players (booking_id, user_id, joined_at)
		VALUES (?, ?, ?)
	`, bookingID, userID, joinedAt.Unix())
	if err != nil {
		return nil, translateConstraint(err)
	}

	log.Info("Player joined booking", "bookingID", bookingID, "userID", userID)
	return &RosterEntry{BookingID: bookingID, UserID: userID, JoinedAt: joinedAt}, nil
}

// DeleteRosterEntry removes a seat. Idempotent: removing an absent seat
// succeeds.
func (s *store) DeleteRosterEntry(bookingID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM booking_players WHERE booking_id = ? AND user_id = ?", bookingID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("No roster entry to remove", "bookingID", bookingID, "userID", userID)
	} else {
		log.Info("Player left booking", "bookingID", bookingID, "userID", userID)
	}
	return nil
}

// RosterEntries returns the roster joined with profiles, first joiner first.
func (s *store) RosterEntries(bookingID string) ([]RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT bp.booking_id, bp.user_id, bp.joined_at,
		       COALESCE(p.name, ''), COALESCE(p.surname, ''), p.avatar_url, COALESCE(p.level, 0)
		FROM booking_players bp
		LEFT JOIN players p ON bp.user_id = p.id
		WHERE bp.booking_id = ?
		ORDER BY bp.joined_at ASC, bp.rowid ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []RosterEntry
	for rows.Next() {
		var e RosterEntry
		var joinedAt int64
		if err := rows.Scan(&e.BookingID, &e.UserID, &joinedAt, &e.Player.Name, &e.Player.Surname, &e.Player.AvatarURL, &e.Player.Level); err != nil {
			log.Error("Failed to scan roster row", "error", err, "bookingID", bookingID)
			continue
		}
		e.JoinedAt = time.Unix(joinedAt, 0)
		e.Player.ID = e.UserID
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RosterCounts returns roster sizes for a set of bookings in one query.
func (s *store) RosterCounts(bookingIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(bookingIDs) == 0 {
		return counts, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT booking_id, COUNT(*) FROM booking_players WHERE booking_id IN ("+placeholders(len(bookingIDs))+") GROUP BY booking_id",
		toAnySlice(bookingIDs)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

const bookingSelect = `
	SELECT b.id, b.date, b.start_time, b.end_time, b.owner_id, b.is_private, b.created_at,
	       COALESCE(p.name, ''), COALESCE(p.surname, ''), p.avatar_url, COALESCE(p.level, 0)
	FROM bookings b
	LEFT JOIN players p ON b.owner_id = p.id`

// scanBooking is a helper to scan a single booking row from bookingSelect.
func scanBooking(scanner interface{ Scan(...any) error }) (*Booking, error) {
	var b Booking
	var date, start, end string
	var createdAt int64
	var ownerName, ownerSurname string
	var ownerAvatar *string
	var ownerLevel int

	err := scanner.Scan(&b.ID, &date, &start, &end, &b.OwnerID, &b.IsPrivate, &createdAt,
		&ownerName, &ownerSurname, &ownerAvatar, &ownerLevel)
	if err != nil {
		return nil, err
	}

	if b.Date, err = slots.ParseDate(date); err != nil {
		return nil, err
	}
	if b.StartTime, err = slots.ParseTimeOfDay(start); err != nil {
		return nil, err
	}
	if b.EndTime, err = slots.ParseTimeOfDay(end); err != nil {
		return nil, err
	}
	b.CreatedAt = time.Unix(createdAt, 0)

	if ownerName != "" || ownerSurname != "" {
		b.Owner = &players.Profile{
			ID:        b.OwnerID,
			Name:      ownerName,
			Surname:   ownerSurname,
			AvatarURL: ownerAvatar,
			Level:     ownerLevel,
		}
	}
	return &b, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
