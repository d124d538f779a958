package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Conflict sentinels. The schema's constraints are the authority: these are
// produced by translating the driver's constraint-violation errors, never by
// read-then-write checks alone.
var (
	// ErrSlotTaken means another booking already holds the same date and
	// start time. Expected under concurrency; the caller should re-fetch
	// availability.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrAlreadyMember means the user already holds a roster entry on the
	// booking.
	ErrAlreadyMember = errors.New("already a member of this match")
	// ErrRosterFull means the booking already has four roster entries.
	ErrRosterFull = errors.New("match roster is full")
	// ErrNotFound means no booking exists with the given ID.
	ErrNotFound = errors.New("booking not found")
)

// rosterFullMessage is the RAISE(ABORT) text of the capacity trigger in the
// booking_players migration. Keep the two in sync.
const rosterFullMessage = "roster full"

// translateConstraint maps driver constraint violations onto the package
// sentinels. Anything unrecognised passes through wrapped, which callers
// treat as a repository failure.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, rosterFullMessage):
		return ErrRosterFull
	case strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "bookings"):
		return ErrSlotTaken
	case strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "booking_players"):
		return ErrAlreadyMember
	case strings.Contains(msg, "PRIMARY KEY") && strings.Contains(msg, "booking_players"):
		return ErrAlreadyMember
	}
	return fmt.Errorf("repository error: %w", err)
}
