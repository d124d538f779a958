// Package slots generates the canonical set of bookable court slots for a
// day and classifies slot times against a reference clock. It performs no
// I/O; everything here is a pure function of (day, now).
package slots

import (
	"errors"
	"time"
)

const (
	// SlotMinutes is the playable duration of a slot as shown to users.
	SlotMinutes = 90
	// storedEndMinutes keeps the persisted end strictly inside the slot so
	// adjacent [start, end) intervals never touch.
	storedEndMinutes = SlotMinutes - 1
	// HorizonDays is the booking window: days further out are rejected.
	HorizonDays = 15

	openingHour   = 9
	openingMinute = 30
	closingHour   = 22
)

// ErrTooFarAhead is returned when a day lies beyond the booking horizon.
// Callers must distinguish it from an empty slot list.
var ErrTooFarAhead = errors.New("date is more than 15 days ahead")

// StartTimes returns the fixed slot start sequence for any day: 09:30 and
// every 90 minutes after, while the start is before 22:00. The sequence is
// identical across all days.
func StartTimes() []TimeOfDay {
	var starts []TimeOfDay
	t := TimeOfDay{Hour: openingHour, Minute: openingMinute}
	for t.Hour < closingHour {
		starts = append(starts, t)
		t = t.AddMinutes(SlotMinutes)
	}
	return starts
}

// IsCanonicalStart reports whether t is one of the day's slot start times.
func IsCanonicalStart(t TimeOfDay) bool {
	for _, s := range StartTimes() {
		if s == t {
			return true
		}
	}
	return false
}

// StoredEnd is the end time persisted with a booking: start + 89 minutes,
// strictly before the next canonical slot's start.
func StoredEnd(start TimeOfDay) TimeOfDay {
	return start.AddMinutes(storedEndMinutes)
}

// DisplayEnd is the human-facing end time: start + 90 minutes.
func DisplayEnd(start TimeOfDay) TimeOfDay {
	return start.AddMinutes(SlotMinutes)
}

// HasPassed reports whether the slot starting at start on day has already
// begun relative to now.
func HasPassed(day Date, start TimeOfDay, now time.Time) bool {
	return now.After(day.At(start, now.Location()))
}

// HasFinished reports whether a booking with the given stored end time is
// over relative to now.
func HasFinished(day Date, storedEnd TimeOfDay, now time.Time) bool {
	return now.After(day.At(storedEnd, now.Location()))
}

// TooFarAhead reports whether day is beyond the booking horizon counted in
// calendar days from now's date.
func TooFarAhead(day Date, now time.Time) bool {
	return day.After(DateOf(now).AddDays(HorizonDays))
}
