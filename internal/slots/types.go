package slots

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time component. It is always rendered and
// stored in the canonical YYYY-MM-DD form so that string comparison and
// chronological comparison agree.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time.Time to its calendar date in the time's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a canonical YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText renders the canonical YYYY-MM-DD form, so JSON payloads carry
// the same representation the database stores.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses the canonical YYYY-MM-DD form.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// At combines the date with a time of day in the given location.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

// AddDays returns the date n calendar days later, normalising month and year
// boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.At(TimeOfDay{}, time.UTC).AddDate(0, 0, n))
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.String() > other.String()
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.String() < other.String()
}

// TimeOfDay is a wall-clock time of day (hour:minute).
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a canonical HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText renders the canonical HH:MM form.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the canonical HH:MM form.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AddMinutes returns the time of day n minutes later. Results never cross
// midnight for the slot arithmetic this package performs.
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	total := t.Hour*60 + t.Minute + n
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// MinutesOfDay returns minutes elapsed since midnight, for ordering.
func (t TimeOfDay) MinutesOfDay() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.MinutesOfDay() < other.MinutesOfDay()
}
