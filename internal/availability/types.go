package availability

import (
	"time"

	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/slots"
)

// SlotStatus classifies a slot relative to the requesting user.
type SlotStatus string

const (
	StatusFree  SlotStatus = "FREE"
	StatusMine  SlotStatus = "RESERVED_MINE"
	StatusOther SlotStatus = "RESERVED_OTHER"
)

// Slot is one bookable start time of a day, annotated with its reservation
// status. Derived on every call, never stored.
type Slot struct {
	Time    slots.TimeOfDay `json:"time"`
	EndTime slots.TimeOfDay `json:"end_time"` // display end, start + 90m
	Status  SlotStatus      `json:"status"`
}

// Resolver combines the slot calendar with the day's bookings.
type Resolver struct {
	store booking.BookingStore
	now   func() time.Time
}
