package lifecycle

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/metrics"
	"github.com/mauv0809/padel-reserva/internal/notifier"
	"github.com/mauv0809/padel-reserva/internal/pubsub"
	"github.com/mauv0809/padel-reserva/internal/roster"
	"github.com/mauv0809/padel-reserva/internal/slots"
	"github.com/mauv0809/padel-reserva/internal/stats"
)

// ErrInvalidSlot is returned when the requested start time is not one of
// the club's bookable slots.
var ErrInvalidSlot = errors.New("not a bookable slot")

// ErrSlotPassed is returned when the requested slot has already started.
var ErrSlotPassed = errors.New("slot already started")

// New creates a new Controller.
func New(store booking.BookingStore, rosterMgr *roster.Manager, notifier notifier.Notifier, pubsub pubsub.PubSubClient, stats stats.StatsStore, metrics metrics.Metrics) *Controller {
	return &Controller{
		store:    store,
		roster:   rosterMgr,
		notifier: notifier,
		pubsub:   pubsub,
		stats:    stats,
		metrics:  metrics,
		now:      time.Now,
	}
}

// NewWithClock creates a Controller with an injected clock, for tests.
func NewWithClock(store booking.BookingStore, rosterMgr *roster.Manager, notifier notifier.Notifier, pubsub pubsub.PubSubClient, stats stats.StatsStore, metrics metrics.Metrics, now func() time.Time) *Controller {
	c := New(store, rosterMgr, notifier, pubsub, stats, metrics)
	c.now = now
	return c
}

func (c *Controller) event(b *booking.Booking, userID string) BookingEvent {
	return BookingEvent{
		BookingID: b.ID,
		Date:      b.Date.String(),
		StartTime: b.StartTime.String(),
		UserID:    userID,
	}
}

// Create reserves a slot for userID. The booking is committed before any
// side effect runs; a failed self-join, event or announcement is logged and
// never rolls the reservation back.
func (c *Controller) Create(userID string, day slots.Date, start slots.TimeOfDay, isPrivate, dryRun bool) (*booking.Booking, error) {
	now := c.now()
	if !slots.IsCanonicalStart(start) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSlot, start)
	}
	if slots.TooFarAhead(day, now) {
		return nil, slots.ErrTooFarAhead
	}
	if slots.HasPassed(day, start, now) {
		return nil, fmt.Errorf("%w: %s %s", ErrSlotPassed, day, start)
	}

	b := &booking.Booking{
		Date:      day,
		StartTime: start,
		EndTime:   slots.StoredEnd(start),
		OwnerID:   userID,
		IsPrivate: isPrivate,
	}
	if err := c.store.InsertBooking(b); err != nil {
		if errors.Is(err, booking.ErrSlotTaken) {
			c.metrics.IncSlotConflicts()
		}
		return nil, err
	}
	c.metrics.IncBookingsCreated()
	c.stats.Increment(stats.KeyBookingsCreated)

	// The creator takes the first seat on a public match. The booking
	// stands even if this second write fails; the owner can join again.
	var entries []booking.RosterEntry
	if !isPrivate {
		entry, err := c.store.InsertRosterEntry(b.ID, userID)
		if err != nil {
			log.Error("Failed to seat creator on new booking", "error", err, "bookingID", b.ID, "userID", userID)
		} else {
			entries = append(entries, *entry)
			c.stats.Increment(stats.KeySeatsClaimed)
		}
	}

	if !dryRun {
		if err := c.pubsub.SendMessage(pubsub.EventBookingCreated, c.event(b, userID)); err != nil {
			log.Error("Failed to publish booking-created event", "error", err, "bookingID", b.ID)
		}
	}
	if err := c.notifier.SendBookingCreated(b, entries, dryRun); err != nil {
		log.Error("Failed to announce new booking", "error", err, "bookingID", b.ID)
	}
	return b, nil
}

// Join seats userID on a public booking and fires the follow-up effects:
// a player-joined event, a roster-full announcement when the fourth seat
// goes, and counters either way.
func (c *Controller) Join(bookingID, userID string, dryRun bool) (*booking.RosterEntry, error) {
	entry, err := c.roster.Join(bookingID, userID)
	if err != nil {
		if errors.Is(err, booking.ErrRosterFull) || errors.Is(err, booking.ErrAlreadyMember) || errors.Is(err, roster.ErrPrivateBooking) {
			c.metrics.IncJoinRejections()
		}
		return nil, err
	}
	c.metrics.IncRosterJoins()
	c.stats.Increment(stats.KeySeatsClaimed)

	b, err := c.store.GetBooking(bookingID)
	if err != nil {
		log.Error("Failed to reload booking after join", "error", err, "bookingID", bookingID)
		return entry, nil
	}
	players, err := c.roster.ListPlayers(bookingID)
	if err != nil {
		log.Error("Failed to list roster after join", "error", err, "bookingID", bookingID)
		return entry, nil
	}

	if !dryRun {
		if err := c.pubsub.SendMessage(pubsub.EventPlayerJoined, c.event(b, userID)); err != nil {
			log.Error("Failed to publish player-joined event", "error", err, "bookingID", bookingID)
		}
	}
	seatsLeft := roster.Capacity - len(players)
	if err := c.notifier.SendPlayerJoined(b, entry.Player, seatsLeft, dryRun); err != nil {
		log.Error("Failed to announce player join", "error", err, "bookingID", bookingID)
	}
	if seatsLeft == 0 {
		if !dryRun {
			if err := c.pubsub.SendMessage(pubsub.EventRosterFull, c.event(b, userID)); err != nil {
				log.Error("Failed to publish roster-full event", "error", err, "bookingID", bookingID)
			}
		}
		if err := c.notifier.SendRosterFull(b, players, dryRun); err != nil {
			log.Error("Failed to announce full roster", "error", err, "bookingID", bookingID)
		}
	}
	return entry, nil
}

// Leave releases userID's seat. Leaving a booking one is not part of
// succeeds without effect.
func (c *Controller) Leave(bookingID, userID string, dryRun bool) error {
	b, err := c.store.GetBooking(bookingID)
	if err != nil {
		return err
	}
	if err := c.roster.Leave(bookingID, userID); err != nil {
		return err
	}
	c.stats.Increment(stats.KeySeatsReleased)
	if !dryRun {
		if err := c.pubsub.SendMessage(pubsub.EventPlayerLeft, c.event(b, userID)); err != nil {
			log.Error("Failed to publish player-left event", "error", err, "bookingID", bookingID)
		}
	}
	return nil
}

// Cancel resolves a cancellation request against the requester's role.
// A non-owner only ever releases their own seat, whatever they asked for.
// The owner chooses between stepping off the roster (leaveOnly) and
// cancelling the reservation outright, which removes the roster and the
// booking in one transaction.
func (c *Controller) Cancel(bookingID, requesterID string, leaveOnly, dryRun bool) error {
	b, err := c.store.GetBooking(bookingID)
	if err != nil {
		return err
	}

	if b.OwnerID != requesterID || leaveOnly {
		log.Info("Cancellation routed to seat release", "bookingID", bookingID, "userID", requesterID, "owner", b.OwnerID == requesterID)
		return c.Leave(bookingID, requesterID, dryRun)
	}

	if err := c.store.DeleteBooking(bookingID); err != nil {
		return err
	}
	c.metrics.IncCancellations()
	c.stats.Increment(stats.KeyBookingsCancelled)

	if !dryRun {
		if err := c.pubsub.SendMessage(pubsub.EventBookingCancelled, c.event(b, requesterID)); err != nil {
			log.Error("Failed to publish booking-cancelled event", "error", err, "bookingID", bookingID)
		}
	}
	if err := c.notifier.SendBookingCancelled(b, dryRun); err != nil {
		log.Error("Failed to announce cancellation", "error", err, "bookingID", bookingID)
	}
	return nil
}

// ListMyBookings returns every booking the user owns or plays in, deduped,
// ordered by (date, start time). Bookings whose stored end has passed are
// dropped; a match in progress still shows.
func (c *Controller) ListMyBookings(userID string) ([]MyBooking, error) {
	owned, err := c.store.QueryBookings(booking.QueryFilter{OwnerID: userID})
	if err != nil {
		return nil, err
	}
	memberIDs, err := c.store.BookingIDsForPlayer(userID)
	if err != nil {
		return nil, err
	}
	memberSet := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		memberSet[id] = true
	}

	byID := make(map[string]*booking.Booking, len(owned))
	for _, b := range owned {
		byID[b.ID] = b
	}
	var missing []string
	for _, id := range memberIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		member, err := c.store.QueryBookings(booking.QueryFilter{IDs: missing})
		if err != nil {
			return nil, err
		}
		for _, b := range member {
			byID[b.ID] = b
		}
	}

	now := c.now()
	var ids []string
	var all []*booking.Booking
	for id, b := range byID {
		if slots.HasFinished(b.Date, b.EndTime, now) {
			continue
		}
		ids = append(ids, id)
		all = append(all, b)
	}
	counts, err := c.store.RosterCounts(ids)
	if err != nil {
		return nil, err
	}

	out := make([]MyBooking, 0, len(all))
	for _, b := range all {
		out = append(out, MyBooking{
			Booking:     b,
			IsOwner:     b.OwnerID == userID,
			IsPlayer:    memberSet[b.ID],
			PlayerCount: counts[b.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// NextBooking returns the user's soonest upcoming booking, or nil when
// they have none.
func (c *Controller) NextBooking(userID string) (*MyBooking, error) {
	mine, err := c.ListMyBookings(userID)
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return nil, nil
	}
	return &mine[0], nil
}

// ListOpenMatches returns public bookings with a free seat that have not
// finished, soonest first, annotated with their roster. A limit of 0 means
// no limit.
func (c *Controller) ListOpenMatches(limit int) ([]OpenMatch, error) {
	now := c.now()
	today := slots.DateOf(now)
	bookings, err := c.store.QueryBookings(booking.QueryFilter{PublicOnly: true, From: &today})
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	counts, err := c.store.RosterCounts(ids)
	if err != nil {
		return nil, err
	}

	var out []OpenMatch
	for _, b := range bookings {
		if slots.HasFinished(b.Date, b.EndTime, now) {
			continue
		}
		if counts[b.ID] >= roster.Capacity {
			continue
		}
		entries, err := c.roster.ListPlayers(b.ID)
		if err != nil {
			return nil, err
		}
		avg, _ := roster.AverageLevel(entries)
		out = append(out, OpenMatch{
			Booking:      b,
			Players:      entries,
			PlayerCount:  len(entries),
			SeatsLeft:    roster.Capacity - len(entries),
			AverageLevel: avg,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
