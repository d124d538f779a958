package lifecycle_test

import (
	"testing"
	"time"

	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/lifecycle"
	"github.com/mauv0809/padel-reserva/internal/metrics"
	"github.com/mauv0809/padel-reserva/internal/notifier"
	"github.com/mauv0809/padel-reserva/internal/pubsub"
	"github.com/mauv0809/padel-reserva/internal/roster"
	"github.com/mauv0809/padel-reserva/internal/slots"
	"github.com/mauv0809/padel-reserva/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is the reference clock for all controller tests:
// Tuesday 2026-09-01, 12:00 local.
var fixedNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)

type fixture struct {
	store    *booking.MockStore
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	stats    *stats.MockStore
	metrics  *metrics.Mock
	ctl      *lifecycle.Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    booking.NewMock(),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock(""),
		stats:    stats.NewMock(),
		metrics:  metrics.NewMock(),
	}
	f.ctl = lifecycle.NewWithClock(f.store, roster.New(f.store), f.notifier, f.pubsub, f.stats, f.metrics, func() time.Time { return fixedNow })
	return f
}

func day(d int) slots.Date {
	return slots.Date{Year: 2026, Month: time.September, Day: d}
}

var nineThirty = slots.TimeOfDay{Hour: 9, Minute: 30}

func TestCreate_PublicBookingSeatsCreator(t *testing.T) {
	f := newFixture(t)

	b, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, slots.TimeOfDay{Hour: 10, Minute: 59}, b.EndTime)

	entries, err := f.store.RosterEntries(b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "anna", entries[0].UserID)

	assert.Equal(t, 1, f.metrics.BookingsCreatedCount)
	assert.Equal(t, 1, f.stats.Count(stats.KeyBookingsCreated))
	assert.Equal(t, 1, f.stats.Count(stats.KeySeatsClaimed))
	require.Len(t, f.pubsub.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventBookingCreated), f.pubsub.SendMessageCalls[0].Topic)
	assert.Len(t, f.notifier.SendBookingCreatedCalls, 1)
}

func TestCreate_PrivateBookingHasEmptyRoster(t *testing.T) {
	f := newFixture(t)

	b, err := f.ctl.Create("anna", day(5), nineThirty, true, false)
	require.NoError(t, err)

	entries, err := f.store.RosterEntries(b.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreate_SlotConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)

	_, err = f.ctl.Create("bruno", day(5), nineThirty, false, false)
	require.ErrorIs(t, err, booking.ErrSlotTaken)
	assert.Equal(t, 1, f.metrics.SlotConflictsCount)
	assert.Equal(t, 1, f.metrics.BookingsCreatedCount, "losing create must not count")
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	t.Run("beyond the booking horizon", func(t *testing.T) {
		_, err := f.ctl.Create("anna", day(17), nineThirty, false, false)
		require.ErrorIs(t, err, slots.ErrTooFarAhead)
	})

	t.Run("fifteen days out is allowed", func(t *testing.T) {
		_, err := f.ctl.Create("anna", day(16), nineThirty, false, false)
		require.NoError(t, err)
	})

	t.Run("off-grid start time", func(t *testing.T) {
		_, err := f.ctl.Create("anna", day(5), slots.TimeOfDay{Hour: 10, Minute: 0}, false, false)
		require.ErrorIs(t, err, lifecycle.ErrInvalidSlot)
	})

	t.Run("slot already started today", func(t *testing.T) {
		_, err := f.ctl.Create("anna", day(1), nineThirty, false, false)
		require.ErrorIs(t, err, lifecycle.ErrSlotPassed)
	})

	t.Run("later slot today is fine", func(t *testing.T) {
		_, err := f.ctl.Create("anna", day(1), slots.TimeOfDay{Hour: 14, Minute: 0}, false, false)
		require.NoError(t, err)
	})
}

func TestCreate_SelfJoinFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.store.InsertRosterEntryErr = assert.AnError

	b, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err, "booking must stand when the self-join write fails")

	got, err := f.store.GetBooking(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna", got.OwnerID)
	assert.Equal(t, 0, f.stats.Count(stats.KeySeatsClaimed))
}

func TestJoin_FiresRosterFullOnLastSeat(t *testing.T) {
	f := newFixture(t)
	b, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)

	for _, u := range []string{"bruno", "carla"} {
		_, err := f.ctl.Join(b.ID, u, false)
		require.NoError(t, err)
	}
	assert.Empty(t, f.notifier.SendRosterFullCalls)

	_, err = f.ctl.Join(b.ID, "dani", false)
	require.NoError(t, err)
	require.Len(t, f.notifier.SendRosterFullCalls, 1)
	assert.Equal(t, 3, f.metrics.RosterJoinsCount)

	var fullEvents int
	for _, call := range f.pubsub.SendMessageCalls {
		if call.Topic == string(pubsub.EventRosterFull) {
			fullEvents++
		}
	}
	assert.Equal(t, 1, fullEvents)

	_, err = f.ctl.Join(b.ID, "elena", false)
	require.ErrorIs(t, err, booking.ErrRosterFull)
	assert.Equal(t, 1, f.metrics.JoinRejectionsCount)
}

func TestJoin_PrivateBookingRejected(t *testing.T) {
	f := newFixture(t)
	b, err := f.ctl.Create("anna", day(5), nineThirty, true, false)
	require.NoError(t, err)

	_, err = f.ctl.Join(b.ID, "bruno", false)
	require.ErrorIs(t, err, roster.ErrPrivateBooking)
	assert.Equal(t, 1, f.metrics.JoinRejectionsCount)
}

func TestCancel_NonOwnerOnlyReleasesOwnSeat(t *testing.T) {
	f := newFixture(t)
	b, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)
	_, err = f.ctl.Join(b.ID, "bruno", false)
	require.NoError(t, err)

	// bruno asks for a full cancel; the flag must not matter.
	require.NoError(t, f.ctl.Cancel(b.ID, "bruno", false, false))

	got, err := f.store.GetBooking(b.ID)
	require.NoError(t, err, "booking must survive a non-owner cancel")
	assert.Equal(t, "anna", got.OwnerID)

	entries, err := f.store.RosterEntries(b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "anna", entries[0].UserID)
	assert.Equal(t, 0, f.metrics.CancellationsCount)
}

func TestCancel_OwnerLeaveOnlyKeepsBooking(t *testing.T) {
	f := newFixture(t)
	b, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)
	_, err = f.ctl.Join(b.ID, "bruno", false)
	require.NoError(t, err)

	require.NoError(t, f.ctl.Cancel(b.ID, "anna", true, false))

	got, err := f.store.GetBooking(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna", got.OwnerID, "owner_id is unchanged by a roster-only exit")

	entries, err := f.store.RosterEntries(b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bruno", entries[0].UserID)
}

func TestCancel_OwnerFullCancelRemovesEverything(t *testing.T) {
	f := newFixture(t)
	b, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)
	_, err = f.ctl.Join(b.ID, "bruno", false)
	require.NoError(t, err)

	require.NoError(t, f.ctl.Cancel(b.ID, "anna", false, false))

	_, err = f.store.GetBooking(b.ID)
	require.ErrorIs(t, err, booking.ErrNotFound)
	entries, err := f.store.RosterEntries(b.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, 1, f.metrics.CancellationsCount)
	assert.Len(t, f.notifier.SendBookingCancelledCalls, 1)
}

func TestCancel_UnknownBooking(t *testing.T) {
	f := newFixture(t)
	err := f.ctl.Cancel("nope", "anna", false, false)
	require.ErrorIs(t, err, booking.ErrNotFound)
}

func TestListMyBookings(t *testing.T) {
	f := newFixture(t)

	owned, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)
	other, err := f.ctl.Create("bruno", day(4), nineThirty, false, false)
	require.NoError(t, err)
	_, err = f.ctl.Join(other.ID, "anna", false)
	require.NoError(t, err)
	_, err = f.ctl.Create("carla", day(6), nineThirty, false, false)
	require.NoError(t, err)

	mine, err := f.ctl.ListMyBookings("anna")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	// Sorted by date: bruno's match on the 4th first.
	assert.Equal(t, other.ID, mine[0].ID)
	assert.False(t, mine[0].IsOwner)
	assert.True(t, mine[0].IsPlayer)
	assert.Equal(t, 2, mine[0].PlayerCount)

	assert.Equal(t, owned.ID, mine[1].ID)
	assert.True(t, mine[1].IsOwner)
	assert.True(t, mine[1].IsPlayer)
	assert.Equal(t, 1, mine[1].PlayerCount)
}

func TestListMyBookings_DropsFinishedKeepsInProgress(t *testing.T) {
	f := newFixture(t)

	// Seed directly: today 09:30 finished at 10:59 < 12:00,
	// today 11:00 is in progress (ends 12:29).
	finished := &booking.Booking{Date: day(1), StartTime: nineThirty, EndTime: slots.StoredEnd(nineThirty), OwnerID: "anna"}
	require.NoError(t, f.store.InsertBooking(finished))
	inProgress := &booking.Booking{Date: day(1), StartTime: slots.TimeOfDay{Hour: 11, Minute: 0}, EndTime: slots.TimeOfDay{Hour: 12, Minute: 29}, OwnerID: "anna"}
	require.NoError(t, f.store.InsertBooking(inProgress))

	mine, err := f.ctl.ListMyBookings("anna")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, inProgress.ID, mine[0].ID)
}

func TestNextBooking(t *testing.T) {
	f := newFixture(t)

	next, err := f.ctl.NextBooking("anna")
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = f.ctl.Create("anna", day(9), nineThirty, false, false)
	require.NoError(t, err)
	sooner, err := f.ctl.Create("anna", day(3), nineThirty, false, false)
	require.NoError(t, err)

	next, err = f.ctl.NextBooking("anna")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, sooner.ID, next.ID)
}

func TestListOpenMatches(t *testing.T) {
	f := newFixture(t)

	open, err := f.ctl.Create("anna", day(5), nineThirty, false, false)
	require.NoError(t, err)

	full, err := f.ctl.Create("bruno", day(6), nineThirty, false, false)
	require.NoError(t, err)
	for _, u := range []string{"carla", "dani", "elena"} {
		_, err := f.ctl.Join(full.ID, u, false)
		require.NoError(t, err)
	}

	_, err = f.ctl.Create("carla", day(7), nineThirty, true, false)
	require.NoError(t, err)

	matches, err := f.ctl.ListOpenMatches(0)
	require.NoError(t, err)
	require.Len(t, matches, 1, "full and private matches are not open")
	assert.Equal(t, open.ID, matches[0].ID)
	assert.Equal(t, 1, matches[0].PlayerCount)
	assert.Equal(t, 3, matches[0].SeatsLeft)
	require.Len(t, matches[0].Players, 1)
}

func TestListOpenMatches_Limit(t *testing.T) {
	f := newFixture(t)

	for d := 2; d <= 9; d++ {
		_, err := f.ctl.Create("anna", day(d), nineThirty, false, false)
		require.NoError(t, err)
	}

	matches, err := f.ctl.ListOpenMatches(5)
	require.NoError(t, err)
	require.Len(t, matches, 5)
	// Soonest first.
	assert.Equal(t, day(2), matches[0].Date)
	assert.Equal(t, day(6), matches[4].Date)
}

func TestDryRun_SuppressesEvents(t *testing.T) {
	f := newFixture(t)

	b, err := f.ctl.Create("anna", day(5), nineThirty, false, true)
	require.NoError(t, err)
	assert.Empty(t, f.pubsub.SendMessageCalls)
	// The notifier still gets called; it logs instead of posting.
	assert.Len(t, f.notifier.SendBookingCreatedCalls, 1)

	_, err = f.ctl.Join(b.ID, "bruno", true)
	require.NoError(t, err)
	assert.Empty(t, f.pubsub.SendMessageCalls)
}
