package slots_test

import (
	"testing"
	"time"

	"github.com/mauv0809/padel-reserva/internal/slots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimes(t *testing.T) {
	starts := slots.StartTimes()

	want := []string{"09:30", "11:00", "12:30", "14:00", "15:30", "17:00", "18:30", "20:00", "21:30"}
	require.Len(t, starts, len(want))
	for i, s := range starts {
		assert.Equal(t, want[i], s.String())
	}

	t.Run("strictly increasing", func(t *testing.T) {
		for i := 1; i < len(starts); i++ {
			assert.True(t, starts[i-1].Before(starts[i]))
		}
	})

	t.Run("stored end stays before next start", func(t *testing.T) {
		for i := 0; i < len(starts)-1; i++ {
			end := slots.StoredEnd(starts[i])
			assert.True(t, end.Before(starts[i+1]),
				"stored end %s must be before next start %s", end, starts[i+1])
		}
	})

	t.Run("display end reads as ninety minutes", func(t *testing.T) {
		end := slots.DisplayEnd(slots.TimeOfDay{Hour: 9, Minute: 30})
		assert.Equal(t, "11:00", end.String())
	})
}

func TestIsCanonicalStart(t *testing.T) {
	assert.True(t, slots.IsCanonicalStart(slots.TimeOfDay{Hour: 11, Minute: 0}))
	assert.False(t, slots.IsCanonicalStart(slots.TimeOfDay{Hour: 10, Minute: 0}))
	assert.False(t, slots.IsCanonicalStart(slots.TimeOfDay{Hour: 22, Minute: 0}))
}

func TestHasPassed(t *testing.T) {
	day := slots.Date{Year: 2026, Month: time.March, Day: 10}
	slot := slots.TimeOfDay{Hour: 9, Minute: 30}

	before := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	after := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	assert.False(t, slots.HasPassed(day, slot, before))
	assert.True(t, slots.HasPassed(day, slot, after))
}

func TestHasFinished(t *testing.T) {
	day := slots.Date{Year: 2026, Month: time.March, Day: 10}
	end := slots.StoredEnd(slots.TimeOfDay{Hour: 9, Minute: 30}) // 10:59

	during := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	after := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)

	assert.False(t, slots.HasFinished(day, end, during))
	assert.True(t, slots.HasFinished(day, end, after))
}

func TestTooFarAhead(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.False(t, slots.TooFarAhead(slots.DateOf(now).AddDays(15), now))
	assert.True(t, slots.TooFarAhead(slots.DateOf(now).AddDays(16), now))
}

func TestDateRoundTrip(t *testing.T) {
	d, err := slots.ParseDate("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", d.String())

	_, err = slots.ParseDate("05-03-2026")
	assert.Error(t, err)

	t.Run("add days crosses month boundary", func(t *testing.T) {
		d := slots.Date{Year: 2026, Month: time.March, Day: 25}
		assert.Equal(t, "2026-04-09", d.AddDays(15).String())
	})
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := slots.ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, slots.TimeOfDay{Hour: 9, Minute: 30}, tod)

	_, err = slots.ParseTimeOfDay("9:30pm")
	assert.Error(t, err)
}
