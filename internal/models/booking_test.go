package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func window(startHour, endHour int) TimeWindow {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return TimeWindow{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestTimeWindowOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b TimeWindow
		want bool
	}{
		{"identical", window(10, 12), window(10, 12), true},
		{"partial overlap", window(10, 12), window(11, 13), true},
		{"contained", window(10, 14), window(11, 12), true},
		{"touching end is free", window(10, 12), window(12, 14), false},
		{"touching start is free", window(12, 14), window(10, 12), false},
		{"disjoint", window(8, 9), window(10, 11), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestBookingWindow(t *testing.T) {
	b := &Booking{
		ScheduledStart:  time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
	}
	w := b.Window()
	assert.Equal(t, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), w.End)
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, BookingCompleted.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingScheduled.Terminal())
	assert.False(t, BookingInProgress.Terminal())
}
