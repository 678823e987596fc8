package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := &RealClock{}

	before := time.Now()
	actual := clock.Now()
	after := time.Now()

	if actual.Before(before) || actual.After(after) {
		t.Errorf("RealClock.Now() returned time outside expected range: got %v, expected between %v and %v", actual, before, after)
	}
}

func TestFakeClock(t *testing.T) {
	fixedTime := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("fixed until advanced", func(t *testing.T) {
		clock := NewFakeClock(fixedTime)
		if !clock.Now().Equal(fixedTime) || !clock.Now().Equal(fixedTime) {
			t.Error("FakeClock.Now() should not move on its own")
		}
		clock.Advance(time.Minute)
		if got := clock.Now(); !got.Equal(fixedTime.Add(time.Minute)) {
			t.Errorf("after Advance, Now() = %v", got)
		}
	})

	t.Run("tick advances on each read", func(t *testing.T) {
		clock := NewFakeClock(fixedTime)
		clock.Tick(250 * time.Millisecond)
		first := clock.Now()
		second := clock.Now()
		if second.Sub(first) != 250*time.Millisecond {
			t.Errorf("tick = %v, want 250ms", second.Sub(first))
		}
	})
}

func TestSince(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"sub-second rounds to ms", 1234567 * time.Nanosecond, time.Millisecond},
		{"seconds round to tenths", 2345 * time.Millisecond, 2300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewFakeClock(start.Add(tt.elapsed))
			if got := Since(clock, start); got != tt.want {
				t.Errorf("Since = %v, want %v", got, tt.want)
			}
		})
	}
}
