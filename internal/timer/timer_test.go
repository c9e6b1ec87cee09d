package timer

import (
	"testing"
	"time"
)

func TestStopwatchLaps(t *testing.T) {
	clock := NewFake(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	sw := NewStopwatch(WithClock(clock))

	clock.Add(100 * time.Millisecond)
	if got := sw.Lap(); got != 100*time.Millisecond {
		t.Fatalf("expected 100ms, got %s", got)
	}
	if got := sw.Lap(); got != 0 {
		t.Fatalf("expected 0 for an immediate lap, got %s", got)
	}

	clock.Add(-time.Second)
	if got := sw.Lap(); got != 0 {
		t.Fatalf("clock went back, expected 0, got %s", got)
	}

	clock.Add(250 * time.Millisecond)
	sw.Reset()
	clock.Add(50 * time.Millisecond)
	if got := sw.Lap(); got != 50*time.Millisecond {
		t.Fatalf("expected 50ms after reset, got %s", got)
	}
}

func TestStopwatchMaxLap(t *testing.T) {
	clock := NewFake(time.Unix(0, 0))
	sw := NewStopwatch(WithClock(clock), WithMaxLap(time.Second))

	clock.Add(time.Hour)
	if got := sw.Lap(); got != time.Second {
		t.Fatalf("expected capped lap of 1s, got %s", got)
	}
}

func TestClockface(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{10 * time.Minute, "10:00"},
		{9*time.Minute + 59*time.Second + 100*time.Millisecond, "10:00"},
		{61 * time.Second, "1:01"},
		{400 * time.Millisecond, "0:01"},
		{0, "0:00"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		if got := Clockface(tt.in); got != tt.want {
			t.Fatalf("Clockface(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{time.Second, "1 second"},
		{40 * time.Second, "40 seconds"},
		{89 * time.Second, "1 minute"},
		{150 * time.Second, "3 minutes"},
	}

	for _, tt := range tests {
		if got := Humanize(tt.in); got != tt.want {
			t.Fatalf("Humanize(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
