// Package timer measures wall-clock time between game ticks and formats
// durations for the screen.
package timer

import (
	"sync"
	"time"
)

// Clock tells the time. Tests swap in a Fake.
type Clock interface {
	Now() time.Time
}

// Real is the system clock.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time { return time.Now() }

// Fake is a manually advanced clock.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a fake clock stopped at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Add moves the fake clock by d. Negative d moves it back.
func (f *Fake) Add(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithClock sets the clock the stopwatch reads.
func WithClock(c Clock) Option {
	return func(s *Stopwatch) {
		s.clock = c
	}
}

// WithMaxLap caps a single lap. A process stopped with ^Z resumes with
// one lap of at most this length. Zero means no cap.
func WithMaxLap(d time.Duration) Option {
	return func(s *Stopwatch) {
		s.maxLap = d
	}
}

// Stopwatch reports the time elapsed between successive laps.
type Stopwatch struct {
	clock  Clock
	last   time.Time
	maxLap time.Duration
}

// NewStopwatch starts a stopwatch now.
func NewStopwatch(opts ...Option) *Stopwatch {
	s := &Stopwatch{clock: Real{}}
	for _, opt := range opts {
		opt(s)
	}
	s.last = s.clock.Now()
	return s
}

// Lap returns the time since the previous lap (or since start) and starts
// a new one. The result is never negative, even if the clock steps back.
func (s *Stopwatch) Lap() time.Duration {
	now := s.clock.Now()
	d := now.Sub(s.last)
	s.last = now
	if d < 0 {
		return 0
	}
	if s.maxLap > 0 && d > s.maxLap {
		return s.maxLap
	}
	return d
}

// Reset starts a new lap without reporting the old one.
func (s *Stopwatch) Reset() {
	s.last = s.clock.Now()
}
