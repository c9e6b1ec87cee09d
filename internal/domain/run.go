package domain

import "time"

// Reasons a session stops.
const (
	ReasonTime    = "time"
	ReasonQuit    = "quit"
	ReasonAborted = "aborted"
)

// RunRecord is the result of one finished session. It is a score line,
// not a save state: nothing in it can resume a game.
type RunRecord struct {
	ID        string
	StartedAt time.Time
	Played    time.Duration
	Revenue   int
	Fulfilled int
	Expired   int
	Reason    string
}
