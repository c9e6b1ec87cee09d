package domain

// SessionStatus tracks the lifecycle of a game session.
type SessionStatus int

const (
	SessionRunning SessionStatus = iota
	SessionEnded                 // countdown reached zero
	SessionAborted               // invariant violation, state frozen
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionRunning:
		return "running"
	case SessionEnded:
		return "ended"
	case SessionAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session no longer accepts mutations.
func (s SessionStatus) Terminal() bool {
	return s != SessionRunning
}
