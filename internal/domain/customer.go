package domain

import "time"

// CustomerID identifies a customer for the lifetime of a session.
// IDs are never reused.
type CustomerID int

// CustomerState tracks the lifecycle of a customer.
type CustomerState int

const (
	CustomerWaiting CustomerState = iota
	CustomerFulfilled
	CustomerExpired
)

// String returns a human-readable customer state.
func (s CustomerState) String() string {
	switch s {
	case CustomerWaiting:
		return "waiting"
	case CustomerFulfilled:
		return "fulfilled"
	case CustomerExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Customer is a queued order with its own countdown.
type Customer struct {
	ID        CustomerID
	Recipe    *Recipe
	Patience  time.Duration // wait granted at spawn
	Remaining time.Duration // never negative
	State     CustomerState
	Alerted   bool // true after the "running out of patience" event
}
