package domain

import "time"

// Snapshot is the read-only view of a session produced once per tick.
// Every slice and map is a private copy; renderers may keep it around.
type Snapshot struct {
	SessionID     string
	Status        SessionStatus
	Tick          uint64
	TimeRemaining time.Duration
	Revenue       int
	Fulfilled     int
	Expired       int

	Inventory     map[ItemID]int
	InventoryUsed int
	InventoryCap  int

	Customers    []CustomerView
	MaxCustomers int

	Location     LocationID
	LocationName string
	Neighbors    map[Direction]LocationID
	Collectible  map[ItemID]int

	Warning string // empty when there is nothing to report
	Flavor  string
	Events  []Event
}

// CustomerView is one active customer as shown to the player.
type CustomerView struct {
	ID         CustomerID
	RecipeID   RecipeID
	RecipeName string
	Summary    string
	Payout     int
	Remaining  time.Duration
	Patience   time.Duration
}

// EventKind classifies what happened during a tick.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventExpired
	EventFulfilled
	EventImpatient
	EventCollected
	EventWarning
	EventEnded
)

// String returns a human-readable event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventExpired:
		return "expired"
	case EventFulfilled:
		return "fulfilled"
	case EventImpatient:
		return "impatient"
	case EventCollected:
		return "collected"
	case EventWarning:
		return "warning"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event records one state transition of a tick, for audio cues and logs.
type Event struct {
	Kind     EventKind
	Customer CustomerID
	Recipe   RecipeID
	Item     ItemID
	Amount   int
	Message  string
}

// HasEvent reports whether the snapshot carries an event of the given kind.
func (s Snapshot) HasEvent(kind EventKind) bool {
	for _, ev := range s.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
