package domain

import "fmt"

// Action is one decoded player input. The set of variants is closed: only
// types in this package implement it, and the engine dispatcher matches
// every one of them.
type Action interface {
	isAction()
	String() string
}

// Move walks one exit in the given direction.
type Move struct{ Dir Direction }

// Collect picks one unit of an item up from the current location.
type Collect struct{ Item ItemID }

// Fulfill tries to complete a customer's order from the inventory.
type Fulfill struct{ Customer CustomerID }

// Discard throws one unit of an inventory item away.
type Discard struct{ Item ItemID }

// ReturnHome teleports the witch back to the home location.
type ReturnHome struct{}

// NoOp does nothing. Err carries a decode warning for unrecognised input;
// a zero NoOp leaves the session untouched.
type NoOp struct{ Err error }

func (Move) isAction() {}
func (Collect) isAction() {}
func (Fulfill) isAction() {}
func (Discard) isAction() {}
func (ReturnHome) isAction() {}
func (NoOp) isAction() {}

func (a Move) String() string { return "move " + a.Dir.String() }
func (a Collect) String() string { return fmt.Sprintf("collect %s", a.Item) }
func (a Fulfill) String() string { return fmt.Sprintf("fulfill #%d", a.Customer) }
func (a Discard) String() string { return fmt.Sprintf("discard %s", a.Item) }
func (ReturnHome) String() string { return "return home" }
func (a NoOp) String() string {
	if a.Err != nil {
		return "noop (" + a.Err.Error() + ")"
	}
	return "noop"
}
