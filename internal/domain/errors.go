package domain

import "errors"

// Sentinel errors used across layers. Everything except ErrInvariant is
// recoverable: the engine turns it into the session warning and play goes on.
var (
	ErrInsufficientIngredients = errors.New("not enough ingredients")
	ErrInventoryFull           = errors.New("inventory is full")
	ErrNotAdjacent             = errors.New("no path that way")
	ErrItemUnavailable         = errors.New("item not available here")
	ErrUnknownCustomer         = errors.New("no such customer waiting")
	ErrInvalidAction           = errors.New("invalid action")
	ErrWrongLocation           = errors.New("wrong location")
	ErrAlreadyThere            = errors.New("already here")
	ErrQueueFull               = errors.New("customer queue is full")
	ErrSessionEnded            = errors.New("session has ended")
	ErrNotFound                = errors.New("not found")
	ErrAlreadyExists           = errors.New("already exists")

	// ErrInvariant signals a programming defect (negative counts, overfull
	// inventory, negative waits). The session aborts instead of rendering it.
	ErrInvariant = errors.New("state invariant violated")
)
