package input

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Mode is what the next digit key selects.
type Mode int

const (
	ModeNormal Mode = iota
	// ModePick selects an item at the current location.
	ModePick
	// ModeTrash selects an item in the bag.
	ModeTrash
	// ModeDeliver selects a waiting customer.
	ModeDeliver
)

// String returns a human-readable mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePick:
		return "pick"
	case ModeTrash:
		return "trash"
	case ModeDeliver:
		return "deliver"
	default:
		return "unknown"
	}
}

// Command is a key that drives the screen rather than the game.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdBook
	CmdHelp
)

// Decoder queues actions decoded from key presses until the game loop
// polls them, one per tick. Digit choices resolve against the last
// snapshot the player was shown.
type Decoder struct {
	keys    KeyMap
	mode    Mode
	pending []domain.Action
	log     *logger.Logger

	collectible []domain.ItemID
	held        []domain.ItemID
	customers   []domain.CustomerID
}

// NewDecoder creates a decoder for the given bindings.
func NewDecoder(keys KeyMap, log *logger.Logger) *Decoder {
	return &Decoder{keys: keys, log: log}
}

// Observe records the lists that digit keys index into.
func (d *Decoder) Observe(snap domain.Snapshot) {
	d.collectible = Collectible(snap)
	d.held = Held(snap)
	d.customers = d.customers[:0]
	for _, c := range snap.Customers {
		d.customers = append(d.customers, c.ID)
	}
}

// Mode returns the current selection mode.
func (d *Decoder) Mode() Mode { return d.mode }

// Pending returns the number of queued actions.
func (d *Decoder) Pending() int { return len(d.pending) }

// Poll returns the oldest queued action, or nil if there is none.
func (d *Decoder) Poll() domain.Action {
	if len(d.pending) == 0 {
		return nil
	}
	a := d.pending[0]
	d.pending[0] = nil
	d.pending = d.pending[1:]
	return a
}

// Feed decodes one key press. Game actions are queued for Poll; screen
// commands are returned.
func (d *Decoder) Feed(msg tea.KeyMsg) Command {
	if d.mode != ModeNormal {
		d.choose(msg)
		return CmdNone
	}

	switch {
	case key.Matches(msg, d.keys.Quit):
		return CmdQuit
	case key.Matches(msg, d.keys.Book):
		return CmdBook
	case key.Matches(msg, d.keys.Help):
		return CmdHelp
	case key.Matches(msg, d.keys.Cancel):
		return CmdNone
	case key.Matches(msg, d.keys.Up):
		d.push(domain.Move{Dir: domain.North})
	case key.Matches(msg, d.keys.Down):
		d.push(domain.Move{Dir: domain.South})
	case key.Matches(msg, d.keys.Left):
		d.push(domain.Move{Dir: domain.West})
	case key.Matches(msg, d.keys.Right):
		d.push(domain.Move{Dir: domain.East})
	case key.Matches(msg, d.keys.Home):
		d.push(domain.ReturnHome{})
	case key.Matches(msg, d.keys.Pick):
		d.enter(ModePick, len(d.collectible), domain.ErrItemUnavailable, "nothing to pick up here")
	case key.Matches(msg, d.keys.Trash):
		d.enter(ModeTrash, len(d.held), domain.ErrInsufficientIngredients, "nothing to trash")
	case key.Matches(msg, d.keys.Deliver):
		d.enter(ModeDeliver, len(d.customers), domain.ErrUnknownCustomer, "nobody is waiting")
	default:
		d.push(domain.NoOp{Err: fmt.Errorf("key %q: %w", msg.String(), domain.ErrInvalidAction)})
	}
	return CmdNone
}

// Prompt describes the pending choice, or "" in normal mode.
func (d *Decoder) Prompt() string {
	switch d.mode {
	case ModePick:
		return "What would you like to pick up?"
	case ModeTrash:
		return "What would you like to trash?"
	case ModeDeliver:
		return "Who would you like to serve?"
	default:
		return ""
	}
}

func (d *Decoder) enter(m Mode, choices int, empty error, msg string) {
	if choices == 0 {
		d.push(domain.NoOp{Err: fmt.Errorf("%s: %w", msg, empty)})
		return
	}
	d.mode = m
}

func (d *Decoder) choose(msg tea.KeyMsg) {
	mode := d.mode
	d.mode = ModeNormal

	if key.Matches(msg, d.keys.Cancel) {
		return
	}
	if !key.Matches(msg, d.keys.Digit) {
		d.push(domain.NoOp{Err: fmt.Errorf("%s needs a number, got %q: %w", mode, msg.String(), domain.ErrInvalidAction)})
		return
	}
	n := int(msg.String()[0] - '0')

	switch mode {
	case ModePick:
		if n < len(d.collectible) {
			d.push(domain.Collect{Item: d.collectible[n]})
			return
		}
	case ModeTrash:
		if n < len(d.held) {
			d.push(domain.Discard{Item: d.held[n]})
			return
		}
	case ModeDeliver:
		if n < len(d.customers) {
			d.push(domain.Fulfill{Customer: d.customers[n]})
			return
		}
	}
	d.push(domain.NoOp{Err: fmt.Errorf("no choice %d: %w", n, domain.ErrInvalidAction)})
}

func (d *Decoder) push(a domain.Action) {
	d.log.Debug("queued %s", a)
	d.pending = append(d.pending, a)
}

// Collectible lists the items at the snapshot's location in the order
// digit keys select them.
func Collectible(snap domain.Snapshot) []domain.ItemID {
	return sortedItems(snap.Collectible)
}

// Held lists the bag's distinct items in the order digit keys select them.
func Held(snap domain.Snapshot) []domain.ItemID {
	return sortedItems(snap.Inventory)
}

func sortedItems(m map[domain.ItemID]int) []domain.ItemID {
	out := make([]domain.ItemID, 0, len(m))
	for item, n := range m {
		if n > 0 {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
