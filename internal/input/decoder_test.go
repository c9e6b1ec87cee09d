package input

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newDecoder() *Decoder {
	d := NewDecoder(DefaultKeyMap(), logger.New(logger.LevelOff, nil))
	d.Observe(domain.Snapshot{
		Collectible: map[domain.ItemID]int{"skull": 4, "firefly": 2, "gone": 0},
		Inventory:   map[domain.ItemID]int{"glow-worm": 1, "firefly": 3},
		Customers: []domain.CustomerView{
			{ID: 7, Remaining: time.Minute},
			{ID: 3, Remaining: time.Minute},
		},
	})
	return d
}

func TestFeedArrowsAndHome(t *testing.T) {
	d := newDecoder()

	keys := []tea.KeyMsg{
		{Type: tea.KeyUp},
		{Type: tea.KeyRight},
		{Type: tea.KeyDown},
		{Type: tea.KeyLeft},
		runes("h"),
	}
	for _, k := range keys {
		if cmd := d.Feed(k); cmd != CmdNone {
			t.Fatalf("%s: unexpected command %d", k, cmd)
		}
	}

	want := []domain.Action{
		domain.Move{Dir: domain.North},
		domain.Move{Dir: domain.East},
		domain.Move{Dir: domain.South},
		domain.Move{Dir: domain.West},
		domain.ReturnHome{},
	}
	for i, w := range want {
		got := d.Poll()
		if got != w {
			t.Fatalf("poll %d: expected %v, got %v", i, w, got)
		}
	}
	if d.Poll() != nil {
		t.Fatal("expected an empty queue")
	}
}

func TestFeedSelections(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want domain.Action
	}{
		{"pick first", []tea.KeyMsg{runes("p"), runes("0")}, domain.Collect{Item: "firefly"}},
		{"pick second", []tea.KeyMsg{runes("p"), runes("1")}, domain.Collect{Item: "skull"}},
		{"trash", []tea.KeyMsg{runes("t"), runes("1")}, domain.Discard{Item: "glow-worm"}},
		{"deliver", []tea.KeyMsg{runes("d"), runes("0")}, domain.Fulfill{Customer: 7}},
		{"deliver second", []tea.KeyMsg{runes("d"), runes("1")}, domain.Fulfill{Customer: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDecoder()
			for _, k := range tt.keys {
				d.Feed(k)
			}
			if got := d.Poll(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if d.Mode() != ModeNormal {
				t.Fatalf("expected normal mode after a choice, got %s", d.Mode())
			}
		})
	}
}

func TestFeedCancel(t *testing.T) {
	for _, cancel := range []tea.KeyMsg{runes("9"), {Type: tea.KeyEsc}} {
		d := newDecoder()
		d.Feed(runes("p"))
		if d.Mode() != ModePick || d.Prompt() == "" {
			t.Fatalf("expected pick prompt, got %s", d.Mode())
		}
		d.Feed(cancel)
		if d.Mode() != ModeNormal || d.Pending() != 0 {
			t.Fatalf("%s: cancel left mode=%s pending=%d", cancel, d.Mode(), d.Pending())
		}
	}
}

func TestFeedInvalid(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.KeyMsg
		wantErr error
	}{
		{"unknown key", []tea.KeyMsg{runes("z")}, domain.ErrInvalidAction},
		{"out of range", []tea.KeyMsg{runes("d"), runes("5")}, domain.ErrInvalidAction},
		{"letter in prompt", []tea.KeyMsg{runes("t"), runes("x")}, domain.ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDecoder()
			for _, k := range tt.keys {
				d.Feed(k)
			}
			noop, ok := d.Poll().(domain.NoOp)
			if !ok {
				t.Fatal("expected a NoOp")
			}
			if !errors.Is(noop.Err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, noop.Err)
			}
		})
	}
}

func TestFeedEmptyChoices(t *testing.T) {
	d := NewDecoder(DefaultKeyMap(), logger.New(logger.LevelOff, nil))
	d.Observe(domain.Snapshot{})

	d.Feed(runes("p"))
	d.Feed(runes("t"))
	d.Feed(runes("d"))

	want := []error{domain.ErrItemUnavailable, domain.ErrInsufficientIngredients, domain.ErrUnknownCustomer}
	for i, w := range want {
		noop, ok := d.Poll().(domain.NoOp)
		if !ok || !errors.Is(noop.Err, w) {
			t.Fatalf("poll %d: expected NoOp with %v, got %v", i, w, noop)
		}
	}
	if d.Mode() != ModeNormal {
		t.Fatalf("empty choice entered %s mode", d.Mode())
	}
}

func TestFeedCommands(t *testing.T) {
	d := newDecoder()

	tests := []struct {
		key  tea.KeyMsg
		want Command
	}{
		{runes("q"), CmdQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit},
		{runes("b"), CmdBook},
		{runes("?"), CmdHelp},
	}
	for _, tt := range tests {
		if got := d.Feed(tt.key); got != tt.want {
			t.Fatalf("%s: expected command %d, got %d", tt.key, tt.want, got)
		}
	}
	if d.Pending() != 0 {
		t.Fatalf("commands queued %d actions", d.Pending())
	}
}

func TestPollOnePerCall(t *testing.T) {
	d := newDecoder()
	d.Feed(tea.KeyMsg{Type: tea.KeyUp})
	d.Feed(tea.KeyMsg{Type: tea.KeyUp})

	if d.Pending() != 2 {
		t.Fatalf("expected 2 pending, got %d", d.Pending())
	}
	d.Poll()
	if d.Pending() != 1 {
		t.Fatalf("expected 1 pending after a poll, got %d", d.Pending())
	}
}
