// Package input turns key presses into game actions.
package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding the game understands.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Pick    key.Binding
	Trash   key.Binding
	Deliver key.Binding
	Home    key.Binding
	Book    key.Binding
	Help    key.Binding
	Quit    key.Binding
	Cancel  key.Binding
	Digit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "north")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "south")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "west")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "east")),
		Pick:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick up")),
		Trash:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trash")),
		Deliver: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deliver")),
		Home:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "cauldron")),
		Book:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "recipe book")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "9"), key.WithHelp("9/esc", "cancel")),
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-8", "choose"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pick, k.Deliver, k.Trash, k.Home, k.Book, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pick, k.Trash, k.Deliver, k.Home},
		{k.Book, k.Cancel, k.Help, k.Quit},
	}
}
