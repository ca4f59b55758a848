package editor

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the tree editor. Navigation, help and
// quit come from the shared base keymap.
type KeyMap struct {
	keymap.Base
	Toggle     key.Binding
	AddSibling key.Binding
	AddChild   key.Binding
	Rename     key.Binding
	Delete     key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	ToggleAll  key.Binding
	Preview    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.AddSibling, k.Rename, k.Delete, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Base.FullHelp(), []key.Binding{
		k.Toggle,
		k.ToggleAll,
		k.Preview,
	}, []key.Binding{
		k.AddSibling,
		k.AddChild,
		k.Rename,
		k.Delete,
		k.MoveUp,
		k.MoveDown,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "expand/collapse"),
	),
	AddSibling: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add sibling"),
	),
	AddChild: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "add child"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "move down"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "expand/collapse all"),
	),
	Preview: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "preview"),
	),
}
