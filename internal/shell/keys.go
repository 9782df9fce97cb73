package shell

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shell keybindings.
type KeyMap struct {
	// Menu navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Prompts
	Submit key.Binding
	Cancel key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select}, // Menu
		{k.Submit, k.Cancel},     // Prompts
		{k.Help, k.Quit},         // General
	}
}

// promptKeys is the key map shown while a prompt is focused. Letters belong
// to the text input there, so only ctrl+c quits.
func promptKeys(k KeyMap) KeyMap {
	k.Quit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	)
	return k
}

func (k KeyMap) promptShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Quit}
}
