package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blappy/internal/core"
)

// KeyMap defines the key bindings for the game.
type KeyMap struct {
	Flap key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Flap, k.Quit}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w", "enter"),
			key.WithHelp("space/click", "flap"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "quit"),
		),
	}
}

// KeyMapper feeds Bubble Tea input into an input normalizer.
// Terminals report key presses without releases, so keys count as taps.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Keys returns the bindings, e.g. for a help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey records a key press. It returns the action the key stands for.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, n *core.Normalizer) core.Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		n.Quit()
		return core.ActionQuit
	case key.Matches(msg, km.keys.Flap):
		n.Tap(core.SourceKeyboard)
		return core.ActionActivate
	}
	return core.ActionNone
}

// MapMouse records primary button presses and releases.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, n *core.Normalizer) {
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		n.Press(core.SourceMouse)
	case tea.MouseActionRelease:
		n.Release(core.SourceMouse)
	}
}
