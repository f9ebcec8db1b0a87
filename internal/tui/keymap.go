package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/pders01/hatut/internal/config"
)

// KeyMap holds the bindings of the story reader. It implements help.KeyMap.
type KeyMap struct {
	Quit       key.Binding
	EditFilter key.Binding
	Confirm    key.Binding
	Refresh    key.Binding
	AutoUpdate key.Binding
	Up         key.Binding
	Down       key.Binding
	Help       key.Binding
}

// NewKeyMap builds the key map from the configured bindings. The arrow
// keys and ctrl+c always work in addition to the configured keys.
func NewKeyMap(b config.KeyBindings) KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys(keys(b.Quit, "ctrl+c")...),
			key.WithHelp(b.Quit, "quit"),
		),
		EditFilter: key.NewBinding(
			key.WithKeys(keys(b.EditFilter)...),
			key.WithHelp(b.EditFilter, "edit filter"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(keys(b.Confirm)...),
			key.WithHelp(b.Confirm, "open/confirm"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(keys(b.Refresh)...),
			key.WithHelp(b.Refresh, "refresh"),
		),
		AutoUpdate: key.NewBinding(
			key.WithKeys(keys(b.AutoUpdate)...),
			key.WithHelp(b.AutoUpdate, "auto update"),
		),
		Up: key.NewBinding(
			key.WithKeys(keys(b.Up, "up")...),
			key.WithHelp("↑/"+b.Up, "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(keys(b.Down, "down")...),
			key.WithHelp("↓/"+b.Down, "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// keys drops empty entries so an unset binding matches nothing.
func keys(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.EditFilter, k.Refresh, k.AutoUpdate, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Confirm},
		{k.EditFilter, k.Refresh, k.AutoUpdate},
		{k.Help, k.Quit},
	}
}

// editingHelp is shown while the filter input has focus.
func (k KeyMap) editingHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(k.Confirm.Keys()...), key.WithHelp(k.Confirm.Help().Key, "apply filter")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
