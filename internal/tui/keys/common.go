package keys

import "github.com/charmbracelet/bubbles/key"

// Key bindings for the receive view
type ReceiveKeys struct {
	Quit      key.Binding
	Help      key.Binding
	ToggleHex key.Binding
}

func NewReceiveKeys() ReceiveKeys {
	return ReceiveKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ToggleHex: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle hex"),
		),
	}
}

func (k ReceiveKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.ToggleHex, k.Quit}
}

func (k ReceiveKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleHex},
		{k.Help, k.Quit},
	}
}
