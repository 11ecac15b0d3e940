package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the key layout of the slideshow. It implements help.KeyMap.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
	Jump key.Binding
	Data key.Binding
	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(key.WithKeys("right", "l", "n", " "), key.WithHelp("→/l/n/space", "next")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h/p", "previous")),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9/0", "jump to slide"),
		),
		Data: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "data preview")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back: key.NewBinding(key.WithKeys("esc", "b", "backspace"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Data, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Jump},
		{k.Data, k.Help, k.Back, k.Quit},
	}
}

// jumpIndex maps the digit keys to slide positions, 0 being the tenth.
func jumpIndex(s string) int {
	if s == "0" {
		return 9
	}
	return int(s[0] - '1')
}
