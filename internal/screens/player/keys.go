package player

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/nookclass/internal/ui/layout"
)

type keyMap struct {
	PrevWord key.Binding
	NextWord key.Binding
	PrevLine key.Binding
	NextLine key.Binding
	Lookup   key.Binding
	Play     key.Binding
	Jump     key.Binding
	Save     key.Binding
	Notebook key.Binding
	Close    key.Binding
	Retry    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		PrevWord: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→", "Word")),
		NextWord: key.NewBinding(key.WithKeys("right", "l")),
		PrevLine: key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Line")),
		NextLine: key.NewBinding(key.WithKeys("down", "j")),
		Lookup:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Look up")),
		Play:     key.NewBinding(key.WithKeys("space", " "), key.WithHelp("Space", "Play/Pause")),
		Jump:     key.NewBinding(key.WithKeys("g"), key.WithHelp("G", "Jump to line")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("S", "Save word")),
		Notebook: key.NewBinding(key.WithKeys("n"), key.WithHelp("N", "Notebook")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
		Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Retry")),
	}
}

func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
