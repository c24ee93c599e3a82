package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nookclass/internal/ui/theme"
)

// Button is a keyboard-triggered action rendered as a pill. A disabled
// button shows DoneLabel and ignores its key.
type Button struct {
	Label     string
	DoneLabel string
	Key       string
	Disabled  bool
	OnPress   func() tea.Cmd
}

// NewButton creates a button fired by key.
func NewButton(label, key string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Key:     key,
		OnPress: onPress,
	}
}

// Update fires OnPress when the button's key is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if b.Disabled || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == b.Key {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Disabled {
		label := b.DoneLabel
		if label == "" {
			label = b.Label
		}
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render("[" + b.Key + "] " + b.Label)
}
