package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an inline error line.
type TextInput struct {
	Model textinput.Model
	Label string
	err   string
}

// NewTextInput creates an unfocused input.
func NewTextInput(label, placeholder string, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if width > 0 {
		ti.SetWidth(width)
	}
	return TextInput{Model: ti, Label: label}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update forwards messages to the underlying input and clears any error
// once the user edits the value.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.err = ""
	}
	return t, cmd
}

// View renders the label, the input and the error line.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Label != "" {
		view = lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label) + "\n" + view
	}
	if t.err != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(t.err)
	}
	return view
}

// Value returns the input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// SetError shows msg under the input until the value changes.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Error returns the message currently shown under the input.
func (t TextInput) Error() string {
	return t.err
}

// Reset clears the value and the error.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.err = ""
}
