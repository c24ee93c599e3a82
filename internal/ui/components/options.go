package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/ui/theme"
)

// OptionList is a numbered multiple-choice selector. It only moves the
// cursor and reports the chosen index; correctness lives in quiz.Session.
type OptionList struct {
	Options []string
	Cursor  int
}

// NewOptionList creates a selector over options.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options}
}

// Update moves the cursor on ↑/↓ and returns the chosen index on enter or
// a digit key, or -1 when nothing was chosen.
func (o OptionList) Update(msg tea.Msg) (OptionList, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return o, -1
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter":
		return o, o.Cursor
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(o.Options) {
			o.Cursor = i
			return o, i
		}
	}
	return o, -1
}

// View renders the options. mark, when non-nil, colours each option by
// its feedback state and hides the cursor.
func (o OptionList) View(width int, mark func(int) quiz.OptionMark) string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if mark == nil && i == o.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Width(width)
		switch {
		case mark != nil && mark(i) == quiz.MarkCorrect:
			style = style.Inherit(theme.Correct)
			line += "  ✓"
		case mark != nil && mark(i) == quiz.MarkWrong:
			style = style.Inherit(theme.Incorrect)
			line += "  ✗"
		case mark != nil:
			style = style.Inherit(theme.Faded)
		case i == o.Cursor:
			style = style.Inherit(theme.Selected)
		default:
			style = style.Inherit(theme.Unselected)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
