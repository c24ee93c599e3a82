package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/shell"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/ui/components"
	"github.com/abhisek/nookclass/internal/ui/layout"
	"github.com/abhisek/nookclass/internal/ui/theme"
	"github.com/abhisek/nookclass/internal/vocab"
)

// lineHeight is the rendered height of one transcript card.
const lineHeight = 4

func (p *PlayerScreen) View(width, height int) string {
	switch p.env.State.Status() {
	case shell.Loading:
		return p.renderLoading(width, height)
	case shell.Error:
		return p.renderError(width, height)
	case shell.Ready:
		return p.renderReady(width, height)
	}
	return ""
}

func (p *PlayerScreen) renderLoading(width, height int) string {
	st := p.env.State
	meta := st.Meta()
	body := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("✈ Flying to the island...") +
		"\n\n" + theme.Faded.Render(meta.Title+" · "+meta.ID) +
		"\n" + theme.Hint.Render(meta.Thumbnail)
	return components.Frame(body, width, height)
}

func (p *PlayerScreen) renderError(width, height int) string {
	msg := "Could not load the transcript. Please try the Demo Video first."
	if err := p.env.State.Err(); err != nil {
		msg += "\n\n" + theme.Faded.Render(err.Error())
	}
	body := theme.Incorrect.Render("Oh no!") + "\n\n" + msg +
		"\n\n" + theme.Hint.Render("Press r to retry or esc to go back")
	return components.Frame(body, width, height)
}

func (p *PlayerScreen) renderReady(width, height int) string {
	header := p.renderHeader(width - 2)
	bodyHeight := max(height-lipgloss.Height(header)-1, lineHeight)

	var body string
	if layout.IsCompactWidth(width) {
		cardHeight := min(11, bodyHeight/2)
		list := p.renderTranscript(width-2, bodyHeight-cardHeight)
		body = list + "\n" + p.renderCard(width-2)
	} else {
		cardWidth := width * 2 / 5
		list := p.renderTranscript(width-cardWidth-3, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", p.renderCard(cardWidth))
	}
	return header + "\n" + body
}

func (p *PlayerScreen) renderHeader(width int) string {
	st := p.env.State
	meta := st.Meta()

	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(meta.Title) +
		"  " + theme.Faded.Render(meta.ID)

	state := "▶"
	if p.clock != nil && !p.clock.Playing() {
		state = "❚❚"
	}

	var pos, total float64
	if p.clock != nil {
		pos, total = p.clock.Seconds(), p.clock.Duration().Seconds()
	}
	pct := 0.0
	if total > 0 {
		pct = pos / total
	}
	bar := components.NewProgressBar(state, formatClock(pos)+" / "+formatClock(total), pct, width).View()

	out := title + "\n" + bar
	if p.status != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(p.status)
	}
	return out
}

// renderTranscript draws a window of lines centered on the cursor line.
func (p *PlayerScreen) renderTranscript(width, height int) string {
	st := p.env.State
	lines := st.Lines()
	if len(lines) == 0 {
		return theme.Hint.Render("Waiting for video...")
	}

	visible := max(height/lineHeight, 1)
	start := max(p.line-visible/2, 0)
	end := min(start+visible, len(lines))
	start = max(end-visible, 0)

	active := st.ActiveLine()
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, p.renderLine(lines[i], i, i == active, width))
	}
	return strings.Join(cards, "\n")
}

func (p *PlayerScreen) renderLine(line transcript.Line, i int, active bool, width int) string {
	tokens := transcript.Tokenize(line.TextEn)
	words := make([]string, len(tokens))
	for j, t := range tokens {
		switch {
		case i == p.line && j == p.tok && t.Clickable():
			words[j] = theme.Cursor.Render(t.Text)
		case active:
			words[j] = theme.Body.Bold(true).Render(t.Text)
		default:
			words[j] = theme.Faded.Render(t.Text)
		}
	}

	text := strings.Join(words, " ") + "\n" + theme.Chinese.Render(line.TextZh)
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	return style.Width(width).Render(text)
}

func (p *PlayerScreen) renderCard(width int) string {
	st := p.env.State
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Dictionary")

	var body string
	e, ok := st.Selected()
	switch {
	case st.LookupLoading():
		body = theme.Hint.Render("Looking up “" + st.LookupWord() + "”…")
	case ok:
		body = renderEntry(e, width-4) + "\n\n" + p.save.View()
	default:
		body = theme.Hint.Render("Move to a word with ←/→ and press Enter to look it up.")
	}
	return theme.Card.Width(width).Render(heading + "\n\n" + body)
}

func renderEntry(e vocab.Entry, width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(e.Word))
	if e.IPA != "" {
		b.WriteString("  " + theme.Faded.Render(e.IPA))
	}
	b.WriteString("  " + theme.Faded.Render("• "+e.PartOfSpeech))
	b.WriteString("\n\n")

	wrap := lipgloss.NewStyle().Width(width)
	b.WriteString(wrap.Inherit(theme.Body).Render(e.DefinitionEn))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(theme.Chinese).Render(e.DefinitionZh))
	b.WriteString("\n\n")
	b.WriteString(theme.Faded.Render("Example"))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(theme.Body).Italic(true).Render(fmt.Sprintf("“%s”", e.ExampleEn)))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(theme.Chinese).Render(e.ExampleZh))
	return b.String()
}

func formatClock(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
