// Package layout composes the app frame: the header with the collection
// count, the active screen and the key hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// hintGap separates key hints in the footer.
const hintGap = "   "

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// IsCompactWidth reports whether side-by-side panels should stack.
func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }

// IsCompactHeight reports whether decorative elements such as the mascot
// should be dropped.
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nThe island needs at least %d x %d.\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar is the rounded strip used for both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the brand on the left, the screen title centered and
// the collection size on the right.
func RenderHeader(title string, collection int, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  NookClass")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("Collection (%d)", collection))

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter lists hints in order, dropping the ones that no longer fit
// on a single line. Screens put their most important hints first.
func RenderFooter(hints []KeyHint, width int) string {
	avail := max(width-6, 0)
	line := " "
	shown := 0
	for _, h := range hints {
		part := h.render()
		if shown > 0 {
			part = hintGap + part
		}
		if lipgloss.Width(line)+lipgloss.Width(part) > avail {
			break
		}
		line += part
		shown++
	}
	if shown < len(hints) && lipgloss.Width(line)+2 <= avail {
		line += " " + theme.Hint.Render("…")
	}
	return bar(" "+line, width)
}

// RenderFrame stacks header, content and footer into exactly height rows.
// Content taller than the space between them is cut off at the bottom.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content = lipgloss.NewStyle().
		Width(width).
		Height(body).
		MaxHeight(body).
		Render(content)
	return header + "\n" + content + "\n" + footer
}
