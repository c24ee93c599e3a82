package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label on each side.
type ProgressBar struct {
	Left    string
	Right   string
	Percent float64
	Width   int
}

// NewProgressBar creates a progress bar spanning width cells.
func NewProgressBar(left, right string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Left:    left,
		Right:   right,
		Percent: percent,
		Width:   width,
	}
}

// Filled returns how many cells of a bar of size n are filled.
func (p ProgressBar) Filled(n int) int {
	filled := int(float64(n) * p.Percent)
	return max(0, min(filled, n))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var left, right string
	if p.Left != "" {
		left = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Left) + " "
	}
	if p.Right != "" {
		right = " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Right)
	}

	barWidth := max(p.Width-lipgloss.Width(left)-lipgloss.Width(right), 4)
	filled := p.Filled(barWidth)

	return left +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		right
}
