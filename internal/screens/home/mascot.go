package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle      MascotVariant = iota // empty notebook
	MascotReading                        // some words saved
	MascotQuizReady                      // enough words for a quiz
)

const mascotIdle = `  ,--.
 ( o o )
  \ ~ /
 /|   |\
  |___|`

const mascotReading = `  ,--.
 ( ^ ^ )
  \ ~ /
 /|[=]|\
  |___|`

const mascotQuizReady = `  ,--.  ✎
 ( ★ ★ )
  \ ▽ /
 /|[=]|\
  |___|`

// VariantFor picks the mascot for a collection of n words.
func VariantFor(n int) MascotVariant {
	switch {
	case n >= quiz.MinEntries:
		return MascotQuizReady
	case n > 0:
		return MascotReading
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Wood
	switch v {
	case MascotReading:
		art, fg = mascotReading, theme.Primary
	case MascotQuizReady:
		art, fg = mascotQuizReady, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
