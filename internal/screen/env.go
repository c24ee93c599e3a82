package screen

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/shell"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/vocab"
)

// Lookuper resolves a word to a dictionary entry. lookup.Service
// satisfies it.
type Lookuper interface {
	Lookup(ctx context.Context, word, sentence string) vocab.Entry
}

// Env carries the shared state and services every screen works against.
type Env struct {
	Ctx           context.Context
	State         *shell.State
	Source        transcript.Source
	Lookup        Lookuper
	Quiz          *quiz.Generator
	FeedbackDelay time.Duration
	Topic         string
	Now           func() time.Time
	Logger        logrus.FieldLogger
}

// TickMsg is the playback poll tick. The app schedules it and forwards
// it to the active screen.
type TickMsg time.Time
