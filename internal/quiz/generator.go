package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/nookclass/internal/vocab"
)

const (
	// MinEntries is the smallest collection a quiz can be built from.
	MinEntries = 4

	// DefaultQuestions is the question count when the collection is large enough.
	DefaultQuestions = 5

	// OptionsPerQuestion is the number of choices shown per question.
	OptionsPerQuestion = 4

	distractorsPerQuestion = OptionsPerQuestion - 1
)

// ErrInsufficientData is returned when the collection is too small to quiz.
var ErrInsufficientData = errors.New("insufficient vocabulary for a quiz")

// Question asks the learner to pick the target among Options.
// Options holds the target exactly once.
type Question struct {
	ID      string
	Target  vocab.Entry
	Options []vocab.Entry
}

// CorrectIndex returns the position of the target in Options.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Word == q.Target.Word {
			return i
		}
	}
	return -1
}

// Generator builds question sets from a vocabulary collection.
type Generator struct {
	rng       *rand.Rand
	questions int
}

// NewGenerator creates a Generator. A nil rng uses a randomly seeded source.
// questions <= 0 uses DefaultQuestions.
func NewGenerator(rng *rand.Rand, questions int) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if questions <= 0 {
		questions = DefaultQuestions
	}
	return &Generator{rng: rng, questions: questions}
}

// Generate builds min(questions, len(entries)) questions, each with three
// distractors drawn from the rest of the collection.
func (g *Generator) Generate(entries []vocab.Entry) ([]Question, error) {
	if len(entries) < MinEntries {
		return nil, fmt.Errorf("%w: have %d words, need at least %d", ErrInsufficientData, len(entries), MinEntries)
	}

	count := min(g.questions, len(entries))
	targets := shuffled(g.rng, entries)[:count]

	questions := make([]Question, 0, count)
	for _, target := range targets {
		pool := lo.Filter(entries, func(e vocab.Entry, _ int) bool { return e.Word != target.Word })
		if len(pool) < distractorsPerQuestion {
			return nil, fmt.Errorf("%w: only %d distractors for %q", ErrInsufficientData, len(pool), target.Word)
		}
		distractors := shuffled(g.rng, pool)[:distractorsPerQuestion]

		options := append([]vocab.Entry{target}, distractors...)
		shuffle(g.rng, options)

		questions = append(questions, Question{
			ID:      uuid.NewString(),
			Target:  target,
			Options: options,
		})
	}
	return questions, nil
}

// shuffled returns a Fisher–Yates permuted copy of s.
func shuffled[T any](rng *rand.Rand, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	shuffle(rng, out)
	return out
}

func shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
