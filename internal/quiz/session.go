package quiz

import "time"

// DefaultFeedbackDelay is how long answer feedback stays on screen.
const DefaultFeedbackDelay = 1500 * time.Millisecond

// Phase is the state of a quiz session.
type Phase int

const (
	PhaseNotStarted      Phase = iota
	PhaseAwaitingAnswer        // in progress, waiting for a choice
	PhaseShowingFeedback       // in progress, showing the result of a choice
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseShowingFeedback:
		return "showing-feedback"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// InProgress reports whether p is one of the in-progress sub-states.
func (p Phase) InProgress() bool {
	return p == PhaseAwaitingAnswer || p == PhaseShowingFeedback
}

// OptionMark tells the UI how to highlight an option during feedback.
type OptionMark int

const (
	MarkNeutral OptionMark = iota
	MarkCorrect
	MarkWrong
)

// Outcome is the result of a single answer.
type Outcome struct {
	Correct bool
	Chosen  int
	Answer  int
}

// Summary is the final result of a completed session.
type Summary struct {
	Score   int
	Total   int
	Percent int
}

// Session tracks progress through a fixed question set.
// The zero value is a session in PhaseNotStarted.
type Session struct {
	questions []Question
	index     int
	score     int
	selected  int
	phase     Phase
}

// NewSession returns a session that has not started.
func NewSession() *Session {
	return &Session{selected: -1}
}

// Start begins a session over questions, resetting score, index and selection.
func (s *Session) Start(questions []Question) {
	s.questions = questions
	s.index = 0
	s.score = 0
	s.selected = -1
	s.phase = PhaseAwaitingAnswer
	if len(questions) == 0 {
		s.phase = PhaseCompleted
	}
}

// Answer records the learner's choice for the current question.
// It returns false without changing anything when the session is not
// awaiting an answer, which makes repeated submissions no-ops.
func (s *Session) Answer(option int) (Outcome, bool) {
	if s.phase != PhaseAwaitingAnswer {
		return Outcome{}, false
	}
	q := s.questions[s.index]
	if option < 0 || option >= len(q.Options) {
		return Outcome{}, false
	}

	correct := q.Options[option].Word == q.Target.Word
	if correct {
		s.score++
	}
	s.selected = option
	s.phase = PhaseShowingFeedback

	return Outcome{Correct: correct, Chosen: option, Answer: q.CorrectIndex()}, true
}

// Advance moves past feedback to the next question, or completes the
// session after the last one. It is a no-op outside PhaseShowingFeedback.
func (s *Session) Advance() bool {
	if s.phase != PhaseShowingFeedback {
		return false
	}
	if s.index < len(s.questions)-1 {
		s.index++
		s.selected = -1
		s.phase = PhaseAwaitingAnswer
		return true
	}
	s.phase = PhaseCompleted
	return true
}

// Close discards the session from any state.
func (s *Session) Close() {
	*s = Session{selected: -1}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Index returns the zero-based current question index.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Selected returns the chosen option for the current question, or -1
// when nothing has been chosen yet.
func (s *Session) Selected() int {
	if s.phase != PhaseShowingFeedback {
		return -1
	}
	return s.selected
}

// Current returns the active question.
func (s *Session) Current() (Question, bool) {
	if !s.phase.InProgress() {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Mark returns how option i of the current question should be shown.
// Marks are only non-neutral while feedback is showing.
func (s *Session) Mark(i int) OptionMark {
	if s.phase != PhaseShowingFeedback {
		return MarkNeutral
	}
	q := s.questions[s.index]
	if i < 0 || i >= len(q.Options) {
		return MarkNeutral
	}
	switch {
	case q.Options[i].Word == q.Target.Word:
		return MarkCorrect
	case i == s.selected:
		return MarkWrong
	default:
		return MarkNeutral
	}
}

// Summary returns the final result. ok is false until the session completes.
func (s *Session) Summary() (Summary, bool) {
	if s.phase != PhaseCompleted {
		return Summary{}, false
	}
	sum := Summary{Score: s.score, Total: len(s.questions)}
	if sum.Total > 0 {
		sum.Percent = sum.Score * 100 / sum.Total
	}
	return sum, true
}
