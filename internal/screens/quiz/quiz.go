// Package quiz is the multiple-choice practice screen.
package quiz

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	qz "github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/router"
	"github.com/abhisek/nookclass/internal/screen"
	"github.com/abhisek/nookclass/internal/ui/components"
	"github.com/abhisek/nookclass/internal/ui/layout"
	"github.com/abhisek/nookclass/internal/ui/theme"
	"github.com/abhisek/nookclass/internal/vocab"
)

// feedbackDoneMsg ends the feedback pause for question Index.
type feedbackDoneMsg struct {
	Index int
}

// QuizScreen runs one quiz session.
type QuizScreen struct {
	session *qz.Session
	options components.OptionList
	delay   time.Duration
	logger  logrus.FieldLogger
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New starts a session over questions.
func New(env *screen.Env, questions []qz.Question) *QuizScreen {
	delay := env.FeedbackDelay
	if delay <= 0 {
		delay = qz.DefaultFeedbackDelay
	}
	s := &QuizScreen{session: qz.NewSession(), delay: delay, logger: env.Logger}
	s.session.Start(questions)
	s.resetOptions()
	return s
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string { return "Pop Quiz!" }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case qz.PhaseAwaitingAnswer:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case qz.PhaseShowingFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
}

func (s *QuizScreen) resetOptions() {
	q, ok := s.session.Current()
	if !ok {
		s.options = components.NewOptionList(nil)
		return
	}
	s.options = components.NewOptionList(lo.Map(q.Options, func(e vocab.Entry, _ int) string {
		return e.DefinitionZh
	}))
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if msg.Index == s.session.Index() {
			s.advance()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch s.session.Phase() {
		case qz.PhaseAwaitingAnswer:
			var chosen int
			s.options, chosen = s.options.Update(msg)
			if chosen >= 0 {
				return s, s.answer(chosen)
			}
		case qz.PhaseShowingFeedback:
			if msg.String() == "enter" {
				s.advance()
			}
		case qz.PhaseCompleted:
			if msg.String() == "enter" {
				return s, s.close()
			}
		}
	}
	return s, nil
}

func (s *QuizScreen) answer(i int) tea.Cmd {
	out, ok := s.session.Answer(i)
	if !ok {
		return nil
	}
	s.logger.WithFields(logrus.Fields{
		"question": s.session.Index() + 1,
		"correct":  out.Correct,
	}).Debug("quiz answer")

	idx := s.session.Index()
	return tea.Tick(s.delay, func(time.Time) tea.Msg { return feedbackDoneMsg{Index: idx} })
}

func (s *QuizScreen) advance() {
	if !s.session.Advance() {
		return
	}
	s.resetOptions()
	if sum, ok := s.session.Summary(); ok {
		s.logger.WithFields(logrus.Fields{
			"score":   sum.Score,
			"total":   sum.Total,
			"percent": sum.Percent,
		}).Info("quiz completed")
	}
}

func (s *QuizScreen) close() tea.Cmd {
	s.session.Close()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if sum, ok := s.session.Summary(); ok {
		return components.Frame(renderSummary(sum, cw), width, height)
	}

	q, ok := s.session.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	info := fmt.Sprintf("Question %d/%d", s.session.Index()+1, s.session.Total())
	score := fmt.Sprintf("Score: %d", s.session.Score())
	pct := float64(s.session.Index()) / float64(max(s.session.Total(), 1))
	b.WriteString(components.NewProgressBar(info, score, pct, cw).View())
	b.WriteString("\n\n")

	prompt := theme.Faded.Render("Translate this") + "\n" +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(q.Target.Word)
	b.WriteString(components.Card(components.Center(prompt, cw-4), cw, true))
	b.WriteString("\n\n")

	var mark func(int) qz.OptionMark
	if s.session.Phase() == qz.PhaseShowingFeedback {
		mark = s.session.Mark
	}
	b.WriteString(s.options.View(cw, mark))

	if mark != nil {
		b.WriteString("\n")
		if s.session.Mark(s.session.Selected()) == qz.MarkCorrect {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite. It means " + q.Target.DefinitionZh))
		}
	}

	return components.Frame(b.String(), width, height)
}

func renderSummary(sum qz.Summary, cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Quiz Complete!")
	score := fmt.Sprintf("You scored %s / %d  (%d%%)",
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprint(sum.Score)),
		sum.Total, sum.Percent)
	bar := components.NewProgressBar("", "", float64(sum.Percent)/100, cw/2).View()
	return components.Center(title+"\n\n"+score+"\n\n"+bar+"\n\n"+theme.Hint.Render("Press esc to close"), cw)
}
