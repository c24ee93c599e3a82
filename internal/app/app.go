package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	clk "github.com/abhisek/nookclass/internal/player"
	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/router"
	"github.com/abhisek/nookclass/internal/screen"
	"github.com/abhisek/nookclass/internal/screens/home"
	playerscreen "github.com/abhisek/nookclass/internal/screens/player"
	"github.com/abhisek/nookclass/internal/shell"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/ui/layout"
)

// Options carries the dependencies the TUI runs against.
type Options struct {
	State         *shell.State
	Source        transcript.Source
	Lookup        screen.Lookuper
	Quiz          *quiz.Generator
	PollInterval  time.Duration
	FeedbackDelay time.Duration
	Topic         string
	Logger        logrus.FieldLogger

	// StartURL or StartDemo open the player on launch.
	StartURL  string
	StartDemo bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screen.Env
	router *router.Router
	poll   time.Duration
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	if opts.State == nil {
		opts.State = shell.New(nil, nil, opts.Logger)
	}
	if opts.Source == nil {
		opts.Source = transcript.StaticSource{}
	}
	if opts.Quiz == nil {
		opts.Quiz = quiz.NewGenerator(nil, 0)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = clk.DefaultPollInterval
	}
	if opts.Topic == "" {
		opts.Topic = transcript.DefaultTopic
	}

	env := &screen.Env{
		Ctx:           ctx,
		State:         opts.State,
		Source:        opts.Source,
		Lookup:        opts.Lookup,
		Quiz:          opts.Quiz,
		FeedbackDelay: opts.FeedbackDelay,
		Topic:         opts.Topic,
		Now:           time.Now,
		Logger:        opts.Logger,
	}
	m := AppModel{
		env:    env,
		router: router.New(home.New(env)),
		poll:   opts.PollInterval,
	}

	switch {
	case opts.StartDemo:
		env.State.LoadDemo()
		m.start = m.router.Push(playerscreen.New(env))
	case opts.StartURL != "":
		if err := env.State.LoadVideo(opts.StartURL); err != nil {
			opts.Logger.WithError(err).WithField("url", opts.StartURL).Warn("ignoring start URL")
			break
		}
		m.start = m.router.Push(playerscreen.New(env))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.start)
}

func (m AppModel) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return screen.TickMsg(t) })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.TickMsg:
		return m, tea.Batch(m.tick(), m.router.Update(msg))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+g":
			m.env.State.Reset()
			m.router.Reset()
			return m, nil
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.env.State.CollectionSize(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+G", Description: "Home"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
