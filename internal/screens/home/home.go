// Package home is the landing screen: paste a link, load the demo or open
// the notebook.
package home

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/router"
	"github.com/abhisek/nookclass/internal/screen"
	"github.com/abhisek/nookclass/internal/screens/notebook"
	playerscreen "github.com/abhisek/nookclass/internal/screens/player"
	"github.com/abhisek/nookclass/internal/ui/components"
	"github.com/abhisek/nookclass/internal/ui/layout"
	"github.com/abhisek/nookclass/internal/ui/theme"
	"github.com/abhisek/nookclass/internal/video"
)

// InvalidURLMessage is shown under the input for unparseable links.
const InvalidURLMessage = "Please enter a valid YouTube URL"

const titleFull = `╔╗╔┌─┐┌─┐┬┌─  ╔═╗┬  ┌─┐┌─┐┌─┐
║║║│ ││ │├┴┐  ║  │  ├─┤└─┐└─┐
╝╚╝└─┘└─┘┴ ┴  ╚═╝┴─┘┴ ┴└─┘└─┘`

const titleCompact = "Nook's Classroom"

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env   *screen.Env
	menu  components.Menu
	input components.TextInput
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.EscapeCapturer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{
		env:   env,
		input: components.NewTextInput("", "Paste YouTube Link here...", 48),
	}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PASTE LINK", Key: "u", Action: h.focusInput},
		{Label: "DEMO VIDEO", Key: "d", Action: h.loadDemo},
		{Label: "NOTEBOOK", Key: "n", Action: h.openNotebook},
		{Label: "EXIT", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) CapturesEscape() bool {
	return h.input.Focused()
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.input.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Watch"},
			{Key: "Esc", Description: "Cancel"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "U", Description: "Paste link"},
		{Key: "D", Description: "Demo"},
		{Key: "N", Description: "Notebook"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// A paste lands in the link field even before it is focused.
	if p, ok := msg.(tea.PasteMsg); ok && !h.input.Focused() {
		cmd := h.input.Focus()
		h.input.SetValue(strings.TrimSpace(p.Content))
		h.input.Model.CursorEnd()
		return h, cmd
	}

	if !h.input.Focused() {
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return h, h.loadVideo()
		case "esc":
			h.input.Blur()
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) focusInput() tea.Cmd {
	return h.input.Focus()
}

func (h *HomeScreen) loadVideo() tea.Cmd {
	url := strings.TrimSpace(h.input.Value())
	if err := h.env.State.LoadVideo(url); err != nil {
		if errors.Is(err, video.ErrInvalidInput) {
			h.input.SetError(InvalidURLMessage)
		} else {
			h.input.SetError(err.Error())
		}
		return nil
	}
	h.input.Blur()
	return h.push(playerscreen.New(h.env))
}

func (h *HomeScreen) loadDemo() tea.Cmd {
	h.env.State.LoadDemo()
	h.input.SetValue(h.env.State.Input())
	return h.push(playerscreen.New(h.env))
}

func (h *HomeScreen) openNotebook() tea.Cmd {
	return h.push(notebook.New(h.env))
}

func (h *HomeScreen) push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string

	title := titleFull
	if compact {
		title = titleCompact
	}
	sections = append(sections, components.Center(theme.Title.Render(title), cw))

	if !compact {
		sections = append(sections, components.Center(RenderMascot(VariantFor(h.env.State.CollectionSize())), cw))
	}

	welcome := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Ready to learn English?") + "\n" +
		theme.Faded.Render("Watch videos, get dual subtitles, and select any word to see Nook's definitions!")
	sections = append(sections, components.Center(welcome, cw))

	sections = append(sections, components.Card(h.input.View(), cw, h.input.Focused()))
	sections = append(sections, h.menu.View(cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
