// Package notebook lists the saved vocabulary and handles export, import
// and starting a quiz.
package notebook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/router"
	"github.com/abhisek/nookclass/internal/screen"
	quizscreen "github.com/abhisek/nookclass/internal/screens/quiz"
	"github.com/abhisek/nookclass/internal/ui/components"
	"github.com/abhisek/nookclass/internal/ui/layout"
	"github.com/abhisek/nookclass/internal/ui/theme"
	"github.com/abhisek/nookclass/internal/vocab"
)

// NeedWordsMessage is shown when a quiz is requested with too few words.
const NeedWordsMessage = "You need at least 4 words to start a quiz!"

type mode int

const (
	modeList mode = iota
	modeExport
	modeImport
)

// entryHeight is the rendered height of one saved word.
const entryHeight = 3

// NotebookScreen shows the collection.
type NotebookScreen struct {
	env    *screen.Env
	cursor int
	mode   mode
	path   components.TextInput
	status string
	failed bool
}

var _ screen.Screen = (*NotebookScreen)(nil)
var _ screen.KeyHintProvider = (*NotebookScreen)(nil)
var _ screen.EscapeCapturer = (*NotebookScreen)(nil)

// New creates the notebook screen.
func New(env *screen.Env) *NotebookScreen {
	return &NotebookScreen{env: env}
}

func (n *NotebookScreen) Init() tea.Cmd { return nil }

func (n *NotebookScreen) Title() string { return "Nook's Notebook" }

func (n *NotebookScreen) CapturesEscape() bool { return n.mode != modeList }

func (n *NotebookScreen) KeyHints() []layout.KeyHint {
	if n.mode != modeList {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "X", Description: "Delete"},
		{Key: "E", Description: "Export"},
		{Key: "I", Description: "Import"},
		{Key: "Q", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (n *NotebookScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if n.mode != modeList {
			var cmd tea.Cmd
			n.path, cmd = n.path.Update(msg)
			return n, cmd
		}
		return n, nil
	}

	if n.mode != modeList {
		return n.handlePathKey(kmsg)
	}

	entries := n.env.State.Entries()
	switch kmsg.String() {
	case "up", "k":
		if n.cursor > 0 {
			n.cursor--
		}
	case "down", "j":
		if n.cursor < len(entries)-1 {
			n.cursor++
		}
	case "x", "delete":
		n.deleteCurrent(entries)
	case "e":
		return n, n.openPath(modeExport, "Export to file", vocab.ExportFilename)
	case "i":
		return n, n.openPath(modeImport, "Import from file", "")
	case "q":
		return n, n.startQuiz(entries)
	}
	return n, nil
}

func (n *NotebookScreen) handlePathKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		n.mode = modeList
		n.path.Blur()
		return n, nil
	case "enter":
		path := strings.TrimSpace(n.path.Value())
		if path == "" {
			n.path.SetError("Please enter a file path")
			return n, nil
		}
		var err error
		if n.mode == modeExport {
			err = n.export(path)
		} else {
			err = n.importFile(path)
		}
		if err != nil {
			n.path.SetError(err.Error())
			return n, nil
		}
		n.mode = modeList
		n.path.Blur()
		return n, nil
	}
	var cmd tea.Cmd
	n.path, cmd = n.path.Update(msg)
	return n, cmd
}

func (n *NotebookScreen) openPath(m mode, label, value string) tea.Cmd {
	n.mode = m
	n.status = ""
	n.path = components.NewTextInput(label, "path/to/file.json", 48)
	n.path.SetValue(value)
	n.path.Model.CursorEnd()
	return n.path.Focus()
}

func (n *NotebookScreen) deleteCurrent(entries []vocab.Entry) {
	if n.cursor >= len(entries) {
		return
	}
	word := entries[n.cursor].Word
	if _, err := n.env.State.DeleteWord(n.env.Ctx, word); err != nil {
		n.env.Logger.WithError(err).WithField("word", word).Error("delete failed")
		n.setStatus("Could not delete "+word, true)
		return
	}
	n.setStatus("Removed “"+word+"”", false)
	if n.cursor >= len(entries)-1 && n.cursor > 0 {
		n.cursor--
	}
}

func (n *NotebookScreen) export(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := n.env.State.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	n.env.Logger.WithField("path", path).Info("vocabulary exported")
	n.setStatus(fmt.Sprintf("Exported %d words to %s", n.env.State.CollectionSize(), filepath.Base(path)), false)
	return nil
}

func (n *NotebookScreen) importFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	added, err := n.env.State.ImportWords(n.env.Ctx, f)
	if err != nil {
		return err
	}
	n.setStatus(fmt.Sprintf("Imported %d new words", added), false)
	return nil
}

func (n *NotebookScreen) startQuiz(entries []vocab.Entry) tea.Cmd {
	questions, err := n.env.Quiz.Generate(entries)
	if errors.Is(err, quiz.ErrInsufficientData) {
		n.setStatus(NeedWordsMessage, true)
		return nil
	}
	if err != nil {
		n.setStatus(err.Error(), true)
		return nil
	}
	n.status = ""
	env := n.env
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quizscreen.New(env, questions)}
	}
}

func (n *NotebookScreen) setStatus(msg string, failed bool) {
	n.status = msg
	n.failed = failed
}

func (n *NotebookScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	entries := n.env.State.Entries()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Collection (%d)", len(entries))))
	b.WriteString("\n\n")

	footer := ""
	if n.mode != modeList {
		footer = "\n\n" + n.path.View()
	}
	if n.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if n.failed {
			style = style.Foreground(theme.Error)
		}
		footer += "\n\n" + style.Render(n.status)
	}

	if len(entries) == 0 {
		b.WriteString(theme.Hint.Render("No words collected yet! Look up a word while watching and press s to save it."))
	} else {
		avail := max(height-4-lipgloss.Height(footer), entryHeight)
		b.WriteString(n.renderEntries(entries, cw, avail/entryHeight))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String() + footer)
}

func (n *NotebookScreen) renderEntries(entries []vocab.Entry, cw, visible int) string {
	visible = max(visible, 1)
	start := max(n.cursor-visible/2, 0)
	end := min(start+visible, len(entries))
	start = max(end-visible, 0)

	var rows []string
	for i := start; i < end; i++ {
		e := entries[i]
		word := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(e.Word)
		pos := theme.Faded.Render(" (" + e.PartOfSpeech + ")")
		prefix := "  "
		if i == n.cursor {
			prefix = theme.Selected.Render("▸ ")
		}
		def := lipgloss.NewStyle().Width(cw - 4).MaxHeight(1).Foreground(theme.Text).Render(e.DefinitionEn)
		zh := lipgloss.NewStyle().Width(cw - 4).MaxHeight(1).Inherit(theme.Chinese).Render(e.DefinitionZh)
		rows = append(rows, prefix+word+pos+"\n  "+def+"\n  "+zh)
	}
	return strings.Join(rows, "\n")
}
