// Package player is the watch screen: the synchronized transcript, the
// word cursor and the dictionary card.
package player

import (
	"slices"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/nookclass/internal/lookup"
	clk "github.com/abhisek/nookclass/internal/player"
	"github.com/abhisek/nookclass/internal/router"
	"github.com/abhisek/nookclass/internal/screen"
	"github.com/abhisek/nookclass/internal/screens/notebook"
	"github.com/abhisek/nookclass/internal/shell"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/ui/components"
	"github.com/abhisek/nookclass/internal/ui/layout"
)

// PlayerScreen implements screen.Screen for a loaded (or loading) video.
type PlayerScreen struct {
	env   *screen.Env
	keys  keyMap
	clock *clk.Clock

	line   int  // cursor line
	tok    int  // cursor token within line, an index into Tokenize
	follow bool // cursor tracks the active line while playing

	save   components.Button
	status string
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)
var _ screen.EscapeCapturer = (*PlayerScreen)(nil)

// New creates the player screen. The shell state should already be
// LOADING; Init starts fetching the transcript.
func New(env *screen.Env) *PlayerScreen {
	p := &PlayerScreen{env: env, keys: defaultKeys(), follow: true}
	p.save = components.Button{Label: "Save word", DoneLabel: "✓ Saved", Key: "s", OnPress: saveCmd}
	return p
}

func (p *PlayerScreen) Init() tea.Cmd {
	if p.env.State.Status() != shell.Loading {
		return nil
	}
	return p.loadCmd()
}

func (p *PlayerScreen) Title() string {
	if p.env.State.IsDemo() {
		return "Demo"
	}
	return "Watch"
}

// CapturesEscape is always true: esc closes the word card first and
// only then leaves, resetting the shell to IDLE.
func (p *PlayerScreen) CapturesEscape() bool { return true }

func (p *PlayerScreen) KeyHints() []layout.KeyHint {
	k := p.keys
	switch p.env.State.Status() {
	case shell.Loading:
		return hints(k.Close)
	case shell.Error:
		return hints(k.Retry, k.Close)
	}
	if _, ok := p.env.State.Selected(); ok && !p.save.Disabled {
		return hints(k.Save, k.Lookup, k.Play, k.Close)
	}
	return hints(k.PrevWord, k.PrevLine, k.Lookup, k.Play, k.Jump, k.Notebook, k.Close)
}

// loadCmd fetches the transcript for the current video and holds the
// result back until the loading delay has passed.
func (p *PlayerScreen) loadCmd() tea.Cmd {
	st := p.env.State
	ctx, src, topic := p.env.Ctx, p.env.Source, p.env.Topic
	id, delay := st.VideoID(), st.LoadDelay()
	logger := p.env.Logger

	return func() tea.Msg {
		start := time.Now()
		lines, err := src.Transcript(ctx, id, topic)
		if wait := delay - time.Since(start); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return transcriptLoadedMsg{VideoID: id, Err: ctx.Err()}
			}
		}
		if err != nil {
			logger.WithError(err).WithField("video_id", id).Error("transcript load failed")
		}
		return transcriptLoadedMsg{VideoID: id, Lines: lines, Err: err}
	}
}

func (p *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transcriptLoadedMsg:
		return p.handleLoaded(msg)
	case screen.TickMsg:
		p.handleTick()
		return p, nil
	case lookupDoneMsg:
		p.handleLookupDone(msg)
		return p, nil
	case saveWordMsg:
		p.handleSave()
		return p, nil
	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayerScreen) handleLoaded(msg transcriptLoadedMsg) (screen.Screen, tea.Cmd) {
	st := p.env.State
	if msg.VideoID != st.VideoID() || st.Status() != shell.Loading {
		return p, nil
	}
	if msg.Err != nil {
		st.Failed(msg.Err)
		return p, nil
	}

	st.Loaded(msg.Lines)
	duration := time.Duration(transcript.Duration(msg.Lines) * float64(time.Second))
	p.clock = clk.NewClock(duration, p.env.Now)
	p.line, p.follow = 0, true
	p.tok = firstClickable(msg.Lines, 0)
	p.clock.Play()

	p.env.Logger.WithFields(logrus.Fields{
		"video_id": msg.VideoID,
		"lines":    len(msg.Lines),
	}).Info("transcript ready")
	return p, nil
}

func (p *PlayerScreen) handleTick() {
	if p.clock == nil {
		return
	}
	st := p.env.State
	st.SetTime(p.clock.Seconds())
	if !p.follow || !p.clock.Playing() {
		return
	}
	if active := st.ActiveLine(); active >= 0 && active != p.line {
		p.line = active
		p.tok = firstClickable(st.Lines(), active)
	}
}

func (p *PlayerScreen) handleLookupDone(msg lookupDoneMsg) {
	st := p.env.State
	if !st.LookupDone(msg.Gen, msg.Entry) {
		return
	}
	p.save.Disabled = st.Contains(msg.Entry.Word)
}

func (p *PlayerScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	st := p.env.State
	k := p.keys

	switch st.Status() {
	case shell.Loading:
		if key.Matches(msg, k.Close) {
			st.Reset()
			return p, popCmd
		}
		return p, nil
	case shell.Error:
		switch {
		case key.Matches(msg, k.Retry):
			if err := st.LoadVideo(st.Input()); err != nil {
				return p, nil
			}
			return p, p.loadCmd()
		case key.Matches(msg, k.Close):
			st.Reset()
			return p, popCmd
		}
		return p, nil
	case shell.Ready:
	default:
		return p, nil
	}

	if _, ok := st.Selected(); ok {
		var cmd tea.Cmd
		if p.save, cmd = p.save.Update(msg); cmd != nil {
			return p, cmd
		}
	}

	lines := st.Lines()
	switch {
	case key.Matches(msg, k.Close):
		_, selected := st.Selected()
		if !selected && !st.LookupLoading() {
			st.Reset()
			return p, popCmd
		}
		st.ClearSelection()
		p.status = ""
	case key.Matches(msg, k.PrevWord):
		p.moveWord(lines, -1)
	case key.Matches(msg, k.NextWord):
		p.moveWord(lines, 1)
	case key.Matches(msg, k.PrevLine):
		p.moveLine(lines, -1)
	case key.Matches(msg, k.NextLine):
		p.moveLine(lines, 1)
	case key.Matches(msg, k.Play):
		p.clock.Toggle()
		if p.clock.Playing() {
			p.follow = true
		}
	case key.Matches(msg, k.Jump):
		if p.line < len(lines) {
			p.clock.Seek(time.Duration(lines[p.line].StartTime * float64(time.Second)))
			st.SetTime(p.clock.Seconds())
			p.follow = true
		}
	case key.Matches(msg, k.Lookup):
		return p, p.lookupCmd()
	case key.Matches(msg, k.Notebook):
		p.clock.Pause()
		env := p.env
		return p, func() tea.Msg { return router.PushScreenMsg{Screen: notebook.New(env)} }
	}
	return p, nil
}

func popCmd() tea.Msg { return router.PopScreenMsg{} }

// lookupCmd looks up the word under the cursor. Playback pauses while the
// card is open.
func (p *PlayerScreen) lookupCmd() tea.Cmd {
	st := p.env.State
	lines := st.Lines()
	if p.line >= len(lines) {
		return nil
	}
	word, sentence, ok := transcript.Click(lines[p.line], p.tok)
	if !ok {
		return nil
	}

	p.clock.Pause()
	p.status = ""
	p.save.Disabled = false
	gen := st.BeginLookup(word)

	ctx, svc := p.env.Ctx, p.env.Lookup
	return func() tea.Msg {
		return lookupDoneMsg{lookup.Result{Gen: gen, Entry: svc.Lookup(ctx, word, sentence)}}
	}
}

func saveCmd() tea.Cmd {
	return func() tea.Msg { return saveWordMsg{} }
}

func (p *PlayerScreen) handleSave() {
	st := p.env.State
	e, ok := st.Selected()
	if !ok {
		return
	}
	saved, err := st.SaveSelected(p.env.Ctx)
	switch {
	case err != nil:
		p.env.Logger.WithError(err).WithField("word", e.Word).Error("save failed")
		p.status = "Could not save: " + err.Error()
	case saved:
		p.status = "Saved “" + e.Word + "” to your notebook"
	}
	p.save.Disabled = st.Contains(e.Word)
}

// moveWord steps the cursor to the previous or next clickable token,
// crossing into the neighbouring line at either end.
func (p *PlayerScreen) moveWord(lines []transcript.Line, dir int) {
	if len(lines) == 0 {
		return
	}
	p.follow = false
	idx := transcript.ClickableIndexes(transcript.Tokenize(lines[p.line].TextEn))
	pos := slices.Index(idx, p.tok)
	next := pos + dir
	if pos >= 0 && next >= 0 && next < len(idx) {
		p.tok = idx[next]
		return
	}

	for l := p.line + dir; l >= 0 && l < len(lines); l += dir {
		idx := transcript.ClickableIndexes(transcript.Tokenize(lines[l].TextEn))
		if len(idx) == 0 {
			continue
		}
		p.line = l
		if dir > 0 {
			p.tok = idx[0]
		} else {
			p.tok = idx[len(idx)-1]
		}
		return
	}
}

func (p *PlayerScreen) moveLine(lines []transcript.Line, dir int) {
	next := p.line + dir
	if next < 0 || next >= len(lines) {
		return
	}
	p.follow = false
	p.line = next
	p.tok = firstClickable(lines, next)
}

func firstClickable(lines []transcript.Line, i int) int {
	if i < 0 || i >= len(lines) {
		return 0
	}
	if idx := transcript.ClickableIndexes(transcript.Tokenize(lines[i].TextEn)); len(idx) > 0 {
		return idx[0]
	}
	return 0
}

