package player

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/nookclass/internal/router"
	"github.com/abhisek/nookclass/internal/screen"
	"github.com/abhisek/nookclass/internal/screens/notebook"
	"github.com/abhisek/nookclass/internal/shell"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/vocab"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// fakeSource returns lines or err for every video.
type fakeSource struct {
	lines []transcript.Line
	err   error
	calls int
}

func (f *fakeSource) Transcript(_ context.Context, _, _ string) ([]transcript.Line, error) {
	f.calls++
	return f.lines, f.err
}

// fakeLookup echoes the word back as a dictionary entry.
type fakeLookup struct {
	words []string
}

func (f *fakeLookup) Lookup(_ context.Context, word, _ string) vocab.Entry {
	f.words = append(f.words, word)
	return vocab.Entry{Word: word, PartOfSpeech: "noun", DefinitionEn: word + " def", DefinitionZh: word + " 中"}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestEnv(src transcript.Source) (*screen.Env, *fakeLookup, *fakeClock) {
	st := shell.New(nil, nil, nil)
	st.SetLoadDelays(0, 0)
	lk := &fakeLookup{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	return &screen.Env{
		Ctx:    context.Background(),
		State:  st,
		Source: src,
		Lookup: lk,
		Now:    clock.now,
		Logger: discardLogger(),
	}, lk, clock
}

// loadedPlayer returns a player that has finished loading the demo.
func loadedPlayer(t *testing.T) (*PlayerScreen, *fakeLookup, *fakeClock) {
	t.Helper()
	env, lk, clock := newTestEnv(&fakeSource{lines: transcript.Demo()})
	env.State.LoadDemo()
	p := New(env)
	cmd := p.Init()
	if cmd == nil {
		t.Fatal("Init should start loading")
	}
	p.Update(cmd())
	if env.State.Status() != shell.Ready {
		t.Fatalf("status = %v, want READY", env.State.Status())
	}
	return p, lk, clock
}

func TestLoad_Success(t *testing.T) {
	p, _, _ := loadedPlayer(t)
	if !p.clock.Playing() {
		t.Error("playback should start once the transcript is ready")
	}
	if p.clock.Duration() != 27*time.Second {
		t.Errorf("duration = %v, want 27s", p.clock.Duration())
	}
	if p.Title() != "Demo" {
		t.Errorf("Title = %q", p.Title())
	}
}

func TestLoad_ErrorAndRetry(t *testing.T) {
	src := &fakeSource{err: errors.New("offline")}
	env, _, _ := newTestEnv(src)
	if err := env.State.LoadVideo("https://youtu.be/dQw4w9WgXcQ"); err != nil {
		t.Fatal(err)
	}
	p := New(env)
	p.Update(p.Init()())

	if env.State.Status() != shell.Error {
		t.Fatalf("status = %v, want ERROR", env.State.Status())
	}
	if !p.CapturesEscape() {
		t.Error("error view should capture esc")
	}
	if !strings.Contains(p.View(100, 30), "Could not load the transcript") {
		t.Error("error view missing message")
	}

	src.err = nil
	src.lines = transcript.Demo()
	_, cmd := p.Update(keyPress('r'))
	if env.State.Status() != shell.Loading {
		t.Fatalf("retry status = %v, want LOADING", env.State.Status())
	}
	p.Update(cmd())
	if env.State.Status() != shell.Ready {
		t.Errorf("status after retry = %v", env.State.Status())
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}

func TestLoad_StaleResultIgnored(t *testing.T) {
	env, _, _ := newTestEnv(&fakeSource{lines: transcript.Demo()})
	env.State.LoadDemo()
	p := New(env)

	p.Update(transcriptLoadedMsg{VideoID: "other", Lines: transcript.Demo()})
	if env.State.Status() != shell.Loading {
		t.Errorf("stale transcript applied: status %v", env.State.Status())
	}
}

func TestEscWhileLoadingResetsAndPops(t *testing.T) {
	env, _, _ := newTestEnv(&fakeSource{})
	env.State.LoadDemo()
	p := New(env)

	_, cmd := p.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if env.State.Status() != shell.Idle {
		t.Errorf("status = %v, want IDLE", env.State.Status())
	}
}

func TestTickFollowsActiveLine(t *testing.T) {
	p, _, clock := loadedPlayer(t)

	clock.t = clock.t.Add(9 * time.Second)
	p.Update(screen.TickMsg(clock.t))

	if got := p.env.State.ActiveLine(); got != 2 {
		t.Fatalf("ActiveLine = %d, want 2", got)
	}
	if p.line != 2 {
		t.Errorf("cursor line = %d, want 2", p.line)
	}
}

func TestManualNavigationStopsFollowing(t *testing.T) {
	p, _, clock := loadedPlayer(t)

	p.Update(specialKey(tea.KeyDown))
	if p.line != 1 || p.follow {
		t.Fatalf("line = %d follow = %v", p.line, p.follow)
	}
	clock.t = clock.t.Add(14 * time.Second)
	p.Update(screen.TickMsg(clock.t))
	if p.line != 1 {
		t.Errorf("cursor moved to %d while not following", p.line)
	}

	// Jump seeks playback to the cursor line.
	p.Update(keyPress('g'))
	if got := p.env.State.Time(); got != 4.5 {
		t.Errorf("time after jump = %v, want 4.5", got)
	}
	if !p.follow {
		t.Error("jump should resume following")
	}
}

func TestMoveWordCrossesLines(t *testing.T) {
	p, _, _ := loadedPlayer(t)
	p.follow = false

	// Line 0 has nine words.
	for range 8 {
		p.Update(specialKey(tea.KeyRight))
	}
	if p.line != 0 || p.tok != 8 {
		t.Fatalf("at (%d,%d), want (0,8)", p.line, p.tok)
	}
	p.Update(specialKey(tea.KeyRight))
	if p.line != 1 || p.tok != 0 {
		t.Fatalf("at (%d,%d), want (1,0)", p.line, p.tok)
	}
	p.Update(specialKey(tea.KeyLeft))
	if p.line != 0 || p.tok != 8 {
		t.Errorf("at (%d,%d), want (0,8)", p.line, p.tok)
	}
}

func TestLookupAndSave(t *testing.T) {
	p, lk, _ := loadedPlayer(t)
	st := p.env.State

	p.Update(specialKey(tea.KeyRight))
	_, cmd := p.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected lookup command")
	}
	if !st.LookupLoading() || st.LookupWord() != "Nook" {
		t.Fatalf("lookup not started: loading=%v word=%q", st.LookupLoading(), st.LookupWord())
	}
	if p.clock.Playing() {
		t.Error("lookup should pause playback")
	}

	p.Update(cmd())
	e, ok := st.Selected()
	if !ok || e.Word != "Nook" {
		t.Fatalf("selected = %+v, %v", e, ok)
	}
	if len(lk.words) != 1 {
		t.Errorf("lookups = %v", lk.words)
	}
	if !strings.Contains(p.View(120, 40), "Nook def") {
		t.Error("card should show the definition")
	}

	_, cmd = p.Update(keyPress('s'))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	p.Update(cmd())
	if !st.Contains("Nook") {
		t.Fatal("word not saved")
	}
	if !p.save.Disabled {
		t.Error("save button should be disabled after saving")
	}

	// Pressing s again does nothing.
	if _, cmd = p.Update(keyPress('s')); cmd != nil {
		t.Error("disabled save button fired")
	}

	p.Update(specialKey(tea.KeyEscape))
	if _, ok := st.Selected(); ok {
		t.Error("esc should close the card")
	}
}

func TestStaleLookupDropped(t *testing.T) {
	p, _, _ := loadedPlayer(t)
	st := p.env.State

	_, first := p.Update(specialKey(tea.KeyEnter))
	p.Update(specialKey(tea.KeyRight))
	_, second := p.Update(specialKey(tea.KeyEnter))

	p.Update(second())
	p.Update(first())

	e, _ := st.Selected()
	if e.Word != "Nook" {
		t.Errorf("selected %q, want the latest lookup", e.Word)
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	p, _, _ := loadedPlayer(t)
	p.Update(specialKey(tea.KeySpace))
	if p.clock.Playing() {
		t.Fatal("space should pause")
	}
	p.Update(specialKey(tea.KeySpace))
	if !p.clock.Playing() {
		t.Error("space should resume")
	}
}

func TestNotebookPauses(t *testing.T) {
	p, _, _ := loadedPlayer(t)
	_, cmd := p.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*notebook.NotebookScreen); !ok {
		t.Errorf("pushed %T", msg.Screen)
	}
	if p.clock.Playing() {
		t.Error("opening the notebook should pause")
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[float64]string{0: "0:00", 9.9: "0:09", 65: "1:05", 600: "10:00"}
	for in, want := range tests {
		if got := formatClock(in); got != want {
			t.Errorf("formatClock(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestEscWithoutCardLeaves(t *testing.T) {
	p, _, _ := loadedPlayer(t)
	_, cmd := p.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if p.env.State.Status() != shell.Idle {
		t.Errorf("status = %v, want IDLE", p.env.State.Status())
	}
}
