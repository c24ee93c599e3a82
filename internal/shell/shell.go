// Package shell holds the top-level application state: which video is
// loaded, its transcript, the playback time, the word card and the saved
// vocabulary. The TUI owns one State and mutates it only through the
// methods below.
package shell

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/nookclass/internal/lookup"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/video"
	"github.com/abhisek/nookclass/internal/vocab"
)

// Loading delays shown before a transcript appears.
const (
	DemoDelay      = time.Second
	GeneratedDelay = 800 * time.Millisecond
)

// Status is the load status of the current video.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Loading:
		return "LOADING"
	case Ready:
		return "READY"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Repo persists vocabulary changes. store.VocabRepo satisfies it.
type Repo interface {
	Add(ctx context.Context, e vocab.Entry) (bool, error)
	Remove(ctx context.Context, word string) (bool, error)
	Merge(ctx context.Context, entries []vocab.Entry) (int, error)
}

// State is the application state. It is not safe for concurrent use; the
// Bubble Tea update loop is its only writer.
type State struct {
	status  Status
	input   string
	videoID string
	lines   []transcript.Line
	err     error
	time    float64

	vocab  *vocab.Store
	repo   Repo
	logger logrus.FieldLogger

	demoDelay      time.Duration
	generatedDelay time.Duration

	tracker       lookup.Tracker
	lookupWord    string
	lookupLoading bool
	selected      *vocab.Entry
}

// New creates an idle State over the given collection. repo may be nil,
// in which case changes stay in memory.
func New(store *vocab.Store, repo Repo, logger logrus.FieldLogger) *State {
	if store == nil {
		store = vocab.NewStore()
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &State{
		vocab:          store,
		repo:           repo,
		logger:         logger,
		demoDelay:      DemoDelay,
		generatedDelay: GeneratedDelay,
	}
}

// SetLoadDelays overrides the loading delays for the demo and for
// generated transcripts.
func (s *State) SetLoadDelays(demo, generated time.Duration) {
	s.demoDelay = demo
	s.generatedDelay = generated
}

func (s *State) Status() Status { return s.status }
func (s *State) Input() string { return s.input }
func (s *State) VideoID() string { return s.videoID }
func (s *State) Lines() []transcript.Line { return s.lines }
func (s *State) Err() error { return s.err }
func (s *State) Time() float64 { return s.time }
func (s *State) Vocab() *vocab.Store { return s.vocab }
func (s *State) LookupLoading() bool { return s.lookupLoading }
func (s *State) LookupWord() string { return s.lookupWord }
func (s *State) IsDemo() bool { return s.videoID == transcript.DemoVideoID }
func (s *State) Meta() video.Meta { return video.NewMeta(s.videoID, s.title()) }
func (s *State) CollectionSize() int { return s.vocab.Len() }
func (s *State) Contains(word string) bool { return s.vocab.Contains(word) }
func (s *State) Entries() []vocab.Entry { return s.vocab.Entries() }
func (s *State) Words() []string { return s.vocab.Words() }
func (s *State) Export(w io.Writer) error { return s.vocab.Export(w) }

func (s *State) title() string {
	if s.IsDemo() {
		return "Animal Crossing: Tom Nook's Welcome"
	}
	return "YouTube Video"
}

// LoadVideo parses input as a YouTube URL and starts loading it. An
// unparseable URL returns video.ErrInvalidInput and leaves the state as is.
func (s *State) LoadVideo(input string) error {
	id, err := video.ExtractID(input)
	if err != nil {
		return err
	}
	s.input = input
	s.begin(id)
	return nil
}

// LoadDemo starts loading the bundled demo video.
func (s *State) LoadDemo() {
	s.input = video.WatchURL(transcript.DemoVideoID)
	s.begin(transcript.DemoVideoID)
}

func (s *State) begin(id string) {
	s.videoID = id
	s.lines = nil
	s.err = nil
	s.time = 0
	s.status = Loading
	s.clearSelection()
}

// LoadDelay is how long the loading screen shows before the transcript.
func (s *State) LoadDelay() time.Duration {
	if s.IsDemo() {
		return s.demoDelay
	}
	return s.generatedDelay
}

// Loaded moves to READY with lines. It is ignored unless a load is in
// progress.
func (s *State) Loaded(lines []transcript.Line) {
	if s.status != Loading {
		return
	}
	s.lines = lines
	s.status = Ready
}

// Failed moves to ERROR.
func (s *State) Failed(err error) {
	s.err = err
	s.status = Error
	s.lines = nil
}

// Reset returns to IDLE and forgets the current video.
func (s *State) Reset() {
	s.status = Idle
	s.err = nil
	s.input = ""
	s.videoID = ""
	s.lines = nil
	s.time = 0
	s.clearSelection()
}

// SetTime records the polled playback position in seconds.
func (s *State) SetTime(t float64) { s.time = t }

// ActiveLine returns the index of the line being spoken, or -1.
func (s *State) ActiveLine() int {
	return transcript.ActiveIndex(s.lines, s.time)
}

// BeginLookup clears the word card, marks a lookup in flight for word and
// returns its generation.
func (s *State) BeginLookup(word string) uint64 {
	s.selected = nil
	s.lookupWord = word
	s.lookupLoading = true
	return s.tracker.Begin()
}

// LookupDone applies e when gen is the newest lookup. It reports whether
// the result was applied.
func (s *State) LookupDone(gen uint64, e vocab.Entry) bool {
	if !s.tracker.Current(gen) {
		s.logger.WithFields(logrus.Fields{"gen": gen, "word": e.Word}).Debug("dropping stale lookup")
		return false
	}
	s.selected = &e
	s.lookupLoading = false
	return true
}

// Selected returns the entry on the word card.
func (s *State) Selected() (vocab.Entry, bool) {
	if s.selected == nil {
		return vocab.Entry{}, false
	}
	return *s.selected, true
}

// ClearSelection closes the word card. Any lookup still in flight is
// dropped when it lands.
func (s *State) ClearSelection() {
	s.clearSelection()
	s.tracker.Begin()
}

func (s *State) clearSelection() {
	s.selected = nil
	s.lookupWord = ""
	s.lookupLoading = false
}

// SaveSelected adds the word card's entry to the collection. It reports
// false when there is no entry or the word is already saved.
func (s *State) SaveSelected(ctx context.Context) (bool, error) {
	e, ok := s.Selected()
	if !ok || s.vocab.Contains(e.Word) {
		return false, nil
	}
	if s.repo != nil {
		if _, err := s.repo.Add(ctx, e); err != nil {
			return false, fmt.Errorf("save %q: %w", e.Word, err)
		}
	}
	s.vocab.Add(e)
	s.logger.WithField("word", e.Word).Info("word saved")
	return true, nil
}

// DeleteWord removes word from the collection.
func (s *State) DeleteWord(ctx context.Context, word string) (bool, error) {
	if !s.vocab.Contains(word) {
		return false, nil
	}
	if s.repo != nil {
		if _, err := s.repo.Remove(ctx, word); err != nil {
			return false, fmt.Errorf("delete %q: %w", word, err)
		}
	}
	s.vocab.Remove(word)
	s.logger.WithField("word", word).Info("word deleted")
	return true, nil
}

// ImportWords merges an exported collection from r and returns how many
// words were new. A parse failure leaves the collection unchanged.
func (s *State) ImportWords(ctx context.Context, r io.Reader) (int, error) {
	added, err := s.vocab.ImportEntries(r)
	if err != nil {
		return 0, err
	}
	if s.repo != nil && len(added) > 0 {
		if _, err := s.repo.Merge(ctx, added); err != nil {
			for _, e := range added {
				s.vocab.Remove(e.Word)
			}
			return 0, fmt.Errorf("persist import: %w", err)
		}
	}
	s.logger.WithField("added", len(added)).Info("vocabulary imported")
	return len(added), nil
}
