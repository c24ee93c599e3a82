package player

import (
	"github.com/abhisek/nookclass/internal/lookup"
	"github.com/abhisek/nookclass/internal/transcript"
)

// transcriptLoadedMsg carries the transcript for VideoID once the loading
// delay has passed.
type transcriptLoadedMsg struct {
	VideoID string
	Lines   []transcript.Line
	Err     error
}

// lookupDoneMsg is sent when a word lookup finishes.
type lookupDoneMsg struct {
	lookup.Result
}

// saveWordMsg asks the screen to save the word card's entry.
type saveWordMsg struct{}
