// Package lookup turns a clicked word into a fully populated vocabulary
// entry by combining a dictionary lookup with machine translation.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/nookclass/internal/vocab"
)

// ErrLookupFailure marks a transport failure of the dictionary or the
// word translation. Service.Lookup recovers from it with a placeholder entry.
var ErrLookupFailure = errors.New("lookup failed")

// Dictionary fetches a word definition. A nil result means "not found".
type Dictionary interface {
	FetchEntry(ctx context.Context, word string) (*Definition, error)
}

// Translator translates English text into the display language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Cache stores completed lookups.
type Cache interface {
	GetLookup(ctx context.Context, word string) (vocab.Entry, bool, error)
	PutLookup(ctx context.Context, e vocab.Entry) error
}

// Service composes dictionary and translation calls into entries.
type Service struct {
	dict  Dictionary
	tr    Translator
	cache Cache
	log   logrus.FieldLogger
}

// NewService creates a Service. cache may be nil.
func NewService(dict Dictionary, tr Translator, cache Cache, logger logrus.FieldLogger) *Service {
	return &Service{dict: dict, tr: tr, cache: cache, log: logger.WithField("component", "lookup")}
}

// Lookup returns the entry for word. It never fails: missing fields get
// placeholder text and transport failures yield vocab.Failed. sentence is
// the line the word was clicked in.
func (s *Service) Lookup(ctx context.Context, word, sentence string) vocab.Entry {
	log := s.log.WithFields(logrus.Fields{"word": word, "sentence": sentence})

	if s.cache != nil {
		if e, ok, err := s.cache.GetLookup(ctx, word); err != nil {
			log.WithError(err).Warn("lookup cache read failed")
		} else if ok {
			log.Debug("lookup cache hit")
			return e
		}
	}

	e, partial, err := s.fetch(ctx, word)
	if err != nil {
		log.WithError(err).Warn("lookup failed")
		return vocab.Failed(word)
	}

	// A partial entry is shown but not cached so that clicking again retries.
	if s.cache != nil && !partial {
		if err := s.cache.PutLookup(ctx, e); err != nil {
			log.WithError(err).Warn("lookup cache write failed")
		}
	}
	return e
}

// fetch queries the dictionary and translator. partial reports that the
// example translation failed and ExampleZh holds vocab.FailedExample.
func (s *Service) fetch(ctx context.Context, word string) (e vocab.Entry, partial bool, err error) {
	var (
		def         *Definition
		translation string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.dict.FetchEntry(gctx, word)
		def = d
		return err
	})
	g.Go(func() error {
		t, err := s.tr.Translate(gctx, word)
		translation = t
		return err
	})
	if err := g.Wait(); err != nil {
		return vocab.Entry{}, false, fmt.Errorf("%w: %w", ErrLookupFailure, err)
	}

	e = vocab.Entry{Word: word, DefinitionZh: strings.TrimSpace(translation)}
	if def != nil {
		e.PartOfSpeech = def.PartOfSpeech
		e.IPA = def.Phonetic
		e.DefinitionEn = def.Definition
		e.ExampleEn = def.Example
	}

	if e.ExampleEn != "" {
		zh, err := s.tr.Translate(ctx, e.ExampleEn)
		if err != nil {
			s.log.WithError(err).WithField("word", word).Debug("example translation failed")
			zh = vocab.FailedExample
			partial = true
		}
		e.ExampleZh = zh
	}

	return e.FillDefaults(), partial, nil
}

// Tracker hands out lookup generations so that only the most recently
// started lookup is applied.
type Tracker struct {
	gen atomic.Uint64
}

// Begin starts a new lookup and returns its generation.
func (t *Tracker) Begin() uint64 {
	return t.gen.Add(1)
}

// Current reports whether gen belongs to the most recent lookup.
func (t *Tracker) Current(gen uint64) bool {
	return gen != 0 && t.gen.Load() == gen
}

// Result is a finished lookup tagged with its generation.
type Result struct {
	Gen   uint64
	Entry vocab.Entry
}
