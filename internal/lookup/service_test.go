package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nookclass/internal/vocab"
)

type fakeDictionary struct {
	def *Definition
	err error
}

func (f *fakeDictionary) FetchEntry(context.Context, string) (*Definition, error) {
	return f.def, f.err
}

type fakeTranslator struct {
	mu    sync.Mutex
	out   map[string]string
	errOn map[string]error
	calls []string
}

func (f *fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if err := f.errOn[text]; err != nil {
		return "", err
	}
	return f.out[text], nil
}

type memoryCache struct {
	entries map[string]vocab.Entry
	puts    int
}

func (m *memoryCache) GetLookup(_ context.Context, word string) (vocab.Entry, bool, error) {
	e, ok := m.entries[word]
	return e, ok, nil
}

func (m *memoryCache) PutLookup(_ context.Context, e vocab.Entry) error {
	m.entries[e.Word] = e
	m.puts++
	return nil
}

func newService(d Dictionary, tr Translator, c Cache) *Service {
	logger, _ := test.NewNullLogger()
	return NewService(d, tr, c, logger)
}

var lampDef = &Definition{
	Word:         "lamp",
	Phonetic:     "/læmp/",
	PartOfSpeech: "noun",
	Definition:   "A device that produces light.",
	Example:      "Turn on the lamp.",
}

func TestLookup_FullEntry(t *testing.T) {
	tr := &fakeTranslator{out: map[string]string{
		"lamp":              "燈",
		"Turn on the lamp.": "打開燈。",
	}}
	e := newService(&fakeDictionary{def: lampDef}, tr, nil).Lookup(context.Background(), "lamp", "a tent, a lamp, and a radio.")

	assert.Equal(t, vocab.Entry{
		Word:         "lamp",
		PartOfSpeech: "noun",
		IPA:          "/læmp/",
		DefinitionEn: "A device that produces light.",
		DefinitionZh: "燈",
		ExampleEn:    "Turn on the lamp.",
		ExampleZh:    "打開燈。",
	}, e)
	assert.Len(t, tr.calls, 2)
}

func TestLookup_NotFoundUsesPlaceholders(t *testing.T) {
	tr := &fakeTranslator{out: map[string]string{"Nook": "狸克"}}
	e := newService(&fakeDictionary{}, tr, nil).Lookup(context.Background(), "Nook", "")

	assert.Equal(t, "Nook", e.Word)
	assert.Equal(t, vocab.NoDefinition, e.DefinitionEn)
	assert.Equal(t, vocab.UnknownPOS, e.PartOfSpeech)
	assert.Equal(t, "", e.IPA)
	assert.Equal(t, "狸克", e.DefinitionZh)
	assert.Equal(t, vocab.NoExample, e.ExampleEn)
	assert.Equal(t, vocab.NoExampleZh, e.ExampleZh)
	assert.Equal(t, []string{"Nook"}, tr.calls, "no example means no second translation")
}

func TestLookup_EmptyTranslation(t *testing.T) {
	def := *lampDef
	def.Example = ""
	e := newService(&fakeDictionary{def: &def}, &fakeTranslator{}, nil).Lookup(context.Background(), "lamp", "")

	assert.Equal(t, vocab.NoTranslation, e.DefinitionZh)
	assert.Equal(t, vocab.NoExample, e.ExampleEn)
}

func TestLookup_DictionaryFailure(t *testing.T) {
	tr := &fakeTranslator{out: map[string]string{"lamp": "燈"}}
	e := newService(&fakeDictionary{err: errors.New("connection refused")}, tr, nil).Lookup(context.Background(), "lamp", "")

	assert.Equal(t, vocab.Failed("lamp"), e)
	assert.Equal(t, vocab.FailedDefinition, e.DefinitionEn)
	assert.Equal(t, vocab.FailedTranslation, e.DefinitionZh)
}

func TestLookup_WordTranslationFailure(t *testing.T) {
	tr := &fakeTranslator{errOn: map[string]error{"lamp": errors.New("429")}}
	e := newService(&fakeDictionary{def: lampDef}, tr, nil).Lookup(context.Background(), "lamp", "")

	assert.True(t, e.IsFailed())
	assert.Equal(t, "-", e.ExampleEn)
	assert.Equal(t, "-", e.ExampleZh)
}

func TestLookup_ExampleTranslationFailure(t *testing.T) {
	tr := &fakeTranslator{
		out:   map[string]string{"lamp": "燈"},
		errOn: map[string]error{"Turn on the lamp.": errors.New("timeout")},
	}
	e := newService(&fakeDictionary{def: lampDef}, tr, nil).Lookup(context.Background(), "lamp", "")

	assert.False(t, e.IsFailed())
	assert.Equal(t, "燈", e.DefinitionZh)
	assert.Equal(t, "Turn on the lamp.", e.ExampleEn)
	assert.Equal(t, "-", e.ExampleZh)
}

func TestLookup_Cache(t *testing.T) {
	cache := &memoryCache{entries: map[string]vocab.Entry{}}
	tr := &fakeTranslator{out: map[string]string{"lamp": "燈"}}
	svc := newService(&fakeDictionary{def: lampDef}, tr, cache)

	first := svc.Lookup(context.Background(), "lamp", "")
	require.Equal(t, 1, cache.puts)
	calls := len(tr.calls)

	second := svc.Lookup(context.Background(), "lamp", "")
	assert.Equal(t, first, second)
	assert.Len(t, tr.calls, calls, "cached lookup should not translate again")
}

func TestLookup_FailureNotCached(t *testing.T) {
	cache := &memoryCache{entries: map[string]vocab.Entry{}}
	svc := newService(&fakeDictionary{err: errors.New("offline")}, &fakeTranslator{}, cache)

	e := svc.Lookup(context.Background(), "lamp", "")
	assert.True(t, e.IsFailed())
	assert.Equal(t, 0, cache.puts)
}

func TestLookup_PartialNotCached(t *testing.T) {
	cache := &memoryCache{entries: map[string]vocab.Entry{}}
	tr := &fakeTranslator{
		out: map[string]string{
			"lamp":              "燈",
			"Turn on the lamp.": "打開燈。",
		},
		errOn: map[string]error{"Turn on the lamp.": errors.New("timeout")},
	}
	svc := newService(&fakeDictionary{def: lampDef}, tr, cache)

	first := svc.Lookup(context.Background(), "lamp", "")
	assert.Equal(t, vocab.FailedExample, first.ExampleZh)
	assert.Equal(t, 0, cache.puts, "entry with a failed example must not be cached")

	delete(tr.errOn, "Turn on the lamp.")
	second := svc.Lookup(context.Background(), "lamp", "")
	assert.Equal(t, "打開燈。", second.ExampleZh)
	assert.Equal(t, 1, cache.puts)
}

func TestTracker_LastRequestWins(t *testing.T) {
	var tr Tracker

	assert.False(t, tr.Current(0), "zero generation is never current")

	first := tr.Begin()
	assert.True(t, tr.Current(first))

	second := tr.Begin()
	assert.False(t, tr.Current(first), "older lookup must be stale")
	assert.True(t, tr.Current(second))
	assert.Greater(t, second, first)
}
