package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

func newTestDictionary(t *testing.T, h http.HandlerFunc) *DictionaryClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger, _ := test.NewNullLogger()
	c := NewDictionaryClient(srv.URL, 5*time.Second, logger)
	c.retryDelay = time.Millisecond
	return c
}

func TestDictionary_FetchEntry_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "lamp",
		"phonetics": [
			{"text": "", "audio": ""},
			{"text": "/læmp/", "audio": ""},
			{"text": "/lamp/", "audio": "https://example.com/lamp-us.mp3"}
		],
		"meanings": [
			{"partOfSpeech": "noun", "definitions": [
				{"definition": "A device that produces light.", "example": "Turn on the lamp."},
				{"definition": "A second sense."}
			]},
			{"partOfSpeech": "verb", "definitions": [{"definition": "To light."}]}
		]
	}, {"word": "lamp", "meanings": []}]`

	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lamp" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	d, err := c.FetchEntry(context.Background(), "lamp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil {
		t.Fatal("expected non-nil definition")
	}

	want := Definition{
		Word:         "lamp",
		Phonetic:     "/læmp/",
		PartOfSpeech: "noun",
		Definition:   "A device that produces light.",
		Example:      "Turn on the lamp.",
		AudioURL:     "https://example.com/lamp-us.mp3",
	}
	if *d != want {
		t.Errorf("definition = %+v\nwant %+v", *d, want)
	}
}

func TestDictionary_FetchEntry_PrefersTopLevelPhonetic(t *testing.T) {
	t.Parallel()

	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word": "tent", "phonetic": "/tɛnt/", "phonetics": [{"text": "/other/"}], "meanings": []}]`))
	})

	d, err := c.FetchEntry(context.Background(), "tent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Phonetic != "/tɛnt/" {
		t.Errorf("Phonetic = %q, want /tɛnt/", d.Phonetic)
	}
	if d.PartOfSpeech != "" || d.Definition != "" {
		t.Errorf("expected empty meaning fields, got %+v", d)
	}
}

func TestDictionary_FetchEntry_NotFound(t *testing.T) {
	t.Parallel()

	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "No Definitions Found"}`))
	})

	d, err := c.FetchEntry(context.Background(), "xyzzy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != nil {
		t.Errorf("expected nil definition, got %+v", d)
	}
}

func TestDictionary_FetchEntry_NonArrayBody(t *testing.T) {
	t.Parallel()

	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "No Definitions Found"}`))
	})

	d, err := c.FetchEntry(context.Background(), "xyzzy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != nil {
		t.Errorf("expected nil definition, got %+v", d)
	}
}

func TestDictionary_FetchEntry_InvalidJSON(t *testing.T) {
	t.Parallel()

	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	if _, err := c.FetchEntry(context.Background(), "lamp"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDictionary_FetchEntry_RetriesOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"word": "radio", "meanings": [{"partOfSpeech": "noun", "definitions": [{"definition": "A receiver."}]}]}]`))
	})

	d, err := c.FetchEntry(context.Background(), "radio")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || d.Definition != "A receiver." {
		t.Errorf("definition = %+v", d)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestDictionary_FetchEntry_PersistentServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.FetchEntry(context.Background(), "radio"); err == nil {
		t.Fatal("expected error after retry")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls.Load())
	}
}

func TestDictionary_FetchEntry_NoRetryOnClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	if _, err := c.FetchEntry(context.Background(), "radio"); err == nil {
		t.Fatal("expected error for 400")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestDictionary_FetchEntry_EscapesWord(t *testing.T) {
	t.Parallel()

	c := newTestDictionary(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/ice%20cream" {
			t.Errorf("escaped path = %s", r.URL.EscapedPath())
		}
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := c.FetchEntry(context.Background(), "ice cream"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
