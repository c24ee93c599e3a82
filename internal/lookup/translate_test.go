package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

func newTestTranslator(t *testing.T, h http.HandlerFunc) *GTXTranslator {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger, _ := test.NewNullLogger()
	return NewGTXTranslator(srv.URL, "", 5*time.Second, logger)
}

func TestTranslate_Query(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		checks := map[string]string{"client": "gtx", "sl": "en", "tl": "zh-TW", "dt": "t", "q": "pay the mortgage?"}
		for k, want := range checks {
			if got := q.Get(k); got != want {
				t.Errorf("query %s = %q, want %q", k, got, want)
			}
		}
		w.Write([]byte(`[[["支付房貸？","pay the mortgage?",null,null,10]],null,"en"]`))
	})

	got, err := tr.Translate(context.Background(), "pay the mortgage?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "支付房貸？" {
		t.Errorf("translation = %q", got)
	}
}

func TestTranslate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rate limited", http.StatusTooManyRequests, `<html>Too many requests</html>`},
		{"server error", http.StatusInternalServerError, ``},
		{"not json", http.StatusOK, `<html></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			if _, err := tr.Translate(context.Background(), "bells"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTranslatedText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"single segment", `[[["帳篷","tent",null,null,10]],null,"en"]`, "帳篷"},
		{"multiple segments", `[[["第一句。","First. ",null],["第二句。","Second.",null]],null,"en"]`, "第一句。第二句。"},
		{"empty outer", `[]`, ""},
		{"object", `{"error": "x"}`, ""},
		{"null first", `[null, "en"]`, ""},
		{"nested leaf", `[[[["深"]]]]`, "深"},
		{"number leaf", `[[[1]]]`, ""},
	}
	for _, tt := range tests {
		var data any
		if err := json.Unmarshal([]byte(tt.body), &data); err != nil {
			t.Fatalf("%s: bad fixture: %v", tt.name, err)
		}
		if got := translatedText(data); got != tt.want {
			t.Errorf("%s: translatedText = %q, want %q", tt.name, got, tt.want)
		}
	}
}
