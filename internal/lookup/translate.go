package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTranslateURL is the public Google Translate gtx endpoint.
	DefaultTranslateURL = "https://translate.googleapis.com/translate_a/single"

	// DefaultTargetLang is Traditional Chinese (Taiwan).
	DefaultTargetLang = "zh-TW"
)

// GTXTranslator translates English text through the gtx endpoint.
type GTXTranslator struct {
	baseURL    string
	target     string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewGTXTranslator creates a translator. Empty arguments take the defaults.
func NewGTXTranslator(baseURL, target string, timeout time.Duration, logger logrus.FieldLogger) *GTXTranslator {
	if baseURL == "" {
		baseURL = DefaultTranslateURL
	}
	if target == "" {
		target = DefaultTargetLang
	}
	return &GTXTranslator{
		baseURL:    baseURL,
		target:     target,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.WithField("adapter", "gtx"),
	}
}

// Translate returns the translation of text, or "" when the response
// holds no translated string.
func (t *GTXTranslator) Translate(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "en")
	q.Set("tl", t.target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("translate: create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("translate: decode json: %w", err)
	}

	out := translatedText(data)
	t.log.WithFields(logrus.Fields{"text": text, "translation": out}).Debug("gtx response")
	return out, nil
}

// translatedText reads a gtx response of the form
// [[["譯文","source",...], ["譯文2","source2",...]], ...].
// Long input is split into segments; their translations are joined.
// Any other shape falls back to the first leaf string.
func translatedText(data any) string {
	top, ok := data.([]any)
	if !ok || len(top) == 0 {
		return ""
	}
	segments, ok := top[0].([]any)
	if !ok {
		return firstLeaf(data)
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return firstLeaf(data)
	}
	return b.String()
}

// firstLeaf descends through first elements until it reaches a string.
func firstLeaf(v any) string {
	for {
		switch x := v.(type) {
		case string:
			return x
		case []any:
			if len(x) == 0 {
				return ""
			}
			v = x[0]
		default:
			return ""
		}
	}
}
