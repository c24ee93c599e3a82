package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDictionaryURL is the Free Dictionary API entries endpoint.
const DefaultDictionaryURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Definition is the part of a dictionary response the app uses.
type Definition struct {
	Word         string
	Phonetic     string
	PartOfSpeech string
	Definition   string
	Example      string
	AudioURL     string
}

// DictionaryClient fetches definitions from the Free Dictionary API.
type DictionaryClient struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        logrus.FieldLogger
}

// NewDictionaryClient creates a client for baseURL. An empty baseURL uses
// DefaultDictionaryURL.
func NewDictionaryClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *DictionaryClient {
	if baseURL == "" {
		baseURL = DefaultDictionaryURL
	}
	return &DictionaryClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.WithField("adapter", "dictionary"),
	}
}

// FetchEntry fetches the first entry for word. It returns nil, nil when
// the dictionary has no entry (HTTP 404 or a non-array body).
func (c *DictionaryClient) FetchEntry(ctx context.Context, word string) (*Definition, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(word)

	c.log.WithField("word", word).Debug("dictionary request")

	resp, err := c.doWithRetry(ctx, reqURL, word)
	if err != nil {
		return nil, fmt.Errorf("dictionary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read body: %w", err)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("dictionary: decode json: %w", err)
	}
	var entries []apiEntry
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		// Valid JSON that is not an entry list means "not found".
		return nil, nil
	}

	return mapAPIEntry(entries[0]), nil
}

// doWithRetry performs the GET with a single retry on 5xx or network errors.
func (c *DictionaryClient) doWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	resp, err := c.get(ctx, reqURL)

	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WithFields(logrus.Fields{"word": word, "reason": reason}).Warn("dictionary retry")

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.get(ctx, reqURL)
}

func (c *DictionaryClient) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// mapAPIEntry takes the first meaning's first definition. The phonetic
// falls back to the first phonetics entry that has text.
func mapAPIEntry(e apiEntry) *Definition {
	d := &Definition{Word: e.Word, Phonetic: e.Phonetic}

	for _, ph := range e.Phonetics {
		if d.Phonetic == "" && ph.Text != "" {
			d.Phonetic = ph.Text
		}
		if d.AudioURL == "" && ph.Audio != "" {
			d.AudioURL = ph.Audio
		}
	}

	if len(e.Meanings) > 0 {
		m := e.Meanings[0]
		d.PartOfSpeech = m.PartOfSpeech
		if len(m.Definitions) > 0 {
			d.Definition = m.Definitions[0].Definition
			d.Example = m.Definitions[0].Example
		}
	}
	return d
}
