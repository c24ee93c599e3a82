package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// Store is an ordered collection of entries keyed by exact word.
// Insertion order is preserved and no two entries share a word.
// A Store is not safe for concurrent use.
type Store struct {
	entries []Entry
	index   map[string]int
}

// NewStore creates a Store seeded with entries, dropping duplicates.
func NewStore(entries ...Entry) *Store {
	s := &Store{index: make(map[string]int)}
	s.Merge(entries)
	return s
}

// Add appends e unless an entry with the same word exists.
// It reports whether e was inserted.
func (s *Store) Add(e Entry) bool {
	if _, ok := s.index[e.Word]; ok {
		return false
	}
	s.index[e.Word] = len(s.entries)
	s.entries = append(s.entries, e)
	return true
}

// Remove deletes the entry for word. Removing an absent word is a no-op.
func (s *Store) Remove(word string) bool {
	if _, ok := s.index[word]; !ok {
		return false
	}
	s.entries = lo.Reject(s.entries, func(e Entry, _ int) bool { return e.Word == word })
	s.reindex()
	return true
}

// Merge adds each entry in order using the Add rule and returns the
// number of entries that were new.
func (s *Store) Merge(entries []Entry) int {
	return len(s.MergeEntries(entries))
}

// MergeEntries is Merge, returning the entries that were actually added.
func (s *Store) MergeEntries(entries []Entry) []Entry {
	var added []Entry
	for _, e := range entries {
		if s.Add(e) {
			added = append(added, e)
		}
	}
	return added
}

// Entries returns a copy of the collection in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Words returns the words of the collection in order.
func (s *Store) Words() []string {
	return lo.Map(s.entries, func(e Entry, _ int) string { return e.Word })
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Contains reports whether word is in the collection.
func (s *Store) Contains(word string) bool {
	_, ok := s.index[word]
	return ok
}

// Get returns the entry for word.
func (s *Store) Get(word string) (Entry, bool) {
	i, ok := s.index[word]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// MarshalJSON encodes the collection as a JSON array. An empty store
// encodes as [] rather than null.
func (s *Store) MarshalJSON() ([]byte, error) {
	if len(s.entries) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(s.entries)
}

// Export writes the collection to w as an indented JSON array.
func (s *Store) Export(w io.Writer) error {
	raw, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("indent vocabulary: %w", err)
	}
	buf.WriteByte('\n')
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

// Import parses an exported collection from r and merges it.
// Any parse or validation failure returns *ImportParseError and leaves
// the store unchanged.
func (s *Store) Import(r io.Reader) (int, error) {
	added, err := s.ImportEntries(r)
	return len(added), err
}

// ImportEntries is Import, returning the entries that were actually added.
func (s *Store) ImportEntries(r io.Reader) ([]Entry, error) {
	entries, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return s.MergeEntries(entries), nil
}

func (s *Store) reindex() {
	clear(s.index)
	for i, e := range s.entries {
		s.index[e.Word] = i
	}
}

// entryFields lists the optional string fields of the export format.
var entryFields = []string{"partOfSpeech", "ipa", "definitionEn", "definitionZh", "exampleEn", "exampleZh"}

// Parse decodes and validates an exported collection without touching any store.
func Parse(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ImportParseError{Index: -1, Err: fmt.Errorf("read: %w", err)}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ImportParseError{Index: -1, Err: errNotArray(data, err)}
	}
	if items == nil {
		return nil, &ImportParseError{Index: -1, Err: errTopLevelNotArray}
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		e, err := parseEntry(item)
		if err != nil {
			return nil, &ImportParseError{Index: i, Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(raw json.RawMessage) (Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Entry{}, errNotObject
	}

	word, err := stringField(fields, "word")
	if err != nil {
		return Entry{}, err
	}
	if strings.TrimSpace(word) == "" {
		return Entry{}, errMissingWord
	}

	for _, name := range entryFields {
		if _, err := stringField(fields, name); err != nil {
			return Entry{}, err
		}
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, fmt.Errorf("decode entry: %w", err)
	}
	return e.FillDefaults(), nil
}

// stringField returns the string value of name. Absent and null fields
// read as "".
func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return "", nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("field %q must be a string", name)
	}
	return v, nil
}
