package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errTopLevelNotArray = errors.New("top-level value is not an array")
	errNotObject        = errors.New("entry is not an object")
	errMissingWord      = errors.New("entry has no word")
)

// ImportParseError reports a malformed import document. Index is the
// offending array element, or -1 when the document itself is invalid.
type ImportParseError struct {
	Index int
	Err   error
}

func (e *ImportParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid vocabulary file: %v", e.Err)
	}
	return fmt.Sprintf("invalid vocabulary file: entry %d: %v", e.Index, e.Err)
}

func (e *ImportParseError) Unwrap() error { return e.Err }

// errNotArray tells valid JSON of the wrong shape apart from broken JSON.
func errNotArray(data []byte, err error) error {
	if json.Valid(data) {
		return errTopLevelNotArray
	}
	return fmt.Errorf("invalid JSON: %w", err)
}
