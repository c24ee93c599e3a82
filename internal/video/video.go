// Package video extracts YouTube video ids from pasted links.
package video

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// IDLength is the length of every YouTube video id.
const IDLength = 11

// ErrInvalidInput is returned for text that does not name a YouTube video.
var ErrInvalidInput = errors.New("please enter a valid YouTube URL")

var idPattern = regexp.MustCompile(`^.*(youtu.be\/|v\/|u\/\w\/|embed\/|watch\?v=|&v=)([^#&?]*).*`)

// ExtractID returns the 11-character video id in raw.
func ExtractID(raw string) (string, error) {
	m := idPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil || len(m[2]) != IDLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, raw)
	}
	return m[2], nil
}

// Meta describes a loaded video.
type Meta struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// NewMeta builds Meta for id. An empty title falls back to the watch URL.
func NewMeta(id, title string) Meta {
	if title == "" {
		title = WatchURL(id)
	}
	return Meta{ID: id, Title: title, Thumbnail: ThumbnailURL(id)}
}

// WatchURL returns the canonical watch page for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ThumbnailURL returns the high quality thumbnail for id.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
