// Package transcript holds bilingual subtitle lines and turns their text
// into selectable words.
package transcript

import (
	"strconv"
	"strings"
)

// Line is one subtitle line. StartTime and EndTime are in seconds and
// StartTime < EndTime.
type Line struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	TextEn    string  `json:"textEn"`
	TextZh    string  `json:"textZh"`
}

// Contains reports whether t falls in [StartTime, EndTime).
func (l Line) Contains(t float64) bool {
	return l.StartTime <= t && t < l.EndTime
}

// Pair is an untimed bilingual sentence.
type Pair struct {
	En string `json:"en"`
	Zh string `json:"zh"`
}

const (
	// ClipLength is the spacing between scheduled lines, in seconds.
	ClipLength = 5.0
	// LineLength is how long each scheduled line stays active.
	LineLength = 4.5
)

// Schedule assigns artificial timing to pairs: line i runs from i*5s to
// i*5+4.5s and is identified by its index.
func Schedule(pairs []Pair) []Line {
	lines := make([]Line, len(pairs))
	for i, p := range pairs {
		start := float64(i) * ClipLength
		lines[i] = Line{
			ID:        strconv.Itoa(i),
			StartTime: start,
			EndTime:   start + LineLength,
			TextEn:    p.En,
			TextZh:    p.Zh,
		}
	}
	return lines
}

// ActiveIndex returns the index of the line containing t, or -1.
func ActiveIndex(lines []Line, t float64) int {
	for i, l := range lines {
		if l.Contains(t) {
			return i
		}
	}
	return -1
}

// Duration returns the end time of the last line.
func Duration(lines []Line) float64 {
	var end float64
	for _, l := range lines {
		end = max(end, l.EndTime)
	}
	return end
}

// Token is one whitespace-separated piece of display text.
type Token struct {
	// Text is the token as displayed.
	Text string
	// Key is Text with punctuation stripped; it is what gets looked up.
	Key string
}

// Clickable reports whether the token has anything left to look up.
func (t Token) Clickable() bool { return t.Key != "" }

// stripped is the punctuation removed from tokens before lookup.
const stripped = `.,!?;:"()`

// Tokenize splits text on runs of whitespace and computes each token's
// lookup key.
func Tokenize(text string) []Token {
	parts := strings.Fields(text)
	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, Token{Text: p, Key: CleanWord(p)})
	}
	return tokens
}

// CleanWord removes the stripped punctuation characters from s.
func CleanWord(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, s)
}

// ClickableIndexes returns the positions in tokens that can be looked up.
func ClickableIndexes(tokens []Token) []int {
	var out []int
	for i, t := range tokens {
		if t.Clickable() {
			out = append(out, i)
		}
	}
	return out
}

// Click resolves a selection of token i in line to the word to look up
// and the sentence it came from. ok is false for non-clickable tokens.
func Click(line Line, i int) (word, context string, ok bool) {
	tokens := Tokenize(line.TextEn)
	if i < 0 || i >= len(tokens) || !tokens[i].Clickable() {
		return "", "", false
	}
	return tokens[i].Key, line.TextEn, true
}
