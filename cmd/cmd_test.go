package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/store"
	"github.com/abhisek/nookclass/internal/vocab"
)

func word(w, pos, zh string) vocab.Entry {
	return vocab.Entry{Word: w, PartOfSpeech: pos, DefinitionEn: w + " def", DefinitionZh: zh}
}

func questions() []quiz.Question {
	tent, lamp := word("tent", "noun", "帳篷"), word("lamp", "noun", "燈")
	bell, run := word("bell", "noun", "鈴"), word("run", "verb", "跑")
	return []quiz.Question{
		{ID: "1", Target: tent, Options: []vocab.Entry{tent, lamp, bell, run}},
		{ID: "2", Target: lamp, Options: []vocab.Entry{tent, lamp, bell, run}},
	}
}

func TestRunQuiz(t *testing.T) {
	var out bytes.Buffer
	sum := runQuiz(strings.NewReader("1\n1\n"), &out, questions())

	assert.Equal(t, quiz.Summary{Score: 1, Total: 2, Percent: 50}, sum)
	assert.Contains(t, out.String(), "Translate this: tent")
	assert.Contains(t, out.String(), "  2) 燈")
	assert.Contains(t, out.String(), "It means 燈")
	assert.Contains(t, out.String(), "You scored 1 / 2 (50%)")
}

func TestRunQuiz_RepromptsOnBadInput(t *testing.T) {
	var out bytes.Buffer
	sum := runQuiz(strings.NewReader("abc\n9\n1\n2\n"), &out, questions())

	assert.Equal(t, 2, sum.Score)
	assert.Equal(t, 2, strings.Count(out.String(), "Enter a number from 1 to 4."))
}

func TestRunQuiz_ClosedInput(t *testing.T) {
	var out bytes.Buffer
	sum := runQuiz(strings.NewReader("1\n"), &out, questions())

	assert.Equal(t, 1, sum.Score)
	assert.Equal(t, 2, sum.Total)
	assert.Contains(t, out.String(), "(input closed)")
}

func TestCleanWords(t *testing.T) {
	got := cleanWords([]string{" Hello, ", "...", "world!", ""})
	assert.Equal(t, []string{"Hello", "world"}, got)
}

func TestPrintEntry(t *testing.T) {
	var out bytes.Buffer
	e := word("tent", "noun", "帳篷")
	e.IPA = "/tent/"
	printEntry(&out, e)

	assert.Contains(t, out.String(), "tent  /tent/  (noun)")
	assert.Contains(t, out.String(), "  帳篷\n")
	assert.NotContains(t, out.String(), "“", "no example line without an example")
}

func TestPrintStats(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, []vocab.Entry{
		word("tent", "noun", "帳篷"),
		word("run", "verb", "跑"),
		word("lamp", "noun", "燈"),
	}, 7)

	s := out.String()
	assert.Contains(t, s, "Words saved:      3")
	assert.Contains(t, s, "Lookups cached:   7")
	assert.Contains(t, s, "save 1 more to unlock")
	assert.Less(t, strings.Index(s, "noun"), strings.Index(s, "verb"), "most common first")
}

func TestPrintStats_Empty(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, nil, 0)
	assert.NotContains(t, out.String(), "By part of speech")
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out, []store.LLMUsage{
		{Model: "made-up-model", Requests: 2, Failures: 1, InputTokens: 100, OutputTokens: 50},
	})
	assert.Contains(t, out.String(), "TOTAL (partial)")
	assert.Contains(t, out.String(), "Pricing unavailable for: made-up-model")

	out.Reset()
	printUsage(&out, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "1:05", formatSeconds(65.9))
}
