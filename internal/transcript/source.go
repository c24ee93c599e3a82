package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/nookclass/internal/llm"
)

// Source produces the transcript shown for a video.
type Source interface {
	Transcript(ctx context.Context, videoID, topic string) ([]Line, error)
}

// StaticSource serves the demo transcript for the demo video and preset
// topic sentences for everything else.
type StaticSource struct{}

func (StaticSource) Transcript(_ context.Context, videoID, topic string) ([]Line, error) {
	if videoID == DemoVideoID {
		return Demo(), nil
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return Schedule(TopicPairs(topic)), nil
}

// LinesPerTranscript is how many sentences a generated transcript holds.
const LinesPerTranscript = 5

// LLMSource asks an LLM for topic sentences and falls back to another
// Source when generation fails. The demo video never reaches the LLM.
type LLMSource struct {
	provider llm.Provider
	fallback Source
	logger   logrus.FieldLogger
}

// NewLLMSource creates an LLMSource. A nil fallback uses StaticSource.
func NewLLMSource(provider llm.Provider, fallback Source, logger logrus.FieldLogger) *LLMSource {
	if fallback == nil {
		fallback = StaticSource{}
	}
	return &LLMSource{provider: provider, fallback: fallback, logger: logger}
}

func (s *LLMSource) Transcript(ctx context.Context, videoID, topic string) ([]Line, error) {
	if videoID == DemoVideoID {
		return s.fallback.Transcript(ctx, videoID, topic)
	}
	if topic == "" {
		topic = DefaultTopic
	}

	pairs, err := s.generate(ctx, topic)
	if err != nil {
		s.logger.WithError(err).WithField("topic", topic).Warn("transcript generation failed, using presets")
		return s.fallback.Transcript(ctx, videoID, topic)
	}
	return Schedule(pairs), nil
}

type transcriptOutput struct {
	Lines []Pair `json:"lines"`
}

func (s *LLMSource) generate(ctx context.Context, topic string) ([]Pair, error) {
	ctx = llm.WithPurpose(ctx, "transcript-gen")

	req := llm.Request{
		System: transcriptPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Topic: %s\nSentences: %d", topic, LinesPerTranscript)},
		},
		Schema:      TranscriptSchema,
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out transcriptOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(out.Lines) == 0 {
		return nil, fmt.Errorf("LLM returned no lines")
	}
	for i, p := range out.Lines {
		if strings.TrimSpace(p.En) == "" || strings.TrimSpace(p.Zh) == "" {
			return nil, fmt.Errorf("line %d is empty", i)
		}
	}
	if len(out.Lines) > LinesPerTranscript {
		out.Lines = out.Lines[:LinesPerTranscript]
	}
	return out.Lines, nil
}

const transcriptPrompt = `You write short listening-practice scripts for English learners whose first language is Traditional Chinese (Taiwan).

Rules:
- Write simple, natural spoken English sentences about the given topic, like narration from a short video.
- Each sentence is at most 12 words.
- Give a Traditional Chinese (zh-TW) translation for every sentence.
- Return exactly the requested number of sentences.`

// TranscriptSchema is the JSON schema for generated transcripts.
var TranscriptSchema = &llm.Schema{
	Name:        "bilingual-transcript",
	Description: "Short bilingual English and Traditional Chinese sentences about a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lines": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"en": map[string]any{
							"type":        "string",
							"description": "The English sentence",
						},
						"zh": map[string]any{
							"type":        "string",
							"description": "The Traditional Chinese translation",
						},
					},
					"required":             []any{"en", "zh"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"lines"},
		"additionalProperties": false,
	},
}
