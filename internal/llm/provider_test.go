package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/abhisek/nookclass/internal/config"
)

func testTranscriptSchema() *Schema {
	return &Schema{
		Name:        "test-transcript",
		Description: "Bilingual lines",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lines": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"en": map[string]any{"type": "string"},
							"zh": map[string]any{"type": "string"},
						},
						"required":             []any{"en", "zh"},
						"additionalProperties": false,
					},
				},
			},
			"required": []any{"lines"},
		},
	}
}

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` || resp1.Usage.InputTokens != 10 {
		t.Fatalf("first response = %s %+v", resp1.Content, resp1.Usage)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("second response = %s", resp2.Content)
	}

	_, err = mock.Generate(context.Background(), Request{System: "third"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue: expected ErrProviderUnavailable, got %T", err)
	}
	if mock.CallCount() != 3 || mock.Calls[2].System != "third" {
		t.Errorf("calls = %+v", mock.Calls)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, "transcript-gen")
	if p := PurposeFrom(ctx); p != "transcript-gen" {
		t.Fatalf("expected 'transcript-gen', got %q", p)
	}
}

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range keyEnv {
		t.Setenv(k.env, "")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		in           config.LLMConfig
		wantOK       bool
		wantProvider string
		wantKey      string
		wantModel    string
	}{
		{
			name:   "nothing configured",
			wantOK: false,
		},
		{
			name:   "disabled",
			env:    map[string]string{"GEMINI_API_KEY": "g"},
			in:     config.LLMConfig{Provider: "none"},
			wantOK: false,
		},
		{
			name:         "discovery prefers gemini",
			env:          map[string]string{"OPENAI_API_KEY": "o", "GEMINI_API_KEY": "g"},
			wantOK:       true,
			wantProvider: "gemini",
			wantKey:      "g",
			wantModel:    "gemini-flash",
		},
		{
			name:         "discovery finds openrouter last",
			env:          map[string]string{"OPENROUTER_API_KEY": "r"},
			wantOK:       true,
			wantProvider: "openrouter",
			wantKey:      "r",
			wantModel:    "google/gemini-2.0-flash-001",
		},
		{
			name:         "explicit provider reads its env key",
			env:          map[string]string{"ANTHROPIC_API_KEY": "a", "GEMINI_API_KEY": "g"},
			in:           config.LLMConfig{Provider: "anthropic", Model: "claude-sonnet"},
			wantOK:       true,
			wantProvider: "anthropic",
			wantKey:      "a",
			wantModel:    "claude-sonnet",
		},
		{
			name:         "configured key wins",
			env:          map[string]string{"OPENAI_API_KEY": "env"},
			in:           config.LLMConfig{Provider: "openai", APIKey: "file"},
			wantOK:       true,
			wantProvider: "openai",
			wantKey:      "file",
			wantModel:    "gpt-4o-mini",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeys(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, ok := Resolve(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cfg.Provider != tt.wantProvider || cfg.APIKey != tt.wantKey || cfg.Model != tt.wantModel {
				t.Errorf("cfg = %+v", cfg)
			}
		})
	}
}

func TestResolve_MaxAttempts(t *testing.T) {
	clearKeys(t)
	cfg, ok := Resolve(config.LLMConfig{Provider: "mock", MaxAttempts: 5})
	if !ok {
		t.Fatal("mock should resolve")
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", ProviderConfig: ProviderConfig{APIKey: "sk"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "skynet"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-flash")
	if c == nil {
		t.Fatal("alias should resolve to a priced model")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-2.8) > 1e-9 {
		t.Errorf("Cost = %v, want 2.8", got)
	}
	if LookupCost("unknown-model") != nil {
		t.Error("unknown model should have no price")
	}
}
