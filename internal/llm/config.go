package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/nookclass/internal/config"
)

// Provider names accepted in configuration.
const (
	ProviderNone       = "none"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds the resolved LLM provider configuration.
type Config struct {
	Provider string
	ProviderConfig
	Retry RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig is what every provider constructor needs.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// keyEnv lists the standard API key variables in discovery order.
var keyEnv = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
}

// DefaultRetry returns the backoff used when nothing else is configured.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// Resolve turns the application's llm section into a provider Config.
// An empty provider checks the standard API key variables; "none", or no
// key found, reports false and transcripts stay on the presets.
func Resolve(c config.LLMConfig) (Config, bool) {
	cfg := Config{
		Provider: c.Provider,
		ProviderConfig: ProviderConfig{
			APIKey:  c.APIKey,
			Model:   c.Model,
			BaseURL: c.BaseURL,
		},
		Retry:   DefaultRetry(),
		Timeout: c.Timeout,
	}
	if c.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = c.MaxAttempts
	}

	switch cfg.Provider {
	case ProviderNone:
		return Config{}, false
	case "":
		found := false
		for _, k := range keyEnv {
			if v := os.Getenv(k.env); v != "" {
				cfg.Provider = k.provider
				if cfg.APIKey == "" {
					cfg.APIKey = v
				}
				found = true
				break
			}
		}
		if !found {
			return Config{}, false
		}
	default:
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv(KeyEnv(cfg.Provider))
		}
	}

	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	return cfg, true
}

// KeyEnv returns the standard API key variable for provider, or "".
func KeyEnv(provider string) string {
	for _, k := range keyEnv {
		if k.provider == provider {
			return k.env
		}
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("%s or llm.api_key is required for the %s provider", KeyEnv(c.Provider), c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
