package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

var llmProviders = []string{"", "none", "anthropic", "openai", "gemini", "openrouter", "mock"}

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	if c.Lookup.Timeout <= 0 {
		return fmt.Errorf("lookup.timeout must be > 0 (got %s)", c.Lookup.Timeout)
	}

	if c.Quiz.Questions < 1 {
		return fmt.Errorf("quiz.questions must be >= 1 (got %d)", c.Quiz.Questions)
	}
	if c.Quiz.FeedbackDelay <= 0 {
		return fmt.Errorf("quiz.feedback_delay must be > 0 (got %s)", c.Quiz.FeedbackDelay)
	}

	if c.Player.PollInterval <= 0 {
		return fmt.Errorf("player.poll_interval must be > 0 (got %s)", c.Player.PollInterval)
	}
	if c.Player.DemoDelay < 0 {
		return fmt.Errorf("player.demo_delay must be >= 0 (got %s)", c.Player.DemoDelay)
	}

	if !slices.Contains(llmProviders, c.LLM.Provider) {
		return fmt.Errorf("llm.provider %q is not one of %s", c.LLM.Provider, strings.Join(llmProviders[1:], ", "))
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("llm.max_attempts must be >= 1 (got %d)", c.LLM.MaxAttempts)
	}

	return nil
}
