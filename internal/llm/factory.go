package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// request logging. rec may be nil.
func NewProvider(ctx context.Context, cfg Config, rec RequestRecorder, logger logrus.FieldLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.ProviderConfig)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.ProviderConfig)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.ProviderConfig)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.ProviderConfig)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, rec, logger)
	return WithRetry(logged, cfg.Retry, cfg.Timeout), nil
}
