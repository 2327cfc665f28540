package llm

import (
	"context"
	"fmt"

	"github.com/keiko-edu/llm-quiz/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging (when a repo is given) and retry middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch p := cfg.ResolveProvider(); p {
	case "openai":
		base, err = NewOpenAIProvider(cfg)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg)
	case "ollama":
		base, err = NewOllamaProvider(cfg)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown model provider: %q", p)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.ResolveProvider(), err)
	}

	// Wrap with middleware: caller → retry → logging → base
	if eventRepo != nil {
		base = WithLogging(base, eventRepo)
	}
	return WithRetry(base, cfg.Retry), nil
}
