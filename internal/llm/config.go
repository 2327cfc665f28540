package llm

import (
	"fmt"
	"strings"
	"time"
)

// Config describes one model identity: the endpoint it is served from,
// the credentials for it, and the model name to request. The grading run
// builds two of these from the same endpoint settings — one for the quiz
// model being stumped, one for the evaluator model doing the judging.
type Config struct {
	// Provider selects the transport implementation.
	// Values: "openai", "openrouter", "ollama", "anthropic", "gemini", "mock".
	// Empty means: infer from BaseURL.
	Provider string

	// BaseURL is the API base URL for OpenAI-compatible endpoints.
	// Ignored by the anthropic and gemini providers.
	BaseURL string

	// APIKey authenticates against the endpoint.
	APIKey string

	// Model is the model identifier passed through to the endpoint as-is.
	Model string

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the bounded-backoff defaults used for
// grading runs.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// ResolveProvider returns the provider name, inferring it from the base
// URL when not set explicitly. Any unrecognized URL is treated as a
// generic OpenAI-compatible endpoint.
func (c Config) ResolveProvider() string {
	if c.Provider != "" {
		return c.Provider
	}
	return inferProvider(c.BaseURL)
}

func inferProvider(baseURL string) string {
	u := strings.ToLower(baseURL)
	switch {
	case strings.Contains(u, "openrouter"):
		return "openrouter"
	case strings.Contains(u, "ollama"), strings.Contains(u, ":11434"):
		return "ollama"
	default:
		return "openai"
	}
}

// Validate checks that the selected provider has the credentials it needs.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model identity is required")
	}
	switch p := c.ResolveProvider(); p {
	case "openai", "openrouter", "anthropic", "gemini":
		if c.APIKey == "" {
			return fmt.Errorf("API key is required for the %s provider", p)
		}
	case "ollama", "mock":
		// Local endpoints need no key.
	default:
		return fmt.Errorf("unknown model provider: %q", p)
	}
	return nil
}
