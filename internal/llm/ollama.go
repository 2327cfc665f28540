package llm

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaProvider wraps OpenAIProvider for a local Ollama server, which
// exposes an OpenAI-compatible API under /v1 and ignores the API key.
type OllamaProvider struct {
	*OpenAIProvider
}

// NewOllamaProvider creates a provider targeting a local Ollama server.
func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOllamaBaseURL
	}
	if cfg.APIKey == "" {
		// The SDK requires a non-empty key; Ollama does not check it.
		cfg.APIKey = "ollama"
	}

	inner, err := NewOpenAIProvider(cfg)
	if err != nil {
		return nil, err
	}

	return &OllamaProvider{OpenAIProvider: inner}, nil
}
