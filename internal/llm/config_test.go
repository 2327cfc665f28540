package llm

import "testing"

func TestResolveProvider_ExplicitWins(t *testing.T) {
	cfg := Config{Provider: "anthropic", BaseURL: "https://openrouter.ai/api/v1"}
	if got := cfg.ResolveProvider(); got != "anthropic" {
		t.Fatalf("expected explicit provider, got %q", got)
	}
}

func TestInferProvider(t *testing.T) {
	cases := []struct {
		baseURL string
		want    string
	}{
		{"https://openrouter.ai/api/v1", "openrouter"},
		{"https://OpenRouter.ai/api/v1", "openrouter"},
		{"http://localhost:11434/v1", "ollama"},
		{"http://ollama.internal/v1", "ollama"},
		{"https://api.openai.com/v1", "openai"},
		{"https://my-gateway.example.com/v1", "openai"},
		{"", "openai"},
	}
	for _, tc := range cases {
		if got := inferProvider(tc.baseURL); got != tc.want {
			t.Errorf("inferProvider(%q) = %q, want %q", tc.baseURL, got, tc.want)
		}
	}
}

func TestConfigValidate_RequiresModel(t *testing.T) {
	cfg := Config{Provider: "ollama"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestConfigValidate_RequiresKeyForHosted(t *testing.T) {
	for _, p := range []string{"openai", "openrouter", "anthropic", "gemini"} {
		cfg := Config{Provider: p, Model: "some-model"}
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error for missing API key", p)
		}
		cfg.APIKey = "sk-test"
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: unexpected error with key: %v", p, err)
		}
	}
}

func TestConfigValidate_LocalNeedsNoKey(t *testing.T) {
	cfg := Config{Provider: "ollama", Model: "llama3"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate_UnknownProvider(t *testing.T) {
	cfg := Config{Provider: "carrier-pigeon", Model: "m"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
