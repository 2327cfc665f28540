// Package config resolves the grading run configuration from defaults,
// the environment, a YAML config file, and CLI flags — in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/keiko-edu/llm-quiz/internal/llm"
)

// Config is the resolved, read-only configuration for one grading run.
// Nothing mutates it after the pipeline starts.
type Config struct {
	// Provider forces a transport implementation. Empty infers it from
	// BaseURL (openrouter / ollama / generic OpenAI-compatible).
	Provider string `yaml:"provider"`

	// BaseURL is the model endpoint. Any OpenAI-compatible
	// chat-completion API works: hosted aggregator, direct provider,
	// or a local model server.
	BaseURL string `yaml:"base_url"`

	APIKey string `yaml:"api_key"`

	// QuizModel answers the questions; EvaluatorModel validates,
	// guides and judges. Independently configurable identities.
	QuizModel      string `yaml:"quiz_model"`
	EvaluatorModel string `yaml:"evaluator_model"`

	// ContextURLs point at course materials fetched before the run and
	// passed to validation as topical context.
	ContextURLs []string `yaml:"context_urls"`

	// Concurrency bounds how many questions are graded at once.
	Concurrency int `yaml:"concurrency"`

	// EventDB overrides the model-call event log location.
	EventDB string `yaml:"event_db"`
}

// Overrides carries CLI flag values. Zero values leave the underlying
// setting untouched.
type Overrides struct {
	Provider       string
	BaseURL        string
	APIKey         string
	QuizModel      string
	EvaluatorModel string
	ContextURLs    []string
	Concurrency    int
	EventDB        string
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		BaseURL:        "https://openrouter.ai/api/v1",
		QuizModel:      "openai/gpt-4o-mini",
		EvaluatorModel: "openai/gpt-4o",
		Concurrency:    3,
	}
}

// Resolve builds the effective configuration. Precedence, lowest to
// highest: defaults, environment, config file, CLI flags. A config file
// names one run's setup explicitly, so it beats ambient env vars.
func Resolve(filePath string, flags Overrides) (Config, error) {
	cfg := Default()

	cfg.applyEnv()
	if filePath != "" {
		if err := cfg.applyFile(filePath); err != nil {
			return Config{}, err
		}
	}
	cfg.applyOverrides(flags)

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.applyOverrides(Overrides{
		Provider:       file.Provider,
		BaseURL:        file.BaseURL,
		APIKey:         file.APIKey,
		QuizModel:      file.QuizModel,
		EvaluatorModel: file.EvaluatorModel,
		ContextURLs:    file.ContextURLs,
		Concurrency:    file.Concurrency,
		EventDB:        file.EventDB,
	})
	return nil
}

func (c *Config) applyEnv() {
	c.applyOverrides(Overrides{
		Provider:       os.Getenv("LLM_QUIZ_PROVIDER"),
		BaseURL:        os.Getenv("LLM_QUIZ_BASE_URL"),
		APIKey:         os.Getenv("LLM_QUIZ_API_KEY"),
		QuizModel:      os.Getenv("LLM_QUIZ_MODEL"),
		EvaluatorModel: os.Getenv("LLM_QUIZ_EVALUATOR_MODEL"),
	})
}

func (c *Config) applyOverrides(o Overrides) {
	if o.Provider != "" {
		c.Provider = o.Provider
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.APIKey != "" {
		c.APIKey = o.APIKey
	}
	if o.QuizModel != "" {
		c.QuizModel = o.QuizModel
	}
	if o.EvaluatorModel != "" {
		c.EvaluatorModel = o.EvaluatorModel
	}
	if len(o.ContextURLs) > 0 {
		c.ContextURLs = o.ContextURLs
	}
	if o.Concurrency > 0 {
		c.Concurrency = o.Concurrency
	}
	if o.EventDB != "" {
		c.EventDB = o.EventDB
	}
}

// Validate checks the configuration before any question processing
// starts. Failures here are fatal to the whole run.
func (c Config) Validate() error {
	if err := c.QuizModelConfig().Validate(); err != nil {
		return fmt.Errorf("quiz model: %w", err)
	}
	if err := c.EvaluatorModelConfig().Validate(); err != nil {
		return fmt.Errorf("evaluator model: %w", err)
	}
	return nil
}

// QuizModelConfig builds the provider config for the quiz model identity.
func (c Config) QuizModelConfig() llm.Config {
	return c.modelConfig(c.QuizModel)
}

// EvaluatorModelConfig builds the provider config for the evaluator
// model identity.
func (c Config) EvaluatorModelConfig() llm.Config {
	return c.modelConfig(c.EvaluatorModel)
}

func (c Config) modelConfig(model string) llm.Config {
	return llm.Config{
		Provider: c.Provider,
		BaseURL:  c.BaseURL,
		APIKey:   c.APIKey,
		Model:    model,
		Retry:    llm.DefaultRetryConfig(),
	}
}
