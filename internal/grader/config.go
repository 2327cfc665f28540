package grader

// Config holds generation settings for the grading contracts.
type Config struct {
	// MaxTokens caps validation, guidance and evaluation responses.
	MaxTokens int

	// AnswerMaxTokens caps the quiz model's attempt. Larger than
	// MaxTokens because the attempt may legitimately run to 300 words.
	AnswerMaxTokens int

	// Temperature applies to every contract call.
	Temperature float64
}

// DefaultConfig returns sensible defaults for grading.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       512,
		AnswerMaxTokens: 768,
		Temperature:     0.2,
	}
}
