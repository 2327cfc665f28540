package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keiko-edu/llm-quiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "llm-quiz <quiz-file>",
	Short: "Grade quiz questions by trying to stump an LLM",
	Long: "llm-quiz grades student-authored quiz questions by asking a quiz model to\n" +
		"answer them and an evaluator model to judge the attempts. The student\n" +
		"passes when every valid question stumps the quiz model.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGrade(cmd, args[0])
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().String("config", "", "Path to YAML config file")
	rootCmd.Flags().String("api-key", "", "API key for the model endpoint")
	rootCmd.Flags().String("base-url", "", "Model endpoint base URL (any OpenAI-compatible API)")
	rootCmd.Flags().String("provider", "", "Force a provider: openai, openrouter, ollama, anthropic, gemini")
	rootCmd.Flags().String("quiz-model", "", "Model identity that answers the questions")
	rootCmd.Flags().String("evaluator-model", "", "Model identity that validates and judges")
	rootCmd.Flags().StringArray("context-url", nil, "Course context URL (repeatable)")
	rootCmd.Flags().StringP("output", "o", "", "Write the JSON report to this file")
	rootCmd.Flags().Int("concurrency", 0, "Questions graded in parallel (default from config)")
	rootCmd.Flags().BoolP("verbose", "v", false, "Print every state transition and full model answers")
	rootCmd.Flags().Bool("ui", false, "Show a live progress view instead of plain log lines")

	rootCmd.PersistentFlags().String("event-db", "", "Path to the model-call event log (overrides LLM_QUIZ_DB)")

	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveEventDBPath returns the event database path using --event-db
// (highest priority), then LLM_QUIZ_DB, then the default XDG path.
func resolveEventDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("event-db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
