// Package report turns a compiled quiz result into its three output
// forms: a console rendering, a JSON document, and the autograder
// sentinel marker.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/keiko-edu/llm-quiz/internal/pipeline"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F43F5E"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	stumpedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
)

// Render produces the console-friendly report. With verbose set, the
// quiz model's full answers and the evaluator's explanations are
// included per question.
func Render(res pipeline.QuizResult, verbose bool) string {
	var b strings.Builder
	rule := dimStyle.Render(strings.Repeat("─", 72))

	b.WriteString(titleStyle.Render(res.QuizTitle) + "\n")
	b.WriteString(rule + "\n")

	for _, qr := range res.QuestionResults {
		b.WriteString(renderQuestion(qr, verbose))
		b.WriteString(rule + "\n")
	}

	fmt.Fprintf(&b, "Questions: %d total, %d valid, %d invalid, %d errored\n",
		res.TotalQuestions, res.ValidQuestions, res.InvalidQuestions, res.ErroredQuestions)
	fmt.Fprintf(&b, "Stumped the model on %d of %d valid questions (%.0f%%)\n",
		res.StumpedCount, res.ValidQuestions, res.SuccessRate*100)

	if res.ErroredQuestions > 0 {
		b.WriteString(warnStyle.Render("Run incomplete: some questions did not finish grading.") + "\n")
	}

	if res.Pass {
		b.WriteString(passStyle.Render("RESULT: PASS — every valid question stumped the model") + "\n")
	} else {
		b.WriteString(failStyle.Render("RESULT: FAIL") + "\n")
	}

	return b.String()
}

func renderQuestion(qr pipeline.QuestionResult, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Q%d: %s\n", qr.Index+1, truncate(qr.Question.Question, 64))

	switch qr.State {
	case pipeline.StateErrored:
		fmt.Fprintf(&b, "  %s at %s stage: %s\n",
			failStyle.Render("ERRORED"), qr.FailedStage, qr.Error)
	case pipeline.StateDone:
		b.WriteString(renderOutcomes(qr, verbose))
	}

	if qr.Guidance != nil {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("suggestion:"), qr.Guidance.Suggestion)
	}

	return b.String()
}

func renderOutcomes(qr pipeline.QuestionResult, verbose bool) string {
	var b strings.Builder

	if qr.Validation != nil && !qr.Validation.IsValid {
		fmt.Fprintf(&b, "  %s: %s\n", warnStyle.Render("INVALID"), qr.Validation.Reason)
		if len(qr.Validation.Issues) > 0 {
			fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("issues:"), strings.Join(qr.Validation.Issues, ", "))
		}
		return b.String()
	}

	if qr.Evaluation != nil {
		if qr.Evaluation.Stumped {
			b.WriteString("  " + stumpedStyle.Render("STUMPED — the model got it wrong") + "\n")
		} else {
			b.WriteString("  " + failStyle.Render("NOT STUMPED — the model answered correctly") + "\n")
		}
		if verbose {
			if qr.ModelAnswer != nil {
				fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("model answered:"), qr.ModelAnswer.Text)
			}
			fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("evaluator:"), qr.Evaluation.Explanation)
		}
	}

	return b.String()
}

// truncate shortens s to at most max runes, never splitting a
// multi-byte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
