package pipeline

// Compile aggregates per-question outcomes into the quiz-level verdict.
// Pure function of its inputs: no model calls, fully deterministic, so
// the pass/fail logic is testable without any endpoint.
//
// Errored questions count toward the valid-question denominator when
// they validated before failing, but are excluded from the pass
// conjunction — their evaluation never happened, so they neither
// confirm nor break an all-stumped run.
func Compile(title string, results []QuestionResult) QuizResult {
	out := QuizResult{
		QuizTitle:       title,
		QuestionResults: results,
		TotalQuestions:  len(results),
	}

	evaluated := 0
	for _, r := range results {
		if r.State == StateErrored {
			out.ErroredQuestions++
		}
		if r.Validation == nil {
			continue
		}
		if !r.Validation.IsValid {
			out.InvalidQuestions++
			continue
		}
		out.ValidQuestions++
		if r.Evaluation != nil {
			evaluated++
			if r.Evaluation.Stumped {
				out.StumpedCount++
			}
		}
	}

	// Questions that errored before validation completed are neither
	// valid nor invalid; they only show up in ErroredQuestions.

	if out.ValidQuestions > 0 {
		out.SuccessRate = float64(out.StumpedCount) / float64(out.ValidQuestions)
	}

	out.Pass = out.ValidQuestions > 0 && evaluated > 0 && out.StumpedCount == evaluated

	return out
}
