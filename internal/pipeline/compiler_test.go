package pipeline

import (
	"testing"

	"github.com/keiko-edu/llm-quiz/internal/grader"
	"github.com/keiko-edu/llm-quiz/internal/quiz"
)

func validStumped(idx int) QuestionResult {
	return QuestionResult{
		Index:      idx,
		Question:   quiz.Question{Question: "Q?", Answer: "A."},
		State:      StateDone,
		Validation: &grader.ValidationOutcome{IsValid: true, Confidence: "HIGH"},
		Evaluation: &grader.EvaluationOutcome{Verdict: "INCORRECT", Stumped: true, Confidence: "HIGH"},
	}
}

func validNotStumped(idx int) QuestionResult {
	r := validStumped(idx)
	r.Evaluation = &grader.EvaluationOutcome{Verdict: "CORRECT", Stumped: false, Confidence: "HIGH"}
	return r
}

func invalid(idx int) QuestionResult {
	return QuestionResult{
		Index:      idx,
		Question:   quiz.Question{Question: "Q?", Answer: "A."},
		State:      StateDone,
		Validation: &grader.ValidationOutcome{IsValid: false, Issues: []string{"answer_quality"}, Reason: "bad"},
	}
}

func erroredAt(idx int, stage Stage, validated bool) QuestionResult {
	r := QuestionResult{
		Index:       idx,
		Question:    quiz.Question{Question: "Q?", Answer: "A."},
		State:       StateErrored,
		FailedStage: stage,
		Error:       "model endpoint unavailable",
	}
	if validated {
		r.Validation = &grader.ValidationOutcome{IsValid: true}
	}
	return r
}

func TestCompile_EmptyQuiz(t *testing.T) {
	res := Compile("Empty", nil)
	if res.Pass {
		t.Fatal("empty quiz must not pass")
	}
	if res.SuccessRate != 0 {
		t.Fatalf("expected success rate 0, got %v", res.SuccessRate)
	}
	if res.TotalQuestions != 0 {
		t.Fatalf("expected 0 questions, got %d", res.TotalQuestions)
	}
}

func TestCompile_AllStumpedPasses(t *testing.T) {
	res := Compile("Quiz", []QuestionResult{validStumped(0), validStumped(1), validStumped(2)})
	if !res.Pass {
		t.Fatal("expected pass when every valid question stumps")
	}
	if res.SuccessRate != 1.0 {
		t.Fatalf("expected success rate 1.0, got %v", res.SuccessRate)
	}
	if res.ValidQuestions != 3 || res.StumpedCount != 3 {
		t.Fatalf("unexpected counts: %+v", res)
	}
}

func TestCompile_OneAnsweredFails(t *testing.T) {
	res := Compile("Quiz", []QuestionResult{validStumped(0), validNotStumped(1), validStumped(2)})
	if res.Pass {
		t.Fatal("one answered question must fail the quiz")
	}
	if res.SuccessRate < 0.66 || res.SuccessRate > 0.67 {
		t.Fatalf("expected success rate 2/3, got %v", res.SuccessRate)
	}
}

func TestCompile_AllInvalidFails(t *testing.T) {
	res := Compile("Quiz", []QuestionResult{invalid(0), invalid(1)})
	if res.Pass {
		t.Fatal("all-invalid quiz must not pass")
	}
	if res.ValidQuestions != 0 || res.InvalidQuestions != 2 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if res.SuccessRate != 0 {
		t.Fatalf("expected success rate 0, got %v", res.SuccessRate)
	}
}

func TestCompile_InvalidMixedWithStumped(t *testing.T) {
	// Invalid questions don't block a pass; they just don't count.
	res := Compile("Quiz", []QuestionResult{validStumped(0), invalid(1), validStumped(2)})
	if !res.Pass {
		t.Fatal("expected pass: every evaluated question stumped")
	}
	if res.ValidQuestions != 2 || res.InvalidQuestions != 1 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if res.SuccessRate != 1.0 {
		t.Fatalf("expected success rate 1.0, got %v", res.SuccessRate)
	}
}

func TestCompile_ErroredBeforeValidation(t *testing.T) {
	// An error at the validate stage leaves the question neither valid
	// nor invalid.
	res := Compile("Quiz", []QuestionResult{validStumped(0), erroredAt(1, StageValidate, false)})
	if res.ErroredQuestions != 1 {
		t.Fatalf("expected 1 errored, got %d", res.ErroredQuestions)
	}
	if res.ValidQuestions != 1 || res.InvalidQuestions != 0 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if !res.Pass {
		t.Fatal("expected pass: the only evaluated question stumped")
	}
}

func TestCompile_ErroredAfterValidation(t *testing.T) {
	// A question that validated but never reached evaluation counts in
	// the valid denominator but not the pass conjunction.
	res := Compile("Quiz", []QuestionResult{validStumped(0), erroredAt(1, StageAnswer, true)})
	if res.ValidQuestions != 2 {
		t.Fatalf("expected 2 valid, got %d", res.ValidQuestions)
	}
	if res.SuccessRate != 0.5 {
		t.Fatalf("expected success rate 0.5, got %v", res.SuccessRate)
	}
	if !res.Pass {
		t.Fatal("expected pass: every completed evaluation stumped")
	}
}

func TestCompile_AllErroredFails(t *testing.T) {
	res := Compile("Quiz", []QuestionResult{erroredAt(0, StageValidate, false), erroredAt(1, StageEvaluate, true)})
	if res.Pass {
		t.Fatal("a run with no completed evaluations must not pass")
	}
}

func TestCompile_Idempotent(t *testing.T) {
	results := []QuestionResult{validStumped(0), invalid(1), validNotStumped(2)}
	first := Compile("Quiz", results)
	second := Compile("Quiz", results)
	if first.Pass != second.Pass || first.SuccessRate != second.SuccessRate ||
		first.StumpedCount != second.StumpedCount {
		t.Fatalf("compile not deterministic: %+v vs %+v", first, second)
	}
}
