package grader

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/keiko-edu/llm-quiz/internal/llm"
	"github.com/keiko-edu/llm-quiz/internal/quiz"
)

var testQuestion = quiz.Question{
	Question: "What note does the A string of a violin sound at standard tuning?",
	Answer:   "A4, 440 Hz",
}

func TestValidate_DecodesOutcome(t *testing.T) {
	evaluator := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"is_valid":false,"issues":["answer_quality"],"confidence":"HIGH","reason":"Ambiguous answer."}`),
	})
	quizModel := llm.NewMockProvider()
	g := New(quizModel, evaluator, DefaultConfig())

	out, err := g.Validate(context.Background(), testQuestion, "some context")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.IsValid {
		t.Fatal("expected invalid outcome")
	}
	if len(out.Issues) != 1 || out.Issues[0] != IssueAnswerQuality {
		t.Fatalf("unexpected issues: %v", out.Issues)
	}
	if out.Confidence != "HIGH" {
		t.Fatalf("unexpected confidence: %q", out.Confidence)
	}

	// Validation goes to the evaluator, never the quiz model.
	if evaluator.CallCount() != 1 || quizModel.CallCount() != 0 {
		t.Fatalf("wrong provider called: evaluator=%d quiz=%d", evaluator.CallCount(), quizModel.CallCount())
	}
}

func TestValidate_PassesContextAndSchema(t *testing.T) {
	evaluator := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"is_valid":true,"issues":[],"confidence":"HIGH","reason":"Fine."}`),
	})
	g := New(llm.NewMockProvider(), evaluator, DefaultConfig())

	if _, err := g.Validate(context.Background(), testQuestion, "Week 3: violin tuning"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := evaluator.Calls[0]
	if req.Schema != ValidateQuestionSchema {
		t.Fatal("expected validation schema on request")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Week 3: violin tuning") {
		t.Fatalf("expected course context in message, got: %s", msg)
	}
	if !strings.Contains(msg, testQuestion.Answer) {
		t.Fatal("validation should see the claimed answer")
	}
}

func TestValidate_EmptyContextNoted(t *testing.T) {
	evaluator := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"is_valid":true,"issues":[],"confidence":"MEDIUM","reason":"Fine."}`),
	})
	g := New(llm.NewMockProvider(), evaluator, DefaultConfig())

	if _, err := g.Validate(context.Background(), testQuestion, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := evaluator.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "none supplied") {
		t.Fatalf("expected empty-context note, got: %s", msg)
	}
}

func TestGuide_DecodesSuggestion(t *testing.T) {
	evaluator := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"suggestion":"State the octave explicitly."}`),
	})
	g := New(llm.NewMockProvider(), evaluator, DefaultConfig())

	out, err := g.Guide(context.Background(), testQuestion, "Ambiguous answer.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Suggestion != "State the octave explicitly." {
		t.Fatalf("unexpected suggestion: %q", out.Suggestion)
	}
	if !strings.Contains(evaluator.Calls[0].Messages[0].Content, "Ambiguous answer.") {
		t.Fatal("guidance should see the validation reason")
	}
}

func TestAnswer_UsesQuizModelAndWithholdsAnswer(t *testing.T) {
	quizModel := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"answer":"The A string sounds A4 at 440 Hz."}`),
	})
	evaluator := llm.NewMockProvider()
	g := New(quizModel, evaluator, DefaultConfig())

	out, err := g.Answer(context.Background(), testQuestion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text == "" {
		t.Fatal("expected answer text")
	}

	if quizModel.CallCount() != 1 || evaluator.CallCount() != 0 {
		t.Fatalf("wrong provider called: quiz=%d evaluator=%d", quizModel.CallCount(), evaluator.CallCount())
	}

	// The student's claimed answer must never leak into the attempt.
	req := quizModel.Calls[0]
	if strings.Contains(req.System, testQuestion.Answer) || strings.Contains(req.Messages[0].Content, testQuestion.Answer) {
		t.Fatal("student answer leaked into the answer request")
	}
}

func TestAnswer_UsesLargerTokenBudget(t *testing.T) {
	quizModel := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"answer":"A4."}`),
	})
	cfg := DefaultConfig()
	g := New(quizModel, llm.NewMockProvider(), cfg)

	if _, err := g.Answer(context.Background(), testQuestion); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := quizModel.Calls[0].MaxTokens; got != cfg.AnswerMaxTokens {
		t.Fatalf("expected answer token budget %d, got %d", cfg.AnswerMaxTokens, got)
	}
}

func TestEvaluate_DecodesVerdict(t *testing.T) {
	evaluator := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"verdict":"INCORRECT","stumped":true,"explanation":"Wrong octave.","confidence":"HIGH"}`),
	})
	g := New(llm.NewMockProvider(), evaluator, DefaultConfig())

	out, err := g.Evaluate(context.Background(), testQuestion, "A3, 220 Hz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Verdict != "INCORRECT" || !out.Stumped {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	msg := evaluator.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "A3, 220 Hz") || !strings.Contains(msg, testQuestion.Answer) {
		t.Fatalf("evaluation should see both answers, got: %s", msg)
	}
}

func TestStages_PropagateProviderErrors(t *testing.T) {
	// Empty mocks return provider-unavailable for every call.
	g := New(llm.NewMockProvider(), llm.NewMockProvider(), DefaultConfig())
	ctx := context.Background()

	if _, err := g.Validate(ctx, testQuestion, ""); err == nil {
		t.Fatal("expected validate error")
	}
	if _, err := g.Guide(ctx, testQuestion, "r"); err == nil {
		t.Fatal("expected guidance error")
	}
	if _, err := g.Answer(ctx, testQuestion); err == nil {
		t.Fatal("expected answer error")
	}
	if _, err := g.Evaluate(ctx, testQuestion, "x"); err == nil {
		t.Fatal("expected evaluate error")
	}
}
