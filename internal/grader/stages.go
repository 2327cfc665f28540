package grader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/keiko-edu/llm-quiz/internal/llm"
	"github.com/keiko-edu/llm-quiz/internal/quiz"
)

// Grader holds the two model identities used by the pipeline: the quiz
// model that attempts questions, and the evaluator model that validates,
// guides and judges. Both are passed in explicitly so independent runs
// can use different models without interfering.
type Grader struct {
	quizModel llm.Provider
	evaluator llm.Provider
	cfg       Config
}

// New creates a Grader from the two configured providers.
func New(quizModel, evaluator llm.Provider, cfg Config) *Grader {
	return &Grader{quizModel: quizModel, evaluator: evaluator, cfg: cfg}
}

// Validate asks the evaluator whether the question is acceptable.
// Runs for every question before any other stage.
func (g *Grader) Validate(ctx context.Context, q quiz.Question, courseContext string) (*ValidationOutcome, error) {
	ctx = llm.WithPurpose(ctx, "validate")

	resp, err := g.evaluator.Generate(ctx, llm.Request{
		System: validateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildValidateMessage(q.Question, q.Answer, courseContext)},
		},
		Schema:      ValidateQuestionSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("validate question: %w", err)
	}

	var out ValidationOutcome
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse validation response: %w", err)
	}
	return &out, nil
}

// Guide asks the evaluator for one revision suggestion. Runs for every
// question regardless of validity.
func (g *Grader) Guide(ctx context.Context, q quiz.Question, validationReason string) (*RevisionGuidance, error) {
	ctx = llm.WithPurpose(ctx, "guidance")

	resp, err := g.evaluator.Generate(ctx, llm.Request{
		System: guidanceSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGuidanceMessage(q.Question, q.Answer, validationReason)},
		},
		Schema:      RevisionGuidanceSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate revision guidance: %w", err)
	}

	var out RevisionGuidance
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse guidance response: %w", err)
	}
	return &out, nil
}

// Answer has the quiz model attempt the question. The student's claimed
// answer is deliberately withheld. Runs only for valid questions.
func (g *Grader) Answer(ctx context.Context, q quiz.Question) (*ModelAnswer, error) {
	ctx = llm.WithPurpose(ctx, "answer")

	resp, err := g.quizModel.Generate(ctx, llm.Request{
		System: answerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAnswerMessage(q.Question)},
		},
		Schema:      AnswerQuestionSchema,
		MaxTokens:   g.cfg.AnswerMaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("answer question: %w", err)
	}

	var out ModelAnswer
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse answer response: %w", err)
	}
	return &out, nil
}

// Evaluate asks the evaluator to compare the quiz model's attempt
// against the student's claimed answer. Runs only after a successful
// Answer stage.
func (g *Grader) Evaluate(ctx context.Context, q quiz.Question, modelAnswer string) (*EvaluationOutcome, error) {
	ctx = llm.WithPurpose(ctx, "evaluate")

	resp, err := g.evaluator.Generate(ctx, llm.Request{
		System: evaluateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluateMessage(q.Question, q.Answer, modelAnswer)},
		},
		Schema:      EvaluateAnswerSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	var out EvaluationOutcome
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}
	return &out, nil
}
