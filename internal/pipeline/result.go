package pipeline

import (
	"github.com/keiko-edu/llm-quiz/internal/grader"
	"github.com/keiko-edu/llm-quiz/internal/quiz"
)

// QuestionResult aggregates everything the pipeline produced for one
// question. ModelAnswer and Evaluation are present iff the question
// validated as valid and the respective stage completed.
type QuestionResult struct {
	Index    int           `json:"index"`
	Question quiz.Question `json:"question"`

	// State is the question's terminal state: DONE or ERRORED.
	State State `json:"state"`

	// FailedStage and Error carry diagnostics when State is ERRORED.
	FailedStage Stage  `json:"failed_stage,omitempty"`
	Error       string `json:"error,omitempty"`

	Validation  *grader.ValidationOutcome `json:"validation,omitempty"`
	Guidance    *grader.RevisionGuidance  `json:"guidance,omitempty"`
	ModelAnswer *grader.ModelAnswer       `json:"model_answer,omitempty"`
	Evaluation  *grader.EvaluationOutcome `json:"evaluation,omitempty"`
}

// Valid reports whether the question passed validation, regardless of
// what happened in later stages.
func (r QuestionResult) Valid() bool {
	return r.Validation != nil && r.Validation.IsValid
}

// QuizResult is the quiz-level verdict. Built once by Compile and never
// mutated afterwards.
type QuizResult struct {
	QuizTitle       string           `json:"quiz_title"`
	QuestionResults []QuestionResult `json:"question_results"`

	TotalQuestions   int `json:"total_questions"`
	ValidQuestions   int `json:"valid_questions"`
	InvalidQuestions int `json:"invalid_questions"`
	ErroredQuestions int `json:"errored_questions"`
	StumpedCount     int `json:"stumped_count"`

	// SuccessRate is stumped count over valid-question count.
	// 0 when there are no valid questions.
	SuccessRate float64 `json:"success_rate"`

	// Pass is true iff at least one valid question completed evaluation
	// and every completed evaluation stumped the quiz model. A quiz with
	// zero valid questions never passes.
	Pass bool `json:"pass"`
}
