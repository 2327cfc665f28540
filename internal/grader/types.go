// Package grader implements the four structured model interactions used
// to grade a quiz question: validate it, generate revision guidance,
// have the quiz model attempt it, and evaluate the attempt against the
// student's answer.
package grader

// Validation issue categories the evaluator may flag on a question.
const (
	IssueHeavyMath       = "heavy_math"
	IssuePromptInjection = "prompt_injection"
	IssueAnswerQuality   = "answer_quality"
	IssueContextMismatch = "context_mismatch"
)

// ValidationOutcome is the evaluator's judgment on whether a question is
// acceptable: on-topic, answerable, and appropriately scoped.
type ValidationOutcome struct {
	IsValid    bool     `json:"is_valid"`
	Issues     []string `json:"issues"`
	Confidence string   `json:"confidence"` // HIGH, MEDIUM, LOW
	Reason     string   `json:"reason"`
}

// RevisionGuidance is a suggestion for improving a question. Produced
// for every question, valid or not — good questions can still get better.
type RevisionGuidance struct {
	Suggestion string `json:"suggestion"`
}

// ModelAnswer is the quiz model's attempt at a question. Produced only
// for valid questions.
type ModelAnswer struct {
	Text string `json:"answer"`
}

// EvaluationOutcome compares the quiz model's answer against the
// student's claimed answer. Stumped means the model failed to reproduce
// the expected answer — a win for the student.
type EvaluationOutcome struct {
	Verdict     string `json:"verdict"` // CORRECT, INCORRECT
	Stumped     bool   `json:"stumped"`
	Explanation string `json:"explanation"`
	Confidence  string `json:"confidence"` // HIGH, MEDIUM, LOW
}
