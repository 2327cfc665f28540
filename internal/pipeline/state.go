// Package pipeline drives every quiz question through the five-stage
// grading state machine and compiles the per-question outcomes into the
// quiz-level verdict.
package pipeline

// State is a question's position in the grading state machine.
type State string

const (
	StatePending    State = "PENDING"
	StateValidating State = "VALIDATING"
	StateGuidance   State = "GUIDANCE"
	StateAnswering  State = "ANSWERING"
	StateEvaluating State = "EVALUATING"
	StateDone       State = "DONE"
	StateSkipped    State = "SKIPPED"
	StateErrored    State = "ERRORED"
)

// Stage names the model interaction a state transition belongs to.
type Stage string

const (
	StageValidate Stage = "validate"
	StageGuide    Stage = "guidance"
	StageAnswer   Stage = "answer"
	StageEvaluate Stage = "evaluate"
)

// Event is emitted on every state transition of every question.
// Completed is monotonically increasing across the whole quiz; a
// consumer computes percent complete as Completed / Total.
type Event struct {
	QuestionIndex int
	Stage         Stage
	State         State
	Completed     int
	Total         int
}

// ProgressFunc consumes progress events. Called synchronously under the
// tracker lock, so implementations must be fast and must not call back
// into the pipeline.
type ProgressFunc func(Event)
