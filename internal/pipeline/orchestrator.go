package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/keiko-edu/llm-quiz/internal/grader"
	"github.com/keiko-edu/llm-quiz/internal/quiz"
)

// Orchestrator drives every question through the grading state machine.
// Questions are independent, so they run concurrently up to the
// configured limit; results are assembled in original quiz order no
// matter which question finishes first.
type Orchestrator struct {
	grader        *grader.Grader
	courseContext string
	concurrency   int
	onProgress    ProgressFunc
}

// Options configures an Orchestrator.
type Options struct {
	// CourseContext is the fetched reference material passed to the
	// Validate stage. Empty disables the topical-relevance check.
	CourseContext string

	// Concurrency bounds how many questions are graded at once.
	// Values below 1 mean sequential.
	Concurrency int

	// OnProgress receives an event on every state transition.
	OnProgress ProgressFunc
}

// New creates an Orchestrator around the given Grader.
func New(g *grader.Grader, opts Options) *Orchestrator {
	c := opts.Concurrency
	if c < 1 {
		c = 1
	}
	return &Orchestrator{
		grader:        g,
		courseContext: opts.CourseContext,
		concurrency:   c,
		onProgress:    opts.OnProgress,
	}
}

// Run grades every question and compiles the quiz verdict. A cancelled
// context stops issuing model calls promptly; questions that had not
// reached a terminal state are reported as ERRORED with the
// cancellation cause, and the partial result is still compiled rather
// than discarded.
func (o *Orchestrator) Run(ctx context.Context, qz *quiz.Quiz) QuizResult {
	results := make([]QuestionResult, len(qz.Questions))
	tr := newTracker(len(qz.Questions), o.onProgress)

	// The group context is deliberately not used: one question's
	// failure must never cancel its siblings.
	var g errgroup.Group
	g.SetLimit(o.concurrency)

	for i, q := range qz.Questions {
		g.Go(func() error {
			results[i] = o.runQuestion(ctx, tr, i, q)
			return nil
		})
	}
	g.Wait()

	return Compile(qz.Title, results)
}

// runQuestion walks one question through the state machine:
// PENDING → VALIDATING → GUIDANCE → (ANSWERING → EVALUATING)? → DONE,
// with any stage able to divert to ERRORED.
func (o *Orchestrator) runQuestion(ctx context.Context, tr *tracker, idx int, q quiz.Question) QuestionResult {
	res := QuestionResult{Index: idx, Question: q, State: StatePending}

	fail := func(stage Stage, err error, remainingStages int) QuestionResult {
		res.State = StateErrored
		res.FailedStage = stage
		res.Error = err.Error()
		tr.Shrink(remainingStages)
		tr.Transition(idx, stage, StateErrored, 0)
		return res
	}

	// Validate: always first.
	tr.Transition(idx, StageValidate, StateValidating, 0)
	if err := ctx.Err(); err != nil {
		return fail(StageValidate, err, 4)
	}
	validation, err := o.grader.Validate(ctx, q, o.courseContext)
	if err != nil {
		return fail(StageValidate, err, 4)
	}
	res.Validation = validation
	if !validation.IsValid {
		tr.Shrink(2)
	}

	// Guidance: runs for every question, valid or not.
	tr.Transition(idx, StageGuide, StateGuidance, 1)
	if err := ctx.Err(); err != nil {
		return fail(StageGuide, err, remainingAfterGuide(validation.IsValid))
	}
	guidance, err := o.grader.Guide(ctx, q, validation.Reason)
	if err != nil {
		return fail(StageGuide, err, remainingAfterGuide(validation.IsValid))
	}
	res.Guidance = guidance

	if !validation.IsValid {
		// Invalid questions skip Answer and Evaluate; the skip is an
		// outcome, not an error.
		tr.Transition(idx, StageAnswer, StateSkipped, 1)
		tr.Transition(idx, StageEvaluate, StateSkipped, 0)
		res.State = StateDone
		tr.Transition(idx, StageGuide, StateDone, 0)
		return res
	}

	// Answer: quiz model attempts the question.
	tr.Transition(idx, StageAnswer, StateAnswering, 1)
	if err := ctx.Err(); err != nil {
		return fail(StageAnswer, err, 2)
	}
	answer, err := o.grader.Answer(ctx, q)
	if err != nil {
		return fail(StageAnswer, err, 2)
	}
	res.ModelAnswer = answer

	// Evaluate: judge the attempt against the student's answer.
	tr.Transition(idx, StageEvaluate, StateEvaluating, 1)
	if err := ctx.Err(); err != nil {
		return fail(StageEvaluate, err, 1)
	}
	evaluation, err := o.grader.Evaluate(ctx, q, answer.Text)
	if err != nil {
		return fail(StageEvaluate, err, 1)
	}
	res.Evaluation = evaluation

	res.State = StateDone
	tr.Transition(idx, StageEvaluate, StateDone, 1)
	return res
}

// remainingAfterGuide counts the stages still outstanding when the
// guidance stage fails: guidance itself, plus answer and evaluate for
// valid questions.
func remainingAfterGuide(valid bool) int {
	if valid {
		return 3
	}
	return 1
}
