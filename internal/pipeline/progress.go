package pipeline

import "sync"

const stagesPerQuestion = 4

// tracker maintains the quiz-wide completed/total stage counts and
// serializes event emission. The total starts optimistic — four stages
// per question — and shrinks by two whenever validation rules a
// question invalid, since Answer and Evaluate will never run for it.
type tracker struct {
	mu        sync.Mutex
	completed int
	total     int
	emit      ProgressFunc
}

func newTracker(questions int, emit ProgressFunc) *tracker {
	if emit == nil {
		emit = func(Event) {}
	}
	return &tracker{total: stagesPerQuestion * questions, emit: emit}
}

// Transition records completedDelta newly finished stages and emits a
// state-transition event carrying the updated counts.
func (t *tracker) Transition(idx int, stage Stage, state State, completedDelta int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed += completedDelta
	t.emit(Event{QuestionIndex: idx, Stage: stage, State: state, Completed: t.completed, Total: t.total})
}

// Shrink removes stages that will never run (skipped after an invalid
// verdict, or abandoned on error/cancellation) from the total, keeping
// the reported percentage coherent.
func (t *tracker) Shrink(stages int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total -= stages
}

// Counts returns the current completed/total pair.
func (t *tracker) Counts() (completed, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed, t.total
}
