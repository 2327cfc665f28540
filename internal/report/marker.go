package report

import "github.com/keiko-edu/llm-quiz/internal/pipeline"

// Sentinel strings consumed by the GitHub Classroom autograder. The
// grader matches on these exact values; do not reword them.
const (
	PassMarker = "STUDENTS_QUIZ_KEIKO_WIN"
	FailMarker = "STUDENTS_QUIZ_KEIKO_LOSE"
)

// Marker returns the autograder sentinel for a result, selected solely
// by the overall pass verdict.
func Marker(res pipeline.QuizResult) string {
	if res.Pass {
		return PassMarker
	}
	return FailMarker
}
