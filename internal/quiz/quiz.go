// Package quiz defines the quiz data model and the TOML loader for
// student-submitted quiz files.
package quiz

// Question is one student-authored question. The answer is the
// student's claimed correct answer, not a model output.
type Question struct {
	Question string `toml:"question" json:"question"`
	Answer   string `toml:"answer" json:"answer"`
}

// Quiz is a titled, ordered sequence of questions. Immutable once loaded;
// questions are identified by their position.
type Quiz struct {
	Title     string     `toml:"title" json:"title"`
	Questions []Question `toml:"questions" json:"questions"`
}
