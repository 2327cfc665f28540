package quiz

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrMalformed wraps quiz file problems that must abort the run before
// any grading starts.
type ErrMalformed struct {
	Path string
	Err  error
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("malformed quiz file %s: %v", e.Path, e.Err)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }

// Load reads and validates a quiz from a TOML file of the form:
//
//	title = "My Quiz"
//
//	[[questions]]
//	question = "..."
//	answer = "..."
func Load(path string) (*Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates quiz TOML. The path is used only for
// error reporting.
func Parse(data []byte, path string) (*Quiz, error) {
	var q Quiz
	if err := toml.Unmarshal(data, &q); err != nil {
		return nil, &ErrMalformed{Path: path, Err: err}
	}

	if q.Title == "" {
		q.Title = "Quiz Challenge"
	}

	for i, question := range q.Questions {
		if strings.TrimSpace(question.Question) == "" {
			return nil, &ErrMalformed{Path: path, Err: fmt.Errorf("question %d has no question text", i+1)}
		}
		if strings.TrimSpace(question.Answer) == "" {
			return nil, &ErrMalformed{Path: path, Err: fmt.Errorf("question %d has no answer", i+1)}
		}
	}

	return &q, nil
}
