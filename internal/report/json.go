package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/keiko-edu/llm-quiz/internal/pipeline"
)

// Document is the serialized report envelope: the compiled result plus
// run metadata.
type Document struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Marker      string    `json:"result_marker"`

	pipeline.QuizResult
}

// NewDocument wraps a compiled result for serialization.
func NewDocument(runID string, res pipeline.QuizResult) Document {
	return Document{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Marker:      Marker(res),
		QuizResult:  res,
	}
}

// WriteJSON saves the report document to a file as indented JSON.
func WriteJSON(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
