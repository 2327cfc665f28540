package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LLMCallEventData captures the data for a single model call event.
type LLMCallEventData struct {
	RunID        string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMCallEvent is a recorded model call.
type LLMCallEvent struct {
	ID        int64
	Timestamp time.Time
	LLMCallEventData
}

// EventRepo provides append and read access to model call events.
type EventRepo interface {
	// AppendLLMCall records a model API call event.
	AppendLLMCall(ctx context.Context, data LLMCallEventData) error

	// ListLLMCalls returns the most recent events, newest first.
	// limit <= 0 means no limit.
	ListLLMCalls(ctx context.Context, limit int) ([]LLMCallEvent, error)

	// GetLLMCall returns a single event by ID, or nil if not found.
	GetLLMCall(ctx context.Context, id int64) (*LLMCallEvent, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMCall(ctx context.Context, data LLMCallEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_call_events
			(run_id, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.RunID, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save model call event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListLLMCalls(ctx context.Context, limit int) ([]LLMCallEvent, error) {
	q := `SELECT id, timestamp, run_id, model, purpose, input_tokens, output_tokens,
	             latency_ms, success, error_message, request_body, response_body
	      FROM llm_call_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query model call events: %w", err)
	}
	defer rows.Close()

	var events []LLMCallEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMCall(ctx context.Context, id int64) (*LLMCallEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, run_id, model, purpose, input_tokens, output_tokens,
		       latency_ms, success, error_message, request_body, response_body
		FROM llm_call_events WHERE id = ?`, id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*LLMCallEvent, error) {
	var e LLMCallEvent
	err := row.Scan(
		&e.ID, &e.Timestamp, &e.RunID, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan model call event: %w", err)
	}
	return &e, nil
}
