package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEvent(runID, purpose string) LLMCallEventData {
	return LLMCallEventData{
		RunID:        runID,
		Model:        "openai/gpt-4o",
		Purpose:      purpose,
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    850,
		Success:      true,
		RequestBody:  `{"system":"judge"}`,
		ResponseBody: `{"verdict":"INCORRECT"}`,
	}
}

func TestEventRepo_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, p := range []string{"validate", "answer", "evaluate"} {
		if err := repo.AppendLLMCall(ctx, sampleEvent("run-1", p)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.ListLLMCalls(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	// Newest first.
	if events[0].Purpose != "evaluate" || events[2].Purpose != "validate" {
		t.Fatalf("unexpected order: %s, %s", events[0].Purpose, events[2].Purpose)
	}
	if events[0].Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
	if events[0].RunID != "run-1" || events[0].InputTokens != 120 {
		t.Fatalf("event fields lost: %+v", events[0])
	}
}

func TestEventRepo_ListLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 5 {
		if err := repo.AppendLLMCall(ctx, sampleEvent("run-1", "answer")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.ListLLMCalls(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

func TestEventRepo_Get(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := sampleEvent("run-2", "evaluate")
	data.Success = false
	data.ErrorMessage = "model endpoint unavailable"
	if err := repo.AppendLLMCall(ctx, data); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.ListLLMCalls(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	e, err := repo.GetLLMCall(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.Success || e.ErrorMessage != "model endpoint unavailable" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.RequestBody == "" || e.ResponseBody == "" {
		t.Fatal("expected request and response bodies")
	}
}

func TestEventRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)
	e, err := s.EventRepo().GetLLMCall(context.Background(), 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil for missing event, got %+v", e)
	}
}

func TestOpen_CreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom", "events.db")
	t.Setenv("LLM_QUIZ_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != p {
		t.Fatalf("expected %q, got %q", p, got)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	t.Setenv("LLM_QUIZ_DB", "")
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(dir, "llm-quiz", "events.db")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
