package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the endpoint returned a rate limit error (429).
// Transient: the retry layer backs off and tries again.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrSchemaMismatch indicates the model returned content that does not
// conform to the requested contract schema. Not retried: a model that
// produced malformed output once rarely fixes it on a replay.
type ErrSchemaMismatch struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrSchemaMismatch) Error() string {
	return fmt.Sprintf("response does not match contract schema: %v", e.Err)
}

func (e *ErrSchemaMismatch) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the endpoint is down or unreachable.
// Transient: covers timeouts, connection failures and 5xx responses.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model endpoint unavailable: %v", e.Err)
	}
	return "model endpoint unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model response truncated: max tokens exceeded"
}
