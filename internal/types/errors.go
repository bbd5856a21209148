package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrBackendUnavailable = errors.New("answer backend unavailable")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrEmptyDocument      = errors.New("empty document body")
	ErrCacheMiss          = errors.New("cache miss")
)

// SelectorError wraps a selector that failed to compile or evaluate.
// It is always recovered locally: a failing selector yields no matches and
// the pipeline moves on to the next one.
type SelectorError struct {
	Selector string
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("selector %q: %v", e.Selector, e.Err)
}

func (e *SelectorError) Unwrap() error { return e.Err }

// BackendError wraps failures talking to the answer backend. Timeouts,
// non-success statuses and transport errors all collapse into this one
// category for callers.
type BackendError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("backend error for %s: %v", e.URL, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// StorageError wraps errors from result archive backends.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
