package orchestrator

import (
	"errors"
	"fmt"
)

var (
	// ErrMergeToolUnavailable is returned for merge plans when no merge tool is installed.
	ErrMergeToolUnavailable = errors.New("merge tool unavailable")

	// ErrOutputMissing is returned when the fetch succeeded but the expected file is absent.
	ErrOutputMissing = errors.New("output file not created")
)

// FetchFailedError wraps a failed fetch invocation.
type FetchFailedError struct {
	Selector string
	Detail   string
	Err      error
}

func (e *FetchFailedError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("fetch failed: %s", e.Detail)
	}
	return fmt.Sprintf("fetch failed selector=%s: %s", e.Selector, e.Detail)
}

func (e *FetchFailedError) Unwrap() error {
	return e.Err
}
