package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyURL indicates an extraction or fetch was requested without a source URL.
	ErrEmptyURL = errors.New("empty source url")

	// ErrToolNotFound indicates a required external executable is not installed.
	ErrToolNotFound = errors.New("external tool not found")
)

// ToolError describes a failed external tool invocation.
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	detail := lastLine(e.Stderr)
	switch {
	case detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s (%v)", e.Tool, detail, e.Err)
	case detail != "":
		return fmt.Sprintf("%s: %s", e.Tool, detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	default:
		return e.Tool + ": failed"
	}
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	return s
}
