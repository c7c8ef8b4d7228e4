package client

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter indicates a required request parameter was absent.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidParameterType indicates a parameter that could not be coerced.
	ErrInvalidParameterType = errors.New("invalid parameter type")
	// ErrExtractionFailed indicates the extractor could not produce a format list.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrInvalidIndex indicates a format index outside the candidate list.
	ErrInvalidIndex = errors.New("invalid format index")
	// ErrMergeToolUnavailable indicates a merge was requested without ffmpeg on the host.
	ErrMergeToolUnavailable = errors.New("merge tool unavailable")
	// ErrFetchFailed indicates the external fetch invocation failed.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrOutputMissing indicates the fetch returned without writing the expected file.
	ErrOutputMissing = errors.New("output file missing")
)

// ErrorCategory is a stable, string-valued classification of client errors.
type ErrorCategory string

const (
	ErrorCategoryUnknown              ErrorCategory = "unknown"
	ErrorCategoryMissingParameter     ErrorCategory = "missing_parameter"
	ErrorCategoryInvalidParameterType ErrorCategory = "invalid_parameter_type"
	ErrorCategoryExtractionFailed     ErrorCategory = "extraction_failed"
	ErrorCategoryInvalidIndex         ErrorCategory = "invalid_index"
	ErrorCategoryMergeToolUnavailable ErrorCategory = "merge_tool_unavailable"
	ErrorCategoryFetchFailed          ErrorCategory = "fetch_failed"
	ErrorCategoryOutputMissing        ErrorCategory = "output_missing"
)

// ClassifyError maps err to its ErrorCategory.
func ClassifyError(err error) ErrorCategory {
	switch {
	case err == nil:
		return ErrorCategoryUnknown
	case errors.Is(err, ErrMissingParameter):
		return ErrorCategoryMissingParameter
	case errors.Is(err, ErrInvalidParameterType):
		return ErrorCategoryInvalidParameterType
	case errors.Is(err, ErrExtractionFailed):
		return ErrorCategoryExtractionFailed
	case errors.Is(err, ErrInvalidIndex):
		return ErrorCategoryInvalidIndex
	case errors.Is(err, ErrMergeToolUnavailable):
		return ErrorCategoryMergeToolUnavailable
	case errors.Is(err, ErrFetchFailed):
		return ErrorCategoryFetchFailed
	case errors.Is(err, ErrOutputMissing):
		return ErrorCategoryOutputMissing
	default:
		return ErrorCategoryUnknown
	}
}

// Message renders err as the wire message returned to HTTP callers.
// Extraction and fetch causes are embedded verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var paramErr *ParameterError
	if errors.As(err, &paramErr) && paramErr.Message != "" {
		return paramErr.Message
	}
	switch ClassifyError(err) {
	case ErrorCategoryMissingParameter:
		return "URL parameter is required"
	case ErrorCategoryInvalidParameterType:
		return "format_index must be an integer"
	case ErrorCategoryExtractionFailed:
		var detail *ExtractionFailureDetailError
		if errors.As(err, &detail) {
			return "failed_fetch_info: " + detail.Detail()
		}
		return "failed_fetch_info: " + err.Error()
	case ErrorCategoryInvalidIndex:
		return "invalid_format_index"
	case ErrorCategoryMergeToolUnavailable:
		return "ffmpeg_required"
	case ErrorCategoryFetchFailed:
		var detail *DownloadFailureDetailError
		if errors.As(err, &detail) {
			return "download_failed: " + detail.Detail
		}
		return "download_failed: " + err.Error()
	case ErrorCategoryOutputMissing:
		return "download_failed: file not created"
	default:
		return err.Error()
	}
}

// ParameterError reports a missing or malformed request parameter.
// Kind is ErrMissingParameter or ErrInvalidParameterType.
type ParameterError struct {
	Kind    error
	Name    string
	Message string
}

func (e *ParameterError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind == nil {
		return fmt.Sprintf("parameter %q", e.Name)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Name)
}

func (e *ParameterError) Unwrap() error {
	return e.Kind
}

// ExtractionFailureDetailError carries the extractor's error for one URL.
type ExtractionFailureDetailError struct {
	URL string
	Err error
}

func (e *ExtractionFailureDetailError) Error() string {
	return fmt.Sprintf("%v: %s", ErrExtractionFailed, e.Detail())
}

// Detail returns the underlying cause text.
func (e *ExtractionFailureDetailError) Detail() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *ExtractionFailureDetailError) Is(target error) bool {
	return target == ErrExtractionFailed
}

func (e *ExtractionFailureDetailError) Unwrap() error {
	return e.Err
}

// DownloadFailureDetailError carries the fetch tool's error for one plan.
type DownloadFailureDetailError struct {
	Selector string
	Detail   string
	Err      error
}

func (e *DownloadFailureDetailError) Error() string {
	return fmt.Sprintf("%v selector=%s: %s", ErrFetchFailed, e.Selector, e.Detail)
}

func (e *DownloadFailureDetailError) Is(target error) bool {
	return target == ErrFetchFailed
}

func (e *DownloadFailureDetailError) Unwrap() error {
	return e.Err
}
