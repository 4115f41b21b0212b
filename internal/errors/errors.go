// Package errors defines the error taxonomy for csvprep. Every failure that
// crosses a package boundary is classified with a stable code so callers can
// distinguish recoverable parse problems from hard I/O errors.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the processing taxonomy.
const (
	CodeParseFailure = "PARSE_FAILURE"
	CodeIOFailure    = "IO_FAILURE"
	CodeInvalidPath  = "INVALID_PATH"
)

// ProcessError is a classified error tied to the file that caused it.
type ProcessError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewParseFailure classifies a structured-strategy parse error. These are
// always recovered locally by the raw fallback and never abort a file.
func NewParseFailure(path string, err error) *ProcessError {
	return &ProcessError{
		Code:    CodeParseFailure,
		Path:    path,
		Message: fmt.Sprintf("failed to parse %s as a table", path),
		Err:     err,
	}
}

// NewIOFailure classifies an open/read/write/replace error in the raw
// strategy. The file is reported as failed; the run continues.
func NewIOFailure(path string, err error) *ProcessError {
	return &ProcessError{
		Code:    CodeIOFailure,
		Path:    path,
		Message: fmt.Sprintf("failed to process %s", path),
		Err:     err,
	}
}

// NewInvalidPath classifies a user-supplied target that is neither a
// directory nor a .csv file.
func NewInvalidPath(path string) *ProcessError {
	return &ProcessError{
		Code:    CodeInvalidPath,
		Path:    path,
		Message: fmt.Sprintf("%s is neither a directory nor a .csv file", path),
	}
}

// CodeOf returns the taxonomy code of err, or empty string when err carries
// no ProcessError in its chain.
func CodeOf(err error) string {
	var pe *ProcessError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsParseFailure reports whether err is classified as a parse failure.
func IsParseFailure(err error) bool {
	return CodeOf(err) == CodeParseFailure
}

// IsIOFailure reports whether err is classified as an I/O failure.
func IsIOFailure(err error) bool {
	return CodeOf(err) == CodeIOFailure
}

// IsInvalidPath reports whether err is classified as an invalid path.
func IsInvalidPath(err error) bool {
	return CodeOf(err) == CodeInvalidPath
}
