package files

import (
	"errors"
	"fmt"
)

// ErrIncorrectPassword is returned when the shared write secret does not match.
var ErrIncorrectPassword = errors.New("Forbidden: Incorrect password") //nolint:staticcheck // surfaced verbatim to the editor

// ErrNoTrackedFiles is returned by reads and writes against an empty registry.
var ErrNoTrackedFiles = errors.New("no tracked files configured")

// FileNotFoundError is returned when the tracked path does not exist upstream.
type FileNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("File '%s' not found", e.Path)
}

// UpstreamError is returned when the content host answered but refused the
// request, e.g. a stale SHA on update. Message is the host's own message.
type UpstreamError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e UpstreamError) Error() string {
	if e.Message == "" {
		return "Unknown error"
	}
	return e.Message
}

// InvalidContentError is returned when syntax checking is enabled and the
// submitted content does not parse in the tracked file's format.
type InvalidContentError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e InvalidContentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap exposes the parse error.
func (e InvalidContentError) Unwrap() error {
	return e.Err
}
