// Package cwerr classifies failures so the CLI can tell an operator mistake
// apart from a broken system. User errors are expected and recoverable: the
// process reports them softly and exits zero. Everything else is a system
// error and exits non-zero.
package cwerr

import (
	"errors"
	"fmt"
	"strings"
)

// UserError marks an error as expected and recoverable by the operator.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewUserError creates an operator-correctable error from a format string.
func NewUserError(format string, args ...any) error {
	return &UserError{cause: fmt.Errorf(format, args...)}
}

// WrapUserError marks an existing error as operator-correctable.
func WrapUserError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsUserError checks whether err is marked as expected.
func IsUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// ExtractSummary condenses multi-line command output into a short string
// suitable for a structured log field. Lines that look like failures are
// preferred; otherwise the first non-empty line wins.
func ExtractSummary(output string, maxCandidates int) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "no output"
	}

	var candidates []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") ||
			strings.Contains(lower, "failed") ||
			strings.Contains(lower, "cannot") ||
			strings.Contains(lower, "fatal") ||
			strings.Contains(lower, "denied") ||
			strings.Contains(lower, "timeout") {
			candidates = append(candidates, line)
		}
	}

	if len(candidates) > 0 {
		if len(candidates) > maxCandidates {
			candidates = candidates[:maxCandidates]
		}
		return strings.Join(candidates, " - ")
	}

	for _, line := range strings.Split(trimmed, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return "unknown error"
}
