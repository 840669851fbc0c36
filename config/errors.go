package config

import (
	"errors"
	"fmt"
)

// ErrConfigUnavailable matches every LoadError via errors.Is.
var ErrConfigUnavailable = errors.New("mcp config unavailable")

// Reason classifies why the descriptor file could not be loaded.
type Reason string

const (
	ReasonHomeUnset  Reason = "home-unset"
	ReasonNotFound   Reason = "not-found"
	ReasonUnreadable Reason = "unreadable"
	ReasonMalformed  Reason = "malformed"
	ReasonRejected   Reason = "rejected"
)

// LoadError reports a failed load. It never escapes LoadConfig or Result.OrDefault.
type LoadError struct {
	Reason Reason
	Path   string
	Cause  error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s (%s)", ErrConfigUnavailable.Error(), e.Reason)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrConfigUnavailable.
func (e *LoadError) Is(target error) bool {
	return target == ErrConfigUnavailable
}

func newLoadError(reason Reason, path string, cause error) error {
	return &LoadError{Reason: reason, Path: path, Cause: cause}
}

// IsConfigUnavailable checks if an error came from a failed load
func IsConfigUnavailable(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr) || errors.Is(err, ErrConfigUnavailable)
}

// ReasonOf returns the Reason carried by err, or "" if err is not a LoadError.
func ReasonOf(err error) Reason {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Reason
	}
	return ""
}
