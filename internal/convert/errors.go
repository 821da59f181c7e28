package convert

import (
	"errors"
	"fmt"
)

// ErrEngineNotFound is returned when the ffmpeg binary cannot be located.
// It is reported once, before any file is processed.
var ErrEngineNotFound = errors.New("ffmpeg not found in PATH")

// ConfigError reports invalid user configuration. It is always raised during
// validation, before any job runs.
type ConfigError struct {
	Field  string
	Reason string
}

// Error formats the offending field and reason for logs and UI.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EngineError reports a single failed engine invocation. Stderr holds the
// engine's diagnostic output verbatim.
type EngineError struct {
	InputPath string `json:"inputPath"`
	ExitCode  int    `json:"exitCode"`
	Stderr    string `json:"stderr"`
	Err       error  `json:"-"`
}

// Error summarizes the failure for logs; full stderr stays in the struct.
func (e *EngineError) Error() string {
	return fmt.Sprintf("ffmpeg failed for %s (exit=%d)", e.InputPath, e.ExitCode)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *EngineError) Unwrap() error {
	return e.Err
}
