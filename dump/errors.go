package dump

import (
	"fmt"
)

// ConfigError reports an invalid dump configuration. It is returned
// eagerly from New, before any row has been produced.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "dump: " + e.Message
}

// Configf formats a ConfigError.
func Configf(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ReadError reports a failure reading from a Source. It aborts the
// dump at the row where it occurred; rows already produced remain
// valid.
type ReadError struct {
	Offset int64
	Count  int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("dump: read %d bytes at offset %d: %v", e.Count, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
