package night

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig    = errors.New("invalid night configuration")
	ErrEmptyCandidates  = errors.New("candidate set is empty")
	ErrInvalidCandidate = errors.New("invalid candidate")
	ErrNightOutOfRange  = errors.New("night out of range")
	ErrNotStarted       = errors.New("no night has begun")
)

// ConfigurationError is a fatal setup problem. It is reported once and
// never retried by the engine.
type ConfigurationError struct {
	Field  string
	Detail string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("night: %v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("night: %v: %s: %s", e.Err, e.Field, e.Detail)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func configError(err error, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Detail: fmt.Sprintf(format, args...), Err: err}
}
