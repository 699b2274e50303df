package clock

import (
	"errors"
	"fmt"
)

// ErrDisposed is returned by reconfiguration calls made after Dispose.
var ErrDisposed = errors.New("clock: disposed")

// ConfigurationError reports an invalid construction or reconfiguration
// input, e.g. an unrecognized timezone identifier. Invalid input never
// silently falls back to a default.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("clock: invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("clock: invalid %s %q", e.Field, e.Value)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func newConfigErr(field, value string, err error) error {
	return &ConfigurationError{Field: field, Value: value, Err: err}
}
