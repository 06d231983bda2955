package epidemic

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel every *ConfigError unwraps to.
var ErrInvalidConfig = errors.New("epidemic: invalid config")

// ConfigError reports a parameter rejected at validation time.
// It is the only error kind the simulator produces.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("epidemic: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("epidemic: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

func configErr(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
