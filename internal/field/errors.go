package field

import (
	"errors"
	"fmt"
)

// Configuration errors. An instance that fails with one of these is simply
// not created; nothing is drawn for it.
var (
	// ErrInvalidTunables indicates a non-finite or out-of-range tunable.
	ErrInvalidTunables = errors.New("field: invalid tunables")

	// ErrInvalidSize indicates a surface with no drawable area.
	ErrInvalidSize = errors.New("field: invalid surface size")

	// ErrInvalidColor indicates a stroke color that cannot be parsed.
	ErrInvalidColor = errors.New("field: invalid stroke color")

	// ErrMissingDependency indicates a nil surface, sampler or provider.
	ErrMissingDependency = errors.New("field: missing dependency")
)

// ConfigError wraps a configuration error with the offending instance and key.
type ConfigError struct {
	Instance string
	Key      string
	Wrapped  error
}

func (e *ConfigError) Error() string {
	if e.Instance == "" {
		return fmt.Sprintf("%s: %v", e.Key, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s: %v", e.Instance, e.Key, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
