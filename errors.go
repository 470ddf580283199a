package maldata

import (
	"errors"
	"fmt"

	"github.com/hupe1980/maldata/loader"
	"github.com/hupe1980/maldata/split"
)

// ErrInvalidConfig is the sentinel all configuration errors unwrap to.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError describes a rejected configuration value. It is raised
// eagerly at construction, never deep inside iteration.
//
// The original underlying error (if any) can be accessed via errors.Unwrap;
// every ConfigError also satisfies errors.Is(err, ErrInvalidConfig).
type ConfigError struct {
	Field  string
	Reason string
	cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return ErrInvalidConfig
}

// Is reports whether target matches the configuration sentinel.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// translateError maps component-level configuration errors onto the public
// *ConfigError contract. Data and index errors pass through untouched;
// their types in the dataset package are part of the public API.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var fe *split.FractionError
	if errors.As(err, &fe) {
		return &ConfigError{
			Field:  "fractions",
			Reason: fe.Error(),
			cause:  err,
		}
	}

	if errors.Is(err, loader.ErrInvalidBatchSize) {
		return &ConfigError{
			Field:  "batch size",
			Reason: err.Error(),
			cause:  err,
		}
	}

	return err
}
