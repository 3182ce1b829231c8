package naming

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("naming configuration error")

// ConfigurationError reports an identifier or override that cannot be used
// to derive a name. It is raised at configuration time and never retried.
type ConfigurationError struct {
	// Field is the derived value being computed ("display_name", "slug", ...).
	Field      string
	Identifier string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.Identifier == "" {
		return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s for %q: %s", ErrConfiguration, e.Field, e.Identifier, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErr(field, identifier, reason string) error {
	return &ConfigurationError{Field: field, Identifier: identifier, Reason: reason}
}
