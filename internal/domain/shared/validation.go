package shared

import (
	"fmt"
	"strings"
)

// Required returns a validation error when value is blank
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// OneOf returns a validation error when value is not one of allowed
func OneOf[T ~string](field string, value T, allowed ...T) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return NewValidationError(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(names, ", ")))
}

// FirstError returns the first non-nil error
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
