package crud

import (
	"strings"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
)

// Set copies *src into dst when src is non-nil. Update requests use pointer
// fields so absent JSON keys leave the stored value untouched.
func Set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// SetTrimmed is Set for strings, trimming surrounding whitespace
func SetTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// SetEnum converts a string field into its enumerated type
func SetEnum[E ~string](dst *E, src *string) {
	if src != nil {
		*dst = E(strings.TrimSpace(*src))
	}
}

// SetDate copies an optional date; an empty string clears it
func SetDate(dst **time.Time, src *valueobject.Date) {
	if src != nil {
		*dst = src.Ptr()
	}
}

// OrDefault returns value, or def when value is blank
func OrDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
