package complaint

import (
	"fmt"
	"labourdesk/backend/internal/config"
	"math/rand/v2"
	"regexp"
	"time"
)

const referenceModulus = 100_000_000

var referencePattern = regexp.MustCompile(`^LC-\d{8}$`)

// ReferenceGenerator returns the reference number to try on the given insert
// attempt (0 for the first try).
type ReferenceGenerator func(attempt int) string

// GenerateReference returns "LC-" followed by the last eight digits of the
// current Unix time in milliseconds. It keeps no state and is safe for
// concurrent use; uniqueness is enforced by the storage layer.
func GenerateReference() string {
	return FormatReference(time.Now().UnixMilli())
}

// FormatReference renders the reference for a millisecond timestamp.
func FormatReference(millis int64) string {
	if millis < 0 {
		millis = -millis
	}
	return fmt.Sprintf("%s%0*d", config.ReferencePrefix, config.ReferenceDigits, millis%referenceModulus)
}

// ValidReference reports whether ref has the LC-######## shape.
func ValidReference(ref string) bool {
	return referencePattern.MatchString(ref)
}

// DefaultReferenceGenerator uses the plain timestamp on the first attempt.
// After a collision the timestamp is pushed forward by a random offset so two
// requests that collided in the same millisecond diverge.
func DefaultReferenceGenerator(attempt int) string {
	if attempt == 0 {
		return GenerateReference()
	}
	return FormatReference(time.Now().UnixMilli() + 1 + rand.Int64N(config.ReferenceJitterMillis))
}
