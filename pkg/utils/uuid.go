package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// GenerateBillCode returns a bill code of the form B20240131-3FA9C1.
// The date part is taken from at in its own location.
func GenerateBillCode(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return "B" + at.Format("20060102") + "-" + strings.ToUpper(suffix)
}

// NormalizeCode trims and upper-cases a caller supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
