package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength is the maximum accepted length for a schedule name.
const MaxNameLength = 256

// ValidateScheduleName validates a schedule display name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters (including null bytes)
//   - Maximum length of 256 characters
//
// Temporal and hierarchy constraints are enforced separately by the
// schedule manager; this only guards the shape of the input.
func ValidateScheduleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "schedule name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "schedule name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "schedule name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "schedule name cannot be blank")
	}

	return nil
}

// ValidateScheduleLevel validates a level tier. Levels are non-negative,
// with 0 the coarsest tier.
func ValidateScheduleLevel(level int) error {
	if level < 0 {
		return New(ErrCodeInvalidInput, "schedule level cannot be negative (got %d)", level)
	}
	return nil
}

// ValidateScheduleID validates the textual form of a schedule id as used
// in CLI arguments and URL paths. It does not check existence, only shape.
func ValidateScheduleID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "schedule id cannot be empty")
	}

	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "schedule id too long")
	}

	for _, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			return New(ErrCodeInvalidInput, "schedule id contains invalid character %q", r)
		}
	}

	return nil
}
