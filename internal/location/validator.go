package location

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Query validation bounds.
const (
	MinQueryLength = 2
	MaxQueryLength = 100
)

// forbiddenQueryChars are rejected outright as an injection guard.
const forbiddenQueryChars = `<>"'&`

// ValidateQuery sanitizes a free-text location query. It returns the trimmed
// query on success. Rules are applied in order and the first failing rule wins.
// The function is pure; callers decide what a failure means in context (the
// suggestions path treats it as "no suggestions" rather than a hard error).
func ValidateQuery(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return "", fmt.Errorf("%w: query must not be empty", ErrInvalidQuery)
	}
	// Bounds are in characters, not bytes, so non-ASCII place names count
	// the way a user would count them.
	length := utf8.RuneCountInString(trimmed)
	if length < MinQueryLength {
		return "", fmt.Errorf("%w: query must be at least %d characters", ErrInvalidQuery, MinQueryLength)
	}
	if length > MaxQueryLength {
		return "", fmt.Errorf("%w: query must be at most %d characters", ErrInvalidQuery, MaxQueryLength)
	}
	if strings.ContainsAny(trimmed, forbiddenQueryChars) {
		return "", fmt.Errorf("%w: query contains forbidden characters", ErrInvalidQuery)
	}

	return trimmed, nil
}
