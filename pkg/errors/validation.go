package errors

import (
	"strings"
	"unicode"
)

// ValidateOperationName validates a logical operation name before descriptor
// lookup. Operation names are dotted lowercase identifiers such as
// "networks.list" or "styles.apply".
func ValidateOperationName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "operation name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "operation name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "operation name contains invalid characters")
		}
	}
	return nil
}

// ValidateIdentifier validates an opaque Cytoscape identifier supplied by
// the caller (a network, view, or style handle). Identifiers are passed back
// to the server verbatim, so the rules are intentionally conservative: the
// client only rejects values that could corrupt a URL path.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "identifier too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains control characters")
		}
	}
	for _, pattern := range []string{"..", "//", "\x00", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "identifier contains invalid sequence: %q", pattern)
		}
	}
	return nil
}
