package errors

import (
	"unicode"
	"unicode/utf8"
)

// MaxIDLength is the longest accepted block identity.
// Anything beyond this is almost certainly pasted file contents, not an ID.
const MaxIDLength = 256

// ValidateBlockID validates a block identity for safety and correctness.
// Identities come either from an explicit id field or from the block's
// display text, so the rules are intentionally conservative:
//   - No empty identities
//   - Maximum length of 256 bytes
//   - Valid UTF-8
//   - No control characters (including newlines and tabs)
func ValidateBlockID(id string) error {
	if id == "" {
		return New(ErrCodeMalformedDiagram, "block identity cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeMalformedDiagram, "block identity too long (max %d bytes)", MaxIDLength)
	}

	if !utf8.ValidString(id) {
		return New(ErrCodeMalformedDiagram, "block identity is not valid UTF-8")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedDiagram, "block identity %q contains control characters", id)
		}
	}

	return nil
}

// ValidateEdgeLabel validates an optional edge label.
// Empty labels are fine (the edge simply renders without one); non-empty
// labels follow the same character rules as identities but may be longer.
func ValidateEdgeLabel(label string) error {
	if label == "" {
		return nil
	}

	const maxLabelLength = 500
	if len(label) > maxLabelLength {
		return New(ErrCodeMalformedDiagram, "edge label too long (max %d bytes)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedDiagram, "edge label %q contains control characters", label)
		}
	}

	return nil
}
