package textnorm

import (
	"html"
	"strings"
)

/*
Responsibilities
- Decode HTML/XML character entities
- Collapse whitespace runs into single ASCII spaces
- Trim leading and trailing whitespace

Normalized text is the canonical comparison form used by the matcher
and the distributor. Raw text is never compared directly.
*/

// Normalize canonicalizes raw text for comparison: entities are decoded,
// every run of whitespace (spaces, tabs, newlines, NBSP) collapses to a
// single ASCII space, and the result is trimmed.
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//   - Idempotent: Normalize(Normalize(s)) == Normalize(s)
//
// Whitespace-only input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	decoded := html.UnescapeString(text)
	// Fields splits on any run of Unicode whitespace, which both collapses
	// and trims in one pass.
	return strings.Join(strings.Fields(decoded), " ")
}

// Words returns the words of the normalized form of text, in order.
// Empty and whitespace-only input yield a nil slice.
func Words(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// WordCount returns the number of words in the normalized form of text.
func WordCount(text string) int {
	return len(Words(text))
}
