// Package errors defines the error reported for malformed text notation.
package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// HereMarker follows the quoted input in a context string.
const HereMarker = "<--[HERE]"

// ParseError describes malformed text. Position is the byte offset of the
// cursor when the fault was detected; Context, when present, quotes the
// input just before that offset followed by HereMarker.
type ParseError struct {
	Message  string
	Position int
	Context  string
}

func (e *ParseError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("nbt: %s at position %d", e.Message, e.Position)
	}
	return fmt.Sprintf("nbt: %s at position %d: %s", e.Message, e.Position, e.Context)
}

// New returns a ParseError for input at pos whose context quotes up to width
// runes before pos. A width of 0 leaves the context empty.
func New(msg, input string, pos, width int) *ParseError {
	return &ParseError{Message: msg, Position: pos, Context: Context(input, pos, width)}
}

// Context renders the window of input ending at pos: up to width runes,
// preceded by "..." when the window does not reach the start of input, and
// followed by HereMarker.
func Context(input string, pos, width int) string {
	if width <= 0 {
		return ""
	}
	pos = max(0, min(pos, len(input)))
	start := pos
	for n := 0; n < width && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(input[:start])
		start -= size
	}
	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(input[start:pos])
	b.WriteString(HereMarker)
	return b.String()
}
