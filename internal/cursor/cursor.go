// Package cursor provides the position-tracked scanner used by the text
// parser.
package cursor

import (
	"unicode"
	"unicode/utf8"
)

// EOF is returned by Peek and Read at the end of input.
const EOF rune = -1

// Cursor scans a string rune by rune. Positions are byte offsets into the
// input, so a saved position can be restored with Reset.
type Cursor struct {
	input string
	pos   int
}

// New returns a cursor at the start of input.
func New(input string) *Cursor {
	return &Cursor{input: input}
}

// Input returns the whole text being scanned.
func (c *Cursor) Input() string { return c.input }

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Mark returns the current position for a later Reset.
func (c *Cursor) Mark() int { return c.pos }

// Reset moves the cursor back to a position returned by Mark or Pos.
func (c *Cursor) Reset(mark int) { c.pos = mark }

// CanRead reports whether at least n more runes are available.
func (c *Cursor) CanRead(n int) bool {
	p := c.pos
	for ; n > 0; n-- {
		if p >= len(c.input) {
			return false
		}
		_, size := utf8.DecodeRuneInString(c.input[p:])
		p += size
	}
	return true
}

// Peek returns the next rune without consuming it, or EOF.
func (c *Cursor) Peek() rune {
	return c.PeekAt(0)
}

// PeekAt returns the rune n positions ahead of the cursor without consuming
// anything, or EOF.
func (c *Cursor) PeekAt(n int) rune {
	p := c.pos
	for {
		if p >= len(c.input) {
			return EOF
		}
		r, size := utf8.DecodeRuneInString(c.input[p:])
		if n == 0 {
			return r
		}
		p += size
		n--
	}
}

// Read consumes and returns the next rune, or EOF.
func (c *Cursor) Read() rune {
	if c.pos >= len(c.input) {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(c.input[c.pos:])
	c.pos += size
	return r
}

// Skip consumes one rune.
func (c *Cursor) Skip() { c.Read() }

// ReadWhile consumes runes as long as keep reports true and returns them.
func (c *Cursor) ReadWhile(keep func(rune) bool) string {
	start := c.pos
	for c.pos < len(c.input) {
		r, size := utf8.DecodeRuneInString(c.input[c.pos:])
		if !keep(r) {
			break
		}
		c.pos += size
	}
	return c.input[start:c.pos]
}

// SkipWhitespace consumes spaces, tabs, newlines and other Unicode white
// space.
func (c *Cursor) SkipWhitespace() {
	c.ReadWhile(unicode.IsSpace)
}

// Eat skips white space and consumes want if it is the next rune. It
// reports whether want was consumed.
func (c *Cursor) Eat(want rune) bool {
	c.SkipWhitespace()
	if c.Peek() != want {
		return false
	}
	c.Skip()
	return true
}

// IsUnquoted reports whether r may appear in an unquoted string.
func IsUnquoted(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') ||
		r == '_' || r == '-' || r == '.' || r == '+'
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
