package nbt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	nbterrors "github.com/KimNorgaard/go-nbt/errors"
	"github.com/KimNorgaard/go-nbt/internal/cursor"
)

// Parse parses a text document, which must be a single compound such as
//
//	{name:"Steve",pos:[I;1,64,-3],health:20.0f,tags:[a,b]}
//
// White space may appear between any two tokens. Anything other than white
// space after the closing brace is an error.
//
// Every error returned is an *errors.ParseError giving the position at
// which the input stopped making sense.
func Parse(s string, opts ...Option) (*Compound, error) {
	p, err := newParser(s, opts)
	if err != nil {
		return nil, err
	}
	c, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseValue parses the text form of any single value, for example 5L,
// "text" or [B;1B,2B].
func ParseValue(s string, opts ...Option) (Value, error) {
	p, err := newParser(s, opts)
	if err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return v, nil
}

type parser struct {
	c     *cursor.Cursor
	opts  *options
	depth int
}

func newParser(s string, opts []Option) (*parser, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return &parser{c: cursor.New(s), opts: o}, nil
}

func (p *parser) errorAt(pos int, format string, args ...any) error {
	return nbterrors.New(fmt.Sprintf(format, args...), p.c.Input(), pos, p.opts.contextWidth)
}

func (p *parser) errorf(format string, args ...any) error {
	return p.errorAt(p.c.Pos(), format, args...)
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opts.maxDepth {
		return p.errorf("Exceeded maximum nesting depth of %d", p.opts.maxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) expect(r rune) error {
	if !p.c.Eat(r) {
		return p.errorf("Expected '%c'", r)
	}
	return nil
}

func (p *parser) finish() error {
	p.c.SkipWhitespace()
	if p.c.Peek() != cursor.EOF {
		return p.errorf("Unexpected trailing data")
	}
	return nil
}

// next consumes the separator after an element of a compound, list or
// array. It reports whether the container is complete. A separator
// directly before the closing bracket is accepted.
func (p *parser) next(closing rune) (bool, error) {
	p.c.SkipWhitespace()
	switch p.c.Peek() {
	case ',':
		p.c.Skip()
		p.c.SkipWhitespace()
		if p.c.Peek() == closing {
			p.c.Skip()
			return true, nil
		}
		return false, nil
	case closing:
		p.c.Skip()
		return true, nil
	default:
		return false, p.errorf("Expected ',' or '%c'", closing)
	}
}

func (p *parser) parseValue() (Value, error) {
	p.c.SkipWhitespace()
	switch r := p.c.Peek(); r {
	case '{':
		return p.parseCompound()
	case '[':
		if isArrayKind(p.c.PeekAt(1)) && p.c.PeekAt(2) == ';' {
			return p.parseArray()
		}
		return p.parseList()
	case '"', '\'':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	}

	mark := p.c.Mark()
	if v, ok := p.parseNumber(); ok {
		return v, nil
	}
	p.c.Reset(mark)

	s, err := p.parseUnquoted("value")
	if err != nil {
		return nil, err
	}
	switch s {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	return String(s), nil
}

func (p *parser) parseCompound() (*Compound, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.expect('{'); err != nil {
		return nil, err
	}
	c := NewCompound()
	p.c.SkipWhitespace()
	if p.c.Peek() == '}' {
		p.c.Skip()
		return c, nil
	}
	for {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, v); err != nil {
			return nil, p.errorf("%v", err)
		}
		done, err := p.next('}')
		if err != nil {
			return nil, err
		}
		if done {
			return c, nil
		}
	}
}

func (p *parser) parseKey() (string, error) {
	p.c.SkipWhitespace()
	switch p.c.Peek() {
	case '"', '\'':
		return p.parseQuoted()
	}
	return p.parseUnquoted("key")
}

func (p *parser) parseList() (*List, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.expect('['); err != nil {
		return nil, err
	}
	l := &List{}
	p.c.SkipWhitespace()
	if p.c.Peek() == ']' {
		p.c.Skip()
		return l, nil
	}
	for {
		p.c.SkipWhitespace()
		start := p.c.Pos()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if l.elem != TagEnd && v.Tag() != l.elem {
			return nil, p.errorAt(start, "can't insert %s into list of %s", v.Tag(), l.elem)
		}
		if err := l.Add(v); err != nil {
			return nil, p.errorAt(start, "%v", err)
		}
		done, err := p.next(']')
		if err != nil {
			return nil, err
		}
		if done {
			return l, nil
		}
	}
}

func isArrayKind(r rune) bool {
	return r == 'B' || r == 'I' || r == 'L'
}

func (p *parser) parseArray() (Value, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var want Tag
	switch p.c.Read() {
	case 'B':
		want = TagByte
	case 'I':
		want = TagInt
	case 'L':
		want = TagLong
	}
	p.c.Skip() // ';'

	var elems []Value
	p.c.SkipWhitespace()
	if p.c.Peek() == ']' {
		p.c.Skip()
	} else {
		for {
			p.c.SkipWhitespace()
			start := p.c.Pos()
			v, ok := p.parseNumber()
			if !ok {
				p.c.Reset(start)
				return nil, p.errorf("Expected number")
			}
			if v.Tag() != want {
				return nil, p.errorAt(start, "can't insert %s into %s array", v.Tag(), want)
			}
			elems = append(elems, v)
			done, err := p.next(']')
			if err != nil {
				return nil, err
			}
			if done {
				break
			}
		}
	}

	switch want {
	case TagByte:
		data := make([]byte, len(elems))
		for i, e := range elems {
			data[i] = byte(e.(Byte))
		}
		return &ByteArray{data: data}, nil
	case TagInt:
		data := make([]int32, len(elems))
		for i, e := range elems {
			data[i] = int32(e.(Int))
		}
		return &IntArray{data: data}, nil
	default:
		data := make([]int64, len(elems))
		for i, e := range elems {
			data[i] = int64(e.(Long))
		}
		return &LongArray{data: data}, nil
	}
}

// parseNumber reads '-'? digit+ ('.' digit+)? followed by an optional type
// suffix. It reports false, leaving the cursor wherever it stopped, when
// the text is not a number of the indicated type or runs straight into
// more unquoted-string characters; the caller resets and reads a string
// instead.
func (p *parser) parseNumber() (Value, bool) {
	start := p.c.Pos()
	if p.c.Peek() == '-' {
		p.c.Skip()
	}
	if p.c.ReadWhile(cursor.IsDigit) == "" {
		return nil, false
	}
	decimal := false
	if p.c.Peek() == '.' && cursor.IsDigit(p.c.PeekAt(1)) {
		p.c.Skip()
		p.c.ReadWhile(cursor.IsDigit)
		decimal = true
	}
	text := p.c.Input()[start:p.c.Pos()]

	suffix := unicode.ToLower(p.c.Peek())
	switch suffix {
	case 'b', 's', 'l', 'f', 'd':
		p.c.Skip()
	default:
		suffix = 0
	}
	if cursor.IsUnquoted(p.c.Peek()) {
		return nil, false
	}

	switch {
	case suffix == 'f':
		f, err := strconv.ParseFloat(text, 32)
		return Float(f), err == nil
	case suffix == 'd' || (suffix == 0 && decimal):
		f, err := strconv.ParseFloat(text, 64)
		return Double(f), err == nil
	case decimal:
		return nil, false
	}
	switch suffix {
	case 'b':
		n, err := strconv.ParseInt(text, 10, 8)
		return Byte(n), err == nil
	case 's':
		n, err := strconv.ParseInt(text, 10, 16)
		return Short(n), err == nil
	case 'l':
		n, err := strconv.ParseInt(text, 10, 64)
		return Long(n), err == nil
	default:
		n, err := strconv.ParseInt(text, 10, 32)
		return Int(n), err == nil
	}
}

// parseQuoted reads a string delimited by ' or ". Inside it, a backslash
// escapes a backslash or the delimiter and nothing else.
func (p *parser) parseQuoted() (string, error) {
	in := p.c.Input()
	q := p.c.Read()
	var b strings.Builder
	seg := p.c.Pos()
	for {
		pos := p.c.Pos()
		switch r := p.c.Read(); r {
		case cursor.EOF:
			return "", p.errorf("Unclosed quoted string")
		case q:
			b.WriteString(in[seg:pos])
			return b.String(), nil
		case '\\':
			b.WriteString(in[seg:pos])
			e := p.c.Read()
			switch e {
			case cursor.EOF:
				return "", p.errorf("Unclosed quoted string")
			case '\\', q:
				b.WriteRune(e)
			default:
				return "", p.errorAt(pos+1, "Invalid escape sequence '%c' in quoted string", e)
			}
			seg = p.c.Pos()
		}
	}
}

func (p *parser) parseUnquoted(what string) (string, error) {
	s := p.c.ReadWhile(cursor.IsUnquoted)
	if s == "" {
		return "", p.errorf("Expected %s", what)
	}
	return s, nil
}
