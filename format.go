package nbt

import (
	"io"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-nbt/internal/cursor"
)

// Stringify returns the canonical text form of v: compact, with compound
// keys in sorted order. Parsing the result yields a tree equal to v.
//
// NaN and infinite floats have no text form; they render as NaNf, +Inff and
// so on, which parse back as strings.
func Stringify(v Value) string {
	var b strings.Builder
	// A strings.Builder never fails.
	_ = newFormatter(&b, &options{}).format(v)
	return b.String()
}

// Format writes the text form of v to w. With the Indent option compounds
// and non-empty lists are spread over several lines; the result still
// parses back to a tree equal to v.
func Format(w io.Writer, v Value, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	return newFormatter(w, o).format(v)
}

// formatter writes a value tree as text.
type formatter struct {
	w      io.Writer
	indent string
	depth  int
	buf    []byte
}

func newFormatter(w io.Writer, o *options) *formatter {
	f := &formatter{w: w}
	if o.indent > 0 {
		f.indent = strings.Repeat(" ", o.indent)
	}
	return f
}

func (f *formatter) format(v Value) error {
	if err := f.writeValue(v); err != nil {
		return err
	}
	return f.flush()
}

func (f *formatter) write(s string) {
	f.buf = append(f.buf, s...)
}

// flush hands the buffered text to the writer once it has grown large, or
// at the end of formatting.
func (f *formatter) flush() error {
	if len(f.buf) == 0 {
		return nil
	}
	_, err := f.w.Write(f.buf)
	f.buf = f.buf[:0]
	return err
}

func (f *formatter) writeNewline() {
	if f.indent == "" {
		return
	}
	f.buf = append(f.buf, '\n')
	for range f.depth {
		f.buf = append(f.buf, f.indent...)
	}
}

func (f *formatter) writeValue(v Value) error {
	switch x := v.(type) {
	case *Compound:
		return f.writeCompound(x)
	case *List:
		return f.writeList(x)
	default:
		f.buf = appendScalar(f.buf, v)
	}
	if len(f.buf) >= 32<<10 {
		return f.flush()
	}
	return nil
}

func (f *formatter) writeCompound(c *Compound) error {
	f.write("{")
	f.depth++
	for i, k := range c.SortedKeys() {
		if i > 0 {
			f.write(",")
		}
		f.writeNewline()
		f.buf = appendKey(f.buf, k)
		f.write(":")
		if f.indent != "" {
			f.write(" ")
		}
		if err := f.writeValue(c.m[k]); err != nil {
			return err
		}
	}
	f.depth--
	if c.Len() > 0 {
		f.writeNewline()
	}
	f.write("}")
	return nil
}

func (f *formatter) writeList(l *List) error {
	f.write("[")
	f.depth++
	for i, e := range l.items {
		if i > 0 {
			f.write(",")
		}
		f.writeNewline()
		if err := f.writeValue(e); err != nil {
			return err
		}
	}
	f.depth--
	if l.Len() > 0 {
		f.writeNewline()
	}
	f.write("]")
	return nil
}

// appendScalar appends the text form of any value that is not a list or a
// compound.
func appendScalar(b []byte, v Value) []byte {
	switch x := v.(type) {
	case Byte:
		return append(strconv.AppendInt(b, int64(x), 10), 'b')
	case Short:
		return append(strconv.AppendInt(b, int64(x), 10), 's')
	case Int:
		return strconv.AppendInt(b, int64(x), 10)
	case Long:
		return append(strconv.AppendInt(b, int64(x), 10), 'L')
	case Float:
		return append(appendFloat(b, float64(x), 32), 'f')
	case Double:
		return append(appendFloat(b, float64(x), 64), 'd')
	case String:
		return appendQuoted(b, string(x))
	case *ByteArray:
		b = append(b, "[B;"...)
		for i, e := range x.data {
			if i > 0 {
				b = append(b, ',')
			}
			b = append(strconv.AppendInt(b, int64(int8(e)), 10), 'B')
		}
		return append(b, ']')
	case *IntArray:
		b = append(b, "[I;"...)
		for i, e := range x.data {
			if i > 0 {
				b = append(b, ',')
			}
			b = strconv.AppendInt(b, int64(e), 10)
		}
		return append(b, ']')
	case *LongArray:
		b = append(b, "[L;"...)
		for i, e := range x.data {
			if i > 0 {
				b = append(b, ',')
			}
			b = append(strconv.AppendInt(b, e, 10), 'L')
		}
		return append(b, ']')
	}
	return b
}

// appendFloat uses plain decimal notation, never an exponent, since the
// grammar has none.
func appendFloat(b []byte, f float64, bitSize int) []byte {
	return strconv.AppendFloat(b, f, 'f', -1, bitSize)
}

// appendQuoted quotes s with double quotes, or with single quotes when s
// contains a double quote but no single quote. Only the backslash and the
// chosen quote are escaped.
func appendQuoted(b []byte, s string) []byte {
	q := byte('"')
	if strings.IndexByte(s, '"') >= 0 && strings.IndexByte(s, '\'') < 0 {
		q = '\''
	}
	b = append(b, q)
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '\\' || c == q {
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	return append(b, q)
}

func appendKey(b []byte, k string) []byte {
	for _, r := range k {
		if !cursor.IsUnquoted(r) {
			return appendQuoted(b, k)
		}
	}
	if k == "" {
		return append(b, `""`...)
	}
	return append(b, k...)
}
