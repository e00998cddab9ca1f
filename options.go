package nbt

import "fmt"

// Option configures encoding, decoding, parsing and formatting. Options that
// do not apply to an operation are ignored by it.
type Option func(*options) error

type options struct {
	maxDepth     int
	contextWidth int
	indent       int
	rootName     string
	unnamed      bool
	compression  Compression
}

const (
	defaultMaxDepth     = 512
	defaultContextWidth = 10
)

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth:     defaultMaxDepth,
		contextWidth: defaultContextWidth,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth sets the maximum nesting depth of lists and compounds accepted
// when decoding, parsing or unmarshaling. It guards against stack
// exhaustion on hostile input. The default is 512.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("nbt: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// ContextWidth sets how many characters before the error position a parse
// error quotes in its context. The default is 10; 0 disables the context.
func ContextWidth(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("nbt: context width cannot be negative")
		}
		o.contextWidth = n
		return nil
	}
}

// Indent makes Format pretty-print compounds and lists, one entry per line,
// indented by n spaces per level. The default, 0, is the compact canonical
// form.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("nbt: indent spaces cannot be negative")
		}
		o.indent = n
		return nil
	}
}

// RootName sets the name written in front of the root value. The default is
// the empty string.
func RootName(name string) Option {
	return func(o *options) error {
		if len(name) > maxStringLen {
			return ErrStringTooLong
		}
		o.rootName = name
		o.unnamed = false
		return nil
	}
}

// Unnamed frames the root value without a name field, both when writing and
// when reading. Some consumers, network protocols in particular, expect
// this form.
func Unnamed() Option {
	return func(o *options) error {
		o.unnamed = true
		return nil
	}
}

// Compress wraps the encoded stream in the given compressor. Decoding needs
// no matching option: compressed input is detected automatically.
func Compress(c Compression) Option {
	return func(o *options) error {
		if !c.valid() {
			return fmt.Errorf("nbt: unsupported compression %s", c)
		}
		o.compression = c
		return nil
	}
}
