package nbt

import (
	"bytes"
	"io"
)

// Write encodes v in the binary format to w. It is shorthand for
// NewEncoder(w, opts...).Encode(v).
func Write(w io.Writer, v Value, opts ...Option) error {
	return NewEncoder(w, opts...).Encode(v)
}

// Read decodes one root value from r, decompressing it if needed.
func Read(r io.Reader, opts ...Option) (Value, error) {
	_, v, err := ReadNamed(r, opts...)
	return v, err
}

// ReadNamed decodes one root value from r and returns it with its name.
func ReadNamed(r io.Reader, opts ...Option) (string, Value, error) {
	d := NewDecoder(r, opts...)
	defer d.Close()
	name, v, err := d.DecodeNamed()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return name, v, err
}

// Encode returns the binary encoding of v.
func Encode(v Value, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes the binary encoding in data.
func Decode(data []byte, opts ...Option) (Value, error) {
	return Read(bytes.NewReader(data), opts...)
}
