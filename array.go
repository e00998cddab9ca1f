package nbt

import "slices"

// ByteArray is a fixed-width array of bytes. The backing buffer is private:
// constructors and accessors copy, and Set is the only way to mutate an
// element in place.
type ByteArray struct {
	data []byte
}

// IntArray is a fixed-width array of signed 32-bit integers.
type IntArray struct {
	data []int32
}

// LongArray is a fixed-width array of signed 64-bit integers.
type LongArray struct {
	data []int64
}

// NewByteArray returns a ByteArray holding a copy of b.
func NewByteArray(b []byte) *ByteArray { return &ByteArray{data: clone(b)} }

// NewIntArray returns an IntArray holding a copy of v.
func NewIntArray(v []int32) *IntArray { return &IntArray{data: clone(v)} }

// NewLongArray returns a LongArray holding a copy of v.
func NewLongArray(v []int64) *LongArray { return &LongArray{data: clone(v)} }

// clone copies s, mapping nil to an empty slice so that arrays never
// distinguish between nil and empty.
func clone[S ~[]E, E any](s S) S {
	out := make(S, len(s))
	copy(out, s)
	return out
}

func (*ByteArray) Tag() Tag { return TagByteArray }
func (*IntArray) Tag() Tag  { return TagIntArray }
func (*LongArray) Tag() Tag { return TagLongArray }

func (a *ByteArray) String() string { return Stringify(a) }
func (a *IntArray) String() string  { return Stringify(a) }
func (a *LongArray) String() string { return Stringify(a) }

func (*ByteArray) isValue() {}
func (*IntArray) isValue()  {}
func (*LongArray) isValue() {}

// Len returns the number of elements.
func (a *ByteArray) Len() int { return len(a.data) }

// At returns the i-th element as a signed byte.
func (a *ByteArray) At(i int) int8 { return int8(a.data[i]) }

// Set replaces the i-th element.
func (a *ByteArray) Set(i int, v int8) { a.data[i] = byte(v) }

// Bytes returns a copy of the elements.
func (a *ByteArray) Bytes() []byte { return clone(a.data) }

// Len returns the number of elements.
func (a *IntArray) Len() int { return len(a.data) }

// At returns the i-th element.
func (a *IntArray) At(i int) int32 { return a.data[i] }

// Set replaces the i-th element.
func (a *IntArray) Set(i int, v int32) { a.data[i] = v }

// Ints returns a copy of the elements.
func (a *IntArray) Ints() []int32 { return clone(a.data) }

// Len returns the number of elements.
func (a *LongArray) Len() int { return len(a.data) }

// At returns the i-th element.
func (a *LongArray) At(i int) int64 { return a.data[i] }

// Set replaces the i-th element.
func (a *LongArray) Set(i int, v int64) { a.data[i] = v }

// Longs returns a copy of the elements.
func (a *LongArray) Longs() []int64 { return clone(a.data) }

func (a *ByteArray) equal(b *ByteArray) bool { return slices.Equal(a.data, b.data) }
func (a *IntArray) equal(b *IntArray) bool   { return slices.Equal(a.data, b.data) }
func (a *LongArray) equal(b *LongArray) bool { return slices.Equal(a.data, b.data) }
