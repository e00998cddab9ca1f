package nbt

import (
	"iter"
	"slices"
)

// Compound maps string keys to values. Keys are unique; insertion order is
// kept so that re-encoding a decoded compound reproduces its layout, but it
// carries no meaning for equality.
//
// The zero value is an empty compound ready to use.
type Compound struct {
	keys []string
	m    map[string]Value
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{m: make(map[string]Value)}
}

func (*Compound) Tag() Tag         { return TagCompound }
func (c *Compound) String() string { return Stringify(c) }
func (*Compound) isValue()         {}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.keys) }

// Has reports whether key is present.
func (c *Compound) Has(key string) bool {
	_, ok := c.m[key]
	return ok
}

// Get returns the value stored under key.
func (c *Compound) Get(key string) (Value, bool) {
	v, ok := c.m[key]
	return v, ok
}

// Value returns the native Go form of the value stored under key, as
// produced by Revert, or nil if key is absent.
func (c *Compound) Value(key string) any {
	v, ok := c.m[key]
	if !ok {
		return nil
	}
	return Revert(v)
}

// Set stores v under key, replacing any previous value. A nil v removes the
// key. Storing End fails with ErrEndValue.
func (c *Compound) Set(key string, v Value) error {
	if v == nil {
		c.Remove(key)
		return nil
	}
	if v.Tag() == TagEnd {
		return ErrEndValue
	}
	if c.m == nil {
		c.m = make(map[string]Value)
	}
	if _, ok := c.m[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.m[key] = v
	return nil
}

// Put converts x with Convert and stores the result under key. A nil x
// removes the key; a value Convert does not recognise fails with
// ErrEndValue.
func (c *Compound) Put(key string, x any) error {
	if x == nil {
		c.Remove(key)
		return nil
	}
	return c.Set(key, Convert(x))
}

// Remove deletes key and returns the value it held, or nil.
func (c *Compound) Remove(key string) Value {
	v, ok := c.m[key]
	if !ok {
		return nil
	}
	delete(c.m, key)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == key })
	return v
}

// Clear removes every entry.
func (c *Compound) Clear() {
	clear(c.m)
	c.keys = c.keys[:0]
}

// Keys returns the keys in insertion order.
func (c *Compound) Keys() []string { return slices.Clone(c.keys) }

// SortedKeys returns the keys in lexicographic order.
func (c *Compound) SortedKeys() []string {
	keys := slices.Clone(c.keys)
	slices.Sort(keys)
	return keys
}

// All returns an iterator over the entries in insertion order.
func (c *Compound) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range c.keys {
			if !yield(k, c.m[k]) {
				return
			}
		}
	}
}

// ContainsTag reports whether any entry holds a value of the given tag.
func (c *Compound) ContainsTag(tag Tag) bool {
	for _, v := range c.m {
		if v.Tag() == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the compound.
func (c *Compound) Clone() *Compound {
	out := &Compound{keys: slices.Clone(c.keys), m: make(map[string]Value, len(c.m))}
	for k, v := range c.m {
		out.m[k] = Clone(v)
	}
	return out
}

// View returns a read-only view of the compound.
func (c *Compound) View() CompoundView { return CompoundView{c: c} }

// Lookup returns the value stored under key as a T. It fails with
// ErrKeyNotFound when key is absent and with a *TagMismatchError when the
// stored value has a different tag.
//
//	n, err := nbt.Lookup[nbt.Int](c, "count")
func Lookup[T Value](c *Compound, key string) (T, error) {
	var zero T
	v, ok := c.m[key]
	if !ok {
		return zero, ErrKeyNotFound
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TagMismatchError{Want: tagOf[T](), Got: v.Tag()}
	}
	return t, nil
}

// tagOf returns the tag carried by values of type T.
func tagOf[T Value]() Tag {
	var zero T
	switch any(zero).(type) {
	case End:
		return TagEnd
	case Byte:
		return TagByte
	case Short:
		return TagShort
	case Int:
		return TagInt
	case Long:
		return TagLong
	case Float:
		return TagFloat
	case Double:
		return TagDouble
	case String:
		return TagString
	case *ByteArray:
		return TagByteArray
	case *IntArray:
		return TagIntArray
	case *LongArray:
		return TagLongArray
	case *List:
		return TagList
	case *Compound:
		return TagCompound
	}
	return TagEnd
}
