package nbt

import "iter"

// CompoundView is a read-only handle on a Compound. It offers no mutating
// methods; nested containers are reached through Compound and List, which
// return views in turn.
type CompoundView struct {
	c *Compound
}

// ListView is a read-only handle on a List.
type ListView struct {
	l *List
}

func (v CompoundView) Len() int                      { return v.c.Len() }
func (v CompoundView) Has(key string) bool           { return v.c.Has(key) }
func (v CompoundView) Keys() []string                { return v.c.Keys() }
func (v CompoundView) SortedKeys() []string          { return v.c.SortedKeys() }
func (v CompoundView) Value(key string) any          { return v.c.Value(key) }
func (v CompoundView) ContainsTag(tag Tag) bool      { return v.c.ContainsTag(tag) }
func (v CompoundView) Clone() *Compound              { return v.c.Clone() }
func (v CompoundView) String() string                { return v.c.String() }
func (v CompoundView) All() iter.Seq2[string, Value] { return readOnly(v.c.All()) }

// Get returns the value stored under key. Containers and arrays are
// returned as copies.
func (v CompoundView) Get(key string) (Value, bool) {
	return readOnlyGet(v.c.Get(key))
}

// Compound returns a view of the compound stored under key.
func (v CompoundView) Compound(key string) (CompoundView, bool) {
	c, ok := v.c.m[key].(*Compound)
	if !ok {
		return CompoundView{}, false
	}
	return c.View(), true
}

// List returns a view of the list stored under key.
func (v CompoundView) List(key string) (ListView, bool) {
	l, ok := v.c.m[key].(*List)
	if !ok {
		return ListView{}, false
	}
	return l.View(), true
}

func (v ListView) Len() int                   { return v.l.Len() }
func (v ListView) ElemTag() Tag               { return v.l.ElemTag() }
func (v ListView) Contains(x Value) bool      { return v.l.Contains(x) }
func (v ListView) IndexOf(x Value) int        { return v.l.IndexOf(x) }
func (v ListView) Clone() *List               { return v.l.Clone() }
func (v ListView) String() string             { return v.l.String() }
func (v ListView) All() iter.Seq2[int, Value] { return readOnly(v.l.All()) }

// At returns the i-th element. Containers and arrays are returned as copies.
func (v ListView) At(i int) Value {
	x, _ := readOnlyGet(v.l.At(i), true)
	return x
}

// CompoundAt returns a view of the i-th element if it is a compound.
func (v ListView) CompoundAt(i int) (CompoundView, bool) {
	c, ok := v.l.At(i).(*Compound)
	if !ok {
		return CompoundView{}, false
	}
	return c.View(), true
}

// ListAt returns a view of the i-th element if it is a list.
func (v ListView) ListAt(i int) (ListView, bool) {
	l, ok := v.l.At(i).(*List)
	if !ok {
		return ListView{}, false
	}
	return l.View(), true
}

// readOnlyGet hands out containers as deep copies so that a view never
// leaks a mutable reference. Scalars are plain values.
func readOnlyGet(v Value, ok bool) (Value, bool) {
	switch x := v.(type) {
	case *Compound:
		return x.Clone(), ok
	case *List:
		return x.Clone(), ok
	case *ByteArray:
		return NewByteArray(x.data), ok
	case *IntArray:
		return NewIntArray(x.data), ok
	case *LongArray:
		return NewLongArray(x.data), ok
	}
	return v, ok
}

func readOnly[K any](seq iter.Seq2[K, Value]) iter.Seq2[K, Value] {
	return func(yield func(K, Value) bool) {
		for k, v := range seq {
			v, _ = readOnlyGet(v, true)
			if !yield(k, v) {
				return
			}
		}
	}
}
