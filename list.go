package nbt

import (
	"iter"
	"slices"
)

// List is an ordered sequence of values that all share one tag. The
// element tag is TagEnd until the first element is inserted; from then on
// every insert or replacement must carry exactly that tag.
//
// The zero value is an empty list ready to use.
type List struct {
	elem  Tag
	items []Value
}

// NewList returns an empty list, or a list holding vs. It fails if vs are
// not all of one tag or include End.
func NewList(vs ...Value) (*List, error) {
	l := &List{items: make([]Value, 0, len(vs))}
	for _, v := range vs {
		if err := l.Add(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// NewListOf returns an empty list whose element tag is already set to tag.
// The binary format records an element tag even for empty lists; this
// constructor preserves it.
func NewListOf(tag Tag) *List {
	return &List{elem: tag}
}

func (*List) Tag() Tag         { return TagList }
func (l *List) String() string { return Stringify(l) }
func (*List) isValue()         {}

// ElemTag returns the tag shared by all elements, or TagEnd for a list that
// has never held an element.
func (l *List) ElemTag() Tag { return l.elem }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns the i-th element. It panics if i is out of range.
func (l *List) At(i int) Value { return l.items[i] }

// Add appends v.
func (l *List) Add(v Value) error {
	if err := l.check(v); err != nil {
		return err
	}
	l.items = append(l.items, v)
	return nil
}

// Insert inserts v at index i, shifting later elements up.
func (l *List) Insert(i int, v Value) error {
	if err := l.check(v); err != nil {
		return err
	}
	l.items = slices.Insert(l.items, i, v)
	return nil
}

// Set replaces the i-th element and returns the previous one.
func (l *List) Set(i int, v Value) (Value, error) {
	old := l.items[i]
	if err := l.check(v); err != nil {
		return nil, err
	}
	l.items[i] = v
	return old, nil
}

// AddValue converts x with Convert and appends the result.
func (l *List) AddValue(x any) error {
	return l.Add(Convert(x))
}

// Remove deletes and returns the i-th element. The element tag is kept.
func (l *List) Remove(i int) Value {
	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return v
}

// Clear removes all elements and resets the element tag to TagEnd.
func (l *List) Clear() {
	clear(l.items)
	l.items = l.items[:0]
	l.elem = TagEnd
}

// IndexOf returns the index of the first element equal to v, or -1.
func (l *List) IndexOf(v Value) int {
	return slices.IndexFunc(l.items, func(e Value) bool { return Equal(e, v) })
}

// Contains reports whether an element equal to v is present.
func (l *List) Contains(v Value) bool { return l.IndexOf(v) >= 0 }

// Values returns a copy of the element slice. The elements themselves are
// shared.
func (l *List) Values() []Value { return slices.Clone(l.items) }

// All returns an iterator over the index and value of each element.
func (l *List) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	out := &List{elem: l.elem, items: make([]Value, len(l.items))}
	for i, v := range l.items {
		out.items[i] = Clone(v)
	}
	return out
}

// View returns a read-only view of the list.
func (l *List) View() ListView { return ListView{l: l} }

func (l *List) check(v Value) error {
	if v == nil || v.Tag() == TagEnd {
		return ErrEndValue
	}
	if l.elem == TagEnd {
		l.elem = v.Tag()
		return nil
	}
	if v.Tag() != l.elem {
		return &TagMismatchError{Want: l.elem, Got: v.Tag(), Container: "list"}
	}
	return nil
}
