package nbt

import (
	"math"
	"reflect"
)

// Equal reports whether a and b have the same tag and the same content,
// recursively. Floating-point values compare by bit pattern, so NaN equals
// itself and 0 differs from -0. Empty lists are equal whatever element tag
// they were created with.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Tag() != b.Tag() {
		return false
	}
	switch x := a.(type) {
	case End:
		return true
	case Byte, Short, Int, Long, String:
		return a == b
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case *ByteArray:
		return x.equal(b.(*ByteArray))
	case *IntArray:
		return x.equal(b.(*IntArray))
	case *LongArray:
		return x.equal(b.(*LongArray))
	case *List:
		y := b.(*List)
		if x.Len() != y.Len() {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		y := b.(*Compound)
		if x.Len() != y.Len() {
			return false
		}
		for k, v := range x.m {
			w, ok := y.m[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	return false
}

// SoftEqual is Equal extended to bare Go values: v also equals x when x is
// not a Value and deep-equals the native form Revert(v). Two Values of
// different tags are never soft-equal.
//
//	nbt.SoftEqual(nbt.Byte(3), int8(3)) // true
//	nbt.SoftEqual(nbt.Byte(3), nbt.Int(3)) // false
func SoftEqual(v Value, x any) bool {
	if w, ok := x.(Value); ok {
		return Equal(v, w)
	}
	if v == nil {
		return x == nil
	}
	return reflect.DeepEqual(Revert(v), x)
}

// Clone returns a deep copy of v. Scalars are returned as is; arrays,
// lists and compounds are copied recursively.
func Clone(v Value) Value {
	switch x := v.(type) {
	case *ByteArray:
		return NewByteArray(x.data)
	case *IntArray:
		return NewIntArray(x.data)
	case *LongArray:
		return NewLongArray(x.data)
	case *List:
		return x.Clone()
	case *Compound:
		return x.Clone()
	}
	return v
}
