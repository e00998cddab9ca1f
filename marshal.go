package nbt

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/KimNorgaard/go-nbt/internal/mapper"
)

// Marshaler is the interface implemented by types that can build their own
// NBT representation.
type Marshaler interface {
	MarshalNBT() (Value, error)
}

// Unmarshaler is the interface implemented by types that can populate
// themselves from an NBT value.
type Unmarshaler interface {
	UnmarshalNBT(Value) error
}

var (
	valueType     = reflect.TypeFor[Value]()
	marshalerType = reflect.TypeFor[Marshaler]()
)

// Marshal returns the NBT tree for v.
//
// Marshal traverses v recursively. Values that implement Value are used as
// they are; values that implement Marshaler build their own tree. Otherwise
// Go values map to tags as follows:
//
//	bool                      -> Byte (0 or 1)
//	int8, uint8               -> Byte
//	int16                     -> Short
//	int32, uint16             -> Int
//	int64, int, uint32, uint  -> Long
//	float32, float64          -> Float, Double
//	string                    -> String
//	[]int8, []uint8           -> ByteArray
//	[]int32                   -> IntArray
//	[]int64                   -> LongArray
//	other slices and arrays   -> List
//	maps with string keys     -> Compound, keys in sorted order
//	structs                   -> Compound
//
// Struct fields are encoded under their name unless the field's tag gives
// another one, as in `nbt:"Health"`. The "omitempty" option skips a field
// holding the zero value of its kind, and the name "-" skips the field
// altogether. Embedded structs are flattened into the outer compound.
//
// Nil pointers, interfaces, maps and slices marshal to End. Map entries and
// struct fields that marshal to End are left out; a list element that does
// so is an error. Marshal(nil) returns End{}.
func Marshal(v any) (Value, error) {
	ms := &marshalState{depth: defaultMaxDepth}
	return ms.marshalValue(reflect.ValueOf(v))
}

type marshalState struct {
	depth int
}

func (ms *marshalState) marshalCustom(v reflect.Value, m Marshaler) (Value, error) {
	out, err := m.MarshalNBT()
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}
	if out == nil {
		return End{}, nil
	}
	return out, nil
}

// isEmptyValue reports whether v holds the zero value of its kind.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func (ms *marshalState) marshalValue(v reflect.Value) (Value, error) { //nolint:gocyclo
	if !v.IsValid() {
		return End{}, nil
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return End{}, nil
		}
	}

	ms.depth--
	if ms.depth <= 0 {
		return nil, fmt.Errorf("nbt: reached max recursion depth")
	}
	defer func() { ms.depth++ }()

	if v.CanInterface() {
		if x, ok := v.Interface().(Value); ok {
			return x, nil
		}
	}

	// Check the value and a pointer to it, so that both value and pointer
	// receivers are found.
	if v.Type().NumMethod() > 0 && v.CanInterface() {
		if m, ok := v.Interface().(Marshaler); ok {
			return ms.marshalCustom(v, m)
		}
	}
	if v.Kind() != reflect.Pointer && reflect.PointerTo(v.Type()).Implements(marshalerType) {
		var pv reflect.Value
		if v.CanAddr() {
			pv = v.Addr()
		} else {
			pv = reflect.New(v.Type())
			pv.Elem().Set(v)
		}
		if pv.CanInterface() {
			return ms.marshalCustom(pv, pv.Interface().(Marshaler))
		}
	}

	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		return ms.marshalValue(v.Elem())
	}

	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int8:
		return Byte(v.Int()), nil
	case reflect.Int16:
		return Short(v.Int()), nil
	case reflect.Int32:
		return Int(v.Int()), nil
	case reflect.Int, reflect.Int64:
		return Long(v.Int()), nil
	case reflect.Uint8:
		return Byte(int8(v.Uint())), nil
	case reflect.Uint16:
		return Int(v.Uint()), nil
	case reflect.Uint32:
		return Long(v.Uint()), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("nbt: cannot marshal %s %d (overflows LONG)", v.Type(), u)
		}
		return Long(u), nil
	case reflect.Float32:
		return Float(v.Float()), nil
	case reflect.Float64:
		return Double(v.Float()), nil
	case reflect.String:
		return String(v.String()), nil
	case reflect.Slice, reflect.Array:
		if arr, ok := marshalArray(v); ok {
			return arr, nil
		}
		return ms.marshalList(v)
	case reflect.Map:
		return ms.marshalMap(v)
	case reflect.Struct:
		return ms.marshalStruct(v)
	default:
		return nil, fmt.Errorf("nbt: unsupported type for marshaling: %s", v.Type())
	}
}

// marshalArray maps slices and arrays of 8, 32 and 64 bit integers to the
// typed array tags. Element types with their own NBT form are left to
// marshalList.
func marshalArray(v reflect.Value) (Value, bool) {
	et := v.Type().Elem()
	if et.Implements(valueType) || et.Implements(marshalerType) || reflect.PointerTo(et).Implements(marshalerType) {
		return nil, false
	}
	n := v.Len()
	switch et.Kind() {
	case reflect.Int8:
		data := make([]byte, n)
		for i := range n {
			data[i] = byte(v.Index(i).Int())
		}
		return &ByteArray{data: data}, true
	case reflect.Uint8:
		data := make([]byte, n)
		for i := range n {
			data[i] = byte(v.Index(i).Uint())
		}
		return &ByteArray{data: data}, true
	case reflect.Int32:
		data := make([]int32, n)
		for i := range n {
			data[i] = int32(v.Index(i).Int())
		}
		return &IntArray{data: data}, true
	case reflect.Int64:
		data := make([]int64, n)
		for i := range n {
			data[i] = v.Index(i).Int()
		}
		return &LongArray{data: data}, true
	}
	return nil, false
}

func (ms *marshalState) marshalList(v reflect.Value) (Value, error) {
	l := &List{items: make([]Value, 0, v.Len())}
	for i := range v.Len() {
		elem, err := ms.marshalValue(v.Index(i))
		if err != nil {
			return nil, err
		}
		if err := l.Add(elem); err != nil {
			return nil, fmt.Errorf("nbt: element %d of %s: %w", i, v.Type(), err)
		}
	}
	return l, nil
}

func (ms *marshalState) marshalMap(v reflect.Value) (Value, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("nbt: map key type must be a string, got %s", v.Type().Key())
	}

	keys := make([]string, 0, v.Len())
	values := make(map[string]reflect.Value, v.Len())
	for iter := v.MapRange(); iter.Next(); {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value()
	}
	slices.Sort(keys)

	c := NewCompound()
	for _, k := range keys {
		elem, err := ms.marshalValue(values[k])
		if err != nil {
			return nil, err
		}
		if elem.Tag() == TagEnd {
			continue
		}
		if err := c.Set(k, elem); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (ms *marshalState) marshalStruct(v reflect.Value) (Value, error) {
	fields := mapper.For(v.Type()).Fields
	c := NewCompound()
	for _, f := range fields {
		fv := v.FieldByIndex(f.Index)
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		elem, err := ms.marshalValue(fv)
		if err != nil {
			return nil, err
		}
		if elem.Tag() == TagEnd {
			continue
		}
		if err := c.Set(f.Name, elem); err != nil {
			return nil, err
		}
	}
	return c, nil
}
