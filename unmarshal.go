package nbt

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-nbt/internal/mapper"
)

// Unmarshal stores the contents of v in the Go value pointed to by out.
//
// Unmarshal is the inverse of Marshal. Integer tags fill any integer kind
// the value fits into, and BYTE also fills a bool. Typed arrays fill slices
// or arrays of integers, lists fill slices or arrays, and compounds fill
// structs (matching keys to field names exactly, then case-insensitively)
// or maps with string keys. An empty interface receives Revert(v). A field
// whose type can hold v itself, such as Value or *Compound, receives a deep
// copy of v.
//
// Types implementing Unmarshaler decode themselves; encoding.TextUnmarshaler
// is honoured for STRING values.
//
// A value that does not fit its target yields an *UnmarshalTypeError or an
// overflow error. Unmarshal stops at the first error.
func Unmarshal(v Value, out any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("nbt: Unmarshal(non-pointer %T or nil)", out)
	}
	us := &unmarshalState{depth: o.maxDepth}
	return us.mapValue(v, rv.Elem())
}

type unmarshalState struct {
	depth int
}

func (us *unmarshalState) mapValue(v Value, rv reflect.Value) error { //nolint:gocyclo
	us.depth--
	if us.depth < 0 {
		return fmt.Errorf("nbt: reached max recursion depth")
	}
	defer func() { us.depth++ }()

	if v == nil || v.Tag() == TagEnd {
		if rv.CanSet() {
			rv.Set(reflect.Zero(rv.Type()))
		}
		return nil
	}

	for {
		handled, err := us.tryCustomUnmarshal(v, rv)
		if err != nil || handled {
			return err
		}
		if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
			rv.Set(reflect.ValueOf(Revert(v)))
			return nil
		}
		if vt := reflect.TypeOf(v); vt.AssignableTo(rv.Type()) {
			rv.Set(reflect.ValueOf(Clone(v)))
			return nil
		}
		if rv.Kind() != reflect.Pointer {
			break
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if !rv.CanSet() {
		return fmt.Errorf("nbt: cannot set value of type %s", rv.Type())
	}

	switch x := v.(type) {
	case Byte:
		if rv.Kind() == reflect.Bool {
			rv.SetBool(x != 0)
			return nil
		}
		return setInt(rv, int64(x), TagByte)
	case Short:
		return setInt(rv, int64(x), TagShort)
	case Int:
		return setInt(rv, int64(x), TagInt)
	case Long:
		return setInt(rv, int64(x), TagLong)
	case Float:
		return setFloat(rv, float64(x), TagFloat)
	case Double:
		return setFloat(rv, float64(x), TagDouble)
	case String:
		if rv.Kind() != reflect.String {
			return &UnmarshalTypeError{Tag: TagString, Type: rv.Type()}
		}
		rv.SetString(string(x))
		return nil
	case *ByteArray:
		at := func(i int) int64 { return int64(int8(x.data[i])) }
		if k := rv.Kind(); (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() == reflect.Uint8 {
			at = func(i int) int64 { return int64(x.data[i]) }
		}
		return us.mapNumbers(TagByteArray, len(x.data), at, rv)
	case *IntArray:
		return us.mapNumbers(TagIntArray, len(x.data), func(i int) int64 { return int64(x.data[i]) }, rv)
	case *LongArray:
		return us.mapNumbers(TagLongArray, len(x.data), func(i int) int64 { return x.data[i] }, rv)
	case *List:
		switch rv.Kind() {
		case reflect.Slice:
			return us.mapSlice(x, rv)
		case reflect.Array:
			return us.mapArray(x, rv)
		default:
			return &UnmarshalTypeError{Tag: TagList, Type: rv.Type()}
		}
	case *Compound:
		switch rv.Kind() {
		case reflect.Struct:
			return us.mapStruct(x, rv)
		case reflect.Map:
			return us.mapMap(x, rv)
		default:
			return &UnmarshalTypeError{Tag: TagCompound, Type: rv.Type()}
		}
	default:
		return fmt.Errorf("nbt: unmarshaling %T not supported", v)
	}
}

// tryCustomUnmarshal uses an Unmarshaler or, for strings, an
// encoding.TextUnmarshaler implemented by rv's address. It reports whether
// one was found, in which case the caller must not decode rv further.
func (us *unmarshalState) tryCustomUnmarshal(v Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		if err := u.UnmarshalNBT(v); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		s, isString := v.(String)
		if !isString {
			return false, nil
		}
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	return false, nil
}

func setInt(rv reflect.Value, n int64, tag Tag) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(n) {
			return fmt.Errorf("nbt: %s value %d overflows Go value of type %s", tag, n, rv.Type())
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return fmt.Errorf("nbt: %s value %d overflows Go value of type %s", tag, n, rv.Type())
		}
		rv.SetUint(uint64(n))
		return nil
	default:
		return &UnmarshalTypeError{Tag: tag, Type: rv.Type()}
	}
}

func setFloat(rv reflect.Value, f float64, tag Tag) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(f) {
			return fmt.Errorf("nbt: %s value %g overflows Go value of type %s", tag, f, rv.Type())
		}
		rv.SetFloat(f)
		return nil
	default:
		return &UnmarshalTypeError{Tag: tag, Type: rv.Type()}
	}
}

// mapNumbers fills a slice or array of integers from one of the typed
// array tags.
func (us *unmarshalState) mapNumbers(tag Tag, n int, at func(int) int64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		rv.Set(reflect.MakeSlice(rv.Type(), n, n))
	case reflect.Array:
		if rv.Len() != n {
			return fmt.Errorf("nbt: cannot unmarshal %s of length %d into Go array of length %d", tag, n, rv.Len())
		}
	default:
		return &UnmarshalTypeError{Tag: tag, Type: rv.Type()}
	}
	for i := range n {
		if err := setInt(rv.Index(i), at(i), tag); err != nil {
			if _, ok := err.(*UnmarshalTypeError); ok {
				return &UnmarshalTypeError{Tag: tag, Type: rv.Type()}
			}
			return err
		}
	}
	return nil
}

func (us *unmarshalState) mapSlice(l *List, rv reflect.Value) error {
	s := reflect.MakeSlice(rv.Type(), len(l.items), len(l.items))
	for i, e := range l.items {
		if err := us.mapValue(e, s.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(s)
	return nil
}

func (us *unmarshalState) mapArray(l *List, rv reflect.Value) error {
	if rv.Len() != len(l.items) {
		return fmt.Errorf("nbt: cannot unmarshal list of length %d into Go array of length %d", len(l.items), rv.Len())
	}
	for i, e := range l.items {
		if err := us.mapValue(e, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (us *unmarshalState) mapMap(c *Compound, rv reflect.Value) error {
	mt := rv.Type()
	if mt.Key().Kind() != reflect.String {
		return fmt.Errorf("nbt: cannot unmarshal compound into map with non-string key type %s", mt.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mt))
	} else {
		rv.Clear()
	}
	for _, k := range c.keys {
		elem := reflect.New(mt.Elem()).Elem()
		if err := us.mapValue(c.m[k], elem); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(k).Convert(mt.Key()), elem)
	}
	return nil
}

func (us *unmarshalState) mapStruct(c *Compound, rv reflect.Value) error {
	fields := mapper.For(rv.Type())
	for _, k := range c.keys {
		f, ok := fields.Lookup(k)
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanSet() {
			continue
		}
		if err := us.mapValue(c.m[k], fv); err != nil {
			return err
		}
	}
	return nil
}
