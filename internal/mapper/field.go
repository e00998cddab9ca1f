// Package mapper caches the struct-field metadata used to map Go structs to
// and from NBT compounds.
package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes one exported struct field that takes part in mapping.
type Field struct {
	Name      string // compound key
	Index     []int  // for reflect.Value.FieldByIndex
	Tagged    bool   // Name came from an nbt tag
	OmitEmpty bool
}

// Struct is the cached field set of a struct type.
type Struct struct {
	Fields []Field // declaration order, embedded fields flattened

	byName map[string]int
	byFold map[string]int
}

// Lookup finds the field for a compound key. It tries an exact match first
// and falls back to a case-insensitive one.
func (s *Struct) Lookup(key string) (Field, bool) {
	if i, ok := s.byName[key]; ok {
		return s.Fields[i], true
	}
	if i, ok := s.byFold[strings.ToLower(key)]; ok {
		return s.Fields[i], true
	}
	return Field{}, false
}

var cache sync.Map // map[reflect.Type]*Struct

// For returns the field set of struct type t. It skips unexported fields
// and fields tagged `nbt:"-"`. The result is cached per type.
func For(t reflect.Type) *Struct {
	if s, ok := cache.Load(t); ok {
		return s.(*Struct)
	}

	s := &Struct{byName: make(map[string]int), byFold: make(map[string]int)}
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := sf.Tag.Get("nbt")
			if tag == "-" {
				continue
			}
			index := append(append([]int(nil), idx...), i)
			if sf.Anonymous && tag == "" && sf.Type.Kind() == reflect.Struct {
				walk(sf.Type, index)
				continue
			}
			if !sf.IsExported() {
				continue
			}

			f := Field{Name: sf.Name, Index: index}
			name, opts, _ := strings.Cut(tag, ",")
			if name != "" {
				f.Name = name
				f.Tagged = true
			}
			for opts != "" {
				var opt string
				opt, opts, _ = strings.Cut(opts, ",")
				if strings.TrimSpace(opt) == "omitempty" {
					f.OmitEmpty = true
				}
			}

			// The first field declared under a name wins.
			if _, dup := s.byName[f.Name]; dup {
				continue
			}
			s.byName[f.Name] = len(s.Fields)
			if _, ok := s.byFold[strings.ToLower(f.Name)]; !ok {
				s.byFold[strings.ToLower(f.Name)] = len(s.Fields)
			}
			s.Fields = append(s.Fields, f)
		}
	}
	walk(t, nil)

	actual, _ := cache.LoadOrStore(t, s)
	return actual.(*Struct)
}
