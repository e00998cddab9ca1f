package nbt

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrEndValue is returned when an END value is stored in a List or
	// Compound, written as a root, or found in a value position while reading.
	ErrEndValue = errors.New("nbt: END cannot be used as a value")

	// ErrKeyNotFound is returned by Lookup when a compound has no such key.
	ErrKeyNotFound = errors.New("nbt: key not found")

	// ErrStringTooLong is returned when a string does not fit the unsigned
	// 16-bit length prefix of the binary format.
	ErrStringTooLong = errors.New("nbt: string exceeds 65535 bytes")
)

// A TagMismatchError reports a value whose tag does not match the tag
// required by its container or by the caller.
type TagMismatchError struct {
	Want Tag
	Got  Tag
	// Container names what was being filled ("list", "array") or is empty
	// for a failed extraction.
	Container string
}

func (e *TagMismatchError) Error() string {
	switch e.Container {
	case "":
		return fmt.Sprintf("nbt: expected %s, got %s", e.Want, e.Got)
	case "list":
		return fmt.Sprintf("nbt: can't insert %s into list of %s", e.Got, e.Want)
	default:
		return fmt.Sprintf("nbt: can't insert %s into %s %s", e.Got, e.Want, e.Container)
	}
}

// A FormatError describes malformed binary input.
type FormatError struct {
	Offset int64 // byte offset in the (decompressed) stream
	Msg    string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nbt: malformed data at offset %d: %s: %v", e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("nbt: malformed data at offset %d: %s", e.Offset, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// A MarshalerError represents an error from calling a MarshalNBT method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "nbt: error calling MarshalNBT for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// An UnmarshalerError represents an error from calling an UnmarshalNBT method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "nbt: error calling UnmarshalNBT for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }

// An UnmarshalTypeError describes a value that was not appropriate for a
// Go value of a specific type.
type UnmarshalTypeError struct {
	Tag  Tag
	Type reflect.Type
}

func (e *UnmarshalTypeError) Error() string {
	return "nbt: cannot unmarshal " + e.Tag.String() + " into Go value of type " + e.Type.String()
}
