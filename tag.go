package nbt

import "fmt"

// Tag identifies the type of a Value. Its numeric value is the type byte
// used by the binary format, so the constants must never be reordered.
type Tag byte

const (
	TagEnd Tag = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagNames = [...]string{
	TagEnd:       "END",
	TagByte:      "BYTE",
	TagShort:     "SHORT",
	TagInt:       "INT",
	TagLong:      "LONG",
	TagFloat:     "FLOAT",
	TagDouble:    "DOUBLE",
	TagByteArray: "BYTE_ARRAY",
	TagString:    "STRING",
	TagList:      "LIST",
	TagCompound:  "COMPOUND",
	TagIntArray:  "INT_ARRAY",
	TagLongArray: "LONG_ARRAY",
}

var typeNames = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

// Valid reports whether t is one of the thirteen defined tags.
func (t Tag) Valid() bool {
	return t <= TagLongArray
}

// String returns the upper-case name of the tag, e.g. "INT".
func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", byte(t))
	}
	return tagNames[t]
}

// TypeName returns the conventional name of the tag, e.g. "TAG_Int".
func (t Tag) TypeName() string {
	if !t.Valid() {
		return fmt.Sprintf("TAG_Unknown(%d)", byte(t))
	}
	return typeNames[t]
}
