package nbt

// Value is a node of an NBT tree. The set of implementations is closed:
// End, Byte, Short, Int, Long, Float, Double, String, *ByteArray,
// *IntArray, *LongArray, *List and *Compound. Code that needs to handle
// every variant should use a type switch over these types.
//
// String returns the canonical text notation of the value.
type Value interface {
	Tag() Tag
	String() string

	isValue()
}

// End marks the end of a compound in the binary format. It is never a
// valid element of a List or Compound.
type End struct{}

// Byte is a signed 8-bit integer.
type Byte int8

// Short is a signed 16-bit integer.
type Short int16

// Int is a signed 32-bit integer.
type Int int32

// Long is a signed 64-bit integer.
type Long int64

// Float is a 32-bit IEEE-754 number.
type Float float32

// Double is a 64-bit IEEE-754 number.
type Double float64

// String is UTF-8 text.
type String string

// Bool returns the Byte used to represent a boolean: 1 for true, 0 for false.
func Bool(b bool) Byte {
	if b {
		return 1
	}
	return 0
}

func (End) Tag() Tag    { return TagEnd }
func (Byte) Tag() Tag   { return TagByte }
func (Short) Tag() Tag  { return TagShort }
func (Int) Tag() Tag    { return TagInt }
func (Long) Tag() Tag   { return TagLong }
func (Float) Tag() Tag  { return TagFloat }
func (Double) Tag() Tag { return TagDouble }
func (String) Tag() Tag { return TagString }

func (v End) String() string    { return Stringify(v) }
func (v Byte) String() string   { return Stringify(v) }
func (v Short) String() string  { return Stringify(v) }
func (v Int) String() string    { return Stringify(v) }
func (v Long) String() string   { return Stringify(v) }
func (v Float) String() string  { return Stringify(v) }
func (v Double) String() string { return Stringify(v) }
func (v String) String() string { return Stringify(v) }

func (End) isValue()    {}
func (Byte) isValue()   {}
func (Short) isValue()  {}
func (Int) isValue()    {}
func (Long) isValue()   {}
func (Float) isValue()  {}
func (Double) isValue() {}
func (String) isValue() {}
