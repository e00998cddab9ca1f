package nbt

// Convert maps a Go value to the matching Value. It never fails: shapes it
// does not recognise, and collections that cannot form a valid tree (such
// as a slice mixing strings and numbers), yield End{}.
//
// The recognised shapes are those accepted by Marshal. The canonical ones,
// for which Revert(Convert(x)) returns x unchanged, are:
//
//	int8     -> Byte       []byte         -> ByteArray
//	int16    -> Short      []int32        -> IntArray
//	int32    -> Int        []int64        -> LongArray
//	int64    -> Long       []any          -> List
//	float32  -> Float      map[string]any -> Compound
//	float64  -> Double     nil            -> End
//	string   -> String
//
// A Value passed to Convert is returned as is.
func Convert(x any) Value {
	switch v := x.(type) {
	case nil:
		return End{}
	case Value:
		return v
	case bool:
		return Bool(v)
	case int8:
		return Byte(v)
	case int16:
		return Short(v)
	case int32:
		return Int(v)
	case int64:
		return Long(v)
	case float32:
		return Float(v)
	case float64:
		return Double(v)
	case string:
		return String(v)
	case []byte:
		return NewByteArray(v)
	case []int32:
		return NewIntArray(v)
	case []int64:
		return NewLongArray(v)
	}
	v, err := Marshal(x)
	if err != nil {
		return End{}
	}
	return v
}

// Revert returns the native Go form of v: the left inverse of Convert.
// Lists become []any and compounds map[string]any, reverted recursively;
// arrays are returned as fresh copies. Revert(nil) and Revert(End{}) are nil.
func Revert(v Value) any {
	switch x := v.(type) {
	case Byte:
		return int8(x)
	case Short:
		return int16(x)
	case Int:
		return int32(x)
	case Long:
		return int64(x)
	case Float:
		return float32(x)
	case Double:
		return float64(x)
	case String:
		return string(x)
	case *ByteArray:
		return x.Bytes()
	case *IntArray:
		return x.Ints()
	case *LongArray:
		return x.Longs()
	case *List:
		out := make([]any, len(x.items))
		for i, e := range x.items {
			out[i] = Revert(e)
		}
		return out
	case *Compound:
		out := make(map[string]any, len(x.m))
		for k, e := range x.m {
			out[k] = Revert(e)
		}
		return out
	}
	return nil
}
