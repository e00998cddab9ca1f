package nbt_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-nbt"
)

func TestUnmarshal_RoundTrip(t *testing.T) {
	in := sampleEntity()
	v, err := nbt.Marshal(in)
	require.NoError(t, err)

	var out Entity
	require.NoError(t, nbt.Unmarshal(v, &out))

	in.Secret = ""
	require.Equal(t, in, out)
}

func TestUnmarshal_FieldMatching(t *testing.T) {
	type target struct {
		Name  string
		Level int `nbt:"lvl"`
		Keep  string
	}
	c := mustCompound(t,
		"NAME", nbt.String("overwritten by the exact key"),
		"Name", nbt.String("Alex"),
		"lvl", nbt.Byte(3),
		"unknown", nbt.Int(1),
	)

	out := target{Keep: "untouched"}
	require.NoError(t, nbt.Unmarshal(c, &out))
	require.Equal(t, target{Name: "Alex", Level: 3, Keep: "untouched"}, out)

	var folded target
	require.NoError(t, nbt.Unmarshal(mustCompound(t, "LVL", nbt.Int(9)), &folded))
	require.Equal(t, 9, folded.Level)
}

func TestUnmarshal_Targets(t *testing.T) {
	t.Run("any", func(t *testing.T) {
		c := mustCompound(t, "a", nbt.Byte(1), "l", mustList(t, nbt.Int(1), nbt.Int(2)))
		var out any
		require.NoError(t, nbt.Unmarshal(c, &out))
		require.Equal(t, map[string]any{"a": int8(1), "l": []any{int32(1), int32(2)}}, out)
	})

	t.Run("value fields receive copies", func(t *testing.T) {
		type holder struct {
			Data *nbt.Compound
			Any  nbt.Value
		}
		inner := mustCompound(t, "k", nbt.Int(1))
		c := mustCompound(t, "Data", inner, "Any", nbt.NewIntArray([]int32{5}))

		var out holder
		require.NoError(t, nbt.Unmarshal(c, &out))
		require.True(t, nbt.Equal(inner, out.Data))
		require.True(t, nbt.Equal(nbt.NewIntArray([]int32{5}), out.Any))

		require.NoError(t, inner.Set("k", nbt.Int(2)))
		require.Equal(t, int32(1), out.Data.Value("k"))
	})

	t.Run("map", func(t *testing.T) {
		out := map[string]int32{"stale": 1}
		require.NoError(t, nbt.Unmarshal(mustCompound(t, "a", nbt.Int(1), "b", nbt.Short(2)), &out))
		require.Equal(t, map[string]int32{"a": 1, "b": 2}, out)
	})

	t.Run("bool", func(t *testing.T) {
		var b bool
		require.NoError(t, nbt.Unmarshal(nbt.Byte(1), &b))
		require.True(t, b)
	})

	t.Run("widening", func(t *testing.T) {
		var n int64
		require.NoError(t, nbt.Unmarshal(nbt.Short(-5), &n))
		require.Equal(t, int64(-5), n)

		var f float64
		require.NoError(t, nbt.Unmarshal(nbt.Float(0.5), &f))
		require.Equal(t, 0.5, f)
	})

	t.Run("pointers are allocated", func(t *testing.T) {
		var p **string
		require.NoError(t, nbt.Unmarshal(nbt.String("x"), &p))
		require.Equal(t, "x", **p)
	})

	t.Run("end clears", func(t *testing.T) {
		s := "x"
		p := &s
		require.NoError(t, nbt.Unmarshal(nbt.End{}, &p))
		require.Nil(t, p)
	})

	t.Run("byte arrays", func(t *testing.T) {
		a := nbt.NewByteArray([]byte{0xff, 1})

		var raw []byte
		require.NoError(t, nbt.Unmarshal(a, &raw))
		require.Equal(t, []byte{0xff, 1}, raw)

		var signed []int8
		require.NoError(t, nbt.Unmarshal(a, &signed))
		require.Equal(t, []int8{-1, 1}, signed)

		var wide [2]int
		require.NoError(t, nbt.Unmarshal(a, &wide))
		require.Equal(t, [2]int{-1, 1}, wide)
	})

	t.Run("list into array", func(t *testing.T) {
		var out [2]string
		require.NoError(t, nbt.Unmarshal(mustList(t, nbt.String("a"), nbt.String("b")), &out))
		require.Equal(t, [2]string{"a", "b"}, out)
	})

	t.Run("unmarshaler", func(t *testing.T) {
		var out struct{ Colors []color }
		c := mustCompound(t, "Colors", mustList(t, nbt.Int(0x0a0b0c)))
		require.NoError(t, nbt.Unmarshal(c, &out))
		require.Equal(t, []color{{R: 0x0a, G: 0x0b, B: 0x0c}}, out.Colors)
	})

	t.Run("text unmarshaler", func(t *testing.T) {
		var addr netip.Addr
		require.NoError(t, nbt.Unmarshal(nbt.String("127.0.0.1"), &addr))
		require.Equal(t, netip.MustParseAddr("127.0.0.1"), addr)
	})
}

func TestUnmarshal_Errors(t *testing.T) {
	testCases := []struct {
		name string
		v    nbt.Value
		out  any
		want string
	}{
		{"string into int", nbt.String("x"), new(int), "nbt: cannot unmarshal STRING into Go value of type int"},
		{"int into bool", nbt.Int(1), new(bool), "nbt: cannot unmarshal INT into Go value of type bool"},
		{"double into int", nbt.Double(1), new(int), "nbt: cannot unmarshal DOUBLE into Go value of type int"},
		{"int into float", nbt.Int(1), new(float64), "nbt: cannot unmarshal INT into Go value of type float64"},
		{"compound into slice", nbt.NewCompound(), new([]int), "nbt: cannot unmarshal COMPOUND into Go value of type []int"},
		{"list into map", mustList(t), new(map[string]int), "nbt: cannot unmarshal LIST into Go value of type map[string]int"},
		{"byte array into strings", nbt.NewByteArray([]byte{1}), new([]string), "nbt: cannot unmarshal BYTE_ARRAY into Go value of type []string"},
		{"int overflow", nbt.Int(300), new(int8), "nbt: INT value 300 overflows Go value of type int8"},
		{"negative into unsigned", nbt.Byte(-1), new(uint8), "nbt: BYTE value -1 overflows Go value of type uint8"},
		{"array length", nbt.NewIntArray([]int32{1, 2}), new([3]int32), "nbt: cannot unmarshal INT_ARRAY of length 2 into Go array of length 3"},
		{"list length", mustList(t, nbt.Int(1)), new([2]int), "nbt: cannot unmarshal list of length 1 into Go array of length 2"},
		{"map key", nbt.NewCompound(), new(map[int]int), "nbt: cannot unmarshal compound into map with non-string key type int"},
		{"non-pointer", nbt.Int(1), 0, "nbt: Unmarshal(non-pointer int or nil)"},
		{"nil pointer", nbt.Int(1), (*int)(nil), "nbt: Unmarshal(non-pointer *int or nil)"},
		{"nested field", mustCompound(t, "Count", nbt.String("x")), new(Item), "nbt: cannot unmarshal STRING into Go value of type int8"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.EqualError(t, nbt.Unmarshal(tc.v, tc.out), tc.want)
		})
	}
}

func TestUnmarshal_TypedErrors(t *testing.T) {
	var n int
	err := nbt.Unmarshal(nbt.String("x"), &n)
	var te *nbt.UnmarshalTypeError
	require.ErrorAs(t, err, &te)
	require.Equal(t, nbt.TagString, te.Tag)

	var c color
	err = nbt.Unmarshal(nbt.String("red"), &c)
	var ue *nbt.UnmarshalerError
	require.ErrorAs(t, err, &ue)
	require.EqualError(t, err, "nbt: error calling UnmarshalNBT for type *nbt_test.color: color must be an INT")
}

func TestUnmarshal_MaxDepth(t *testing.T) {
	v := mustList(t, mustList(t, mustList(t, nbt.Int(1))))

	var out [][][]int
	require.NoError(t, nbt.Unmarshal(v, &out))
	require.Equal(t, [][][]int{{{1}}}, out)

	err := nbt.Unmarshal(v, &out, nbt.MaxDepth(2))
	require.EqualError(t, err, "nbt: reached max recursion depth")

	require.Error(t, nbt.Unmarshal(v, &out, nbt.MaxDepth(0)))
}
