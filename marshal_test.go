package nbt_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-nbt"
)

type Position struct {
	X, Y, Z float64
}

type Item struct {
	ID     string `nbt:"id"`
	Count  int8   `nbt:"Count"`
	Damage int16  `nbt:"Damage,omitempty"`
}

type Entity struct {
	Position
	Name      string  `nbt:"name"`
	Health    float32
	OnGround  bool
	UUID      []int32 `nbt:"uuid"`
	Inventory []Item
	Tags      map[string]string `nbt:",omitempty"`
	Extra     nbt.Value         `nbt:"extra,omitempty"`
	Secret    string            `nbt:"-"`
}

// color is stored as a single packed INT.
type color struct {
	R, G, B uint8
}

func (c color) MarshalNBT() (nbt.Value, error) {
	return nbt.Int(int32(c.R)<<16 | int32(c.G)<<8 | int32(c.B)), nil
}

func (c *color) UnmarshalNBT(v nbt.Value) error {
	i, ok := v.(nbt.Int)
	if !ok {
		return errors.New("color must be an INT")
	}
	c.R, c.G, c.B = uint8(i>>16), uint8(i>>8), uint8(i)
	return nil
}

var errBoom = errors.New("boom")

type failingMarshaler struct{}

func (failingMarshaler) MarshalNBT() (nbt.Value, error) { return nil, errBoom }

func sampleEntity() Entity {
	return Entity{
		Position: Position{X: 1.5, Y: 64, Z: -3},
		Name:     "Steve",
		Health:   20,
		OnGround: true,
		UUID:     []int32{1, 2, 3, 4},
		Inventory: []Item{
			{ID: "minecraft:stone", Count: 64},
			{ID: "minecraft:diamond_sword", Count: 1, Damage: 12},
		},
		Secret: "hunter2",
	}
}

func TestMarshal_Struct(t *testing.T) {
	v, err := nbt.Marshal(sampleEntity())
	require.NoError(t, err)

	want, err := nbt.Parse(`{
		X: 1.5d, Y: 64.0d, Z: -3.0d,
		name: "Steve",
		Health: 20.0f,
		OnGround: 1b,
		uuid: [I; 1, 2, 3, 4],
		Inventory: [
			{id: "minecraft:stone", Count: 64b},
			{id: "minecraft:diamond_sword", Count: 1b, Damage: 12s},
		],
	}`)
	require.NoError(t, err)
	require.True(t, nbt.Equal(want, v), "got %v", v)

	c := v.(*nbt.Compound)
	require.Equal(t, []string{"X", "Y", "Z", "name", "Health", "OnGround", "uuid", "Inventory"}, c.Keys())
	require.False(t, c.Has("Secret"))
}

func TestMarshal_Scalars(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want nbt.Value
	}{
		{"nil", nil, nbt.End{}},
		{"nil pointer", (*Entity)(nil), nbt.End{}},
		{"nil map", map[string]int(nil), nbt.End{}},
		{"bool", false, nbt.Byte(0)},
		{"int8", int8(-1), nbt.Byte(-1)},
		{"uint8", uint8(255), nbt.Byte(-1)},
		{"int16", int16(-2), nbt.Short(-2)},
		{"uint16", uint16(65535), nbt.Int(65535)},
		{"int32", int32(3), nbt.Int(3)},
		{"uint32", uint32(math.MaxUint32), nbt.Long(math.MaxUint32)},
		{"int", 5, nbt.Long(5)},
		{"uint64", uint64(math.MaxInt64), nbt.Long(math.MaxInt64)},
		{"float32", float32(0.5), nbt.Float(0.5)},
		{"float64", 0.5, nbt.Double(0.5)},
		{"string", "s", nbt.String("s")},
		{"pointer", new(int16), nbt.Short(0)},
		{"value", nbt.Long(9), nbt.Long(9)},
		{"marshaler", color{R: 1, G: 2, B: 3}, nbt.Int(0x010203)},
		{"byte slice", []byte{1, 0xff}, nbt.NewByteArray([]byte{1, 0xff})},
		{"int8 array", [2]int8{-1, 1}, nbt.NewByteArray([]byte{0xff, 1})},
		{"int32 array", [2]int32{1, 2}, nbt.NewIntArray([]int32{1, 2})},
		{"int64 slice", []int64{7}, nbt.NewLongArray([]int64{7})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nbt.Marshal(tc.in)
			require.NoError(t, err)
			require.True(t, nbt.Equal(tc.want, got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestMarshal_Collections(t *testing.T) {
	v, err := nbt.Marshal([]string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, `["a","b"]`, v.String())

	v, err = nbt.Marshal([]color{{R: 1}, {B: 1}})
	require.NoError(t, err)
	require.Equal(t, "[65536,1]", v.String())

	v, err = nbt.Marshal([]int{})
	require.NoError(t, err)
	require.Equal(t, "[]", v.String())

	v, err = nbt.Marshal(map[string]any{"b": int32(1), "a": "x", "skip": nil})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, v.(*nbt.Compound).Keys())

	v, err = nbt.Marshal([][]int8{{1}, {2, 3}})
	require.NoError(t, err)
	require.Equal(t, "[[B;1B],[B;2B,3B]]", v.String())
}

func TestMarshal_Errors(t *testing.T) {
	t.Run("map key", func(t *testing.T) {
		_, err := nbt.Marshal(map[int]int{1: 1})
		require.EqualError(t, err, "nbt: map key type must be a string, got int")
	})

	t.Run("mixed slice", func(t *testing.T) {
		_, err := nbt.Marshal([]any{int32(1), "a"})
		require.ErrorContains(t, err, "element 1 of []interface {}")
		var tm *nbt.TagMismatchError
		require.ErrorAs(t, err, &tm)
		require.Equal(t, nbt.TagInt, tm.Want)
		require.Equal(t, nbt.TagString, tm.Got)
	})

	t.Run("unsigned overflow", func(t *testing.T) {
		_, err := nbt.Marshal(uint64(math.MaxUint64))
		require.EqualError(t, err, "nbt: cannot marshal uint64 18446744073709551615 (overflows LONG)")
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := nbt.Marshal(make(chan int))
		require.EqualError(t, err, "nbt: unsupported type for marshaling: chan int")
	})

	t.Run("marshaler", func(t *testing.T) {
		_, err := nbt.Marshal(struct{ F failingMarshaler }{})
		var me *nbt.MarshalerError
		require.ErrorAs(t, err, &me)
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("cycle", func(t *testing.T) {
		type node struct{ Next *node }
		n := &node{}
		n.Next = n
		_, err := nbt.Marshal(n)
		require.EqualError(t, err, "nbt: reached max recursion depth")
	})
}
