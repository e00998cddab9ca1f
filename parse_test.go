package nbt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-nbt"
	nbterrors "github.com/KimNorgaard/go-nbt/errors"
	"github.com/KimNorgaard/go-nbt/internal/testutil"
)

func mustList(t *testing.T, vs ...nbt.Value) *nbt.List {
	t.Helper()
	l, err := nbt.NewList(vs...)
	require.NoError(t, err)
	return l
}

func mustCompound(t *testing.T, kv ...any) *nbt.Compound {
	t.Helper()
	c := nbt.NewCompound()
	for i := 0; i < len(kv); i += 2 {
		require.NoError(t, c.Set(kv[i].(string), kv[i+1].(nbt.Value)))
	}
	return c
}

func TestParseValue(t *testing.T) {
	testCases := []struct {
		input string
		want  nbt.Value
	}{
		{"5", nbt.Int(5)},
		{"-5", nbt.Int(-5)},
		{"5L", nbt.Long(5)},
		{"5l", nbt.Long(5)},
		{"5b", nbt.Byte(5)},
		{"-128B", nbt.Byte(-128)},
		{"12s", nbt.Short(12)},
		{"1.5", nbt.Double(1.5)},
		{"1.5f", nbt.Float(1.5)},
		{"2F", nbt.Float(2)},
		{"2d", nbt.Double(2)},
		{"-0.25D", nbt.Double(-0.25)},
		{"true", nbt.Byte(1)},
		{"false", nbt.Byte(0)},
		{"True", nbt.String("True")},
		{"abc", nbt.String("abc")},
		{"minecraft.stone_1+x", nbt.String("minecraft.stone_1+x")},
		{"12ab", nbt.String("12ab")},
		{"1e5", nbt.String("1e5")},
		{"1.", nbt.String("1.")},
		{".5", nbt.String(".5")},
		{"1.2.3", nbt.String("1.2.3")},
		{"-", nbt.String("-")},
		{"300b", nbt.String("300b")},
		{"2147483648", nbt.String("2147483648")},
		{"1.5b", nbt.String("1.5b")},
		{`"quoted"`, nbt.String("quoted")},
		{`'single'`, nbt.String("single")},
		{`"it's"`, nbt.String("it's")},
		{`'say "hi"'`, nbt.String(`say "hi"`)},
		{`"a\"b\\c"`, nbt.String(`a"b\c`)},
		{`'a\'b'`, nbt.String(`a'b`)},
		{`"héllo wörld"`, nbt.String("héllo wörld")},
		{`""`, nbt.String("")},
		{"[I;1,2,3]", nbt.NewIntArray([]int32{1, 2, 3})},
		{"[I; -1 , 2 ]", nbt.NewIntArray([]int32{-1, 2})},
		{"[I;]", nbt.NewIntArray(nil)},
		{"[B;1b,-1B]", nbt.NewByteArray([]byte{1, 0xff})},
		{"[L;1L,2l]", nbt.NewLongArray([]int64{1, 2})},
		{"[I;1,2,]", nbt.NewIntArray([]int32{1, 2})},
		{"[]", mustList(t)},
		{"[1,2]", mustList(t, nbt.Int(1), nbt.Int(2))},
		{"[a, 'b', \"c\"]", mustList(t, nbt.String("a"), nbt.String("b"), nbt.String("c"))},
		{"[[],[1b]]", mustList(t, mustList(t), mustList(t, nbt.Byte(1)))},
		{"[{},{a:1}]", mustList(t, nbt.NewCompound(), mustCompound(t, "a", nbt.Int(1)))},
		{"[I]", mustList(t, nbt.String("I"))},
		{" \t{ a : [ 1 , 2 ] , } \n", mustCompound(t, "a", mustList(t, nbt.Int(1), nbt.Int(2)))},
		{"{\u00a0a:1}", mustCompound(t, "a", nbt.Int(1))},
		{`{"key with space":1b,'q"':2s}`, mustCompound(t, "key with space", nbt.Byte(1), `q"`, nbt.Short(2))},
		{"{a:1,a:2}", mustCompound(t, "a", nbt.Int(2))},
		{"{1:one}", mustCompound(t, "1", nbt.String("one"))},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := nbt.ParseValue(tc.input)
			require.NoError(t, err)
			require.True(t, nbt.Equal(tc.want, got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestParse_Document(t *testing.T) {
	c, err := nbt.Parse(`{name:"Steve",pos:[I;1,64,-3],xp:1200L,inv:[{id:stone,n:3b}]}`)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "pos", "xp", "inv"}, c.Keys())

	name, err := nbt.Lookup[nbt.String](c, "name")
	require.NoError(t, err)
	require.Equal(t, nbt.String("Steve"), name)

	inv, err := nbt.Lookup[*nbt.List](c, "inv")
	require.NoError(t, err)
	require.Equal(t, nbt.TagCompound, inv.ElemTag())
	require.Equal(t, "stone", inv.At(0).(*nbt.Compound).Value("id"))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		opts     []nbt.Option
		message  string
		position int
		context  string
	}{
		{
			name:     "missing value",
			input:    "{foo:}",
			message:  "Expected value",
			position: 5,
			context:  "{foo:<--[HERE]",
		},
		{
			name:     "context is truncated",
			input:    "{abcdefghijklmnop:}",
			message:  "Expected value",
			position: 18,
			context:  "...hijklmnop:<--[HERE]",
		},
		{
			name:     "custom context width",
			input:    "{foo:}",
			opts:     []nbt.Option{nbt.ContextWidth(3)},
			message:  "Expected value",
			position: 5,
			context:  "...oo:<--[HERE]",
		},
		{
			name:     "context disabled",
			input:    "{foo:}",
			opts:     []nbt.Option{nbt.ContextWidth(0)},
			message:  "Expected value",
			position: 5,
		},
		{
			name:     "document must be a compound",
			input:    "[1]",
			message:  "Expected '{'",
			position: 0,
			context:  "<--[HERE]",
		},
		{
			name:     "empty document",
			input:    "",
			message:  "Expected '{'",
			position: 0,
			context:  "<--[HERE]",
		},
		{
			name:     "missing key",
			input:    "{:1}",
			message:  "Expected key",
			position: 1,
			context:  "{<--[HERE]",
		},
		{
			name:     "missing colon",
			input:    "{a 1}",
			message:  "Expected ':'",
			position: 3,
			context:  "{a <--[HERE]",
		},
		{
			name:     "missing separator",
			input:    "{a:1 b:2}",
			message:  "Expected ',' or '}'",
			position: 5,
			context:  "{a:1 <--[HERE]",
		},
		{
			name:     "unclosed compound",
			input:    "{a:1",
			message:  "Expected ',' or '}'",
			position: 4,
			context:  "{a:1<--[HERE]",
		},
		{
			name:     "unclosed quoted string",
			input:    `{a:"abc`,
			message:  "Unclosed quoted string",
			position: 7,
			context:  `{a:"abc<--[HERE]`,
		},
		{
			name:     "invalid escape",
			input:    `{a:"\n"}`,
			message:  "Invalid escape sequence 'n' in quoted string",
			position: 5,
			context:  `{a:"\<--[HERE]`,
		},
		{
			name:     "mixed list",
			input:    "{a:[1,2s]}",
			message:  "can't insert SHORT into list of INT",
			position: 6,
			context:  "{a:[1,<--[HERE]",
		},
		{
			name:     "double in int array",
			input:    "{a:[I;1,2.0,3]}",
			message:  "can't insert DOUBLE into INT array",
			position: 8,
			context:  "{a:[I;1,<--[HERE]",
		},
		{
			name:     "unsuffixed byte array element",
			input:    "{a:[B;1,2]}",
			message:  "can't insert INT into BYTE array",
			position: 6,
			context:  "{a:[B;<--[HERE]",
		},
		{
			name:     "non-number in array",
			input:    "{a:[L;x]}",
			message:  "Expected number",
			position: 6,
			context:  "{a:[L;<--[HERE]",
		},
		{
			name:     "space before array kind",
			input:    "{a:[ I;1]}",
			message:  "Expected ',' or ']'",
			position: 6,
			context:  "{a:[ I<--[HERE]",
		},
		{
			name:     "trailing data",
			input:    "{a:1} x",
			message:  "Unexpected trailing data",
			position: 6,
			context:  "{a:1} <--[HERE]",
		},
		{
			name:     "too deep",
			input:    "{a:{b:{c:{}}}}",
			opts:     []nbt.Option{nbt.MaxDepth(3)},
			message:  "Exceeded maximum nesting depth of 3",
			position: 9,
			context:  "{a:{b:{c:<--[HERE]",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := nbt.Parse(tc.input, tc.opts...)
			var pe *nbterrors.ParseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, tc.message, pe.Message)
			require.Equal(t, tc.position, pe.Position)
			require.Equal(t, tc.context, pe.Context)
		})
	}
}

func TestParse_ErrorString(t *testing.T) {
	_, err := nbt.Parse("{foo:}")
	require.EqualError(t, err, "nbt: Expected value at position 5: {foo:<--[HERE]")

	_, err = nbt.ParseValue("[1,", nbt.ContextWidth(0))
	require.EqualError(t, err, "nbt: Expected value at position 3")
}

func TestParse_InvalidOptions(t *testing.T) {
	_, err := nbt.Parse("{}", nbt.ContextWidth(-1))
	require.Error(t, err)
	_, err = nbt.ParseValue("1", nbt.MaxDepth(-1))
	require.Error(t, err)
}

func TestParse_Fixtures(t *testing.T) {
	names := testutil.Names()
	require.NotEmpty(t, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			c, err := nbt.Parse(testutil.SNBT(t, name))
			require.NoError(t, err)

			again, err := nbt.Parse(c.String())
			require.NoError(t, err)
			require.True(t, nbt.Equal(c, again))
		})
	}
}

func BenchmarkParse(b *testing.B) {
	src := testutil.SNBT(b, "level.snbt")
	b.SetBytes(int64(len(src)))
	for b.Loop() {
		if _, err := nbt.Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStringify(b *testing.B) {
	c, err := nbt.Parse(testutil.SNBT(b, "level.snbt"))
	require.NoError(b, err)
	for b.Loop() {
		_ = nbt.Stringify(c)
	}
}
