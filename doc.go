/*
Package nbt reads and writes NBT, the tagged binary tree format used for
game worlds and network packets, together with its text notation (SNBT).

A tree is built from Value variants, one per tag: the numeric scalars Byte,
Short, Int, Long, Float and Double, String, the typed arrays ByteArray,
IntArray and LongArray, and the containers List and Compound. A List only
holds values of one tag; a Compound maps unique string keys to values.

	c := nbt.NewCompound()
	c.Set("name", nbt.String("Steve"))
	c.Set("xp", nbt.Long(1200))
	c.Put("pos", []int32{1, 64, -3})

1. Binary format

Write and Read (or an Encoder and a Decoder) convert a tree to and from
the big-endian wire format. Compressed output is requested with the
Compress option; on input, gzip, zstd and LZ4 streams are recognised by
their magic bytes and decompressed transparently.

	var buf bytes.Buffer
	if err := nbt.Write(&buf, c, nbt.RootName("player"), nbt.Compress(nbt.CompressionGzip)); err != nil {
		// handle error
	}
	v, err := nbt.Read(&buf)

2. Text notation

Stringify renders a value in canonical form and Parse reads text back:

	s := c.String() // {name:"Steve",pos:[I;1,64,-3],xp:1200L}
	c2, err := nbt.Parse(s)

Parse errors are *errors.ParseError values holding the offending position
and a short excerpt of the input before it.

3. Go values

Convert and Revert map between values and plain Go data (int32, string,
[]any, map[string]any and so on). Marshal and Unmarshal map structs,
honouring `nbt:"key,omitempty"` field tags:

	type Player struct {
		Name string `nbt:"name"`
		XP   int64  `nbt:"xp"`
	}
	var p Player
	err := nbt.Unmarshal(c, &p)

Values are not safe for concurrent mutation. Read-only access can be
handed out through CompoundView and ListView.
*/
package nbt
