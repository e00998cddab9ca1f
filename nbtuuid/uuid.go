// Package nbtuuid stores UUIDs in compounds using the two layouts found in
// NBT data: an IntArray of four ints, and a pair of Longs under the keys
// <key>Most and <key>Least.
package nbtuuid

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/KimNorgaard/go-nbt"
)

// PutInts stores id under key as an IntArray of four ints, most
// significant first.
func PutInts(c *nbt.Compound, key string, id uuid.UUID) error {
	ints := make([]int32, 4)
	for i := range ints {
		ints[i] = int32(binary.BigEndian.Uint32(id[i*4:]))
	}
	return c.Set(key, nbt.NewIntArray(ints))
}

// Ints reads a UUID stored by PutInts.
func Ints(c *nbt.Compound, key string) (uuid.UUID, error) {
	a, err := nbt.Lookup[*nbt.IntArray](c, key)
	if err != nil {
		return uuid.Nil, err
	}
	if a.Len() != 4 {
		return uuid.Nil, fmt.Errorf("nbtuuid: %q holds %d ints, want 4", key, a.Len())
	}
	var id uuid.UUID
	for i := range 4 {
		binary.BigEndian.PutUint32(id[i*4:], uint32(a.At(i)))
	}
	return id, nil
}

// PutMostLeast stores id as two Longs under key+"Most" and key+"Least".
func PutMostLeast(c *nbt.Compound, key string, id uuid.UUID) error {
	most := int64(binary.BigEndian.Uint64(id[:8]))
	least := int64(binary.BigEndian.Uint64(id[8:]))
	if err := c.Set(key+"Most", nbt.Long(most)); err != nil {
		return err
	}
	return c.Set(key+"Least", nbt.Long(least))
}

// MostLeast reads a UUID stored by PutMostLeast.
func MostLeast(c *nbt.Compound, key string) (uuid.UUID, error) {
	most, err := nbt.Lookup[nbt.Long](c, key+"Most")
	if err != nil {
		return uuid.Nil, err
	}
	least, err := nbt.Lookup[nbt.Long](c, key+"Least")
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], uint64(most))
	binary.BigEndian.PutUint64(id[8:], uint64(least))
	return id, nil
}
