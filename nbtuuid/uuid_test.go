package nbtuuid_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-nbt"
	"github.com/KimNorgaard/go-nbt/nbtuuid"
)

var id = uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")

func TestInts(t *testing.T) {
	c := nbt.NewCompound()
	require.NoError(t, nbtuuid.PutInts(c, "UUID", id))
	require.Equal(t, "{UUID:[I;110787060,1156138790,-1514210135,238594805]}", c.String())

	got, err := nbtuuid.Ints(c, "UUID")
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestMostLeast(t *testing.T) {
	c := nbt.NewCompound()
	require.NoError(t, nbtuuid.PutMostLeast(c, "Owner", id))
	require.Equal(t, []string{"OwnerMost", "OwnerLeast"}, c.Keys())

	got, err := nbtuuid.MostLeast(c, "Owner")
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestErrors(t *testing.T) {
	c := nbt.NewCompound()
	_, err := nbtuuid.Ints(c, "UUID")
	require.ErrorIs(t, err, nbt.ErrKeyNotFound)

	require.NoError(t, c.Set("UUID", nbt.NewIntArray([]int32{1, 2})))
	_, err = nbtuuid.Ints(c, "UUID")
	require.EqualError(t, err, `nbtuuid: "UUID" holds 2 ints, want 4`)

	require.NoError(t, c.Set("OwnerMost", nbt.Int(1)))
	_, err = nbtuuid.MostLeast(c, "Owner")
	var tm *nbt.TagMismatchError
	require.ErrorAs(t, err, &tm)
	require.Equal(t, nbt.TagLong, tm.Want)
}
