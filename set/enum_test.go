package set_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomerium/immutable/set"
)

type color int

const (
	red color = iota
	green
	blue
	violet
)

var _ set.Set[color] = (*set.Enum[color])(nil)

func TestEnumOf(t *testing.T) {
	t.Parallel()

	s := set.EnumOf(blue, red, blue, green)
	require.Equal(t, 3, s.Size())
	assert.Equal(t, []color{red, green, blue}, s.Slice(), "enum sets iterate in ordinal order")
	assert.Equal(t, []color{red, green, blue}, slices.Collect(s.All()))
	assert.Equal(t, red, s.AsList().Get(0))

	assert.True(t, s.Contains(green))
	assert.False(t, s.Contains(violet))
	assert.False(t, s.Contains(color(-1)), "out-of-range values are simply absent")
	assert.False(t, s.Contains(color(1<<20)))
}

func TestEnumEmpty(t *testing.T) {
	t.Parallel()

	s := set.EnumOf[color]()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(red))
	assert.Zero(t, s.Hash())
}

func TestEnumOrdinalRange(t *testing.T) {
	t.Parallel()

	err, _ := panicValue(func() { set.EnumOf(-1) }).(error)
	assert.ErrorIs(t, err, set.ErrTooLarge)

	err, _ = panicValue(func() { set.EnumOf(1 << 20) }).(error)
	assert.ErrorIs(t, err, set.ErrTooLarge)

	s := set.EnumOf(0, 1<<20-1)
	require.Equal(t, 2, s.Size())
	assert.True(t, s.Contains(1<<20-1))
	assert.Equal(t, []int{0, 1<<20 - 1}, s.Slice())
}

func TestEnumUnsignedOrdinals(t *testing.T) {
	t.Parallel()

	s := set.EnumOf[uint8](255, 0, 255)
	require.Equal(t, 2, s.Size())
	assert.Equal(t, []uint8{0, 255}, s.Slice())
	assert.True(t, s.Contains(uint8(255)))
	assert.False(t, s.Contains(uint8(7)))
}

func TestEnumHashMatchesOtherFlavors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, set.Of(green, red).Hash(), set.EnumOf(red, green).Hash())
	assert.NotEqual(t, set.EnumOf(red).Hash(), set.EnumOf(red, green).Hash())
}
