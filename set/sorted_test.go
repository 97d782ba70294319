package set_test

import (
	"cmp"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomerium/immutable/set"
)

var _ set.Set[int] = (*set.Sorted[int])(nil)

func TestSortedOf(t *testing.T) {
	t.Parallel()

	s := set.SortedOf(cmp.Compare[string], "pear", "apple", "plum", "apple")
	require.Equal(t, 3, s.Size())
	assert.False(t, s.IsEmpty())
	assert.Equal(t, []string{"apple", "pear", "plum"}, s.Slice())
	assert.Equal(t, []string{"apple", "pear", "plum"}, slices.Collect(s.All()))
	assert.Equal(t, "apple", s.AsList().Get(0))

	assert.True(t, s.Contains("pear"))
	assert.False(t, s.Contains("peach"), "between two members")
	assert.False(t, s.Contains("aaa"), "before the first member")
	assert.False(t, s.Contains("zzz"), "after the last member")
}

func TestSortedCustomOrder(t *testing.T) {
	t.Parallel()

	desc := func(a, b int) int { return cmp.Compare(b, a) }
	s := set.SortedOf(desc, 3, 1, 4, 1, 5)
	assert.Equal(t, []int{5, 4, 3, 1}, s.Slice())
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(2))
}

func TestSortedCollect(t *testing.T) {
	t.Parallel()

	s := set.SortedCollect(cmp.Compare[int], slices.Values([]int{9, 1, 9, 5}))
	assert.Equal(t, []int{1, 5, 9}, s.Slice())
}

func TestSortedEmpty(t *testing.T) {
	t.Parallel()

	s := set.SortedOf(cmp.Compare[int])
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(1))
	assert.Zero(t, s.Hash())
	assert.Equal(t, "[]", fmt.Sprint(s))
}

func TestSortedHashMatchesInsertionOrderedSets(t *testing.T) {
	t.Parallel()

	a := set.SortedOf(cmp.Compare[int], 1, 2, 3)
	assert.Equal(t, a.Hash(), set.SortedOf(cmp.Compare[int], 3, 2, 1).Hash())
	assert.Equal(t, a.Hash(), set.Of(2, 3, 1).Hash(),
		"default-hasher sets with equal elements hash equally across flavors")
}

func TestSortedErrors(t *testing.T) {
	t.Parallel()

	err, _ := panicValue(func() { set.SortedOf[int](nil, 1) }).(error)
	assert.ErrorIs(t, err, set.ErrNilElement, "nil comparator")

	err, _ = panicValue(func() { set.SortedCollect(cmp.Compare[int], nil) }).(error)
	assert.ErrorIs(t, err, set.ErrNilElement, "nil sequence")

	err, _ = panicValue(func() {
		set.SortedOf(func(a, b *int) int { return 0 }, nil)
	}).(error)
	assert.ErrorIs(t, err, set.ErrNilElement, "nil element")
}
