package list

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// A Builder accumulates elements for a List. The zero value is an empty
// builder, ready to use.
//
// Build may be called multiple times, interleaved with further Append
// calls; each call returns a snapshot of the elements appended so far.
// The backing array is handed to the built list and copied lazily on the
// next mutation, so building is O(1) and no completed list is ever
// modified. A Builder must not be used concurrently.
type Builder[T any] struct {
	elems  []T
	shared bool
}

// NewBuilder returns an empty builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

// NewBuilderSize returns an empty builder with capacity for expectedSize
// elements preallocated. Builders grow as needed, so expectedSize is a
// hint, not a limit. A negative hint is treated as zero.
func NewBuilderSize[T any](expectedSize int) *Builder[T] {
	return &Builder[T]{elems: make([]T, 0, max(expectedSize, 0))}
}

// Append adds elements to the end of the list under construction.
func (b *Builder[T]) Append(elems ...T) *Builder[T] {
	b.ensure(len(b.elems) + len(elems))
	b.elems = append(b.elems, elems...)
	return b
}

// AppendSeq adds every value produced by seq, in order.
func (b *Builder[T]) AppendSeq(seq iter.Seq[T]) *Builder[T] {
	for e := range seq {
		b.ensure(len(b.elems) + 1)
		b.elems = append(b.elems, e)
	}
	return b
}

// ensure guarantees unshared backing storage with capacity for at least n
// elements. Growth is planned explicitly: half again the current capacity
// plus one, then rounded up to the next power of two if that still falls
// short.
func (b *Builder[T]) ensure(n int) {
	if n <= cap(b.elems) && !b.shared {
		return
	}
	newCap := cap(b.elems)
	if n > newCap {
		newCap = expandedCap(newCap, n)
	}
	fresh := make([]T, len(b.elems), newCap)
	copy(fresh, b.elems)
	b.elems = fresh
	b.shared = false
}

// expandedCap returns a capacity of at least minCap, growing oldCap by
// roughly 1.5x per step so that repeated appends run in amortized
// constant time.
func expandedCap(oldCap, minCap int) int {
	if minCap < 0 {
		panic(fmt.Errorf("%w: capacity overflow", ErrTooLarge))
	}
	newCap := oldCap + oldCap/2 + 1
	if newCap < minCap {
		newCap = 1 << bits.Len(uint(minCap-1))
	}
	if newCap < 0 {
		newCap = math.MaxInt
	}
	return newCap
}

// Len returns the number of elements appended so far.
func (b *Builder[T]) Len() int { return len(b.elems) }

// Get returns the element at index i among those appended so far. It
// panics with an error wrapping ErrIndexOutOfRange if i is not in
// [0, Len()).
func (b *Builder[T]) Get(i int) T {
	if i < 0 || i >= len(b.elems) {
		panic(fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, i, len(b.elems)))
	}
	return b.elems[i]
}

// Values returns an iterator over a snapshot of the elements appended so
// far, in order. Elements appended after the iterator is created are not
// visited.
func (b *Builder[T]) Values() iter.Seq[T] {
	elems := b.elems
	return func(yield func(T) bool) {
		for _, e := range elems {
			if !yield(e) {
				return
			}
		}
	}
}

// Clone returns a builder with the same contents that grows independently
// of b.
func (b *Builder[T]) Clone() *Builder[T] {
	b.shared = true
	return &Builder[T]{elems: b.elems, shared: true}
}

// Build returns a list of the elements appended so far.
func (b *Builder[T]) Build() List[T] {
	if len(b.elems) == 0 {
		return List[T]{}
	}
	b.shared = true
	return List[T]{elems: b.elems}
}
