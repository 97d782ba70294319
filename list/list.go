// Package list provides an immutable, randomly accessible sequence type and
// a reusable builder for it.
//
// A List is a frozen view over a backing array that is never mutated after
// construction, so List values are safe for unrestricted concurrent reads
// and cheap to copy. Reverse and Sub return O(1) views sharing the same
// backing array rather than copies.
package list

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrIndexOutOfRange is the panic value (wrapped) for Get or Sub calls
	// with indexes outside the list's bounds.
	ErrIndexOutOfRange = errors.New("list: index out of range")

	// ErrTooLarge is the panic value (wrapped) when a builder's element
	// count can no longer be represented.
	ErrTooLarge = errors.New("list: collection too large")
)

// A List is an immutable sequence of values. The zero value is an empty
// list, ready to use.
type List[T any] struct {
	elems []T
	rev   bool
}

// Of returns a list of the given elements, in order.
func Of[T any](elems ...T) List[T] {
	return From(elems)
}

// From returns a list copied from a slice. The slice is not retained.
func From[T any](elems []T) List[T] {
	if len(elems) == 0 {
		return List[T]{}
	}
	return List[T]{elems: slices.Clone(elems)}
}

// Collect returns a list of the values produced by seq, in order.
func Collect[T any](seq iter.Seq[T]) List[T] {
	return List[T]{elems: slices.Collect(seq)}
}

// Len returns the number of elements in the list.
func (l List[T]) Len() int { return len(l.elems) }

// IsEmpty reports whether the list has no elements.
func (l List[T]) IsEmpty() bool { return len(l.elems) == 0 }

// Get returns the element at index i. It panics with an error wrapping
// ErrIndexOutOfRange if i is not in [0, Len()).
func (l List[T]) Get(i int) T {
	if i < 0 || i >= len(l.elems) {
		panic(fmt.Errorf("%w: %d with length %d", ErrIndexOutOfRange, i, len(l.elems)))
	}
	return l.elems[l.physical(i)]
}

// physical maps a logical index to an index into the backing array.
func (l List[T]) physical(i int) int {
	if l.rev {
		return len(l.elems) - 1 - i
	}
	return i
}

// Values returns an iterator over the list's elements in order.
func (l List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range l.elems {
			if !yield(l.elems[l.physical(i)]) {
				return
			}
		}
	}
}

// All returns an iterator over index-element pairs in order.
func (l List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range l.elems {
			if !yield(i, l.elems[l.physical(i)]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-element pairs, traversing the
// list from the last element to the first.
func (l List[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(l.elems) - 1; i >= 0; i-- {
			if !yield(i, l.elems[l.physical(i)]) {
				return
			}
		}
	}
}

// Reverse returns a view of the list in the opposite order. It shares the
// backing array with l.
func (l List[T]) Reverse() List[T] {
	if len(l.elems) <= 1 {
		return l
	}
	return List[T]{elems: l.elems, rev: !l.rev}
}

// Sub returns a view of the half-open range [i, j). It shares the backing
// array with l and panics with an error wrapping ErrIndexOutOfRange if the
// range is invalid.
func (l List[T]) Sub(i, j int) List[T] {
	if i < 0 || j < i || j > len(l.elems) {
		panic(fmt.Errorf("%w: [%d:%d] with length %d", ErrIndexOutOfRange, i, j, len(l.elems)))
	}
	if i == j {
		return List[T]{}
	}
	if l.rev {
		n := len(l.elems)
		return List[T]{elems: l.elems[n-j : n-i : n-i], rev: true}
	}
	return List[T]{elems: l.elems[i:j:j]}
}

// Slice returns a fresh slice of the list's elements in order. The caller
// owns the returned slice.
func (l List[T]) Slice() []T {
	if len(l.elems) == 0 {
		return nil
	}
	out := make([]T, len(l.elems))
	for i := range l.elems {
		out[i] = l.elems[l.physical(i)]
	}
	return out
}

func (l List[T]) String() string {
	return fmt.Sprint(l.Slice())
}
