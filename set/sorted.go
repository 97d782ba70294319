package set

import (
	"fmt"
	"iter"

	goset "github.com/hashicorp/go-set/v3"

	"github.com/pomerium/immutable/hashutil"
	"github.com/pomerium/immutable/list"
)

// Sorted is an immutable set that iterates in comparator order instead of
// first-occurrence order. Two elements are the same member when the
// comparator reports them equal.
type Sorted[T comparable] struct {
	compare func(a, b T) int
	elems   list.List[T]
	hash    uint64
}

// SortedOf returns a sorted set of the given elements with duplicates
// dropped. compare must define a total order over T. It panics with an
// error wrapping ErrNilElement if compare is nil or an element is nil.
func SortedOf[T comparable](compare func(a, b T) int, elems ...T) *Sorted[T] {
	return newSorted(compare, func(yield func(T) bool) {
		for _, e := range elems {
			if !yield(e) {
				return
			}
		}
	})
}

// SortedCollect returns a sorted set of the values produced by seq.
func SortedCollect[T comparable](compare func(a, b T) int, seq iter.Seq[T]) *Sorted[T] {
	if seq == nil {
		panic(fmt.Errorf("%w: nil sequence", ErrNilElement))
	}
	return newSorted(compare, seq)
}

func newSorted[T comparable](compare func(a, b T) int, seq iter.Seq[T]) *Sorted[T] {
	if compare == nil {
		panic(fmt.Errorf("%w: nil comparator", ErrNilElement))
	}
	rejectNil := nilable[T]()
	ts := goset.NewTreeSet[T](compare)
	for e := range seq {
		if rejectNil {
			var zero T
			if e == zero {
				panic(ErrNilElement)
			}
		}
		ts.Insert(e)
	}
	sorted := ts.Slice()
	hasher := hashutil.Maphash[T]()
	var sum uint64
	for _, e := range sorted {
		sum += hasher.Hash(e)
	}
	return &Sorted[T]{compare: compare, elems: list.From(sorted), hash: sum}
}

func (s *Sorted[T]) Size() int     { return s.elems.Len() }
func (s *Sorted[T]) IsEmpty() bool { return s.elems.IsEmpty() }

// Contains reports whether elem is in the set, by binary search over the
// sorted elements.
func (s *Sorted[T]) Contains(elem T) bool {
	lo, hi := 0, s.elems.Len()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s.compare(s.elems.Get(mid), elem) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < s.elems.Len() && s.compare(s.elems.Get(lo), elem) == 0
}

func (s *Sorted[T]) Hash() uint64         { return s.hash }
func (s *Sorted[T]) All() iter.Seq[T]     { return s.elems.Values() }
func (s *Sorted[T]) Slice() []T           { return s.elems.Slice() }
func (s *Sorted[T]) AsList() list.List[T] { return s.elems }
func (s *Sorted[T]) String() string       { return s.elems.String() }
