// Package set provides immutable, deduplicated set containers with O(1)
// expected membership tests and stable first-occurrence iteration order.
//
// Sets are assembled by a Builder backed by an open-addressing hash table.
// The builder watches for probe runs long enough to indicate hash flooding
// and, when it sees one, switches to a map-backed strategy that tolerates
// adversarial inputs. The switch is invisible to callers: every finished
// set honors the same contract regardless of which strategy produced it.
package set

import (
	"errors"
	"iter"
	"reflect"

	"github.com/pomerium/immutable/list"
)

var (
	// ErrNilElement is the panic value (possibly wrapped) for nil elements
	// and nil sequence or builder arguments.
	ErrNilElement = errors.New("set: nil element")
	// ErrTooLarge is the panic value (wrapped) when a set would exceed the
	// maximum table size.
	ErrTooLarge = errors.New("set: collection too large")
)

// A Set is an immutable collection of distinct elements. Implementations
// are safe for unrestricted concurrent reads. Iteration visits elements in
// the order of their first occurrence in the input unless the concrete
// type documents otherwise.
type Set[T comparable] interface {
	// Size returns the number of elements.
	Size() int
	// IsEmpty reports whether the set has no elements.
	IsEmpty() bool
	// Contains reports whether elem is in the set.
	Contains(elem T) bool
	// Hash returns the wraparound sum of the members' hash codes.
	Hash() uint64
	// All returns an iterator over the elements.
	All() iter.Seq[T]
	// Slice returns a fresh slice of the elements in iteration order.
	Slice() []T
	// AsList returns an indexable, read-only view of the elements in
	// iteration order. The view shares storage with the set.
	AsList() list.List[T]
}

// Empty returns the canonical empty set for T.
func Empty[T comparable]() Set[T] {
	return emptySet[T]{}
}

// Of returns a set of the given elements with duplicates dropped, keeping
// the first occurrence of each. It panics with ErrNilElement if any
// element is nil.
func Of[T comparable](elems ...T) Set[T] {
	if len(elems) == 0 {
		return Empty[T]()
	}
	return NewBuilderSize[T](len(elems)).Add(elems...).Build()
}

// Collect returns a set of the values produced by seq, deduplicated in
// first-occurrence order.
func Collect[T comparable](seq iter.Seq[T]) Set[T] {
	return NewBuilder[T]().AddSeq(seq).Build()
}

// nilable reports whether values of T can be nil. Only element types of
// interface, pointer, channel or unsafe-pointer kind admit a nil value;
// for all other kinds the zero value is an ordinary element.
func nilable[T comparable]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

type emptySet[T comparable] struct{}

func (emptySet[T]) Size() int            { return 0 }
func (emptySet[T]) IsEmpty() bool        { return true }
func (emptySet[T]) Contains(T) bool      { return false }
func (emptySet[T]) Hash() uint64         { return 0 }
func (emptySet[T]) Slice() []T           { return nil }
func (emptySet[T]) AsList() list.List[T] { return list.List[T]{} }
func (emptySet[T]) String() string       { return "[]" }

func (emptySet[T]) All() iter.Seq[T] {
	return func(func(T) bool) {}
}

type singletonSet[T comparable] struct {
	elem T
	hash uint64
	view list.List[T]
}

func newSingleton[T comparable](elem T, hash uint64) singletonSet[T] {
	return singletonSet[T]{elem: elem, hash: hash, view: list.Of(elem)}
}

func (s singletonSet[T]) Size() int            { return 1 }
func (s singletonSet[T]) IsEmpty() bool        { return false }
func (s singletonSet[T]) Contains(elem T) bool { return s.elem == elem }
func (s singletonSet[T]) Hash() uint64         { return s.hash }
func (s singletonSet[T]) Slice() []T           { return []T{s.elem} }
func (s singletonSet[T]) AsList() list.List[T] { return s.view }
func (s singletonSet[T]) String() string       { return s.view.String() }

func (s singletonSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		yield(s.elem)
	}
}
