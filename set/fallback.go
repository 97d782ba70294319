package set

import (
	"iter"

	goset "github.com/hashicorp/go-set/v3"

	"github.com/pomerium/immutable/internal/lazy"
	"github.com/pomerium/immutable/list"
)

// fallbackImpl is the flood-tolerant construction strategy: a map-backed
// set handles duplicate detection while the shared element store keeps
// first-occurrence order. Once a builder switches here it never switches
// back.
type fallbackImpl[T comparable] struct {
	cfg      *config[T]
	elems    *list.Builder[T]
	delegate *goset.Set[T]
}

// newFallbackImpl seeds the delegate from the elements deduplicated so
// far. It takes over elems; the previous strategy must not touch it
// again.
func newFallbackImpl[T comparable](cfg *config[T], elems *list.Builder[T]) *fallbackImpl[T] {
	delegate := goset.New[T](elems.Len())
	for e := range elems.Values() {
		delegate.Insert(e)
	}
	return &fallbackImpl[T]{cfg: cfg, elems: elems, delegate: delegate}
}

func (f *fallbackImpl[T]) add(e T) builderImpl[T] {
	if f.delegate.Insert(e) {
		f.elems.Append(e)
	}
	return f
}

func (f *fallbackImpl[T]) copyImpl() builderImpl[T] {
	return newFallbackImpl(f.cfg, f.elems.Clone())
}

func (f *fallbackImpl[T]) review() builderImpl[T] { return f }

func (f *fallbackImpl[T]) build() Set[T] {
	switch f.elems.Len() {
	case 0:
		return Empty[T]()
	case 1:
		elem := f.elems.Get(0)
		return newSingleton(elem, f.cfg.hasher.Hash(elem))
	default:
		return &mapSet[T]{cfg: f.cfg, elems: f.elems.Build(), delegate: f.delegate}
	}
}

func (f *fallbackImpl[T]) elements() *list.Builder[T] { return f.elems }

// mapSet is the fallback finished shape: membership goes through the
// retained map-backed delegate, iteration through the element list. The
// delegate is shared with the builder that produced the set; the builder
// copies before its next mutation.
type mapSet[T comparable] struct {
	cfg      *config[T]
	elems    list.List[T]
	delegate *goset.Set[T]
	// hash sum, computed on first use
	hashMemo lazy.Value[uint64]
}

func (s *mapSet[T]) Size() int            { return s.elems.Len() }
func (s *mapSet[T]) IsEmpty() bool        { return s.elems.IsEmpty() }
func (s *mapSet[T]) Contains(elem T) bool { return s.delegate.Contains(elem) }
func (s *mapSet[T]) All() iter.Seq[T]     { return s.elems.Values() }
func (s *mapSet[T]) Slice() []T           { return s.elems.Slice() }
func (s *mapSet[T]) AsList() list.List[T] { return s.elems }
func (s *mapSet[T]) String() string       { return s.elems.String() }

func (s *mapSet[T]) Hash() uint64 {
	return s.hashMemo.Get(s.sumHashes)
}

func (s *mapSet[T]) sumHashes() uint64 {
	var sum uint64
	for e := range s.elems.Values() {
		sum += s.cfg.hasher.Hash(e)
	}
	return sum
}
