package set

import (
	"iter"
	"slices"

	"github.com/pomerium/immutable/list"
)

// regularImpl is the default construction strategy: linear probing over a
// power-of-two table of element indexes, deduplicating as elements come,
// so it allocates O(max(distinct, expected)) rather than O(adds). When a
// probe run exceeds maxRun it hands everything to fallbackImpl.
type regularImpl[T comparable] struct {
	cfg   *config[T]
	elems *list.Builder[T]
	// probe table; a slot holds an index into elems or emptySlot
	table []int32
	// longest tolerated probe run before suspecting flooding
	maxRun int
	// distinct count past which the table doubles
	growThreshold int
	// wraparound sum of accepted elements' hash codes
	hashSum uint64
}

func newRegularImpl[T comparable](cfg *config[T], expectedSize int) *regularImpl[T] {
	tableSize := cfg.tuning.chooseTableSize(expectedSize)
	return &regularImpl[T]{
		cfg:           cfg,
		elems:         list.NewBuilderSize[T](expectedSize),
		table:         newTable(tableSize),
		maxRun:        cfg.tuning.maxRunBeforeFallback(tableSize),
		growThreshold: cfg.tuning.growThreshold(tableSize),
	}
}

func (r *regularImpl[T]) add(e T) builderImpl[T] {
	h := r.cfg.hasher.Hash(e)
	i0 := smear(h)
	mask := uint64(len(r.table) - 1)
	for i := i0; i-i0 < uint64(r.maxRun); i++ {
		idx := i & mask
		slot := r.table[idx]
		if slot == emptySlot {
			r.table[idx] = int32(r.elems.Len())
			r.elems.Append(e)
			r.hashSum += h
			r.ensureTableCapacity(r.elems.Len())
			return r
		}
		if r.elems.Get(int(slot)) == e {
			return r
		}
	}
	// the probe run ended with neither an empty slot nor a match
	r.cfg.logFallback("add", r.elems.Len(), len(r.table), r.maxRun)
	return newFallbackImpl(r.cfg, r.elems).add(e)
}

// ensureTableCapacity doubles the table once the distinct count crosses
// the grow threshold, re-inserting every element in first-occurrence
// order.
func (r *regularImpl[T]) ensureTableCapacity(minCapacity int) {
	if minCapacity > r.growThreshold && len(r.table) < r.cfg.tuning.MaxTableSize {
		newSize := len(r.table) * 2
		r.table = rebuildTable(newSize, r.elems, r.cfg.hasher)
		r.maxRun = r.cfg.tuning.maxRunBeforeFallback(newSize)
		r.growThreshold = r.cfg.tuning.growThreshold(newSize)
	}
}

func (r *regularImpl[T]) copyImpl() builderImpl[T] {
	cp := *r
	cp.elems = r.elems.Clone()
	cp.table = slices.Clone(r.table)
	return &cp
}

func (r *regularImpl[T]) review() builderImpl[T] {
	target := r.cfg.tuning.chooseTableSize(r.elems.Len())
	if target*2 < len(r.table) {
		// only the table shrinks; maxRun and growThreshold keep their
		// pre-shrink values for any adds after this build
		r.table = rebuildTable(target, r.elems, r.cfg.hasher)
	}
	maxRun := r.cfg.tuning.maxRunBeforeFallback(len(r.table))
	if floodingDetected(r.table, maxRun) {
		r.cfg.logFallback("review", r.elems.Len(), len(r.table), maxRun)
		return newFallbackImpl(r.cfg, r.elems)
	}
	return r
}

func (r *regularImpl[T]) build() Set[T] {
	switch r.elems.Len() {
	case 0:
		return Empty[T]()
	case 1:
		return newSingleton(r.elems.Get(0), r.hashSum)
	default:
		return &indexedSet[T]{
			cfg:   r.cfg,
			elems: r.elems.Build(),
			table: r.table,
			hash:  r.hashSum,
		}
	}
}

func (r *regularImpl[T]) elements() *list.Builder[T] { return r.elems }

// indexedSet is the open-addressing finished shape. It shares the probe
// table with the builder that produced it; the builder copies before its
// next mutation, so the table is frozen from the set's point of view.
type indexedSet[T comparable] struct {
	cfg   *config[T]
	elems list.List[T]
	table []int32
	hash  uint64
}

func (s *indexedSet[T]) Size() int     { return s.elems.Len() }
func (s *indexedSet[T]) IsEmpty() bool { return s.elems.IsEmpty() }

// Contains probes forward from the smeared hash until it finds elem or an
// empty slot. Tables built while growth is live keep at least one empty
// slot, but a table that review shrank runs later adds against its
// pre-shrink grow threshold and can fill completely; on a full table the
// probe terminates only for members.
func (s *indexedSet[T]) Contains(elem T) bool {
	mask := uint64(len(s.table) - 1)
	for i := smear(s.cfg.hasher.Hash(elem)); ; i++ {
		slot := s.table[i&mask]
		if slot == emptySlot {
			return false
		}
		if s.elems.Get(int(slot)) == elem {
			return true
		}
	}
}

func (s *indexedSet[T]) Hash() uint64         { return s.hash }
func (s *indexedSet[T]) All() iter.Seq[T]     { return s.elems.Values() }
func (s *indexedSet[T]) Slice() []T           { return s.elems.Slice() }
func (s *indexedSet[T]) AsList() list.List[T] { return s.elems }
func (s *indexedSet[T]) String() string       { return s.elems.String() }
