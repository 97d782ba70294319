package set

import (
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"github.com/pomerium/immutable/hashutil"
	"github.com/pomerium/immutable/list"
)

// BuilderConfig configures a Builder. The zero value of every field means
// its default.
type BuilderConfig[T comparable] struct {
	// ExpectedSize preallocates for this many distinct elements. Builders
	// grow as needed, so this is a hint, not a limit.
	ExpectedSize int
	// Hasher supplies element hash codes. Defaults to a process-seeded
	// maphash over T. All sets whose hash codes are compared with each
	// other must share one hasher.
	Hasher hashutil.Hasher[T]
	// Tuning overrides the table sizing and flood-detection constants.
	Tuning *Tuning
	// Logger, when set, receives a debug event each time the builder
	// abandons open addressing for the map-backed strategy.
	Logger *zerolog.Logger
}

// config is a builder's resolved configuration. It is immutable and
// shared by reference between the builder, its copies, and the sets it
// builds.
type config[T comparable] struct {
	hasher    hashutil.Hasher[T]
	tuning    Tuning
	logger    *zerolog.Logger
	rejectNil bool
}

func newConfig[T comparable](bc BuilderConfig[T]) *config[T] {
	c := &config[T]{
		hasher:    bc.Hasher,
		tuning:    normalizeTuning(bc.Tuning),
		logger:    bc.Logger,
		rejectNil: nilable[T](),
	}
	if c.hasher == nil {
		c.hasher = hashutil.Maphash[T]()
	}
	return c
}

func (c *config[T]) logFallback(phase string, distinct, tableSize, maxRun int) {
	if c.logger == nil {
		return
	}
	c.logger.Debug().
		Str("phase", phase).
		Int("distinct", distinct).
		Int("table_size", tableSize).
		Int("max_run", maxRun).
		Msg("set: hash flooding suspected, using map-backed strategy")
}

// builderImpl is one of the two construction strategies behind a Builder.
type builderImpl[T comparable] interface {
	// add incorporates e and returns the impl to use from now on. The
	// open-addressing impl answers a too-long probe run by transferring
	// all state to a fresh map-backed impl and retrying e there.
	add(e T) builderImpl[T]
	// copyImpl returns a deep copy whose mutations cannot reach storage
	// shared with previously built sets.
	copyImpl() builderImpl[T]
	// review runs pre-build maintenance: shrinking an oversized table and
	// re-running the whole-table flooding scan.
	review() builderImpl[T]
	// build materializes the finished set.
	build() Set[T]
	// elements is the deduplicated element store in first-occurrence
	// order.
	elements() *list.Builder[T]
}

// A Builder accumulates distinct elements for a Set. The zero value is
// ready to use. Builders are single-writer; concurrent use is undefined.
//
// Build may be called multiple times, interleaved with further adds. The
// builder copies its internal state before the first mutation after each
// Build, so a finished set is never affected by later use of the builder
// that produced it.
type Builder[T comparable] struct {
	impl   builderImpl[T]
	cfg    *config[T]
	shared bool
}

// NewBuilder returns an empty builder with default configuration.
func NewBuilder[T comparable]() *Builder[T] {
	return NewBuilderConfig(BuilderConfig[T]{})
}

// NewBuilderSize returns an empty builder preallocated for expectedSize
// distinct elements. A negative hint is treated as zero.
func NewBuilderSize[T comparable](expectedSize int) *Builder[T] {
	return NewBuilderConfig(BuilderConfig[T]{ExpectedSize: expectedSize})
}

// NewBuilderConfig returns an empty builder with the given configuration.
// It panics on tuning values outside their documented ranges.
func NewBuilderConfig[T comparable](bc BuilderConfig[T]) *Builder[T] {
	cfg := newConfig(bc)
	size := bc.ExpectedSize
	if size <= 0 {
		size = defaultInitialCapacity
	}
	return &Builder[T]{cfg: cfg, impl: newRegularImpl(cfg, size)}
}

// init makes a zero-value builder equivalent to NewBuilder's result.
func (b *Builder[T]) init() {
	if b.impl == nil {
		b.cfg = newConfig(BuilderConfig[T]{})
		b.impl = newRegularImpl(b.cfg, defaultInitialCapacity)
	}
}

func (b *Builder[T]) copyIfShared() {
	if b.shared {
		b.impl = b.impl.copyImpl()
		b.shared = false
	}
}

// Add adds elements to the set under construction, dropping any already
// present. It panics with ErrNilElement if an element is nil; the builder
// is unchanged when it panics.
func (b *Builder[T]) Add(elems ...T) *Builder[T] {
	for _, e := range elems {
		b.add1(e)
	}
	return b
}

// AddSeq adds every value produced by seq. It panics with an error
// wrapping ErrNilElement if seq is nil.
func (b *Builder[T]) AddSeq(seq iter.Seq[T]) *Builder[T] {
	if seq == nil {
		panic(fmt.Errorf("%w: nil sequence", ErrNilElement))
	}
	for e := range seq {
		b.add1(e)
	}
	return b
}

func (b *Builder[T]) add1(e T) {
	b.init()
	if b.cfg.rejectNil {
		var zero T
		if e == zero {
			panic(ErrNilElement)
		}
	}
	b.copyIfShared()
	b.impl = b.impl.add(e)
}

// Combine folds every distinct element of other into b, in other's
// order, with the same deduplication and flooding checks as Add. other is
// not modified. It panics with an error wrapping ErrNilElement if other
// is nil.
func (b *Builder[T]) Combine(other *Builder[T]) *Builder[T] {
	if other == nil {
		panic(fmt.Errorf("%w: nil builder", ErrNilElement))
	}
	if other.impl == nil || other.impl.elements().Len() == 0 {
		return b
	}
	b.init()
	b.copyIfShared()
	for e := range other.impl.elements().Values() {
		b.impl = b.impl.add(e)
	}
	return b
}

// Size returns the number of distinct elements added so far.
func (b *Builder[T]) Size() int {
	if b.impl == nil {
		return 0
	}
	return b.impl.elements().Len()
}

// Build returns the set of all distinct elements added so far. The
// builder remains usable; adding more elements and building again yields
// a new set without affecting any set built earlier.
func (b *Builder[T]) Build() Set[T] {
	if b.impl == nil {
		return Empty[T]()
	}
	b.shared = true
	b.impl = b.impl.review()
	return b.impl.build()
}
