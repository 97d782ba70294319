// Package lazy contains a memo cell for values that are cheap enough to
// compute more than once.
package lazy

import "sync/atomic"

// Value memoizes the result of a computation. The zero value is an empty
// cell ready to use.
//
// Unlike sync.Once there is no mutual exclusion: goroutines racing on an
// empty cell each run the computation and one result wins, so the
// computation must be deterministic and side-effect free.
type Value[T any] struct {
	p atomic.Pointer[T]
}

// Get returns the memoized value, computing and storing it first if the
// cell is empty.
func (v *Value[T]) Get(compute func() T) T {
	if p := v.p.Load(); p != nil {
		return *p
	}
	val := compute()
	v.p.Store(&val)
	return val
}
