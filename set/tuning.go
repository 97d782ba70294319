package set

import (
	"fmt"
	"math/bits"
)

const (
	defaultLoadFactor       = 0.7
	defaultMaxRunMultiplier = 12
	defaultMaxTableSize     = 1 << 30

	// an open-addressing builder starts with room for this many elements
	// when no size hint is given
	defaultInitialCapacity = 4
)

// Tuning holds the sizing and flood-detection constants of the
// open-addressing strategy. The zero value of each field means its
// default. Most callers should not need to touch these.
type Tuning struct {
	// LoadFactor bounds how full the probe table may get before it
	// doubles. Must be in (0, 1). Default 0.7.
	LoadFactor float64
	// MaxRunMultiplier scales the flood-detection threshold
	// maxRun = MaxRunMultiplier * log2(tableSize). The default of 12 keeps
	// the probability of falsely flagging uniformly random hash codes
	// below 0.1%. Must be at least 1.
	MaxRunMultiplier int
	// MaxTableSize caps the probe table length. Must be a power of two in
	// [4, 1<<30]. Default 1<<30.
	MaxTableSize int
}

// DefaultTuning returns the default constants.
func DefaultTuning() *Tuning {
	return &Tuning{
		LoadFactor:       defaultLoadFactor,
		MaxRunMultiplier: defaultMaxRunMultiplier,
		MaxTableSize:     defaultMaxTableSize,
	}
}

// normalizeTuning fills defaults for zero fields and panics on values
// outside the documented ranges. t may be nil.
func normalizeTuning(t *Tuning) Tuning {
	out := *DefaultTuning()
	if t == nil {
		return out
	}
	if t.LoadFactor != 0 {
		out.LoadFactor = t.LoadFactor
	}
	if t.MaxRunMultiplier != 0 {
		out.MaxRunMultiplier = t.MaxRunMultiplier
	}
	if t.MaxTableSize != 0 {
		out.MaxTableSize = t.MaxTableSize
	}
	if out.LoadFactor <= 0 || out.LoadFactor >= 1 {
		panic(fmt.Errorf("set: invalid tuning: load factor %v not in (0, 1)", out.LoadFactor))
	}
	if out.MaxRunMultiplier < 1 {
		panic(fmt.Errorf("set: invalid tuning: max run multiplier %d < 1", out.MaxRunMultiplier))
	}
	if out.MaxTableSize < 4 || out.MaxTableSize > defaultMaxTableSize || out.MaxTableSize&(out.MaxTableSize-1) != 0 {
		panic(fmt.Errorf("set: invalid tuning: max table size %d not a power of two in [4, 1<<30]", out.MaxTableSize))
	}
	return out
}

// chooseTableSize returns the smallest power-of-two table length that
// holds n elements within the load factor, capped at MaxTableSize. Past
// the cutoff where only the cap can satisfy the load factor, it returns
// the cap directly. Panics with an error wrapping ErrTooLarge when even
// the cap cannot hold n.
func (t Tuning) chooseTableSize(n int) int {
	n = max(n, 2)
	cutoff := int(t.LoadFactor * float64(t.MaxTableSize))
	if n < cutoff {
		tableSize := 1 << bits.Len(uint(n-1))
		for float64(tableSize)*t.LoadFactor < float64(n) {
			tableSize <<= 1
		}
		return tableSize
	}
	if n >= t.MaxTableSize {
		panic(fmt.Errorf("%w: %d distinct elements", ErrTooLarge, n))
	}
	return t.MaxTableSize
}

// maxRunBeforeFallback returns the longest run of consecutive occupied
// slots tolerated in a table of the given power-of-two size before hash
// flooding is suspected.
func (t Tuning) maxRunBeforeFallback(tableSize int) int {
	return t.MaxRunMultiplier * bits.TrailingZeros(uint(tableSize))
}

// growThreshold returns the distinct count past which a table of the
// given size must double.
func (t Tuning) growThreshold(tableSize int) int {
	return int(t.LoadFactor * float64(tableSize))
}
