package set

import (
	"math/bits"

	"github.com/pomerium/immutable/hashutil"
	"github.com/pomerium/immutable/list"
)

// murmur3 mixing constants, widened for 64-bit hash codes.
const (
	smearC1 uint64 = 0x87c37b91114253d5
	smearC2 uint64 = 0x4cf5ad432745937f
)

// smear spreads entropy from the high bits of h into the low bits. A
// power-of-two mask keeps only the low bits, so without this step hash
// codes differing only in high bits would all collide.
func smear(h uint64) uint64 {
	return bits.RotateLeft64(h*smearC1, 31) * smearC2
}

// emptySlot marks an unoccupied probe-table slot. Occupied slots hold the
// element's index in the deduplicated store.
const emptySlot int32 = -1

func newTable(size int) []int32 {
	table := make([]int32, size)
	for i := range table {
		table[i] = emptySlot
	}
	return table
}

// rebuildTable builds a fresh probe table of the given power-of-two size
// from the first-occurrence element store. Inserts are unbounded linear
// probes: rebuilds never run the flooding heuristic, only incremental adds
// and the pre-build review do.
func rebuildTable[T comparable](size int, elems *list.Builder[T], hasher hashutil.Hasher[T]) []int32 {
	table := newTable(size)
	mask := uint64(size - 1)
	for i := range elems.Len() {
		j0 := smear(hasher.Hash(elems.Get(i)))
		for j := j0; ; j++ {
			if idx := j & mask; table[idx] == emptySlot {
				table[idx] = int32(i)
				break
			}
		}
	}
	return table
}

// floodingDetected checks the whole probe table for runs of consecutive
// occupied slots longer than maxRun, including a run wrapping around the
// end of the table. O(table size).
//
// The incremental check in the open-addressing strategy catches inputs
// that collide at insertion time, but not hash codes engineered to land in
// ascending, densely packed positions; those keep construction fast and
// degrade lookups instead, and only this scan catches them. If this
// returns false, no lookup on the finished table exceeds O(maxRun) probes.
func floodingDetected(table []int32, maxRun int) bool {
	// a run wrapping the end of the table shows up as a prefix run plus a
	// suffix run
	endOfStartRun := 0
	for endOfStartRun < len(table) {
		if table[endOfStartRun] == emptySlot {
			break
		}
		endOfStartRun++
		if endOfStartRun > maxRun {
			return true
		}
	}
	startOfEndRun := len(table) - 1
	for ; startOfEndRun > endOfStartRun; startOfEndRun-- {
		if table[startOfEndRun] == emptySlot {
			break
		}
		if endOfStartRun+(len(table)-1-startOfEndRun) > maxRun {
			return true
		}
	}
	for i := endOfStartRun + 1; i < startOfEndRun; i++ {
		for runLength := 0; i < startOfEndRun && table[i] != emptySlot; i++ {
			runLength++
			if runLength > maxRun {
				return true
			}
		}
	}
	return false
}
