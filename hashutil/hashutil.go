// Package hashutil provides NON-CRYPTOGRAPHIC utility functions for hashing.
//
// The central abstraction is the Hasher, which maps values of a single type
// to uint64 hash codes. Hashers supply the hash half of the hash/equality
// contract used by the set package: values that compare equal with == must
// receive equal hash codes. The reverse is not required, and a colliding
// Hasher, even one that maps every value to the same code, only costs
// speed, never correctness.
//
//nolint:errcheck
package hashutil

import (
	"hash/maphash"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/zeebo/xxh3"
)

// A Hasher maps values of type T to 64-bit hash codes.
//
// Implementations must be deterministic for the lifetime of the process:
// the same value must always produce the same code, because hash codes are
// recomputed when a set's probe table is rebuilt.
type Hasher[T any] interface {
	Hash(v T) uint64
}

// HasherFunc adapts a plain function to the Hasher interface.
type HasherFunc[T any] func(T) uint64

// Hash calls f(v).
func (f HasherFunc[T]) Hash(v T) uint64 { return f(v) }

// processSeed is the maphash seed shared by every Maphash hasher in this
// process, so that equal values hash equally across independently
// constructed sets.
var processSeed = sync.OnceValue(maphash.MakeSeed)

type maphashHasher[T comparable] struct {
	seed maphash.Seed
}

func (h maphashHasher[T]) Hash(v T) uint64 {
	return maphash.Comparable(h.seed, v)
}

// Maphash returns a Hasher for any comparable type, backed by the runtime's
// maphash with a process-wide random seed. This is the default element
// hasher: strong bit mixing, and a fresh seed per process so hash codes
// cannot be precomputed offline.
func Maphash[T comparable]() Hasher[T] {
	return maphashHasher[T]{seed: processSeed()}
}

// SeededMaphash is Maphash with a caller-controlled seed. Sets that should
// share a hash universe must share a seed.
func SeededMaphash[T comparable](seed maphash.Seed) Hasher[T] {
	return maphashHasher[T]{seed: seed}
}

// StringHasher returns a Hasher for strings backed by xxhash.
func StringHasher() Hasher[string] {
	return HasherFunc[string](xxhash.Sum64String)
}

// BytesHasher returns a Hasher for byte slices backed by xxhash.
func BytesHasher() Hasher[[]byte] {
	return HasherFunc[[]byte](xxhash.Sum64)
}

// StructHasher returns a Hasher for arbitrary structs, backed by
// hashstructure over xxh3. Values hashstructure cannot handle (for example
// structs with embedded funcs) hash to 0; the set package's flooding
// fallback absorbs the resulting collisions.
func StructHasher[T any]() Hasher[T] {
	return HasherFunc[T](func(v T) uint64 { return MustHash(v) })
}

// MustHash returns the hash of an arbitrary value or struct. Returns 0
// on error.
// NOT SUITABLE FOR CRYPTOGRAPHIC HASHING.
func MustHash(v any) uint64 {
	hash, err := Hash(v)
	if err != nil {
		hash = 0
	}
	return hash
}

// Hash returns the hash of an arbitrary value or struct.
// NOT SUITABLE FOR CRYPTOGRAPHIC HASHING.
func Hash(v any) (uint64, error) {
	opts := &hashstructure.HashOptions{
		Hasher: xxh3.New(),
	}
	return hashstructure.Hash(v, hashstructure.FormatV2, opts)
}
