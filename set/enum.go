package set

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"

	"github.com/pomerium/immutable/hashutil"
	"github.com/pomerium/immutable/list"
)

// ordinalCap bounds the ordinal universe an Enum may span.
const ordinalCap = 1 << 20

// An Ordinal is a small non-negative integer-like value, such as an
// enumeration constant.
type Ordinal interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Enum is an immutable set of ordinals backed by a bitset. Unlike
// builder-made sets it iterates in ascending ordinal order.
type Enum[T Ordinal] struct {
	bits  *bitset.BitSet
	elems list.List[T]
	hash  uint64
}

// EnumOf returns an enum set of the given ordinals with duplicates
// dropped. It panics with an error wrapping ErrTooLarge if an ordinal is
// negative or not below the 1<<20 ordinal cap.
func EnumOf[T Ordinal](elems ...T) *Enum[T] {
	maxOrd := int64(-1)
	for _, e := range elems {
		v := int64(e)
		if v < 0 || v >= ordinalCap {
			panic(fmt.Errorf("%w: ordinal %v outside [0, 1<<20)", ErrTooLarge, e))
		}
		maxOrd = max(maxOrd, v)
	}
	bits := bitset.New(uint(maxOrd + 1))
	for _, e := range elems {
		bits.Set(uint(int64(e)))
	}

	hasher := hashutil.Maphash[T]()
	lb := list.NewBuilderSize[T](int(bits.Count()))
	var sum uint64
	for i, ok := bits.NextSet(0); ok; i, ok = bits.NextSet(i + 1) {
		e := T(i)
		lb.Append(e)
		sum += hasher.Hash(e)
	}
	return &Enum[T]{bits: bits, elems: lb.Build(), hash: sum}
}

func (s *Enum[T]) Size() int     { return s.elems.Len() }
func (s *Enum[T]) IsEmpty() bool { return s.elems.IsEmpty() }

// Contains reports whether elem is in the set. Ordinals outside the valid
// range are never members.
func (s *Enum[T]) Contains(elem T) bool {
	v := int64(elem)
	return v >= 0 && v < ordinalCap && s.bits.Test(uint(v))
}

func (s *Enum[T]) Hash() uint64         { return s.hash }
func (s *Enum[T]) All() iter.Seq[T]     { return s.elems.Values() }
func (s *Enum[T]) Slice() []T           { return s.elems.Slice() }
func (s *Enum[T]) AsList() list.List[T] { return s.elems }
func (s *Enum[T]) String() string       { return s.elems.String() }
