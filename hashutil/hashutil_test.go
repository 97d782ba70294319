package hashutil_test

import (
	"hash/maphash"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"

	"github.com/pomerium/immutable/hashutil"
)

func TestHash(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		v       any
		want    uint64
		wantErr bool
	}{
		{"string", "string", 6134271061086542852, false},
		{"num", 7, 609900476111905877, false},
		{
			"compound struct",
			struct {
				NESCarts      []string
				numberOfCarts int
			}{
				[]string{"Battletoads", "Mega Man 1", "Clash at Demonhead"},
				12,
			},
			1349584765528830812, false,
		},
		{
			"compound struct with embedded func (errors!)",
			struct {
				AnswerToEverythingFn func() int
			}{
				func() int { return 42 },
			},
			0, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hashutil.MustHash(tt.v); got != tt.want {
				t.Errorf("MustHash() = %v, want %v", got, tt.want)
			}
			got, err := hashutil.Hash(tt.v)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if got != tt.want {
				t.Errorf("Hash() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaphash(t *testing.T) {
	t.Parallel()

	h := hashutil.Maphash[int]()
	assert.Equal(t, h.Hash(42), h.Hash(42), "equal values must hash equally")

	// independently constructed hashers share the process seed
	h2 := hashutil.Maphash[int]()
	assert.Equal(t, h.Hash(42), h2.Hash(42))

	// essentially certain for a 64-bit hash over this few values
	seen := map[uint64]struct{}{}
	for i := 0; i < 1000; i++ {
		seen[h.Hash(i)] = struct{}{}
	}
	assert.Len(t, seen, 1000, "1000 distinct ints should produce 1000 distinct hashes")
}

func TestSeededMaphash(t *testing.T) {
	t.Parallel()

	seed := maphash.MakeSeed()
	h1 := hashutil.SeededMaphash[string](seed)
	h2 := hashutil.SeededMaphash[string](seed)
	assert.Equal(t, h1.Hash("x"), h2.Hash("x"), "same seed, same universe")
}

func TestStringHasher(t *testing.T) {
	t.Parallel()

	h := hashutil.StringHasher()
	assert.Equal(t, xxhash.Sum64String("hello"), h.Hash("hello"))
	assert.NotEqual(t, h.Hash("hello"), h.Hash("world"))
}

func TestBytesHasher(t *testing.T) {
	t.Parallel()

	h := hashutil.BytesHasher()
	assert.Equal(t, xxhash.Sum64([]byte("hello")), h.Hash([]byte("hello")))
}

func TestStructHasher(t *testing.T) {
	t.Parallel()

	type route struct {
		From string
		To   string
		Port int
	}
	h := hashutil.StructHasher[route]()
	assert.Equal(t, h.Hash(route{"a", "b", 443}), h.Hash(route{"a", "b", 443}))
	assert.NotEqual(t, h.Hash(route{"a", "b", 443}), h.Hash(route{"a", "b", 8443}))

	// unhashable values all collide at 0; collisions are the set package's
	// problem, not ours
	type bad struct {
		Fn func()
	}
	hb := hashutil.StructHasher[bad]()
	assert.EqualValues(t, 0, hb.Hash(bad{Fn: func() {}}))
}

func TestHasherFunc(t *testing.T) {
	t.Parallel()

	h := hashutil.HasherFunc[int](func(int) uint64 { return 7 })
	assert.EqualValues(t, 7, h.Hash(1))
	assert.EqualValues(t, 7, h.Hash(2))
}
