package hashutil_test

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"

	"github.com/pomerium/immutable/hashutil"
)

func TestDigest(t *testing.T) {
	t.Parallel()

	d := hashutil.NewDigest()
	d.WriteString("hello")
	assert.Equal(t, xxhash.Sum64String("hello"), d.Sum64(),
		"plain writes should match xxhash directly")
}

func TestDigestLengthPrefix(t *testing.T) {
	t.Parallel()

	sum := func(parts ...string) uint64 {
		d := hashutil.NewDigest()
		for _, p := range parts {
			d.WriteStringWithLen(p)
		}
		return d.Sum64()
	}

	// without length prefixes these would concatenate to the same bytes
	assert.NotEqual(t, sum("ab", "c"), sum("a", "bc"))
	assert.Equal(t, sum("ab", "c"), sum("ab", "c"))
}

func TestDigestWriters(t *testing.T) {
	t.Parallel()

	sum := func(write func(d *hashutil.Digest)) uint64 {
		d := hashutil.NewDigest()
		write(d)
		return d.Sum64()
	}

	assert.Equal(t,
		sum(func(d *hashutil.Digest) { d.WriteBool(true) }),
		sum(func(d *hashutil.Digest) { d.WriteBool(true) }))
	assert.NotEqual(t,
		sum(func(d *hashutil.Digest) { d.WriteBool(true) }),
		sum(func(d *hashutil.Digest) { d.WriteBool(false) }))
	assert.NotEqual(t,
		sum(func(d *hashutil.Digest) { d.WriteUint32(1) }),
		sum(func(d *hashutil.Digest) { d.WriteUint64(1) }),
		"width is part of the encoding")
	assert.Equal(t,
		sum(func(d *hashutil.Digest) { d.WriteInt64(-1) }),
		sum(func(d *hashutil.Digest) { d.WriteUint64(^uint64(0)) }))
}
