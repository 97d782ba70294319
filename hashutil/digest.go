package hashutil

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Digest is an xxhash digest with helpers for feeding it structured data.
// It is the convenient way to build a custom Hasher over a composite value:
// write each field with its length where ambiguity is possible, then call
// Sum64.
type Digest struct {
	xxhash.Digest
}

func NewDigest() *Digest {
	var d Digest
	d.Reset()
	return &d
}

// WriteStringWithLen writes the string's length, then its contents to the hash.
func (d *Digest) WriteStringWithLen(s string) {
	d.WriteUint32(uint32(len(s)))
	d.WriteString(s)
}

// WriteWithLen writes the byte slice's length, then its contents to the hash.
func (d *Digest) WriteWithLen(b []byte) {
	d.WriteUint32(uint32(len(b)))
	d.Write(b)
}

// WriteBool writes a single byte (1 or 0) to the hash.
func (d *Digest) WriteBool(b bool) {
	if b {
		d.Write([]byte{1})
	} else {
		d.Write([]byte{0})
	}
}

// WriteUint16 writes a uint16 to the hash.
func (d *Digest) WriteUint16(t uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], t)
	d.Write(buf[:])
}

// WriteUint32 writes a uint32 to the hash.
func (d *Digest) WriteUint32(t uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], t)
	d.Write(buf[:])
}

// WriteUint64 writes a uint64 to the hash.
func (d *Digest) WriteUint64(t uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], t)
	d.Write(buf[:])
}

// WriteInt16 writes an int16 to the hash.
func (d *Digest) WriteInt16(t int16) {
	d.WriteUint16(uint16(t))
}

// WriteInt32 writes an int32 to the hash.
func (d *Digest) WriteInt32(t int32) {
	d.WriteUint32(uint32(t))
}

// WriteInt64 writes an int64 to the hash.
func (d *Digest) WriteInt64(t int64) {
	d.WriteUint64(uint64(t))
}
