// Package keycmp supplies the externally-furnished three-way comparator the
// tree is generic over (§3: "Key K: fixed-width, totally ordered via an
// externally supplied three-way comparator"). The key/value type family
// itself is out of this module's scope; this package only offers a couple
// of concrete, ready-to-use comparators for fixed-width byte keys, the way
// ajg7-GengarDB's btree fixes its key family to uint64 and ryogrid's
// KeyCmp fixes it to raw byte-slice lexicographic order.
package keycmp

import (
	"bytes"
	"encoding/binary"
)

// Comparator returns <0, 0, or >0 as a < b, a == b, a > b, over two
// fixed-width keys of the same width.
type Comparator interface {
	Compare(a, b []byte) int
	// KeySize is the fixed width this comparator expects both arguments to
	// have; the tree sizes its key slots from it. Keys passed to the tree's
	// operations are not checked against it.
	KeySize() int
}

// FixedBytes compares fixed-width keys lexicographically.
type FixedBytes struct {
	Size int
}

func (f FixedBytes) Compare(a, b []byte) int { return bytes.Compare(a, b) }
func (f FixedBytes) KeySize() int            { return f.Size }

// Int64 compares 8-byte big-endian encoded signed integers. Big-endian
// encoding is used (rather than the page layout's little-endian PageIDs),
// and EncodeInt64 flips the sign bit, so that byte-lexicographic and numeric
// order agree for all int64 values, negative ones included, matching the
// convention of encoding/binary-based sort keys throughout the Go ecosystem.
type Int64 struct{}

func (Int64) Compare(a, b []byte) int { return bytes.Compare(a, b) }
func (Int64) KeySize() int            { return 8 }

// EncodeInt64 packs a key for use with Int64.
func EncodeInt64(v int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v)^(1<<63))
	return buf
}

// DecodeInt64 reverses EncodeInt64.
func DecodeInt64(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63))
}
