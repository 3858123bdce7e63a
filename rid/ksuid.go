package rid

import "github.com/segmentio/ksuid"

// KSUIDSize is ksuid.KSUID's encoded width — it is itself already a fixed
// 20-byte value, which is what makes it usable as-is for a leaf value: no
// wrapping struct needed, just the encoded bytes.
const KSUIDSize = ksuid.ByteLength

// EncodeKSUID packs a k-sortable unique id into its fixed-width wire form.
// This mirrors other_examples/cde80655_ssargent-freyjadb__pkg-bptree-
// bptree.go.go, which stores *ksuid.KSUID directly as B+ tree leaf values.
func EncodeKSUID(id ksuid.KSUID) []byte {
	b := id.Bytes()
	out := make([]byte, KSUIDSize)
	copy(out, b)
	return out
}

// DecodeKSUID reverses EncodeKSUID.
func DecodeKSUID(b []byte) (ksuid.KSUID, error) {
	return ksuid.FromBytes(b)
}
