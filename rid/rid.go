// Package rid supplies a couple of ready-to-use fixed-width value types for
// the tree's V family (§3: "Value V: fixed-width opaque payload stored in
// leaves (typically a tuple identifier)"). Like keycmp's key families, the
// value type itself is out of the core's scope — these are fixtures for
// tests and the cmd/bptreedemo CLI, not part of the tree's algorithms.
package rid

import "encoding/binary"

// RID is the classic heap tuple identifier: a page id plus a slot within
// that page, the same shape as ajg7-GengarDB/pkg/storage.RID.
type RID struct {
	PageID uint32
	Slot   uint16
}

// Size is RID's encoded width in bytes.
const Size = 6

// Encode packs an RID into its fixed-width wire form.
func (r RID) Encode() []byte {
	buf := make([]byte, Size)
	binary.LittleEndian.PutUint32(buf[0:4], r.PageID)
	binary.LittleEndian.PutUint16(buf[4:6], r.Slot)
	return buf
}

// DecodeRID reverses Encode.
func DecodeRID(b []byte) RID {
	return RID{
		PageID: binary.LittleEndian.Uint32(b[0:4]),
		Slot:   binary.LittleEndian.Uint16(b[4:6]),
	}
}
