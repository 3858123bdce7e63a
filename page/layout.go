// Package page is the on-page binary layout and accessors for the B+ tree's
// node pages, byte-exact per §4.1 and §6.3 of the specification this module
// implements. Every accessor here writes through to the page's backing byte
// slice — there is never a shadow copy, so a WriteGuard's bytes are the node.
package page

import "encoding/binary"

// Kind discriminates the two node variants. It is a closed tagged union, not
// an inheritance hierarchy: internal and leaf nodes share almost nothing, so
// giving them a common abstract parent would only blur the invariants each
// one keeps.
type Kind uint8

const (
	KindInternal Kind = 0
	KindLeaf     Kind = 1
)

func (k Kind) String() string {
	if k == KindLeaf {
		return "leaf"
	}
	return "internal"
}

// Common header layout, present at offset 0 of every node page:
//
//	[0]    uint8  kind
//	[1]    uint8  reserved
//	[2:4]  uint16 size
//	[4:6]  uint16 maxSize
const headerSize = 6

const (
	offKind    = 0
	offSize    = 2
	offMaxSize = 4
)

// idSize is the on-page width of a PageID (internal child pointers, leaf
// next-pointers, and the header page's root pointer).
const idSize = 8

func kindOf(data []byte) Kind { return Kind(data[offKind]) }

// KindOf reads the common-header discriminant of any node page. The tree
// uses this to dispatch between InternalNode and LeafNode views without an
// abstract base type.
func KindOf(data []byte) Kind { return kindOf(data) }

func setKind(data []byte, k Kind) { data[offKind] = byte(k) }

func sizeOf(data []byte) int { return int(binary.LittleEndian.Uint16(data[offSize : offSize+2])) }

func setSizeOf(data []byte, n int) {
	binary.LittleEndian.PutUint16(data[offSize:offSize+2], uint16(n))
}

func maxSizeOf(data []byte) int {
	return int(binary.LittleEndian.Uint16(data[offMaxSize : offMaxSize+2]))
}

func setMaxSizeOf(data []byte, n int) {
	binary.LittleEndian.PutUint16(data[offMaxSize:offMaxSize+2], uint16(n))
}

// MinSize is ceil(maxSize/2), the occupancy floor for any non-root node
// (invariant 4).
func MinSize(maxSize int) int {
	return (maxSize + 1) / 2
}

func putPageID(data []byte, off int, id int64) {
	binary.LittleEndian.PutUint64(data[off:off+idSize], uint64(id))
}

func getPageID(data []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(data[off : off+idSize]))
}
