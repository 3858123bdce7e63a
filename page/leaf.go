package page

import "github.com/lattice-db/bptree/guard"

// LeafNode is a read/write view over one leaf node page.
//
//	[0:6]    common header (kind=leaf, size, maxSize)
//	[6:14]   next sibling PageID (Invalid for the rightmost leaf)
//	[14:...] size slots, each keySize+valueSize bytes: [key][value]
type LeafNode struct {
	Data      []byte
	KeySize   int
	ValueSize int
}

const leafNextOffset = headerSize
const leafSlotsOffset = leafNextOffset + idSize

func (n LeafNode) stride() int { return n.KeySize + n.ValueSize }

func (n LeafNode) slotOffset(i int) int { return leafSlotsOffset + i*n.stride() }

// Init formats a freshly allocated page as an empty leaf with no right
// sibling yet.
func (n LeafNode) Init(maxSize int) {
	setKind(n.Data, KindLeaf)
	setSizeOf(n.Data, 0)
	setMaxSizeOf(n.Data, maxSize)
	n.SetNextPageID(guard.Invalid)
}

func (n LeafNode) IsLeaf() bool  { return true }
func (n LeafNode) Size() int     { return sizeOf(n.Data) }
func (n LeafNode) SetSize(v int) { setSizeOf(n.Data, v) }
func (n LeafNode) MaxSize() int  { return maxSizeOf(n.Data) }
func (n LeafNode) MinSize() int  { return MinSize(n.MaxSize()) }
func (n LeafNode) IncreaseSize(delta int) {
	setSizeOf(n.Data, sizeOf(n.Data)+delta)
}

func (n LeafNode) NextPageID() guard.PageID {
	return guard.PageID(getPageID(n.Data, leafNextOffset))
}

func (n LeafNode) SetNextPageID(id guard.PageID) {
	putPageID(n.Data, leafNextOffset, int64(id))
}

// KeyAt returns slot i's key bytes; aliases the page's backing array.
func (n LeafNode) KeyAt(i int) []byte {
	off := n.slotOffset(i)
	return n.Data[off : off+n.KeySize]
}

func (n LeafNode) SetKeyAt(i int, key []byte) {
	off := n.slotOffset(i)
	copy(n.Data[off:off+n.KeySize], key)
}

// ValueAt returns slot i's value bytes; aliases the page's backing array.
func (n LeafNode) ValueAt(i int) []byte {
	off := n.slotOffset(i) + n.KeySize
	return n.Data[off : off+n.ValueSize]
}

func (n LeafNode) SetValueAt(i int, value []byte) {
	off := n.slotOffset(i) + n.KeySize
	copy(n.Data[off:off+n.ValueSize], value)
}

// ShiftRight opens a hole at slot p by moving slots [p, size) up by one.
func (n LeafNode) ShiftRight(p int) {
	size := n.Size()
	stride := n.stride()
	for i := size; i > p; i-- {
		src := n.slotOffset(i - 1)
		dst := n.slotOffset(i)
		copy(n.Data[dst:dst+stride], n.Data[src:src+stride])
	}
}

// ShiftLeft closes the hole at slot p by moving slots (p, size) down by one.
func (n LeafNode) ShiftLeft(p int) {
	size := n.Size()
	stride := n.stride()
	for i := p; i < size-1; i++ {
		src := n.slotOffset(i + 1)
		dst := n.slotOffset(i)
		copy(n.Data[dst:dst+stride], n.Data[src:src+stride])
	}
}

// CopyRange copies slots [from, to) of src starting at destination slot
// destStart of n.
func (n LeafNode) CopyRange(src LeafNode, from, to, destStart int) {
	for i := from; i < to; i++ {
		d := destStart + (i - from)
		n.SetKeyAt(d, src.KeyAt(i))
		n.SetValueAt(d, src.ValueAt(i))
	}
}

// RequiredBytesFor is the minimum page payload a leaf of the given maxSize
// needs at this KeySize/ValueSize — used by the constructor to fail fast on
// a page size too small for the configured fan-out, rather than corrupting
// slots silently. Takes maxSize explicitly since it runs before any page
// has been formatted (MaxSize() isn't readable yet).
func (n LeafNode) RequiredBytesFor(maxSize int) int {
	return leafSlotsOffset + maxSize*n.stride()
}
