package page

import "github.com/lattice-db/bptree/guard"

// InternalNode is a read/write view over one internal node page.
//
//	[0:6]   common header (kind=internal, size, maxSize)
//	[6:...] size slots, each keySize+8 bytes: [key][child PageID]
//
// Slot 0's key bytes are physically present (so every slot has the same
// stride, which keeps Shift* uniform) but are a don't-care sentinel — only
// child_0 is ever consulted for slot 0, per invariant 3 (slot 0's key is
// treated as -infinity).
type InternalNode struct {
	Data    []byte
	KeySize int
}

func (n InternalNode) stride() int { return n.KeySize + idSize }

func (n InternalNode) slotOffset(i int) int { return headerSize + i*n.stride() }

// Init formats a freshly allocated page as an empty internal node.
func (n InternalNode) Init(maxSize int) {
	setKind(n.Data, KindInternal)
	setSizeOf(n.Data, 0)
	setMaxSizeOf(n.Data, maxSize)
}

func (n InternalNode) IsLeaf() bool   { return false }
func (n InternalNode) Size() int      { return sizeOf(n.Data) }
func (n InternalNode) SetSize(v int)  { setSizeOf(n.Data, v) }
func (n InternalNode) MaxSize() int   { return maxSizeOf(n.Data) }
func (n InternalNode) MinSize() int   { return MinSize(n.MaxSize()) }
func (n InternalNode) IncreaseSize(delta int) {
	setSizeOf(n.Data, sizeOf(n.Data)+delta)
}

// KeyAt returns slot i's key bytes. Callers must not retain the slice past
// the next mutation of this node — it aliases the page's backing array.
func (n InternalNode) KeyAt(i int) []byte {
	off := n.slotOffset(i)
	return n.Data[off : off+n.KeySize]
}

func (n InternalNode) SetKeyAt(i int, key []byte) {
	off := n.slotOffset(i)
	copy(n.Data[off:off+n.KeySize], key)
}

// ValueAt returns slot i's child page id.
func (n InternalNode) ValueAt(i int) guard.PageID {
	off := n.slotOffset(i) + n.KeySize
	return guard.PageID(getPageID(n.Data, off))
}

func (n InternalNode) SetValueAt(i int, child guard.PageID) {
	off := n.slotOffset(i) + n.KeySize
	putPageID(n.Data, off, int64(child))
}

// ShiftRight opens a hole at slot p by moving slots [p, size) up by one.
// Size is NOT adjusted here; callers bump it via IncreaseSize after writing
// the new slot, matching the teacher's "shift, then fill, then grow" order.
func (n InternalNode) ShiftRight(p int) {
	size := n.Size()
	stride := n.stride()
	for i := size; i > p; i-- {
		src := n.slotOffset(i - 1)
		dst := n.slotOffset(i)
		copy(n.Data[dst:dst+stride], n.Data[src:src+stride])
	}
}

// ShiftLeft closes the hole at slot p by moving slots (p, size) down by one.
func (n InternalNode) ShiftLeft(p int) {
	size := n.Size()
	stride := n.stride()
	for i := p; i < size-1; i++ {
		src := n.slotOffset(i + 1)
		dst := n.slotOffset(i)
		copy(n.Data[dst:dst+stride], n.Data[src:src+stride])
	}
}

// CopyRange copies slots [from, to) of src starting at destination slot
// destStart of n — used by split and merge, which move whole contiguous
// runs of slots between sibling pages.
func (n InternalNode) CopyRange(src InternalNode, from, to, destStart int) {
	for i := from; i < to; i++ {
		d := destStart + (i - from)
		n.SetKeyAt(d, src.KeyAt(i))
		n.SetValueAt(d, src.ValueAt(i))
	}
}

// RequiredBytesFor is the minimum page payload an internal node of the
// given maxSize needs at this KeySize.
func (n InternalNode) RequiredBytesFor(maxSize int) int {
	return headerSize + maxSize*n.stride()
}
