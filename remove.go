package bptree

import (
	"github.com/lattice-db/bptree/guard"
	"github.com/lattice-db/bptree/obslog"
	"github.com/lattice-db/bptree/page"
)

// Remove deletes key if present; it is a no-op if key is absent (§4.7).
func (t *Tree) Remove(key []byte) error {
	opID := obslog.OpID()

	hg, err := t.pool.FetchWrite(t.headerPageID)
	if err != nil {
		return err
	}
	root := page.RootPageID(hg.Bytes())
	if root == guard.Invalid {
		hg.Release()
		return nil
	}
	hg.Release()

	path := &ancestorPath{}
	curID := root
	curGuard, err := t.pool.FetchWrite(curID)
	if err != nil {
		return err
	}
	path.push(curID, curGuard, -1)

	for t.requireKind(curGuard.Bytes()) == page.KindInternal {
		in := t.internalOf(curGuard.Bytes())
		t.requireOccupancy(in.Size(), in.MaxSize())
		if t.isSafeForDelete(in.Size(), in.MinSize()) {
			path.releaseAllButTop()
		}
		idx := page.SearchInternal(in, key, t.cmp)
		childID := in.ValueAt(idx)
		childGuard, err := t.pool.FetchWrite(childID)
		if err != nil {
			path.releaseAll()
			return err
		}
		path.push(childID, childGuard, idx)
		curGuard = childGuard
		curID = childID
	}

	leaf := t.leafOf(curGuard.Bytes())
	slot := page.SearchLeaf(leaf, key, t.cmp)
	if slot < 0 || t.cmp.Compare(leaf.KeyAt(slot), key) != 0 {
		path.releaseAll()
		return nil
	}
	leaf.ShiftLeft(slot)
	leaf.IncreaseSize(-1)

	cur, _ := path.popBack()
	curIsLeaf := true
	rootReached := false

	for {
		if path.empty() {
			rootReached = true
			break
		}
		size, minSize := t.nodeSize(cur.g, curIsLeaf)
		if size >= minSize {
			cur.g.Release()
			path.releaseAll()
			break
		}

		parentFrame := path.top()
		parent := t.internalOf(parentFrame.g.Bytes())
		childIdx := cur.idxInParent
		preferLeft := childIdx > 0
		var siblingIdx int
		if preferLeft {
			siblingIdx = childIdx - 1
		} else {
			siblingIdx = childIdx + 1
		}
		siblingID := parent.ValueAt(siblingIdx)
		siblingGuard, err := t.pool.FetchWrite(siblingID)
		if err != nil {
			cur.g.Release()
			path.releaseAll()
			return err
		}

		var leftG, rightG guard.WriteGuard
		var rightID guard.PageID
		var sepSlot int
		if preferLeft {
			leftG, rightG = siblingGuard, cur.g
			rightID = cur.pageID
			sepSlot = childIdx
		} else {
			leftG, rightG = cur.g, siblingGuard
			rightID = siblingID
			sepSlot = siblingIdx
		}

		merged := false
		if curIsLeaf {
			left := t.leafOf(leftG.Bytes())
			right := t.leafOf(rightG.Bytes())
			switch {
			case preferLeft && left.Size() > left.MinSize():
				t.borrowLeafFromLeft(left, right)
				parent.SetKeyAt(sepSlot, right.KeyAt(0))
			case !preferLeft && right.Size() > right.MinSize():
				t.borrowLeafFromRight(left, right)
				parent.SetKeyAt(sepSlot, right.KeyAt(0))
			default:
				t.mergeLeaves(left, right)
				parent.ShiftLeft(sepSlot)
				parent.IncreaseSize(-1)
				merged = true
			}
		} else {
			left := t.internalOf(leftG.Bytes())
			right := t.internalOf(rightG.Bytes())
			sepKey := append([]byte(nil), parent.KeyAt(sepSlot)...)
			switch {
			case preferLeft && left.Size() > left.MinSize():
				promoted := t.borrowInternalFromLeft(left, right, sepKey)
				parent.SetKeyAt(sepSlot, promoted)
			case !preferLeft && right.Size() > right.MinSize():
				promoted := t.borrowInternalFromRight(left, right, sepKey)
				parent.SetKeyAt(sepSlot, promoted)
			default:
				t.mergeInternals(left, right, sepKey)
				parent.ShiftLeft(sepSlot)
				parent.IncreaseSize(-1)
				merged = true
			}
		}

		leftG.Release()
		rightG.Release()

		if merged {
			obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).
				Int64("freed_page", int64(rightID)).Msg("merge")
			if err := t.pool.DeletePage(rightID); err != nil {
				path.releaseAll()
				return err
			}
			nextCur, _ := path.popBack()
			cur = nextCur
			curIsLeaf = false
			continue
		}

		obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).Msg("borrow")
		path.releaseAll()
		break
	}

	if !rootReached {
		return nil
	}

	if curIsLeaf {
		ln := t.leafOf(cur.g.Bytes())
		if ln.Size() == 0 {
			if err := t.emptyRoot(); err != nil {
				cur.g.Release()
				return err
			}
			cur.g.Release()
			obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).Msg("root shrunk to empty")
			return t.pool.DeletePage(cur.pageID)
		}
		cur.g.Release()
		return nil
	}

	in := t.internalOf(cur.g.Bytes())
	if in.Size() == 1 {
		onlyChild := in.ValueAt(0)
		if err := t.shrinkRootToChild(onlyChild); err != nil {
			cur.g.Release()
			return err
		}
		cur.g.Release()
		obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).Msg("root shrunk one level")
		return t.pool.DeletePage(cur.pageID)
	}
	cur.g.Release()
	return nil
}

func (t *Tree) nodeSize(g guard.WriteGuard, isLeaf bool) (size, minSize int) {
	if isLeaf {
		l := t.leafOf(g.Bytes())
		return l.Size(), l.MinSize()
	}
	in := t.internalOf(g.Bytes())
	return in.Size(), in.MinSize()
}

// borrowLeafFromLeft moves left's last entry to the front of right (§4.7
// step 2, leaf case): the new separator is right's first key after
// rotation.
func (t *Tree) borrowLeafFromLeft(left, right page.LeafNode) {
	lastIdx := left.Size() - 1
	right.ShiftRight(0)
	right.SetKeyAt(0, left.KeyAt(lastIdx))
	right.SetValueAt(0, left.ValueAt(lastIdx))
	right.IncreaseSize(1)
	left.SetSize(lastIdx)
}

// borrowLeafFromRight moves right's first entry to the end of left.
func (t *Tree) borrowLeafFromRight(left, right page.LeafNode) {
	newIdx := left.Size()
	left.SetKeyAt(newIdx, right.KeyAt(0))
	left.SetValueAt(newIdx, right.ValueAt(0))
	left.IncreaseSize(1)
	right.ShiftLeft(0)
	right.IncreaseSize(-1)
}

// mergeLeaves moves every entry of right into left and splices right out of
// the leaf chain (§4.7 step 3).
func (t *Tree) mergeLeaves(left, right page.LeafNode) {
	base := left.Size()
	left.CopyRange(right, 0, right.Size(), base)
	left.SetSize(base + right.Size())
	left.SetNextPageID(right.NextPageID())
}

// borrowInternalFromLeft moves left's last child to the front of right,
// threading the old parent separator key through right's new slot 1 (the
// "parent-key rotation" of §4.7 step 2, internal case). Returns the new
// parent separator: the key that used to bound left's borrowed child.
func (t *Tree) borrowInternalFromLeft(left, right page.InternalNode, sepKey []byte) []byte {
	lastIdx := left.Size() - 1
	movedChild := left.ValueAt(lastIdx)
	promoted := append([]byte(nil), left.KeyAt(lastIdx)...)

	right.ShiftRight(0)
	right.SetKeyAt(1, sepKey)
	right.SetValueAt(0, movedChild)
	right.IncreaseSize(1)

	left.SetSize(lastIdx)
	return promoted
}

// borrowInternalFromRight moves right's first child to the end of left,
// threading the old parent separator key through left's new last slot.
// Returns the new parent separator: right's old slot-1 key.
func (t *Tree) borrowInternalFromRight(left, right page.InternalNode, sepKey []byte) []byte {
	movedChild := right.ValueAt(0)
	promoted := append([]byte(nil), right.KeyAt(1)...)

	newIdx := left.Size()
	left.SetKeyAt(newIdx, sepKey)
	left.SetValueAt(newIdx, movedChild)
	left.IncreaseSize(1)

	right.ShiftLeft(0)
	right.IncreaseSize(-1)
	return promoted
}

// mergeInternals fuses right into left, pulling the parent separator down
// into the merged node's first non-sentinel slot (§4.7 step 3).
func (t *Tree) mergeInternals(left, right page.InternalNode, sepKey []byte) {
	base := left.Size()
	left.SetKeyAt(base, sepKey)
	left.SetValueAt(base, right.ValueAt(0))
	left.CopyRange(right, 1, right.Size(), base+1)
	left.SetSize(base + right.Size())
}
