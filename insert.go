package bptree

import (
	"github.com/lattice-db/bptree/guard"
	"github.com/lattice-db/bptree/obslog"
	"github.com/lattice-db/bptree/page"
)

// Insert adds key -> value under unique-key semantics (§4.5). It returns
// false and leaves the tree unchanged if key is already present.
func (t *Tree) Insert(key, value []byte) (bool, error) {
	opID := obslog.OpID()

	hg, err := t.pool.FetchWrite(t.headerPageID)
	if err != nil {
		return false, err
	}
	root := page.RootPageID(hg.Bytes())

	if root == guard.Invalid {
		newGuard, err := t.allocateWrite()
		if err != nil {
			hg.Release()
			return false, err
		}
		leaf := t.leafOf(newGuard.Bytes())
		leaf.Init(t.leafMaxSize)
		leaf.SetSize(1)
		leaf.SetKeyAt(0, key)
		leaf.SetValueAt(0, value)
		newID := newGuard.PageID()
		newGuard.Release()
		page.SetRootPageID(hg.Bytes(), newID)
		hg.Release()

		obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).
			Msg("insert bootstrapped root leaf")
		return true, nil
	}
	hg.Release()

	path := &ancestorPath{}
	curID := root
	curGuard, err := t.pool.FetchWrite(curID)
	if err != nil {
		return false, err
	}
	path.push(curID, curGuard, -1)

	for t.requireKind(curGuard.Bytes()) == page.KindInternal {
		in := t.internalOf(curGuard.Bytes())
		t.requireOccupancy(in.Size(), in.MaxSize())
		if t.isSafeForInsert(in.Size()) {
			path.releaseAllButTop()
		}
		idx := page.SearchInternal(in, key, t.cmp)
		childID := in.ValueAt(idx)
		childGuard, err := t.pool.FetchWrite(childID)
		if err != nil {
			path.releaseAll()
			return false, err
		}
		path.push(childID, childGuard, idx)
		curGuard = childGuard
		curID = childID
	}

	leaf := t.leafOf(curGuard.Bytes())
	slot := page.SearchLeaf(leaf, key, t.cmp)
	if slot >= 0 && t.cmp.Compare(leaf.KeyAt(slot), key) == 0 {
		path.releaseAll()
		return false, nil
	}
	pos := slot + 1
	leaf.ShiftRight(pos)
	leaf.SetKeyAt(pos, key)
	leaf.SetValueAt(pos, value)
	leaf.IncreaseSize(1)

	if leaf.Size() < t.leafMaxSize {
		path.releaseAll()
		return true, nil
	}

	leafFrame, _ := path.popBack()
	midKey, rightID, err := t.splitLeaf(leaf, leafFrame.g)
	if err != nil {
		path.releaseAll()
		return false, err
	}
	obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).
		Int64("left_page", int64(leafFrame.pageID)).
		Int64("right_page", int64(rightID)).
		Msg("leaf split")

	leftID := leafFrame.pageID
	childKey := midKey
	childRight := rightID

	for {
		frame, ok := path.popBack()
		if !ok {
			if err := t.growRoot(leftID, childKey, childRight); err != nil {
				return false, err
			}
			obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).
				Msg("root grown")
			return true, nil
		}

		parent := t.internalOf(frame.g.Bytes())
		insertPos := page.SearchInternal(parent, childKey, t.cmp) + 1
		parent.ShiftRight(insertPos)
		parent.SetKeyAt(insertPos, childKey)
		parent.SetValueAt(insertPos, childRight)
		parent.IncreaseSize(1)

		if parent.Size() < t.internalMaxSize {
			frame.g.Release()
			path.releaseAll()
			return true, nil
		}

		midKey2, rightID2, err := t.splitInternal(parent, frame.g)
		if err != nil {
			path.releaseAll()
			return false, err
		}
		obslog.Logger.Debug().Str("op", opID).Str("tree", t.name).
			Int64("left_page", int64(frame.pageID)).
			Int64("right_page", int64(rightID2)).
			Msg("internal split")

		leftID = frame.pageID
		childKey = midKey2
		childRight = rightID2
	}
}
