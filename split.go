package bptree

import (
	"github.com/lattice-db/bptree/guard"
	"github.com/lattice-db/bptree/page"
)

// allocateWrite allocates a fresh page and immediately upgrades it to a
// WriteGuard — the two-step NewPage/UpgradeWrite dance exists so a future
// caller that only needs to stamp a few header bytes before anyone else can
// see the page isn't forced to pay for a latch acquisition it doesn't need
// yet (§6.1).
func (t *Tree) allocateWrite() (guard.WriteGuard, error) {
	bg, err := t.pool.NewPage()
	if err != nil {
		return nil, err
	}
	return t.pool.UpgradeWrite(bg)
}

// splitLeaf implements §4.6's leaf split. leftGuard is released by this
// call once the split is complete; the caller only keeps the promoted key
// and the new right page id.
func (t *Tree) splitLeaf(left page.LeafNode, leftGuard guard.WriteGuard) ([]byte, guard.PageID, error) {
	rightGuard, err := t.allocateWrite()
	if err != nil {
		return nil, guard.Invalid, err
	}
	right := t.leafOf(rightGuard.Bytes())
	right.Init(t.leafMaxSize)

	max := left.MaxSize()
	lsize := max / 2
	rsize := max - lsize

	right.CopyRange(left, lsize, max, 0)
	right.SetSize(rsize)
	right.SetNextPageID(left.NextPageID())

	rightID := rightGuard.PageID()
	left.SetNextPageID(rightID)
	left.SetSize(lsize)

	midKey := append([]byte(nil), right.KeyAt(0)...)

	leftGuard.Release()
	rightGuard.Release()
	return midKey, rightID, nil
}

// splitInternal implements §4.6's internal split. The key at slot lsize of
// left is promoted to the parent and is NOT stored in right — right's own
// slot-0 sentinel takes its place.
func (t *Tree) splitInternal(left page.InternalNode, leftGuard guard.WriteGuard) ([]byte, guard.PageID, error) {
	rightGuard, err := t.allocateWrite()
	if err != nil {
		return nil, guard.Invalid, err
	}
	right := t.internalOf(rightGuard.Bytes())
	right.Init(t.internalMaxSize)

	size := left.Size()
	lsize := size / 2
	rsize := size - lsize

	midKey := append([]byte(nil), left.KeyAt(lsize)...)

	right.CopyRange(left, lsize, size, 0)
	right.SetSize(rsize)
	left.SetSize(lsize)

	rightID := rightGuard.PageID()
	leftGuard.Release()
	rightGuard.Release()
	return midKey, rightID, nil
}

// growRoot implements §4.5's root-growth step: a fresh internal page with
// size 2, child_0 = oldRootID, key_1 = midKey, child_1 = newRightID becomes
// the new root. The header write latch is (re)acquired only for the
// instant it takes to flip root_page_id.
func (t *Tree) growRoot(oldRootID guard.PageID, midKey []byte, newRightID guard.PageID) error {
	rootGuard, err := t.allocateWrite()
	if err != nil {
		return err
	}
	root := t.internalOf(rootGuard.Bytes())
	root.Init(t.internalMaxSize)
	root.SetSize(2)
	root.SetValueAt(0, oldRootID)
	root.SetKeyAt(1, midKey)
	root.SetValueAt(1, newRightID)
	newRootID := rootGuard.PageID()
	rootGuard.Release()

	hg, err := t.pool.FetchWrite(t.headerPageID)
	if err != nil {
		return err
	}
	page.SetRootPageID(hg.Bytes(), newRootID)
	hg.Release()
	return nil
}

// shrinkRootToChild implements §4.7's root-shrink step for an internal root
// left with a single child: that child is promoted in its place.
func (t *Tree) shrinkRootToChild(onlyChild guard.PageID) error {
	hg, err := t.pool.FetchWrite(t.headerPageID)
	if err != nil {
		return err
	}
	page.SetRootPageID(hg.Bytes(), onlyChild)
	hg.Release()
	return nil
}

// emptyRoot implements §4.7's other root-shrink case: the root leaf became
// empty, so the tree goes back to having no root at all.
func (t *Tree) emptyRoot() error {
	hg, err := t.pool.FetchWrite(t.headerPageID)
	if err != nil {
		return err
	}
	page.SetRootPageID(hg.Bytes(), guard.Invalid)
	hg.Release()
	return nil
}
