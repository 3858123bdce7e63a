package bptree

import (
	"github.com/lattice-db/bptree/guard"
	"github.com/lattice-db/bptree/page"
)

// Iterator walks leaves left to right starting at some position (§4.8). It
// holds at most one leaf read latch at a time: when a leaf runs out, the
// cursor captures the following leaf's page id, releases the current leaf,
// and only then fetches the following one, so a concurrent split of the node
// ahead never strands the cursor. If that fetch fails (for example because a
// concurrent merge freed the page), the scan stops and Error() reports it.
type Iterator struct {
	tree    *Tree
	leaf    guard.ReadGuard
	slot    int
	atEnd   bool
	err     error
	started bool
}

// End returns an iterator with no further entries, matching the sentinel
// end-of-range value returned by Begin/BeginAt on an empty tree.
func (t *Tree) End() *Iterator {
	return &Iterator{tree: t, atEnd: true, started: true}
}

// Begin returns an iterator positioned at the first entry in key order.
func (t *Tree) Begin() (*Iterator, error) {
	return t.BeginAt(nil)
}

// BeginAt returns an iterator positioned at the first entry with key >= from
// (or the first entry overall, if from is nil). It implements §4.8's
// start-of-range descent: same latch-coupled path as Get, stopping at the
// leaf instead of returning a single value.
func (t *Tree) BeginAt(from []byte) (*Iterator, error) {
	hg, err := t.pool.FetchRead(t.headerPageID)
	if err != nil {
		return nil, err
	}
	root := page.RootPageID(hg.Bytes())
	hg.Release()
	if root == guard.Invalid {
		return t.End(), nil
	}

	cur, err := t.pool.FetchRead(root)
	if err != nil {
		return nil, err
	}
	for t.requireKind(cur.Bytes()) != page.KindLeaf {
		in := t.internalOf(cur.Bytes())
		t.requireOccupancy(in.Size(), in.MaxSize())
		var idx int
		if from == nil {
			idx = 0
		} else {
			idx = page.SearchInternal(in, from, t.cmp)
		}
		child := in.ValueAt(idx)
		next, err := t.pool.FetchRead(child)
		cur.Release()
		if err != nil {
			return nil, err
		}
		cur = next
	}

	leaf := t.leafOf(cur.Bytes())
	var slot int
	if from == nil {
		slot = 0
	} else {
		found := page.SearchLeaf(leaf, from, t.cmp)
		if found >= 0 && t.cmp.Compare(leaf.KeyAt(found), from) == 0 {
			slot = found
		} else {
			slot = found + 1
		}
	}

	it := &Iterator{tree: t, leaf: cur, slot: slot, started: true}
	it.skipPastLeafEnd()
	return it, nil
}

// skipPastLeafEnd advances to the next non-empty leaf whenever slot has run
// past the current leaf's occupied entries, chaining across sibling pages
// until a usable slot is found or the chain ends.
func (it *Iterator) skipPastLeafEnd() {
	for {
		if it.leaf == nil {
			it.atEnd = true
			return
		}
		leaf := it.tree.leafOf(it.leaf.Bytes())
		if it.slot < leaf.Size() {
			return
		}
		nextID := leaf.NextPageID()
		it.leaf.Release()
		it.leaf = nil
		if nextID == guard.Invalid {
			it.atEnd = true
			return
		}
		next, err := it.tree.pool.FetchRead(nextID)
		if err != nil {
			it.err = err
			it.atEnd = true
			return
		}
		it.leaf = next
		it.slot = 0
	}
}

// Next advances the cursor and reports whether a new current entry is
// available. Call Key/Value only after Next returns true.
func (it *Iterator) Next() bool {
	if it.atEnd || it.err != nil {
		return false
	}
	if it.started {
		it.started = false
	} else {
		it.slot++
	}
	it.skipPastLeafEnd()
	return !it.atEnd && it.err == nil
}

// Key returns the current entry's key. The returned slice is a copy and
// safe to retain past the next Next() call.
func (it *Iterator) Key() []byte {
	if it.atEnd || it.leaf == nil {
		return nil
	}
	leaf := it.tree.leafOf(it.leaf.Bytes())
	return append([]byte(nil), leaf.KeyAt(it.slot)...)
}

// Value returns the current entry's value, copied out of the page buffer.
func (it *Iterator) Value() []byte {
	if it.atEnd || it.leaf == nil {
		return nil
	}
	leaf := it.tree.leafOf(it.leaf.Bytes())
	return append([]byte(nil), leaf.ValueAt(it.slot)...)
}

// Error returns any error encountered while advancing the cursor.
func (it *Iterator) Error() error { return it.err }

// Close releases the iterator's held leaf latch, if any. Safe to call more
// than once.
func (it *Iterator) Close() error {
	if it.leaf != nil {
		it.leaf.Release()
		it.leaf = nil
	}
	it.atEnd = true
	return it.err
}
