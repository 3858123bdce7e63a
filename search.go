package bptree

import (
	"github.com/lattice-db/bptree/guard"
	"github.com/lattice-db/bptree/page"
)

// Get performs a point lookup (§4.4). It appends the found value to values
// and returns true on a hit; since keys are unique, at most one value is
// ever appended. This is pure crab-latching with read latches: only two
// page latches are ever held at once.
func (t *Tree) Get(key []byte, values *[][]byte) (bool, error) {
	hg, err := t.pool.FetchRead(t.headerPageID)
	if err != nil {
		return false, err
	}
	root := page.RootPageID(hg.Bytes())
	hg.Release()
	if root == guard.Invalid {
		return false, nil
	}

	cur, err := t.pool.FetchRead(root)
	if err != nil {
		return false, err
	}
	for t.requireKind(cur.Bytes()) != page.KindLeaf {
		in := t.internalOf(cur.Bytes())
		t.requireOccupancy(in.Size(), in.MaxSize())
		idx := page.SearchInternal(in, key, t.cmp)
		child := in.ValueAt(idx)
		next, err := t.pool.FetchRead(child)
		cur.Release()
		if err != nil {
			return false, err
		}
		cur = next
	}
	defer cur.Release()

	leaf := t.leafOf(cur.Bytes())
	slot := page.SearchLeaf(leaf, key, t.cmp)
	if slot < 0 {
		return false, nil
	}
	if t.cmp.Compare(leaf.KeyAt(slot), key) != 0 {
		return false, nil
	}
	v := append([]byte(nil), leaf.ValueAt(slot)...)
	*values = append(*values, v)
	return true, nil
}
