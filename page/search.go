package page

import "github.com/lattice-db/bptree/keycmp"

// SearchLeaf finds the largest index r such that KeyAt(r) <= key, or -1 if
// no such slot exists (§4.2). Equality at r means "found"; callers compare
// cmp.Compare(n.KeyAt(r), key) == 0 themselves.
func SearchLeaf(n LeafNode, key []byte, cmp keycmp.Comparator) int {
	lo, hi := 0, n.Size()-1
	r := -1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if cmp.Compare(n.KeyAt(mid), key) <= 0 {
			r = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return r
}

// SearchInternal finds the child slot to descend into for key (§4.2).
// Search is restricted to slots 1..size-1 (slot 0's key is a sentinel).
// Returns the largest index r >= 1 with KeyAt(r) <= key, tie-breaking to the
// rightmost match so a separator-equal key routes into the right subtree
// (child_i covers the half-open range [key_i, key_{i+1}), per invariant 3); or 0
// if key is strictly less than KeyAt(1), meaning "descend via child_0".
func SearchInternal(n InternalNode, key []byte, cmp keycmp.Comparator) int {
	lo, hi := 1, n.Size()-1
	r := 0
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if cmp.Compare(n.KeyAt(mid), key) <= 0 {
			r = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return r
}
