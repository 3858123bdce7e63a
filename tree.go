// Package bptree implements the core of a disk-resident, concurrent B+ tree
// secondary index: fixed-width keys mapped to fixed-width values under
// unique-key semantics, with point lookup, forward range scan, insertion
// (with splits and root growth), and deletion (with borrow/merge and root
// shrinking).
//
// The buffer pool manager, replacer policy, disk manager, and
// transaction/locking layers above the latch protocol are deliberately out
// of scope — this package only consumes them through the guard package's
// contract.
package bptree

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lattice-db/bptree/bpterr"
	"github.com/lattice-db/bptree/guard"
	"github.com/lattice-db/bptree/keycmp"
	"github.com/lattice-db/bptree/obslog"
	"github.com/lattice-db/bptree/page"
)

// Tree is the tree's public handle. One Tree wraps exactly one header page
// plus the node pages reachable from it; every operation opens that header
// page first (§4: "A tree operation opens a header guard, reads the root
// page id...").
type Tree struct {
	name            string
	headerPageID    guard.PageID
	pool            guard.BufferPool
	cmp             keycmp.Comparator
	keySize         int
	valueSize       int
	leafMaxSize     int
	internalMaxSize int
}

// New constructs a tree bound to headerPageID and initializes its root
// pointer to guard.Invalid (an empty tree). headerPageID must already be a
// page the buffer pool knows about — allocating it is the caller's
// responsibility, matching §6.2's constructor contract.
func New(
	name string,
	headerPageID guard.PageID,
	pool guard.BufferPool,
	cmp keycmp.Comparator,
	valueSize int,
	leafMaxSize int,
	internalMaxSize int,
) (*Tree, error) {
	if leafMaxSize < 3 {
		leafMaxSize = 3
	}
	if internalMaxSize < 3 {
		internalMaxSize = 3
	}
	t := &Tree{
		name:            name,
		headerPageID:    headerPageID,
		pool:            pool,
		cmp:             cmp,
		keySize:         cmp.KeySize(),
		valueSize:       valueSize,
		leafMaxSize:     leafMaxSize,
		internalMaxSize: internalMaxSize,
	}

	hg, err := pool.FetchWrite(headerPageID)
	if err != nil {
		return nil, err
	}
	defer hg.Release()

	pageBytes := len(hg.Bytes())
	leafReq := (page.LeafNode{KeySize: t.keySize, ValueSize: valueSize}).RequiredBytesFor(leafMaxSize)
	if leafReq > pageBytes {
		return nil, errors.Errorf("bptree: page size %d too small for leaf_max_size %d (needs %d)", pageBytes, leafMaxSize, leafReq)
	}
	internalReq := (page.InternalNode{KeySize: t.keySize}).RequiredBytesFor(internalMaxSize)
	if internalReq > pageBytes {
		return nil, errors.Errorf("bptree: page size %d too small for internal_max_size %d (needs %d)", pageBytes, internalMaxSize, internalReq)
	}

	page.SetRootPageID(hg.Bytes(), guard.Invalid)

	obslog.Logger.Debug().
		Str("tree", name).
		Int("leaf_max_size", leafMaxSize).
		Int("internal_max_size", internalMaxSize).
		Msg("tree initialized")
	return t, nil
}

// RootPageID returns the current root page id, or guard.Invalid if the tree
// is empty.
func (t *Tree) RootPageID() (guard.PageID, error) {
	hg, err := t.pool.FetchRead(t.headerPageID)
	if err != nil {
		return guard.Invalid, err
	}
	defer hg.Release()
	return page.RootPageID(hg.Bytes()), nil
}

// IsEmpty reports whether the tree currently has no root page.
func (t *Tree) IsEmpty() (bool, error) {
	root, err := t.RootPageID()
	if err != nil {
		return false, err
	}
	return root == guard.Invalid, nil
}

func (t *Tree) internalOf(data []byte) page.InternalNode {
	return page.InternalNode{Data: data, KeySize: t.keySize}
}

func (t *Tree) leafOf(data []byte) page.LeafNode {
	return page.LeafNode{Data: data, KeySize: t.keySize, ValueSize: t.valueSize}
}

// requireKind reads a node page's kind tag and halts per §7 if it isn't one
// of the two recognized values — a latched page that fails this check is
// corrupt, not merely absent, so no operation can safely continue past it.
func (t *Tree) requireKind(data []byte) page.Kind {
	k := page.KindOf(data)
	if k != page.KindInternal && k != page.KindLeaf {
		bpterr.Halt(bpterr.InvariantKind, fmt.Sprintf("unrecognized node kind byte %d", uint8(k)))
	}
	return k
}

// requireOccupancy halts per §7 if size falls outside what a formatted node
// of this maxSize can ever legitimately hold.
func (t *Tree) requireOccupancy(size, maxSize int) {
	if size < 0 || size > maxSize {
		bpterr.Halt(bpterr.InvariantOccupancy, fmt.Sprintf("size %d outside [0, %d]", size, maxSize))
	}
}

// isSafeForInsert is §4.5/§9's conservative safety predicate: a node known
// in advance to not need to split if this operation adds one more
// separator to it.
func (t *Tree) isSafeForInsert(size int) bool {
	return size < t.internalMaxSize-1
}

// isSafeForDelete is §4.7's safety predicate: a node known in advance to
// stay at or above min_size even after this operation removes one entry from a
// child beneath it.
func (t *Tree) isSafeForDelete(size, minSize int) bool {
	return size > minSize
}
