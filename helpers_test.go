package bptree

import (
	"testing"

	"github.com/lattice-db/bptree/keycmp"
	"github.com/lattice-db/bptree/storage/membuf"
)

// newTestTree builds a tree over a fresh in-memory pool with int64 keys and
// 8-byte values, the fixture every test in this package starts from.
func newTestTree(t *testing.T, leafMaxSize, internalMaxSize int) *Tree {
	t.Helper()
	pool := membuf.New()
	hg, err := pool.NewPage()
	if err != nil {
		t.Fatalf("pool.NewPage() error = %v", err)
	}
	headerID := hg.PageID()
	hg.Release()

	tree, err := New(t.Name(), headerID, pool, keycmp.Int64{}, 8, leafMaxSize, internalMaxSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tree
}

func k(v int64) []byte { return keycmp.EncodeInt64(v) }

func valOf(v int64) []byte {
	return k(v)
}

func keyAsInt64(b []byte) int64 { return keycmp.DecodeInt64(b) }
