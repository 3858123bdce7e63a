package page

import (
	"bytes"
	"testing"

	"github.com/lattice-db/bptree/guard"
	"github.com/lattice-db/bptree/keycmp"
)

func newLeafBuf(maxSize, keySize, valueSize int) LeafNode {
	n := LeafNode{Data: make([]byte, 4096), KeySize: keySize, ValueSize: valueSize}
	n.Init(maxSize)
	return n
}

func newInternalBuf(maxSize, keySize int) InternalNode {
	n := InternalNode{Data: make([]byte, 4096), KeySize: keySize}
	n.Init(maxSize)
	return n
}

func TestLeafNode_InitAndAccessors(t *testing.T) {
	leaf := newLeafBuf(4, 8, 8)
	if leaf.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", leaf.Size())
	}
	if leaf.MaxSize() != 4 {
		t.Fatalf("MaxSize() = %d, want 4", leaf.MaxSize())
	}
	if leaf.NextPageID() != guard.Invalid {
		t.Fatalf("NextPageID() = %v, want Invalid", leaf.NextPageID())
	}
	if !leaf.IsLeaf() {
		t.Fatalf("IsLeaf() = false, want true")
	}

	leaf.SetSize(2)
	leaf.SetKeyAt(0, keycmp.EncodeInt64(10))
	leaf.SetValueAt(0, []byte("value___"))
	leaf.SetKeyAt(1, keycmp.EncodeInt64(20))
	leaf.SetValueAt(1, []byte("value2__"))

	if got := keycmp.DecodeInt64(leaf.KeyAt(0)); got != 10 {
		t.Errorf("KeyAt(0) = %d, want 10", got)
	}
	if got := keycmp.DecodeInt64(leaf.KeyAt(1)); got != 20 {
		t.Errorf("KeyAt(1) = %d, want 20", got)
	}
	if !bytes.Equal(leaf.ValueAt(0), []byte("value___")) {
		t.Errorf("ValueAt(0) = %q, want %q", leaf.ValueAt(0), "value___")
	}
}

func TestLeafNode_ShiftRightInsertsHole(t *testing.T) {
	leaf := newLeafBuf(4, 8, 8)
	leaf.SetSize(2)
	leaf.SetKeyAt(0, keycmp.EncodeInt64(10))
	leaf.SetKeyAt(1, keycmp.EncodeInt64(30))

	leaf.ShiftRight(1)
	leaf.SetKeyAt(1, keycmp.EncodeInt64(20))
	leaf.IncreaseSize(1)

	want := []int64{10, 20, 30}
	for i, w := range want {
		if got := keycmp.DecodeInt64(leaf.KeyAt(i)); got != w {
			t.Errorf("KeyAt(%d) = %d, want %d", i, got, w)
		}
	}
	if leaf.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", leaf.Size())
	}
}

func TestLeafNode_ShiftLeftClosesHole(t *testing.T) {
	leaf := newLeafBuf(4, 8, 8)
	leaf.SetSize(3)
	leaf.SetKeyAt(0, keycmp.EncodeInt64(10))
	leaf.SetKeyAt(1, keycmp.EncodeInt64(20))
	leaf.SetKeyAt(2, keycmp.EncodeInt64(30))

	leaf.ShiftLeft(1)
	leaf.IncreaseSize(-1)

	want := []int64{10, 30}
	for i, w := range want {
		if got := keycmp.DecodeInt64(leaf.KeyAt(i)); got != w {
			t.Errorf("KeyAt(%d) = %d, want %d", i, got, w)
		}
	}
	if leaf.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", leaf.Size())
	}
}

func TestSearchLeaf(t *testing.T) {
	leaf := newLeafBuf(8, 8, 8)
	vals := []int64{10, 20, 30, 40}
	leaf.SetSize(len(vals))
	for i, v := range vals {
		leaf.SetKeyAt(i, keycmp.EncodeInt64(v))
	}
	cmp := keycmp.Int64{}

	tests := []struct {
		key  int64
		want int
	}{
		{5, -1},
		{10, 0},
		{15, 0},
		{30, 2},
		{45, 3},
	}
	for _, tt := range tests {
		if got := SearchLeaf(leaf, keycmp.EncodeInt64(tt.key), cmp); got != tt.want {
			t.Errorf("SearchLeaf(%d) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestSearchInternal(t *testing.T) {
	in := newInternalBuf(8, 8)
	// slot 0 is the sentinel child; separators live at slots 1..3
	in.SetSize(4)
	in.SetKeyAt(1, keycmp.EncodeInt64(10))
	in.SetKeyAt(2, keycmp.EncodeInt64(20))
	in.SetKeyAt(3, keycmp.EncodeInt64(30))
	cmp := keycmp.Int64{}

	tests := []struct {
		key  int64
		want int
	}{
		{5, 0},
		{10, 1},
		{15, 1},
		{20, 2},
		{30, 3},
		{35, 3},
	}
	for _, tt := range tests {
		if got := SearchInternal(in, keycmp.EncodeInt64(tt.key), cmp); got != tt.want {
			t.Errorf("SearchInternal(%d) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestInternalNode_CopyRange(t *testing.T) {
	src := newInternalBuf(8, 8)
	src.SetSize(4)
	for i := 1; i < 4; i++ {
		src.SetKeyAt(i, keycmp.EncodeInt64(int64(i*10)))
		src.SetValueAt(i, guard.PageID(i))
	}

	dst := newInternalBuf(8, 8)
	dst.CopyRange(src, 1, 4, 0)
	dst.SetSize(3)

	for i := 0; i < 3; i++ {
		wantKey := int64((i + 1) * 10)
		if got := keycmp.DecodeInt64(dst.KeyAt(i)); got != wantKey {
			t.Errorf("dst.KeyAt(%d) = %d, want %d", i, got, wantKey)
		}
		if got := dst.ValueAt(i); got != guard.PageID(i+1) {
			t.Errorf("dst.ValueAt(%d) = %v, want %v", i, got, guard.PageID(i+1))
		}
	}
}

func TestHeaderRootPageID(t *testing.T) {
	data := make([]byte, HeaderSize)
	if got := RootPageID(data); got != guard.PageID(0) {
		t.Fatalf("zero-valued header RootPageID() = %v, want 0", got)
	}
	SetRootPageID(data, guard.PageID(42))
	if got := RootPageID(data); got != guard.PageID(42) {
		t.Errorf("RootPageID() = %v, want 42", got)
	}
}

func TestRequiredBytesFor(t *testing.T) {
	leaf := LeafNode{KeySize: 8, ValueSize: 8}
	if got := leaf.RequiredBytesFor(4); got <= 0 {
		t.Fatalf("RequiredBytesFor(4) = %d, want > 0", got)
	}
	in := InternalNode{KeySize: 8}
	if got := in.RequiredBytesFor(4); got <= 0 {
		t.Fatalf("RequiredBytesFor(4) = %d, want > 0", got)
	}
}
