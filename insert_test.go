package bptree

import "testing"

func TestInsert_DuplicateKeyIsIdempotentNoOp(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	ok, err := tree.Insert(k(10), valOf(10))
	if err != nil || !ok {
		t.Fatalf("first Insert(10) = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = tree.Insert(k(10), valOf(99))
	if err != nil {
		t.Fatalf("second Insert(10) error = %v", err)
	}
	if ok {
		t.Errorf("second Insert(10) = true, want false")
	}

	var values [][]byte
	found, err := tree.Get(k(10), &values)
	if err != nil || !found {
		t.Fatalf("Get(10) = (%v, %v), want (true, nil)", found, err)
	}
	if len(values) != 1 || keyAsInt64(values[0]) != 10 {
		t.Errorf("Get(10) values = %v, want the original value unchanged", values)
	}
}

func TestInsert_RoundTrip(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	keys := []int64{50, 10, 90, 30, 70, 20, 80, 40, 60}
	for _, key := range keys {
		if _, err := tree.Insert(k(key), valOf(key)); err != nil {
			t.Fatalf("Insert(%d) error = %v", key, err)
		}
	}
	for _, key := range keys {
		var values [][]byte
		found, err := tree.Get(k(key), &values)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", key, err)
		}
		if !found {
			t.Fatalf("Get(%d) = false, want true", key)
		}
		if keyAsInt64(values[0]) != key {
			t.Errorf("Get(%d) value = %d, want %d", key, keyAsInt64(values[0]), key)
		}
	}
}

func TestInsert_ManyKeysPreservesOrderAndBalance(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	const n = 500
	for i := int64(0); i < n; i++ {
		// insertion order deliberately not sorted
		key := (i * 97) % n
		if _, err := tree.Insert(k(key), valOf(key)); err != nil {
			t.Fatalf("Insert(%d) error = %v", key, err)
		}
	}
	want := make([]int64, n)
	for i := range want {
		want[i] = int64(i)
	}
	assertScan(t, tree, want)
	assertBalanced(t, tree)
}
