package bptree

import "testing"

func TestRemove_AbsentKeyIsNoOp(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	if _, err := tree.Insert(k(10), valOf(10)); err != nil {
		t.Fatalf("Insert(10) error = %v", err)
	}
	if err := tree.Remove(k(999)); err != nil {
		t.Fatalf("Remove(999) error = %v", err)
	}
	var values [][]byte
	found, err := tree.Get(k(10), &values)
	if err != nil || !found {
		t.Fatalf("Get(10) after no-op remove = (%v, %v), want (true, nil)", found, err)
	}
}

func TestRemove_EmptyTreeIsNoOp(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	if err := tree.Remove(k(1)); err != nil {
		t.Fatalf("Remove() on empty tree error = %v", err)
	}
	empty, err := tree.IsEmpty()
	if err != nil || !empty {
		t.Fatalf("IsEmpty() after Remove() on empty tree = (%v, %v), want (true, nil)", empty, err)
	}
}

func TestRemove_RoundTrip(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	for _, key := range []int64{10, 20, 30, 40, 50} {
		if _, err := tree.Insert(k(key), valOf(key)); err != nil {
			t.Fatalf("Insert(%d) error = %v", key, err)
		}
	}
	if err := tree.Remove(k(30)); err != nil {
		t.Fatalf("Remove(30) error = %v", err)
	}
	var values [][]byte
	found, err := tree.Get(k(30), &values)
	if err != nil {
		t.Fatalf("Get(30) error = %v", err)
	}
	if found {
		t.Errorf("Get(30) after Remove(30) = true, want false")
	}
	assertScan(t, tree, []int64{10, 20, 40, 50})
}

func TestRemove_DrainsTreeBackToEmpty(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	const n = 200
	for i := int64(0); i < n; i++ {
		if _, err := tree.Insert(k(i), valOf(i)); err != nil {
			t.Fatalf("Insert(%d) error = %v", i, err)
		}
	}
	// remove in a different order than insertion to exercise borrow/merge
	// from both left and right siblings
	for i := int64(0); i < n; i++ {
		key := (i * 131) % n
		if err := tree.Remove(k(key)); err != nil {
			t.Fatalf("Remove(%d) error = %v", key, err)
		}
	}
	empty, err := tree.IsEmpty()
	if err != nil {
		t.Fatalf("IsEmpty() error = %v", err)
	}
	if !empty {
		t.Errorf("IsEmpty() after draining every key = false, want true")
	}
	assertScan(t, tree, nil)
}

func TestRemove_PartialDrainLeavesRemainderIntact(t *testing.T) {
	tree := newTestTree(t, 4, 4)
	const n = 100
	for i := int64(0); i < n; i++ {
		if _, err := tree.Insert(k(i), valOf(i)); err != nil {
			t.Fatalf("Insert(%d) error = %v", i, err)
		}
	}
	var removed []int64
	for i := int64(0); i < n; i += 3 {
		if err := tree.Remove(k(i)); err != nil {
			t.Fatalf("Remove(%d) error = %v", i, err)
		}
		removed = append(removed, i)
	}

	removedSet := make(map[int64]bool, len(removed))
	for _, r := range removed {
		removedSet[r] = true
	}
	var want []int64
	for i := int64(0); i < n; i++ {
		if !removedSet[i] {
			want = append(want, i)
		}
	}
	assertScan(t, tree, want)

	for _, r := range removed {
		var values [][]byte
		found, err := tree.Get(k(r), &values)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", r, err)
		}
		if found {
			t.Errorf("Get(%d) = true after removal, want false", r)
		}
	}
}
