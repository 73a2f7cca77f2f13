package playback

import "testing"

func TestPlayOrder_StartsUnloaded(t *testing.T) {
	o := newPlayOrder(3)

	if o.position() != -1 {
		t.Errorf("position() = %d, want -1", o.position())
	}
	if _, ok := o.current(); ok {
		t.Error("current() ok = true, want false")
	}
	if o.len() != 3 {
		t.Errorf("len() = %d, want 3", o.len())
	}
}

func TestPlayOrder_NextWalksSequence(t *testing.T) {
	o := newPlayOrder(3)

	for want := range 3 {
		id, ok := o.next()
		if !ok {
			t.Fatalf("next() ok = false at step %d", want)
		}
		if id != want {
			t.Errorf("next() = %d, want %d", id, want)
		}
	}

	if _, ok := o.next(); ok {
		t.Error("next() past the end ok = true, want false")
	}
	if o.position() != 2 {
		t.Errorf("position() after failed next = %d, want 2", o.position())
	}
}

func TestPlayOrder_PrevStopsAtFront(t *testing.T) {
	o := newPlayOrder(3)
	o.moveTo(2)

	if id, ok := o.prev(); !ok || id != 1 {
		t.Errorf("prev() = %d, %v, want 1, true", id, ok)
	}
	if id, ok := o.prev(); !ok || id != 0 {
		t.Errorf("prev() = %d, %v, want 0, true", id, ok)
	}
	if _, ok := o.prev(); ok {
		t.Error("prev() at the front ok = true, want false")
	}
}

func TestPlayOrder_FirstAndLast(t *testing.T) {
	o := newPlayOrder(3)

	if id, ok := o.first(); !ok || id != 0 {
		t.Errorf("first() = %d, %v, want 0, true", id, ok)
	}
	if id, ok := o.last(); !ok || id != 2 {
		t.Errorf("last() = %d, %v, want 2, true", id, ok)
	}

	empty := newPlayOrder(0)
	if _, ok := empty.first(); ok {
		t.Error("first() on empty order ok = true, want false")
	}
	if _, ok := empty.last(); ok {
		t.Error("last() on empty order ok = true, want false")
	}
}

func TestPlayOrder_MoveTo(t *testing.T) {
	o := newPlayOrder(5)

	if !o.moveTo(3) {
		t.Fatal("moveTo(3) = false")
	}
	if id, _ := o.current(); id != 3 {
		t.Errorf("current() = %d, want 3", id)
	}
	if o.moveTo(42) {
		t.Error("moveTo(42) = true for an unknown ID")
	}
}

func TestPlayOrder_ClearUnloads(t *testing.T) {
	o := newPlayOrder(3)
	o.moveTo(1)

	o.clear()

	if _, ok := o.current(); ok {
		t.Error("current() ok = true after clear")
	}
}

func TestPlayOrder_ShuffleAnchorsCurrent(t *testing.T) {
	o := newPlayOrder(10)
	o.moveTo(7)

	o.shuffle()

	if o.position() != 0 {
		t.Errorf("position() = %d, want 0", o.position())
	}
	if id, _ := o.current(); id != 7 {
		t.Errorf("current() = %d, want 7", id)
	}
	assertPermutation(t, o.ids, 10)
}

func TestPlayOrder_ShuffleWithoutCurrent(t *testing.T) {
	o := newPlayOrder(10)

	o.shuffle()

	if o.position() != -1 {
		t.Errorf("position() = %d, want -1", o.position())
	}
	assertPermutation(t, o.ids, 10)
}

func TestPlayOrder_RestoreKeepsCurrent(t *testing.T) {
	o := newPlayOrder(10)
	o.moveTo(4)
	o.shuffle()

	o.restore()

	if id, _ := o.current(); id != 4 {
		t.Errorf("current() = %d, want 4", id)
	}
	if o.position() != 4 {
		t.Errorf("position() = %d, want 4", o.position())
	}
	for i, id := range o.ids {
		if id != i {
			t.Fatalf("ids[%d] = %d, want %d", i, id, i)
		}
	}
}

// assertPermutation checks that ids contains every value in [0, n)
// exactly once.
func assertPermutation(t *testing.T, ids []int, n int) {
	t.Helper()
	if len(ids) != n {
		t.Fatalf("len(ids) = %d, want %d", len(ids), n)
	}
	seen := make([]bool, n)
	for _, id := range ids {
		if id < 0 || id >= n {
			t.Fatalf("id %d out of range [0, %d)", id, n)
		}
		if seen[id] {
			t.Fatalf("id %d appears twice", id)
		}
		seen[id] = true
	}
}
