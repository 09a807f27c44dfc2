package chunk

import "testing"

func TestBlockPoolReuse(t *testing.T) {
	p := NewBlockPool(4)

	first := p.Borrow()
	p.Return(first)

	second := p.Borrow()
	if first != second {
		t.Error("expected the returned carrier to be reused")
	}
}

func TestBlockPoolResetOnBorrow(t *testing.T) {
	p := NewBlockPool(4)

	obj := p.BorrowWith(&BlockData{Coord: Coord{X: 1, Z: 1}})
	if !obj.HasData() {
		t.Fatal("BorrowWith should install data")
	}
	p.Return(obj)

	again := p.Borrow()
	if again.HasData() {
		t.Error("borrowed carrier should be empty after recycling")
	}
}

func TestBlockPoolCounters(t *testing.T) {
	p := NewBlockPool(1)

	a := p.Borrow()
	b := p.Borrow()
	p.Return(a)
	p.Return(b) // Discarded, pool already full

	stats := p.Stats()
	if stats.Borrowed != 2 {
		t.Errorf("Borrowed = %d, want 2", stats.Borrowed)
	}
	if stats.Returned != 2 {
		t.Errorf("Returned = %d, want 2 (discards still count)", stats.Returned)
	}
	if stats.InUse != 0 {
		t.Errorf("InUse = %d, want 0", stats.InUse)
	}
	if p.Size() != 1 {
		t.Errorf("Size() = %d, want 1", p.Size())
	}
}

func TestBlockPoolClear(t *testing.T) {
	p := NewBlockPool(4)

	p.Return(p.Borrow())
	p.Return(p.Borrow())
	p.Clear()

	if p.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", p.Size())
	}
}
