package bhpt

import "testing"

func TestHistory_ShiftInOrdering(t *testing.T) {
	h := newHistoryStore(1, 4)
	pushes := []uint8{1, 0, 1, 1, 0}
	for _, b := range pushes {
		h.shiftIn(0, b)
	}
	got := h.readRow(0)
	want := []uint8{0, 1, 1, 0}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("position %d: got %d, want %d (full row %v)", i, got[i], w, got)
		}
	}
}

func TestHistory_ShiftInDiscardsOldest(t *testing.T) {
	h := newHistoryStore(1, 3)
	h.shiftIn(0, 1) // [1,0,0]
	h.shiftIn(0, 1) // [1,1,0]
	h.shiftIn(0, 1) // [1,1,1]
	h.shiftIn(0, 0) // [0,1,1] -- the first 1 pushed is now discarded
	got := h.readRow(0)
	want := []uint8{0, 1, 1}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("position %d: got %d, want %d", i, got[i], w)
		}
	}
}

func TestHistory_ShiftInCrossesWordBoundary(t *testing.T) {
	h := newHistoryStore(1, 70) // 2 words per row
	for i := 0; i < 70; i++ {
		h.shiftIn(0, uint8(i%2))
	}
	row := h.readRow(0)
	for i, b := range row {
		want := uint8((69 - i) % 2)
		if b != want {
			t.Fatalf("position %d: got %d, want %d", i, b, want)
		}
	}
}

func TestHistory_ClearZeroesRow(t *testing.T) {
	h := newHistoryStore(2, 8)
	for i := 0; i < 8; i++ {
		h.shiftIn(0, 1)
	}
	h.clear(0)
	row := h.readRow(0)
	for i, b := range row {
		if b != 0 {
			t.Fatalf("position %d not cleared: %d", i, b)
		}
	}
}

func TestHistory_RowsAreIndependent(t *testing.T) {
	h := newHistoryStore(2, 4)
	h.shiftIn(0, 1)
	row1 := h.readRow(1)
	for i, b := range row1 {
		if b != 0 {
			t.Fatalf("row 1 position %d affected by row 0 push: %d", i, b)
		}
	}
}
