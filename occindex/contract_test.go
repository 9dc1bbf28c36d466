package occindex

import "testing"

// TestContractParity drives both realizations through the same sequence
// of operations and checks they answer identically, per spec.md §4.2's
// "required property": tests bind to the abstract Index contract, not to
// either realization.
func TestContractParity(t *testing.T) {
	impls := map[string]func() Index{
		"SegTree": func() Index { return NewSegTree() },
		"Bitmap":  func() Index { return NewBitmap() },
	}

	for name, newIdx := range impls {
		t.Run(name, func(t *testing.T) {
			idx := newIdx()
			idx.Resize(10)
			for _, i := range []int{0, 2, 3, 7, 9} {
				idx.PointSet(i, true)
			}

			if got, ok := idx.FindFirstFree(); !ok || got != 1 {
				t.Fatalf("FindFirstFree() = (%d, %v), want (1, true)", got, ok)
			}
			if got, ok := idx.FindLastOccupied(); !ok || got != 9 {
				t.Fatalf("FindLastOccupied() = (%d, %v), want (9, true)", got, ok)
			}

			idx.PointSet(9, false)
			if got, ok := idx.FindLastOccupied(); !ok || got != 7 {
				t.Fatalf("FindLastOccupied() after clearing 9 = (%d, %v), want (7, true)", got, ok)
			}

			idx.Resize(5)
			if idx.Len() != 5 {
				t.Fatalf("Len() = %d, want 5", idx.Len())
			}
			if occ, ok := idx.IsOccupied(3); !ok || !occ {
				t.Fatalf("IsOccupied(3) after shrink = (%v, %v), want (true, true)", occ, ok)
			}
			if _, ok := idx.IsOccupied(7); ok {
				t.Fatalf("IsOccupied(7) after shrinking below it should report ok=false")
			}

			idx.Resize(8)
			if occ, ok := idx.IsOccupied(7); !ok || occ {
				t.Fatalf("IsOccupied(7) after grow = (%v, %v), want (false, true)", occ, ok)
			}
		})
	}
}

// TestContractEmptyIndex checks every query on a zero-capacity index
// reports ok=false rather than panicking.
func TestContractEmptyIndex(t *testing.T) {
	impls := map[string]Index{
		"SegTree": NewSegTree(),
		"Bitmap":  NewBitmap(),
	}
	for name, idx := range impls {
		t.Run(name, func(t *testing.T) {
			if _, ok := idx.FindFirstFree(); ok {
				t.Fatalf("FindFirstFree on empty index should report ok=false")
			}
			if _, ok := idx.FindLastOccupied(); ok {
				t.Fatalf("FindLastOccupied on empty index should report ok=false")
			}
			if _, ok := idx.IsOccupied(0); ok {
				t.Fatalf("IsOccupied(0) on empty index should report ok=false")
			}
		})
	}
}
