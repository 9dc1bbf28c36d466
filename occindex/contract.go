// Package occindex implements the occupancy index at the heart of pond's
// free-slot pool: a mapping from [0, capacity) to {free, occupied} that
// answers first-free and last-occupied queries, and point updates, in
// O(log capacity).
//
// Two realizations satisfy the same Index contract: SegTree (a packed
// binary segment tree over the occupancy bits) and Bitmap (a multi-layer
// bitmap with accelerated full/empty summaries). Callers should depend on
// Index, not on either concrete type.
package occindex

// Index is the abstract occupancy index contract (spec.md §3/§4.2).
//
// Implementations are single-owner: no method is safe for concurrent use
// without external synchronization.
type Index interface {
	// PointSet assigns occupancy[i] := occupied and restores every summary
	// on the path from the leaf to the root. i must be < Len().
	PointSet(i int, occupied bool)

	// FindFirstFree returns the smallest index with occupancy false, or
	// ok=false if every index in [0, Len()) is occupied (or Len() == 0).
	FindFirstFree() (idx int, ok bool)

	// FindLastOccupied returns the largest index with occupancy true, or
	// ok=false if every index in [0, Len()) is free (or Len() == 0).
	FindLastOccupied() (idx int, ok bool)

	// IsOccupied reports occupancy[i]. ok is false when i is out of
	// [0, Len()).
	IsOccupied(i int) (occupied bool, ok bool)

	// Resize grows or shrinks the visible index range to n. Growing
	// exposes only free bits; shrinking drops bits >= n.
	Resize(n int)

	// Len returns the caller-visible capacity (spec.md's "size", distinct
	// from any internal power-of-two rounding).
	Len() int
}
