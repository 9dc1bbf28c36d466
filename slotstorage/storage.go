// Package slotstorage implements the dense, index-addressed cell array
// described in spec.md §4.1: the "Storage" component of a pond.Pool. It
// has no opinion on occupancy — that's occindex's job — and will happily
// hand back the zero value of T for a cell nothing ever wrote.
//
// Grounded on alex60217101990-opa's v1/storage/arena package: cells live in
// fixed-size segments appended on demand (arena.go's extend/getNode), so
// growing the storage never copies already-written cells the way a single
// reslice-and-copy grow would.
package slotstorage

// SegmentSize is the number of cells per backing segment.
const SegmentSize = 512

// Storage is a dense array of T, addressed by a contiguous integer index
// range [0, CellCount()). It is single-owner: no method is safe for
// concurrent use without external synchronization.
type Storage[T any] struct {
	segments [][]T
	cells    int
}

// New returns an empty Storage.
func New[T any]() *Storage[T] { return &Storage[T]{} }

// CellCount returns the visible number of addressable cells.
func (s *Storage[T]) CellCount() int { return s.cells }

// segFor returns the segment and in-segment offset for a cell index.
func (s *Storage[T]) segFor(i int) (segIdx, off int) {
	return i / SegmentSize, i % SegmentSize
}

// Reserve grows the storage so indices [0, n) are addressable, extending
// the segment list as needed and leaving new cells at T's zero value. It
// never shrinks; use Truncate to shrink.
func (s *Storage[T]) Reserve(n int) {
	if n <= s.cells {
		return
	}
	needSegs := (n + SegmentSize - 1) / SegmentSize
	for len(s.segments) < needSegs {
		s.segments = append(s.segments, make([]T, SegmentSize))
	}
	s.cells = n
}

// WriteAt stores v at index i. i must be < CellCount().
func (s *Storage[T]) WriteAt(i int, v T) {
	segIdx, off := s.segFor(i)
	s.segments[segIdx][off] = v
}

// ReadRef returns a pointer to the cell at i for in-place reads or
// mutation. i must be < CellCount(); the caller is responsible for
// checking occupancy before trusting the contents.
func (s *Storage[T]) ReadRef(i int) *T {
	segIdx, off := s.segFor(i)
	return &s.segments[segIdx][off]
}

// TakeAt reads the cell at i and resets it to T's zero value, releasing
// any references it held so the garbage collector can reclaim them.
func (s *Storage[T]) TakeAt(i int) T {
	segIdx, off := s.segFor(i)
	v := s.segments[segIdx][off]
	var zero T
	s.segments[segIdx][off] = zero
	return v
}

// DropAt resets the cell at i to T's zero value without returning it.
func (s *Storage[T]) DropAt(i int) {
	segIdx, off := s.segFor(i)
	var zero T
	s.segments[segIdx][off] = zero
}

// Swap exchanges the contents of cells i and j.
func (s *Storage[T]) Swap(i, j int) {
	if i == j {
		return
	}
	ri, rj := s.ReadRef(i), s.ReadRef(j)
	*ri, *rj = *rj, *ri
}

// Truncate shrinks the visible cell count to n, dropping references held
// by cells >= n so they can be garbage collected, and releases whole
// segments that fall entirely outside the new range.
func (s *Storage[T]) Truncate(n int) {
	if n >= s.cells {
		return
	}
	for i := n; i < s.cells; i++ {
		s.DropAt(i)
	}
	keepSegs := (n + SegmentSize - 1) / SegmentSize
	if keepSegs < len(s.segments) {
		s.segments = s.segments[:keepSegs]
	}
	s.cells = n
}
