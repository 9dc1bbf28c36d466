// Package pond implements a generational-free object pool: a dense,
// index-addressable arena of T backed by an occindex.Index occupancy
// summary (spec.md §3/§4.3). Callers allocate slots to get a stable
// integer handle, read and write through it, release it, and periodically
// Defragment/Trim to restore density.
//
// Pond is single-owner and synchronous, like the teacher's arena package
// without its concurrency: every method must run to completion before the
// next one starts, and nothing here is safe to call from two goroutines at
// once.
package pond

import (
	"iter"

	"github.com/arenapool/pond/occindex"
	"github.com/arenapool/pond/slotstorage"
)

// Pool stores values of a single element type T in a dense array and
// tracks which cells are occupied through an occindex.Index.
type Pool[T any] struct {
	storage *slotstorage.Storage[T]
	index   occindex.Index
	pinned  map[int]struct{}
}

// Opt configures a Pool at construction time.
type Opt[T any] func(*Pool[T])

// WithIndex selects the occupancy index realization backing the pool.
// Without this option, New uses an accelerated Bitmap (occindex.NewBitmap).
func WithIndex[T any](idx occindex.Index) Opt[T] {
	return func(p *Pool[T]) { p.index = idx }
}

// New returns an empty Pool.
func New[T any](opts ...Opt[T]) *Pool[T] {
	p := &Pool[T]{
		storage: slotstorage.New[T](),
		index:   occindex.NewBitmap(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Capacity returns the number of addressable cells, occupied or free.
func (p *Pool[T]) Capacity() int { return p.index.Len() }

// NextIndex returns the index a subsequent Allocate would return, without
// reserving it.
func (p *Pool[T]) NextIndex() int {
	if i, ok := p.index.FindFirstFree(); ok {
		return i
	}
	return p.index.Len()
}

// Allocate reserves the lowest free index, stores v there, and returns the
// index. It grows the pool by one cell when no free slot exists.
func (p *Pool[T]) Allocate(v T) int {
	i, ok := p.index.FindFirstFree()
	if !ok {
		i = p.index.Len()
		p.Resize(i + 1)
	}
	p.storage.WriteAt(i, v)
	p.index.PointSet(i, true)
	return i
}

// Write stores v at index i, growing the pool to i+1 cells if necessary.
// It returns the value previously held there and true, or the zero value
// and false if the slot was free.
func (p *Pool[T]) Write(i int, v T) (old T, had bool) {
	if i < 0 {
		return old, false
	}
	if i >= p.index.Len() {
		p.Resize(i + 1)
	}
	if occ, _ := p.index.IsOccupied(i); occ {
		old, had = p.storage.TakeAt(i), true
	}
	p.storage.WriteAt(i, v)
	p.index.PointSet(i, true)
	return old, had
}

// Get returns a copy of the value at i, and true, iff i is occupied.
func (p *Pool[T]) Get(i int) (v T, ok bool) {
	if i < 0 {
		return v, false
	}
	occ, inRange := p.index.IsOccupied(i)
	if !inRange || !occ {
		return v, false
	}
	return *p.storage.ReadRef(i), true
}

// GetMut returns a pointer to the value at i for in-place mutation, and
// true, iff i is occupied. The pointer is invalidated by any subsequent
// call that mutates the free-set (Allocate, Write, Release, Resize,
// Defragment, Trim); callers must re-fetch via Get/GetMut afterwards.
func (p *Pool[T]) GetMut(i int) (*T, bool) {
	if i < 0 {
		return nil, false
	}
	occ, inRange := p.index.IsOccupied(i)
	if !inRange || !occ {
		return nil, false
	}
	return p.storage.ReadRef(i), true
}

// Release frees the slot at i, returning its value and true. It returns
// the zero value and false on a double-free or an out-of-range index.
func (p *Pool[T]) Release(i int) (v T, ok bool) {
	if i < 0 {
		return v, false
	}
	occ, inRange := p.index.IsOccupied(i)
	if !inRange || !occ {
		return v, false
	}
	v = p.storage.TakeAt(i)
	p.index.PointSet(i, false)
	delete(p.pinned, i)
	return v, true
}

// Resize grows or shrinks the pool to n cells. Shrinking drops every
// occupied value with index >= n and un-pins it, except that a pinned
// index is never dropped: if n would truncate below a pinned index, the
// shrink only proceeds down to one past the highest pinned index instead.
func (p *Pool[T]) Resize(n int) {
	c := p.index.Len()
	if n < c {
		if floor := p.minShrinkBound(); n < floor {
			n = floor
		}
		for i := n; i < c; i++ {
			if occ, _ := p.index.IsOccupied(i); occ {
				p.storage.DropAt(i)
			}
			delete(p.pinned, i)
		}
		p.storage.Truncate(n)
		p.index.Resize(n)
		return
	}
	if n > c {
		p.storage.Reserve(n)
		p.index.Resize(n)
	}
}

// minShrinkBound returns one past the highest currently pinned index, or 0
// if nothing is pinned: the smallest capacity Resize may shrink to without
// dropping a protected slot.
func (p *Pool[T]) minShrinkBound() int {
	bound := 0
	for i := range p.pinned {
		if i+1 > bound {
			bound = i + 1
		}
	}
	return bound
}

// Pin marks an occupied slot as protected: Defragment will never move its
// contents away and will never swap a free cell into it. It returns
// ErrNotOccupied if i does not currently hold a value.
func (p *Pool[T]) Pin(i int) error {
	occ, inRange := p.index.IsOccupied(i)
	if !inRange || !occ {
		return &AccessError{Code: NotOccupied, Index: i}
	}
	if p.pinned == nil {
		p.pinned = make(map[int]struct{})
	}
	p.pinned[i] = struct{}{}
	return nil
}

// Unpin removes a slot's protection, if any. It is a no-op if i was not
// pinned.
func (p *Pool[T]) Unpin(i int) { delete(p.pinned, i) }

// IsPinned reports whether i is currently protected from Defragment.
func (p *Pool[T]) IsPinned(i int) bool {
	_, pinned := p.pinned[i]
	return pinned
}

// lastMovableOccupied finds the highest occupied, unpinned index strictly
// above lowerBound. Pinned slots are skipped by walking the occupied chain
// downward from the index realization's FindLastOccupied answer; with no
// pins this degrades to a single Index query.
func (p *Pool[T]) lastMovableOccupied(lowerBound int) (int, bool) {
	i, ok := p.index.FindLastOccupied()
	if !ok || i <= lowerBound {
		return 0, false
	}
	for {
		if _, pinned := p.pinned[i]; !pinned {
			return i, true
		}
		i--
		for i > lowerBound {
			if occ, _ := p.index.IsOccupied(i); occ {
				break
			}
			i--
		}
		if i <= lowerBound {
			return 0, false
		}
	}
}

// Defragment rearranges occupied slots so they form a contiguous prefix,
// moving values from the back of the pool into free slots at the front. It
// returns a map from each moved value's old index to its new index; an old
// index absent from the map either never moved or was never occupied.
// Pinned slots (Pin) are never chosen as a move source or destination.
func (p *Pool[T]) Defragment() map[int]int {
	remap := make(map[int]int)
	for {
		free, ok := p.index.FindFirstFree()
		if !ok {
			break
		}
		full, ok := p.lastMovableOccupied(free)
		if !ok {
			break
		}
		if free >= full {
			break
		}
		p.storage.Swap(free, full)
		p.index.PointSet(free, true)
		p.index.PointSet(full, false)
		remap[full] = free
	}
	return remap
}

// Trim defragments, then shrinks capacity to the number of occupied cells.
// When a pinned slot lies beyond that count, capacity stops at one past the
// highest pinned index instead (see Resize). It returns the same remap
// Defragment would.
func (p *Pool[T]) Trim() map[int]int {
	remap := p.Defragment()
	n := p.index.Len()
	if i, ok := p.index.FindFirstFree(); ok {
		n = i
	}
	p.Resize(n)
	return remap
}

// Iter returns a lazy, ascending, non-restartable sequence of (index,
// value-copy) pairs over occupied cells.
func (p *Pool[T]) Iter() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range p.index.Len() {
			if occ, _ := p.index.IsOccupied(i); occ {
				if !yield(i, *p.storage.ReadRef(i)) {
					return
				}
			}
		}
	}
}

// IterMut returns a lazy, ascending, non-restartable sequence of (index,
// *value) pairs over occupied cells, suitable for in-place mutation.
func (p *Pool[T]) IterMut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range p.index.Len() {
			if occ, _ := p.index.IsOccupied(i); occ {
				if !yield(i, p.storage.ReadRef(i)) {
					return
				}
			}
		}
	}
}
