package pond

import "fmt"

// AccessErrorCode identifies the boundary error kind a Pool reports
// (spec.md §7): every case is returned as a value, never panicked.
type AccessErrorCode int

const (
	// NotOccupied means the index named a slot that is currently free, or
	// outside the pool's current capacity.
	NotOccupied AccessErrorCode = iota
	// OutOfRange means the index was negative or otherwise unaddressable.
	OutOfRange
)

func (c AccessErrorCode) String() string {
	switch c {
	case NotOccupied:
		return "not occupied"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// AccessError is returned by operations that name a slot the Pool cannot
// service. It is a value error, not a panic: invariant violations (spec.md
// §3 I1-I4) are a different, unrecoverable failure mode and panic instead.
type AccessError struct {
	Code  AccessErrorCode
	Index int
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("pond: index %d: %s", e.Index, e.Code)
}

// Is lets errors.Is(err, pond.ErrNotOccupied) match any AccessError whose
// Code is NotOccupied, regardless of Index.
func (e *AccessError) Is(target error) bool {
	t, ok := target.(*AccessError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ErrNotOccupied and ErrOutOfRange are sentinel AccessErrors suitable for
// errors.Is comparisons; their Index field is not meaningful.
var (
	ErrNotOccupied = &AccessError{Code: NotOccupied}
	ErrOutOfRange  = &AccessError{Code: OutOfRange}
)
