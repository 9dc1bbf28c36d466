// Package nullable provides an explicit zero-value sentinel wrapper for
// pool elements, for callers who would rather carry "is this slot empty"
// alongside the value itself than ask pond.Pool's occupancy index
// (spec.md §9's "admissible thin wrapper" around T).
//
// Grounded on the source's own parallel strategy for representing "empty":
// original_source/src/pondaos.rs stores `MaybeUninit<T>` and trusts the
// bitmap, while the Serialize impl at the bottom of that file turns every
// slot into `Option<T>` for the boundary form. Nullable is that Option<T>
// shape made available inside the pool too, for types that want to own
// their own emptiness.
package nullable

// Nullable holds either a present value of T or nothing. It is a plain
// value type; the zero value of Nullable[T] is Empty.
type Nullable[T any] struct {
	value   T
	present bool
}

// Of wraps v as a present value.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, present: true}
}

// Empty returns an absent Nullable of T.
func Empty[T any]() Nullable[T] {
	return Nullable[T]{}
}

// IsPresent reports whether the Nullable holds a value.
func (n Nullable[T]) IsPresent() bool { return n.present }

// Get returns the held value and true, or the zero value and false.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.present
}

// MustGet returns the held value, panicking if the Nullable is empty.
func (n Nullable[T]) MustGet() T {
	if !n.present {
		panic("nullable: MustGet on an empty Nullable")
	}
	return n.value
}

// OrElse returns the held value, or fallback if empty.
func (n Nullable[T]) OrElse(fallback T) T {
	if !n.present {
		return fallback
	}
	return n.value
}
