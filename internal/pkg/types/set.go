package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a mutable hash set backed by map[T]struct{}.
type Set[T comparable] map[T]struct{}

// NewSet returns a Set holding the given elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	set.Add(data...)
	return set
}

// Add inserts values into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Delete removes values from the set. Missing values are ignored.
func (s Set[T]) Delete(values ...T) {
	for _, val := range values {
		delete(s, val)
	}
}

// Has reports whether val is a member of the set.
func (s Set[T]) Has(val T) bool {
	_, ok := s[val]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s)
}

// ToIter yields every member in unspecified order.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice returns the members in unspecified order.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
