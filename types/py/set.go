// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package py

import (
	"cmp"
	"slices"
)

// Empty is the zero-width value stored for each element of a [Set].
type Empty struct{}

// Set is a set of comparable elements backed by a map.
type Set[T comparable] map[T]Empty

// NewSet creates a [Set] from the given items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	s.Insert(items...)
	return s
}

// KeySet creates a [Set] from the keys of m.
func KeySet[T comparable, V any](m map[T]V) Set[T] {
	s := make(Set[T], len(m))
	for k := range m {
		s[k] = Empty{}
	}
	return s
}

// Insert adds items to the set.
func (s Set[T]) Insert(items ...T) Set[T] {
	for _, item := range items {
		s[item] = Empty{}
	}
	return s
}

// Delete removes items from the set.
func (s Set[T]) Delete(items ...T) Set[T] {
	for _, item := range items {
		delete(s, item)
	}
	return s
}

// Clear removes all items from the set.
func (s Set[T]) Clear() Set[T] {
	clear(s)
	return s
}

// Has reports whether item is contained in the set.
func (s Set[T]) Has(item T) bool {
	_, ok := s[item]
	return ok
}

// HasAll reports whether all items are contained in the set.
func (s Set[T]) HasAll(items ...T) bool {
	for _, item := range items {
		if !s.Has(item) {
			return false
		}
	}
	return true
}

// HasAny reports whether any of items is contained in the set.
func (s Set[T]) HasAny(items ...T) bool {
	for _, item := range items {
		if s.Has(item) {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of the set.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for k := range s {
		out[k] = Empty{}
	}
	return out
}

// Union returns a new set holding the elements of s and other.
func (s Set[T]) Union(other Set[T]) Set[T] {
	out := s.Clone()
	for k := range other {
		out[k] = Empty{}
	}
	return out
}

// Intersection returns a new set holding the elements present in both s and other.
func (s Set[T]) Intersection(other Set[T]) Set[T] {
	walk, lookup := s, other
	if len(other) < len(s) {
		walk, lookup = other, s
	}
	out := NewSet[T]()
	for k := range walk {
		if lookup.Has(k) {
			out[k] = Empty{}
		}
	}
	return out
}

// Difference returns a new set holding the elements of s that are not in other.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	out := NewSet[T]()
	for k := range s {
		if !other.Has(k) {
			out[k] = Empty{}
		}
	}
	return out
}

// SymmetricDifference returns a new set holding the elements in exactly one of s and other.
func (s Set[T]) SymmetricDifference(other Set[T]) Set[T] {
	return s.Difference(other).Union(other.Difference(s))
}

// IsSuperset reports whether s contains every element of other.
func (s Set[T]) IsSuperset(other Set[T]) bool {
	for k := range other {
		if !s.Has(k) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other hold the same elements.
func (s Set[T]) Equal(other Set[T]) bool {
	return len(s) == len(other) && s.IsSuperset(other)
}

// UnsortedList returns the elements of the set in map iteration order.
func (s Set[T]) UnsortedList() []T {
	out := make([]T, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// PopAny removes and returns an arbitrary element.
func (s Set[T]) PopAny() (T, bool) {
	for k := range s {
		delete(s, k)
		return k, true
	}
	var zero T
	return zero, false
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// List returns the elements of s in ascending order.
func List[T cmp.Ordered](s Set[T]) []T {
	out := s.UnsortedList()
	slices.Sort(out)
	return out
}
