package main

import (
	"cmp"
	"slices"
)

// Set is an unordered collection of distinct values. Ranging over it yields
// each member once.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func (s Set[T]) Add(v T)  { s[v] = struct{}{} }
func (s Set[T]) Len() int { return len(s) }

func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// Union adds every member of other to s.
func (s Set[T]) Union(other Set[T]) {
	for v := range other {
		s.Add(v)
	}
}

// SortedMembers returns the members of s in ascending order.
func SortedMembers[T cmp.Ordered](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
