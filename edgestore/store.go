// Package edgestore keeps the directed, weighted edges of a network in a
// per-source adjacency index.
//
// All edges sharing a source form one contiguous range ordered by target, so
// iterating a source costs time proportional to its out-degree and iterating
// the whole store visits edges in (source, target) order.
package edgestore

import (
	"cmp"
	"slices"
)

// Edge is one outgoing connection of a source.
type Edge struct {
	Target int
	Weight float64
}

// Store maps (source, target) pairs to weights.
type Store struct {
	adjacency [][]Edge
	numEdges  int
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

func compareTarget(e Edge, target int) int {
	return cmp.Compare(e.Target, target)
}

func (s *Store) row(source int) []Edge {
	if source < 0 || source >= len(s.adjacency) {
		return nil
	}

	return s.adjacency[source]
}

// Insert adds an edge. It returns false and leaves the store untouched if the
// pair already exists or an index is negative.
func (s *Store) Insert(source, target int, weight float64) bool {
	if source < 0 || target < 0 {
		return false
	}

	row := s.row(source)
	pos, found := slices.BinarySearchFunc(row, target, compareTarget)
	if found {
		return false
	}

	if source >= len(s.adjacency) {
		s.adjacency = slices.Grow(s.adjacency, source+1-len(s.adjacency))
		s.adjacency = s.adjacency[:source+1]
	}

	s.adjacency[source] = slices.Insert(row, pos, Edge{Target: target, Weight: weight})
	s.numEdges++

	return true
}

// Contains reports whether the pair exists.
func (s *Store) Contains(source, target int) bool {
	_, found := slices.BinarySearchFunc(s.row(source), target, compareTarget)
	return found
}

// Weight returns the weight stored for the pair.
func (s *Store) Weight(source, target int) (float64, bool) {
	row := s.row(source)

	pos, found := slices.BinarySearchFunc(row, target, compareTarget)
	if !found {
		return 0, false
	}

	return row[pos].Weight, true
}

// Range returns the outgoing edges of source in target order. The returned
// slice is owned by the store and must not be modified or retained across
// mutations.
func (s *Store) Range(source int) []Edge {
	return s.row(source)
}

// OutDegree returns the number of edges leaving source.
func (s *Store) OutDegree(source int) int {
	return len(s.row(source))
}

// Each visits every edge in (source, target) order until fn returns false.
func (s *Store) Each(fn func(source int, e Edge) bool) {
	for source, row := range s.adjacency {
		for _, e := range row {
			if !fn(source, e) {
				return
			}
		}
	}
}

// Len returns the number of edges in the store.
func (s *Store) Len() int {
	return s.numEdges
}

// Clear removes every edge.
func (s *Store) Clear() {
	s.adjacency = nil
	s.numEdges = 0
}
