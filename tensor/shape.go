// SPDX-License-Identifier: MIT

package tensor

import "fmt"

// Shape lists the extents n_0..n_{D-1} of a tensor-shaped vector, axis 0
// varying fastest. Build it with NewShape; a Shape is never mutated after
// construction.
type Shape struct {
	ext  [MaxRank]int
	rank int
	size int
}

// NewShape validates extents (rank 1..MaxRank, each > 0) and returns a Shape.
// Errors: ErrRank, ErrNegative (non-positive extent).
func NewShape(extents ...int) (Shape, error) {
	var s Shape
	if len(extents) < 1 || len(extents) > MaxRank {
		return s, fmt.Errorf("NewShape: rank %d: %w", len(extents), ErrRank)
	}
	s.size = 1
	for d, n := range extents {
		if n <= 0 {
			return Shape{}, fmt.Errorf("NewShape: extent %d = %d: %w", d, n, ErrNegative)
		}
		s.ext[d] = n
		s.size *= n
	}
	s.rank = len(extents)

	return s, nil
}

// Rank returns the number of axes.
func (s Shape) Rank() int { return s.rank }

// Size returns Π n_d, the length of a matching flat vector.
func (s Shape) Size() int { return s.size }

// Extents returns a copy of n_0..n_{D-1}.
func (s Shape) Extents() []int {
	out := make([]int, s.rank)
	copy(out, s.ext[:s.rank])

	return out
}

// Extent returns n_axis.
// Errors: ErrOutOfRange.
func (s Shape) Extent(axis int) (int, error) {
	if axis < 0 || axis >= s.rank {
		return 0, fmt.Errorf("Shape.Extent(%d): %w", axis, ErrOutOfRange)
	}

	return s.ext[axis], nil
}

// Stride returns Π_{i<axis} n_i, the flat distance between neighbours along axis.
// Errors: ErrOutOfRange.
func (s Shape) Stride(axis int) (int, error) {
	if axis < 0 || axis >= s.rank {
		return 0, fmt.Errorf("Shape.Stride(%d): %w", axis, ErrOutOfRange)
	}

	return s.stride(axis), nil
}

func (s Shape) stride(axis int) int {
	st := 1
	for i := 0; i < axis; i++ {
		st *= s.ext[i]
	}

	return st
}

// Offset maps a multi-index to its flat position.
// Errors: ErrShapeMismatch on rank mismatch, ErrOutOfRange when a component
// reaches its extent.
func (s Shape) Offset(idx Index) (int, error) {
	if idx.Rank() != s.rank {
		return 0, fmt.Errorf("Shape.Offset%s: rank %d, want %d: %w", idx, idx.Rank(), s.rank, ErrShapeMismatch)
	}
	off := 0
	for d := s.rank - 1; d >= 0; d-- {
		v := idx.vals[d]
		if v >= s.ext[d] {
			return 0, fmt.Errorf("Shape.Offset%s: component %d ≥ %d: %w", idx, d, s.ext[d], ErrOutOfRange)
		}
		off = off*s.ext[d] + v
	}

	return off, nil
}

// IndexOf is the inverse of Offset.
// Errors: ErrOutOfRange when offset is outside [0, Size()).
func (s Shape) IndexOf(offset int) (Index, error) {
	if offset < 0 || offset >= s.size {
		return Index{}, fmt.Errorf("Shape.IndexOf(%d): %w", offset, ErrOutOfRange)
	}
	var idx Index
	idx.rank = s.rank
	for d := 0; d < s.rank; d++ {
		idx.vals[d] = offset % s.ext[d]
		offset /= s.ext[d]
	}

	return idx, nil
}

// Equal reports whether two shapes have identical extents.
func (s Shape) Equal(o Shape) bool {
	return s.rank == o.rank && s.ext == o.ext
}

// String renders the shape as "[n0 n1 ...]".
func (s Shape) String() string {
	return fmt.Sprint(s.ext[:s.rank])
}
