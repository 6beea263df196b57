// SPDX-License-Identifier: MIT

package fe

import "errors"

var (
	// ErrUnknownElement indicates no factory is registered for a (kind, dim) key.
	ErrUnknownElement = errors.New("fe: unknown element")

	// ErrBadName indicates an element name that does not parse as FAMILY<dim>(degree).
	ErrBadName = errors.New("fe: malformed element name")

	// ErrBadDegree indicates a polynomial degree the family does not support.
	ErrBadDegree = errors.New("fe: unsupported degree")

	// ErrBadDim indicates a cell dimension outside 1..3.
	ErrBadDim = errors.New("fe: dimension must be in 1..3")

	// ErrDuplicate indicates a second registration for the same (kind, dim) key.
	ErrDuplicate = errors.New("fe: element already registered")

	// ErrBadSpacing indicates a non-positive or non-finite cell size, or a
	// spacing list whose length differs from the element dimension.
	ErrBadSpacing = errors.New("fe: invalid cell size")

	// ErrPermutation indicates a permutation that is not a bijection of the
	// operand indices, or operands of the wrong length.
	ErrPermutation = errors.New("fe: invalid permutation")
)
