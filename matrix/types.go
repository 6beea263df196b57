// SPDX-License-Identifier: MIT

package matrix

// Matrix is the read/write view the solver packages accept for per-axis
// mass and stiffness operands. *Dense is the only implementation in this
// module; kernels call AsDense once and then work on the flat slice, so a
// foreign implementation costs one copy per call.
type Matrix interface {
	Rows() int
	Cols() int

	// At returns entry (i, j), or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set stores v at (i, j), or returns ErrOutOfRange.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}

var _ Matrix = (*Dense)(nil)
