// SPDX-License-Identifier: MIT

package tensorproduct

import "errors"

var (
	// ErrIllConditionedInput indicates that a per-dimension generalized
	// eigenproblem could not be solved, typically because a mass matrix is not
	// positive definite within tolerance. The underlying eigen error is joined
	// to it, so errors.Is also matches eigen.ErrNotPositiveDefinite etc.
	ErrIllConditionedInput = errors.New("tensorproduct: ill-conditioned input")

	// ErrSingularOperator indicates a joint eigenvalue Σ_d λ_d[i_d] that is
	// numerically zero at ApplyInverse time while no regularization is set.
	ErrSingularOperator = errors.New("tensorproduct: singular operator")

	// ErrDimension indicates a number of dimensions outside 1..MaxDim.
	ErrDimension = errors.New("tensorproduct: dimension must be in 1..3")

	// ErrShape indicates a missing, non-square or mismatched matrix pair.
	ErrShape = errors.New("tensorproduct: invalid matrix pair")

	// ErrVectorSize indicates a vector whose length is not Size().
	ErrVectorSize = errors.New("tensorproduct: vector size mismatch")

	// ErrTooLarge indicates an Assemble request above MaxAssembleSize.
	ErrTooLarge = errors.New("tensorproduct: operator too large to assemble")
)
