// SPDX-License-Identifier: MIT

package tensor

import "errors"

var (
	// ErrOutOfRange indicates a component or axis access beyond the declared
	// rank, or a multi-index component beyond its extent.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrRank indicates a rank outside 1..MaxRank.
	ErrRank = errors.New("tensor: rank must be in 1..4")

	// ErrNegative indicates a negative index component or extent.
	ErrNegative = errors.New("tensor: negative value")

	// ErrShapeMismatch indicates that a vector or matrix does not match the shape.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrAliased indicates that source and destination buffers overlap.
	ErrAliased = errors.New("tensor: source and destination alias")
)
