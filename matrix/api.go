// SPDX-License-Identifier: MIT
// Package matrix: convenience constructors for the square operands used by
// the solver packages (identity and diagonal mass matrices, zero accumulators).

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Thin alias of NewDense.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewDiagonal returns diag(values).
// Errors: ErrInvalidDimensions for an empty slice.
func NewDiagonal(values []float64) (*Dense, error) {
	n := len(values)
	d, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if err = d.Set(i, i, v); err != nil {
			return nil, err
		}
	}

	return d, nil
}
