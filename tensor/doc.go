// SPDX-License-Identifier: MIT

// Package tensor provides rank-generic addressing and sum-factorized
// contractions for tensor-shaped vectors.
//
// A tensor-shaped vector is a flat []float64 of length Π n_d interpreted as a
// D-dimensional array. The layout is fixed throughout this module: axis 0
// varies fastest, so the flat offset of (i_0, …, i_{D-1}) is
//
//	i_0 + n_0·(i_1 + n_1·(i_2 + …))
//
// which is the lexicographic numbering of tensor-product degrees of freedom.
//
// Index is a bounds-checked multi-index of rank 1 to 4; Shape holds the
// extents and converts between Index and flat offsets; ApplyAxis multiplies a
// small square matrix along one axis without materializing the Kronecker
// product, at cost O(n_axis · Π n_d).
package tensor
