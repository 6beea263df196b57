// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra layer used by the
// tensor-product solvers.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set that return
//     errors instead of panicking.
//   - Central validators (nil, square, same shape, vector length, symmetry).
//   - Kernels: Mul, Transpose, MatVec, Kron, Jacobi Eigen, Cholesky and
//     triangular solves.
//
// Per-dimension matrices in a tensor-product operator are small (a few to a
// few dozen rows), so every kernel favours deterministic loop orders and a
// flat-slice fast path on *Dense over blocking or parallelism.
//
// All kernels return package sentinels; callers match them with errors.Is.
package matrix
