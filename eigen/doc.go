// SPDX-License-Identifier: MIT

// Package eigen solves the symmetric-definite generalized eigenproblem
//
//	A v = λ M v,   M symmetric positive definite, A symmetric,
//
// returning eigenvalues in ascending order and an eigenvector matrix V whose
// columns are M-orthonormal (Vᵀ M V = I), so that A V = M V diag(λ).
//
// Both backends reduce the problem to a standard one through the Cholesky
// factor M = L Lᵀ: C = L⁻¹ A L⁻ᵀ is symmetric with the same eigenvalues, and
// V = L⁻ᵀ W maps its orthonormal eigenvectors W back. Gonum uses gonum's
// Cholesky and EigenSym; Jacobi uses the matrix package kernels only.
package eigen
