// SPDX-License-Identifier: MIT

// Package tensorproduct implements the symmetric-sum tensor-product operator
//
//	L = Σ_{d=0}^{D-1} M_{D-1} ⊗ … ⊗ A_d ⊗ … ⊗ M_0,   D ∈ {1,2,3},
//
// built from one (mass M_d, stiffness A_d) pair per dimension, and its exact
// inverse by the fast diagonalization method.
//
// The operator is never assembled. Apply evaluates L·x by sum factorization,
// one small matrix per axis at a time, at cost O(D² · n · Π n_d). ApplyInverse
// transforms to the joint eigenbasis of the per-axis generalized eigenproblems
// A_d v = λ M_d v, divides by the sum of per-axis eigenvalues (the operator is
// diagonal there) and transforms back, at cost O(2D · n · Π n_d).
//
// Vectors are tensor-shaped with axis 0 varying fastest (see package tensor).
//
// A SymmetricSum is either Uninitialized (matrices supplied, decomposition
// pending) or Ready. Replacing the matrices returns it to Uninitialized; the
// next apply or an explicit Factorize makes it Ready again. Once Ready, any
// number of goroutines may apply it concurrently; matrix replacement takes an
// exclusive lock.
package tensorproduct
