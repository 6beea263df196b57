// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, transpose, matrix-vector product, Kronecker product,
// Jacobi eigen-decomposition of symmetric matrices, Cholesky factorization and
// triangular solves. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel normalizes operands with AsDense once and then runs flat
//     row-major loops; results are always fresh *Dense values.
//   - Loop orders are fixed so that identical inputs give bitwise identical results.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// ZeroSum is the initial value for dot products and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opKron      = "Kron"
	opEigen     = "Eigen"
	opCholesky  = "Cholesky"
	opSolveL    = "SolveLower"
	opSolveLT   = "SolveLowerT"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes the matrix product a × b into a fresh Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: i→k→j loop so the inner loop streams one row of b and one row of the result.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := da.r, da.c, db.c
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j, aBase, bBase, rBase int
	var aik float64
	for i = 0; i < rows; i++ {
		aBase = i * inner
		rBase = i * cols
		for k = 0; k < inner; k++ {
			aik = da.data[aBase+k]
			if aik == 0 {
				continue
			}
			bBase = k * cols
			for j = 0; j < cols; j++ {
				res.data[rBase+j] += aik * db.data[bBase+j]
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a fresh Dense.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < dm.r; i++ {
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[i*dm.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Kron computes the Kronecker product a ⊗ b.
//
// Layout: (a ⊗ b)[i*rb+k, j*cb+l] = a[i,j]·b[k,l], so the index of b varies
// fastest. Building a tensor-product operator for a vector whose axis 0 varies
// fastest therefore reads Kron(M_{D-1}, …, Kron(M_1, M_0)).
//
// Complexity: Time O(ra*ca*rb*cb), Space the same.
func Kron(a, b Matrix) (*Dense, error) {
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	rows, cols := da.r*db.r, da.c*db.c
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}

	var i, j, k, l int
	var aij float64
	for i = 0; i < da.r; i++ {
		for j = 0; j < da.c; j++ {
			aij = da.data[i*da.c+j]
			if aij == 0 {
				continue
			}
			for k = 0; k < db.r; k++ {
				for l = 0; l < db.c; l++ {
					res.data[(i*db.r+k)*cols+j*db.c+l] = aij * db.data[k*db.c+l]
				}
			}
		}
	}

	return res, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol).
//   - Stage 2: repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and
//     apply a Jacobi rotation, accumulating it into Q.
//   - Stage 3: sort eigenpairs by ascending eigenvalue (stable on ties).
//
// Inputs:
//   - tol: absolute convergence threshold on the off-diagonal entries.
//   - maxIter: cap on the number of rotations.
//
// Returns:
//   - eigenvalues ascending, and Q whose columns are the matching orthonormal eigenvectors.
//
// Errors:
//   - ErrDimensionMismatch, ErrAsymmetry, ErrEigenFailed (off-diagonal ≥ tol after maxIter).
//
// Complexity:
//   - O(n) per rotation update plus O(n^2) per pivot scan; Space O(n^2).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := AsDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.CloneDense() // working copy; the input is never mutated
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i := 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		iter, i, j, p, q0 int
		maxOff, off       float64
		app, aqq, apq     float64
		aip, aiq          float64
		theta, t, c, s    float64
	)
	for iter = 0; iter < maxIter; iter++ {
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, q0 = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app = a.data[p*n+p]
		aqq = a.data[q0*n+q0]
		apq = a.data[p*n+q0]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == q0 {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+q0]
			a.data[i*n+p] = c*aip - s*aiq
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+q0] = s*aip + c*aiq
			a.data[q0*n+i] = a.data[i*n+q0]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q0*n+q0] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q0], a.data[q0*n+p] = 0, 0

		for i = 0; i < n; i++ {
			aip = q.data[i*n+p]
			aiq = q.data[i*n+q0]
			q.data[i*n+p] = c*aip - s*aiq
			q.data[i*n+q0] = s*aip + c*aiq
		}
	}

	// Final convergence check (covers iter == maxIter).
	maxOff = 0
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if off = math.Abs(a.data[i*n+j]); off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
	}

	order := make([]int, n)
	for i = 0; i < n; i++ {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return a.data[order[x]*n+order[x]] < a.data[order[y]*n+order[y]]
	})

	eigs := make([]float64, n)
	vecs, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for j = 0; j < n; j++ {
		eigs[j] = a.data[order[j]*n+order[j]]
		for i = 0; i < n; i++ {
			vecs.data[i*n+j] = q.data[i*n+order[j]]
		}
	}

	return eigs, vecs, nil
}

// Cholesky factorizes a symmetric positive-definite m as L·Lᵀ and returns L.
//
// Only the lower triangle of m is read. A pivot d_k is rejected when
// d_k ≤ tol·max_i |m[i,i]|, which also catches negative diagonal entries.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNotPositiveDefinite.
//
// Complexity:
//   - Time O(n^3/3), Space O(n^2).
func Cholesky(m Matrix, tol float64) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	dm, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := dm.r
	l, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var maxDiag float64
	for i := 0; i < n; i++ {
		if d := math.Abs(dm.data[i*n+i]); d > maxDiag {
			maxDiag = d
		}
	}
	if maxDiag == 0 {
		return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
	}
	floor := math.Abs(tol) * maxDiag

	var i, j, k int
	var sum float64
	for j = 0; j < n; j++ {
		sum = dm.data[j*n+j]
		for k = 0; k < j; k++ {
			sum -= l.data[j*n+k] * l.data[j*n+k]
		}
		if !(sum > floor) { // also rejects NaN
			return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d = %g: %w", j, sum, ErrNotPositiveDefinite))
		}
		ljj := math.Sqrt(sum)
		l.data[j*n+j] = ljj
		for i = j + 1; i < n; i++ {
			sum = dm.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= l.data[i*n+k] * l.data[j*n+k]
			}
			l.data[i*n+j] = sum / ljj
		}
	}

	return l, nil
}

// SolveLower solves L·X = B by forward substitution, L lower triangular.
// Errors: ErrDimensionMismatch, ErrSingular (zero diagonal).
// Complexity: O(n^2 * k) for B of size n×k.
func SolveLower(l, b Matrix) (*Dense, error) {
	dl, db, err := triangularOperands(opSolveL, l, b)
	if err != nil {
		return nil, err
	}
	n, k := dl.r, db.c
	x := db.CloneDense()

	var i, j, col int
	var piv float64
	for col = 0; col < k; col++ {
		for i = 0; i < n; i++ {
			sum := x.data[i*k+col]
			for j = 0; j < i; j++ {
				sum -= dl.data[i*n+j] * x.data[j*k+col]
			}
			if piv = dl.data[i*n+i]; piv == 0 {
				return nil, matrixErrorf(opSolveL, ErrSingular)
			}
			x.data[i*k+col] = sum / piv
		}
	}

	return x, nil
}

// SolveLowerT solves Lᵀ·X = B by backward substitution, reading only the
// lower triangle of L. Together with SolveLower it applies L⁻ᵀ and L⁻¹ from a
// Cholesky factor without forming a transpose.
// Errors: ErrDimensionMismatch, ErrSingular.
// Complexity: O(n^2 * k).
func SolveLowerT(l, b Matrix) (*Dense, error) {
	dl, db, err := triangularOperands(opSolveLT, l, b)
	if err != nil {
		return nil, err
	}
	n, k := dl.r, db.c
	x := db.CloneDense()

	var i, j, col int
	var piv float64
	for col = 0; col < k; col++ {
		for i = n - 1; i >= 0; i-- {
			sum := x.data[i*k+col]
			for j = i + 1; j < n; j++ {
				sum -= dl.data[j*n+i] * x.data[j*k+col] // (Lᵀ)[i,j] = L[j,i]
			}
			if piv = dl.data[i*n+i]; piv == 0 {
				return nil, matrixErrorf(opSolveLT, ErrSingular)
			}
			x.data[i*k+col] = sum / piv
		}
	}

	return x, nil
}

// triangularOperands validates a square triangular factor against a right-hand side.
func triangularOperands(tag string, l, b Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquare(l); err != nil {
		return nil, nil, matrixErrorf(tag, err)
	}
	if err := ValidateMulCompatible(l, b); err != nil {
		return nil, nil, matrixErrorf(tag, err)
	}
	dl, err := AsDense(l)
	if err != nil {
		return nil, nil, matrixErrorf(tag, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, nil, matrixErrorf(tag, err)
	}

	return dl, db, nil
}

// AllClose reports whether |a[i,j]-b[i,j]| ≤ atol + rtol·|b[i,j]| for all entries.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, _ := AsDense(a)
	db, _ := AsDense(b)
	for idx := range da.data {
		if math.Abs(da.data[idx]-db.data[idx]) > atol+rtol*math.Abs(db.data[idx]) {
			return false, nil
		}
	}

	return true, nil
}
