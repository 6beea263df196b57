// SPDX-License-Identifier: MIT
// Package matrix_test: kernel tests for Mul, Transpose, MatVec, Kron, Eigen,
// Cholesky and the triangular solves. Every kernel is checked on the *Dense
// fast path and on the hidden-type copy path.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/stretchr/testify/require"
)

const tol = 1e-10

func TestMul(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	want := [][]float64{{58, 64}, {139, 154}}

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	Compare(t, want, got, 0)

	got, err = matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	Compare(t, want, got, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	Compare(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at, 0)
}

func TestMatVec(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -1, -1}, y)

	y, err = matrix.MatVec(hide{a}, []float64{2, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 6, 10}, y)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestKron checks the fastest-varying-right layout of the Kronecker product.
func TestKron(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := MustRows(t, [][]float64{{0, 5}, {6, 7}})
	k, err := matrix.Kron(a, b)
	require.NoError(t, err)
	Compare(t, [][]float64{
		{0, 5, 0, 10},
		{6, 7, 12, 14},
		{0, 15, 0, 20},
		{18, 21, 24, 28},
	}, k, 0)

	// (A⊗B)(x⊗y) = (Ax)⊗(By)
	x, y := []float64{1, -2}, []float64{3, 1}
	xy := []float64{x[0] * y[0], x[0] * y[1], x[1] * y[0], x[1] * y[1]}
	lhs, err := matrix.MatVec(k, xy)
	require.NoError(t, err)
	ax, _ := matrix.MatVec(a, x)
	by, _ := matrix.MatVec(b, y)
	require.InDeltaSlice(t, []float64{ax[0] * by[0], ax[0] * by[1], ax[1] * by[0], ax[1] * by[1]}, lhs, tol)
}

// TestEigenReconstruct verifies A·Q = Q·diag(λ), QᵀQ = I and ascending order.
func TestEigenReconstruct(t *testing.T) {
	for _, n := range []int{1, 2, 5, 9} {
		a := RandomSPD(t, n, int64(n))
		vals, q, err := matrix.Eigen(a, 1e-12, 100*n*n+10)
		require.NoError(t, err)
		require.Len(t, vals, n)
		for i := 1; i < n; i++ {
			require.LessOrEqual(t, vals[i-1], vals[i])
		}

		aq, err := matrix.Mul(a, q)
		require.NoError(t, err)
		lam, err := matrix.NewDiagonal(vals)
		require.NoError(t, err)
		ql, err := matrix.Mul(q, lam)
		require.NoError(t, err)
		ok, err := matrix.AllClose(aq, ql, 1e-9, 1e-9)
		require.NoError(t, err)
		require.True(t, ok, "n=%d", n)

		qt, _ := matrix.Transpose(q)
		qtq, _ := matrix.Mul(qt, q)
		id, _ := matrix.NewIdentity(n)
		ok, err = matrix.AllClose(qtq, id, 0, 1e-9)
		require.NoError(t, err)
		require.True(t, ok, "n=%d", n)
	}
}

func TestEigenDiagonalInput(t *testing.T) {
	d := MustRows(t, [][]float64{{4, 0}, {0, 1}})
	vals, q, err := matrix.Eigen(d, 1e-12, 10)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 4}, vals)
	Compare(t, [][]float64{{0, 1}, {1, 0}}, q, 0)
}

func TestEigenErrors(t *testing.T) {
	_, _, err := matrix.Eigen(MustRows(t, [][]float64{{1, 2}, {0, 1}}), 1e-12, 10)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(RandomSPD(t, 6, 3), 1e-14, 1)
	require.ErrorIs(t, err, matrix.ErrEigenFailed)
}

func TestCholesky(t *testing.T) {
	m := RandomSPD(t, 6, 11)
	l, err := matrix.Cholesky(m, 1e-14)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			v, _ := l.At(i, j)
			require.Zero(t, v)
		}
	}
	lt, _ := matrix.Transpose(l)
	llt, _ := matrix.Mul(l, lt)
	ok, err := matrix.AllClose(llt, m, 1e-12, 1e-12)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCholeskyRejectsIndefinite(t *testing.T) {
	cases := map[string][][]float64{
		"negative diagonal": {{1, 0}, {0, -1}},
		"indefinite":        {{1, 2}, {2, 1}},
		"zero":              {{0, 0}, {0, 0}},
		"semidefinite":      {{1, 1}, {1, 1}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := matrix.Cholesky(MustRows(t, rows), 1e-12)
			require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
		})
	}
}

func TestTriangularSolves(t *testing.T) {
	m := RandomSPD(t, 5, 5)
	l, err := matrix.Cholesky(m, 1e-14)
	require.NoError(t, err)
	b := RandomSPD(t, 5, 6)

	x, err := matrix.SolveLower(l, b)
	require.NoError(t, err)
	lx, _ := matrix.Mul(l, x)
	ok, _ := matrix.AllClose(lx, b, 1e-10, 1e-10)
	require.True(t, ok)

	y, err := matrix.SolveLowerT(hide{l}, b)
	require.NoError(t, err)
	lt, _ := matrix.Transpose(l)
	lty, _ := matrix.Mul(lt, y)
	ok, _ = matrix.AllClose(lty, b, 1e-10, 1e-10)
	require.True(t, ok)

	_, err = matrix.SolveLower(MustDense(t, 2, 2), MustDense(t, 2, 1))
	require.ErrorIs(t, err, matrix.ErrSingular)
	_, err = matrix.SolveLower(l, MustDense(t, 4, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAllClose(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}})
	b := MustRows(t, [][]float64{{1, 2.001}})
	ok, err := matrix.AllClose(a, b, 0, 1e-2)
	require.NoError(t, err)
	require.True(t, ok)
	ok, _ = matrix.AllClose(a, b, 0, 1e-4)
	require.False(t, ok)
	_, err = matrix.AllClose(a, MustDense(t, 2, 1), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
