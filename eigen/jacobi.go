// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tensorfdm/matrix"
)

// Jacobi solves the generalized problem with the matrix package only:
// matrix.Cholesky for the reduction and matrix.Eigen (Jacobi rotations) for
// the standard symmetric problem. It is slower than Gonum for larger n but has
// no dependencies beyond this module.
type Jacobi struct {
	Tol         float64 // relative off-diagonal tolerance; default 1e-13
	MaxIter     int     // rotation cap; default 50·n²+100
	SymmetryTol float64 // relative symmetry tolerance, DefaultSymmetryTol
	PivotTol    float64 // relative Cholesky pivot floor, DefaultPivotTol
}

var _ GeneralizedSolver = Jacobi{}

const (
	opJacobi          = "eigen.Jacobi"
	defaultJacobiTol  = 1e-13
	jacobiIterPerSize = 50
)

// Solve implements GeneralizedSolver.
//
// Errors:
//   - ErrShape, ErrNotSymmetric, ErrNotPositiveDefinite, ErrNotConverged, ErrNonFinite.
//
// Complexity: O(n^3) for the reduction plus O(sweeps·n^3) for Jacobi.
func (j Jacobi) Solve(mass, stiffness matrix.Matrix) (Decomposition, error) {
	tol, symTol, pivTol := j.Tol, j.SymmetryTol, j.PivotTol
	if tol <= 0 {
		tol = defaultJacobiTol
	}
	if symTol <= 0 {
		symTol = DefaultSymmetryTol
	}
	if pivTol <= 0 {
		pivTol = DefaultPivotTol
	}
	m, a, err := prepare(opJacobi, mass, stiffness, symTol)
	if err != nil {
		return Decomposition{}, err
	}
	n := m.Rows()
	maxIter := j.MaxIter
	if maxIter <= 0 {
		maxIter = jacobiIterPerSize*n*n + 100
	}

	l, err := matrix.Cholesky(m, pivTol)
	if err != nil {
		if errors.Is(err, matrix.ErrNotPositiveDefinite) {
			return Decomposition{}, fmt.Errorf("%s: %v: %w", opJacobi, err, ErrNotPositiveDefinite)
		}
		return Decomposition{}, fmt.Errorf("%s: %w", opJacobi, err)
	}

	// C = L⁻¹·A·L⁻ᵀ = L⁻¹·(L⁻¹·A)ᵀ since A is symmetric.
	y, err := matrix.SolveLower(l, a)
	if err != nil {
		return Decomposition{}, fmt.Errorf("%s: %w", opJacobi, err)
	}
	yt, err := matrix.Transpose(y)
	if err != nil {
		return Decomposition{}, fmt.Errorf("%s: %w", opJacobi, err)
	}
	c, err := matrix.SolveLower(l, yt)
	if err != nil {
		return Decomposition{}, fmt.Errorf("%s: %w", opJacobi, err)
	}
	raw := c.RawData()
	for r := 0; r < n; r++ {
		for s := r + 1; s < n; s++ {
			avg := 0.5 * (raw[r*n+s] + raw[s*n+r])
			raw[r*n+s], raw[s*n+r] = avg, avg
		}
	}

	vals, w, err := matrix.Eigen(c, matrix.SymmetryTol(c, tol), maxIter)
	if err != nil {
		if errors.Is(err, matrix.ErrEigenFailed) {
			return Decomposition{}, fmt.Errorf("%s: %v: %w", opJacobi, err, ErrNotConverged)
		}
		return Decomposition{}, fmt.Errorf("%s: %w", opJacobi, err)
	}
	v, err := matrix.SolveLowerT(l, w)
	if err != nil {
		return Decomposition{}, fmt.Errorf("%s: %w", opJacobi, err)
	}

	dec := Decomposition{Values: vals, Vectors: v}
	if err = checkFinite(opJacobi, dec); err != nil {
		return Decomposition{}, err
	}

	return dec, nil
}
