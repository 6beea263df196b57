// SPDX-License-Identifier: MIT

package eigen

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tensorfdm/matrix"
	"gonum.org/v1/gonum/mat"
)

// Gonum solves the generalized problem with gonum's Cholesky and EigenSym.
// Zero fields fall back to the package defaults.
type Gonum struct {
	SymmetryTol float64 // relative symmetry tolerance, DefaultSymmetryTol
	MaxCond     float64 // largest accepted cond(M), DefaultMaxCond
}

var _ GeneralizedSolver = Gonum{}

const opGonum = "eigen.Gonum"

// Solve implements GeneralizedSolver.
//
// Implementation:
//   - Stage 1: validate and copy inputs; factorize M = L·Lᵀ.
//   - Stage 2: C = L⁻¹·A·L⁻ᵀ through two triangular solves, symmetrized.
//   - Stage 3: EigenSym(C) = W·Λ·Wᵀ; V = L⁻ᵀ·W.
//
// Errors:
//   - ErrShape, ErrNotSymmetric, ErrNotPositiveDefinite, ErrIllConditioned,
//     ErrNotConverged, ErrNonFinite.
//
// Complexity: O(n^3).
func (g Gonum) Solve(mass, stiffness matrix.Matrix) (Decomposition, error) {
	symTol, maxCond := g.SymmetryTol, g.MaxCond
	if symTol <= 0 {
		symTol = DefaultSymmetryTol
	}
	if maxCond <= 0 {
		maxCond = DefaultMaxCond
	}
	m, a, err := prepare(opGonum, mass, stiffness, symTol)
	if err != nil {
		return Decomposition{}, err
	}
	n := m.Rows()

	var chol mat.Cholesky
	if ok := chol.Factorize(toSym(m)); !ok {
		return Decomposition{}, fmt.Errorf("%s: %w", opGonum, ErrNotPositiveDefinite)
	}
	if cond := chol.Cond(); math.IsNaN(cond) || cond > maxCond {
		return Decomposition{}, fmt.Errorf("%s: cond(M) = %g: %w", opGonum, cond, ErrIllConditioned)
	}
	var l mat.TriDense
	chol.LTo(&l)

	var y, c mat.Dense
	if err = y.Solve(&l, mat.NewDense(n, n, a.RawData())); err != nil {
		return Decomposition{}, fmt.Errorf("%s: L⁻¹A: %v: %w", opGonum, err, ErrIllConditioned)
	}
	if err = c.Solve(&l, y.T()); err != nil {
		return Decomposition{}, fmt.Errorf("%s: L⁻¹AL⁻ᵀ: %v: %w", opGonum, err, ErrIllConditioned)
	}

	cs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cs.SetSym(i, j, 0.5*(c.At(i, j)+c.At(j, i)))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(cs, true); !ok {
		return Decomposition{}, fmt.Errorf("%s: %w", opGonum, ErrNotConverged)
	}
	vals := es.Values(nil)
	var w, v mat.Dense
	es.VectorsTo(&w)
	if err = v.Solve(l.T(), &w); err != nil {
		return Decomposition{}, fmt.Errorf("%s: L⁻ᵀW: %v: %w", opGonum, err, ErrIllConditioned)
	}

	vecs, err := matrix.NewDense(n, n)
	if err != nil {
		return Decomposition{}, fmt.Errorf("%s: %w", opGonum, err)
	}
	raw := vecs.RawData()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			raw[i*n+j] = v.At(i, j)
		}
	}
	dec := Decomposition{Values: vals, Vectors: vecs}
	if err = checkFinite(opGonum, dec); err != nil {
		return Decomposition{}, err
	}

	return dec, nil
}

// toSym copies the lower triangle of m into a gonum SymDense.
func toSym(m *matrix.Dense) *mat.SymDense {
	n := m.Rows()
	raw := m.RawData()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			s.SetSym(i, j, raw[i*n+j])
		}
	}

	return s
}
