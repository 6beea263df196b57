// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/tensorfdm/matrix"
)

var (
	// ErrNotPositiveDefinite indicates a mass matrix whose Cholesky
	// factorization fails within tolerance.
	ErrNotPositiveDefinite = errors.New("eigen: mass matrix is not positive definite")

	// ErrIllConditioned indicates a mass matrix that factorizes but is too
	// badly conditioned for the reduction to be trusted.
	ErrIllConditioned = errors.New("eigen: mass matrix is ill-conditioned")

	// ErrNotSymmetric indicates an input that is not symmetric within tolerance.
	ErrNotSymmetric = errors.New("eigen: matrix is not symmetric")

	// ErrShape indicates non-square inputs or a size mismatch between them.
	ErrShape = errors.New("eigen: mass and stiffness must be square and of equal size")

	// ErrNotConverged indicates the symmetric eigensolver did not converge.
	ErrNotConverged = errors.New("eigen: eigensolver did not converge")

	// ErrNonFinite indicates a NaN or Inf eigenvalue or eigenvector entry.
	ErrNonFinite = errors.New("eigen: non-finite result")

	// ErrVerification indicates a decomposition that fails Verify.
	ErrVerification = errors.New("eigen: decomposition does not satisfy the eigenproblem")
)

// Default numeric policy shared by the backends.
const (
	// DefaultSymmetryTol is the relative tolerance of the input symmetry check.
	DefaultSymmetryTol = 1e-10

	// DefaultPivotTol is the relative Cholesky pivot floor.
	DefaultPivotTol = 1e-14

	// DefaultMaxCond bounds the accepted condition number of the mass matrix.
	DefaultMaxCond = 1e14
)

// Decomposition holds the eigenpairs of one generalized eigenproblem.
// Values are ascending; column j of Vectors belongs to Values[j].
type Decomposition struct {
	Values  []float64
	Vectors *matrix.Dense
}

// Size returns the problem dimension n.
func (d Decomposition) Size() int { return len(d.Values) }

// Clone returns a deep copy.
func (d Decomposition) Clone() Decomposition {
	vals := make([]float64, len(d.Values))
	copy(vals, d.Values)
	var vecs *matrix.Dense
	if d.Vectors != nil {
		vecs = d.Vectors.CloneDense()
	}

	return Decomposition{Values: vals, Vectors: vecs}
}

// GeneralizedSolver computes the generalized eigen-decomposition of a
// (mass, stiffness) pair. Implementations must not retain or mutate their inputs.
type GeneralizedSolver interface {
	Solve(mass, stiffness matrix.Matrix) (Decomposition, error)
}

// prepare validates shapes and symmetry and returns dense copies of both inputs.
func prepare(tag string, mass, stiffness matrix.Matrix, symTol float64) (*matrix.Dense, *matrix.Dense, error) {
	if err := matrix.ValidateSquare(mass); err != nil {
		return nil, nil, fmt.Errorf("%s: mass: %v: %w", tag, err, ErrShape)
	}
	if err := matrix.ValidateSquare(stiffness); err != nil {
		return nil, nil, fmt.Errorf("%s: stiffness: %v: %w", tag, err, ErrShape)
	}
	if mass.Rows() != stiffness.Rows() {
		return nil, nil, fmt.Errorf("%s: sizes %d and %d: %w", tag, mass.Rows(), stiffness.Rows(), ErrShape)
	}
	if err := matrix.ValidateSymmetric(mass, matrix.SymmetryTol(mass, symTol)); err != nil {
		return nil, nil, fmt.Errorf("%s: mass: %w", tag, ErrNotSymmetric)
	}
	if err := matrix.ValidateSymmetric(stiffness, matrix.SymmetryTol(stiffness, symTol)); err != nil {
		return nil, nil, fmt.Errorf("%s: stiffness: %w", tag, ErrNotSymmetric)
	}
	m, err := matrix.AsDense(mass)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", tag, err)
	}
	a, err := matrix.AsDense(stiffness)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", tag, err)
	}

	return m.CloneDense(), a.CloneDense(), nil
}

// checkFinite rejects NaN/Inf in a finished decomposition.
func checkFinite(tag string, d Decomposition) error {
	for _, v := range d.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: eigenvalue %g: %w", tag, v, ErrNonFinite)
		}
	}
	for _, v := range d.Vectors.RawData() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: eigenvector entry %g: %w", tag, v, ErrNonFinite)
		}
	}

	return nil
}

// Verify checks A·V = M·V·diag(Λ) and Vᵀ·M·V = I within a relative tolerance.
//
// The first residual is scaled by max(|A|, |M|·max|λ|), the second is absolute.
// Errors: ErrShape, ErrVerification.
func Verify(mass, stiffness matrix.Matrix, d Decomposition, tol float64) error {
	const tag = "Verify"
	if d.Vectors == nil || d.Vectors.Rows() != len(d.Values) || d.Vectors.Cols() != len(d.Values) {
		return fmt.Errorf("%s: %w", tag, ErrShape)
	}
	if mass.Rows() != len(d.Values) || stiffness.Rows() != len(d.Values) {
		return fmt.Errorf("%s: %w", tag, ErrShape)
	}

	av, err := matrix.Mul(stiffness, d.Vectors)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	mv, err := matrix.Mul(mass, d.Vectors)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	lam, err := matrix.NewDiagonal(d.Values)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	mvl, err := matrix.Mul(mv, lam)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	scale := math.Max(matrix.MaxAbs(stiffness), matrix.MaxAbs(mass)*matrix.MaxAbs(lam))
	if scale < 1 {
		scale = 1
	}
	if ok, _ := matrix.AllClose(av, mvl, 0, tol*scale); !ok {
		return fmt.Errorf("%s: A·V ≠ M·V·Λ: %w", tag, ErrVerification)
	}

	vt, err := matrix.Transpose(d.Vectors)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	vtmv, err := matrix.Mul(vt, mv)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	id, err := matrix.NewIdentity(len(d.Values))
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if ok, _ := matrix.AllClose(vtmv, id, 0, tol); !ok {
		return fmt.Errorf("%s: Vᵀ·M·V ≠ I: %w", tag, ErrVerification)
	}

	return nil
}
