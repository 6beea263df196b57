// SPDX-License-Identifier: MIT

package tensorproduct

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/katalvlaran/tensorfdm/eigen"
	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/katalvlaran/tensorfdm/tensor"
	"go.uber.org/zap"
)

// MaxDim is the largest supported number of dimensions.
const MaxDim = 3

// Operation tags for error wrapping.
const (
	opNew         = "tensorproduct.New"
	opSetMatrices = "SymmetricSum.SetMatrices"
	opReinit      = "SymmetricSum.Reinit"
	opFactorize   = "SymmetricSum.Factorize"
	opEigenvalues = "SymmetricSum.Eigenvalues"
	opEigenvecs   = "SymmetricSum.Eigenvectors"
	opJoint       = "SymmetricSum.JointEigenvalue"
)

// Pair is the (mass, stiffness) matrix pair of one dimension.
// Mass must be symmetric positive definite, Stiffness symmetric, both n×n.
type Pair struct {
	Mass      matrix.Matrix
	Stiffness matrix.Matrix
}

// State is the lifecycle state of a SymmetricSum.
type State int

const (
	// StateUninitialized means matrices are stored but not yet decomposed.
	StateUninitialized State = iota
	// StateReady means every per-dimension decomposition is available.
	StateReady
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SymmetricSum is the operator L = Σ_d M_{D-1} ⊗ … ⊗ A_d ⊗ … ⊗ M_0.
//
// It owns private copies of its matrices and decompositions; callers may
// reuse or mutate the inputs after construction. All methods are safe for
// concurrent use.
type SymmetricSum struct {
	mu    sync.RWMutex
	opts  Options
	shape tensor.Shape
	mass  []*matrix.Dense
	stiff []*matrix.Dense
	decs  []eigen.Decomposition
	scale float64 // Σ_d max_i |λ_d[i]|, reference for the zero threshold
	state State
}

// New validates pairs, copies them and factorizes immediately.
// The result is Ready or an error is returned.
//
// Errors:
//   - ErrDimension: len(pairs) outside 1..MaxDim.
//   - ErrShape: nil, non-square or mismatched matrices.
//   - ErrIllConditionedInput: a per-dimension eigenproblem failed.
func New(pairs []Pair, opts ...Option) (*SymmetricSum, error) {
	s, err := NewDeferred(pairs, opts...)
	if err != nil {
		return nil, err
	}
	if err = s.Factorize(); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return s, nil
}

// NewUniform builds a dim-dimensional operator that uses the same pair on
// every axis, the common case of a uniform mesh with one element type.
func NewUniform(dim int, p Pair, opts ...Option) (*SymmetricSum, error) {
	if dim < 1 || dim > MaxDim {
		return nil, fmt.Errorf("%s: dim=%d: %w", opNew, dim, ErrDimension)
	}
	pairs := make([]Pair, dim)
	for d := range pairs {
		pairs[d] = p
	}

	return New(pairs, opts...)
}

// NewDeferred validates and copies pairs but postpones the eigen
// decompositions; the result is Uninitialized. The first Apply, ApplyInverse
// or eigen accessor, or an explicit Factorize, makes it Ready.
func NewDeferred(pairs []Pair, opts ...Option) (*SymmetricSum, error) {
	o := gatherOptions(opts...)
	shape, mass, stiff, err := copyPairs(opNew, pairs)
	if err != nil {
		return nil, err
	}

	return &SymmetricSum{
		opts:  o,
		shape: shape,
		mass:  mass,
		stiff: stiff,
		state: StateUninitialized,
	}, nil
}

// copyPairs validates pairs and returns the tensor shape plus owned copies.
func copyPairs(tag string, pairs []Pair) (tensor.Shape, []*matrix.Dense, []*matrix.Dense, error) {
	dim := len(pairs)
	if dim < 1 || dim > MaxDim {
		return tensor.Shape{}, nil, nil, fmt.Errorf("%s: %d pairs: %w", tag, dim, ErrDimension)
	}
	ext := make([]int, dim)
	mass := make([]*matrix.Dense, dim)
	stiff := make([]*matrix.Dense, dim)
	for d, p := range pairs {
		if err := matrix.ValidateSquare(p.Mass); err != nil {
			return tensor.Shape{}, nil, nil, fmt.Errorf("%s: dim %d mass: %v: %w", tag, d, err, ErrShape)
		}
		if err := matrix.ValidateSquare(p.Stiffness); err != nil {
			return tensor.Shape{}, nil, nil, fmt.Errorf("%s: dim %d stiffness: %v: %w", tag, d, err, ErrShape)
		}
		if p.Mass.Rows() != p.Stiffness.Rows() {
			return tensor.Shape{}, nil, nil, fmt.Errorf("%s: dim %d: mass %d×%d, stiffness %d×%d: %w",
				tag, d, p.Mass.Rows(), p.Mass.Cols(), p.Stiffness.Rows(), p.Stiffness.Cols(), ErrShape)
		}
		m, err := matrix.AsDense(p.Mass)
		if err != nil {
			return tensor.Shape{}, nil, nil, fmt.Errorf("%s: dim %d mass: %v: %w", tag, d, err, ErrShape)
		}
		a, err := matrix.AsDense(p.Stiffness)
		if err != nil {
			return tensor.Shape{}, nil, nil, fmt.Errorf("%s: dim %d stiffness: %v: %w", tag, d, err, ErrShape)
		}
		mass[d], stiff[d] = m.CloneDense(), a.CloneDense()
		ext[d] = m.Rows()
	}
	shape, err := tensor.NewShape(ext...)
	if err != nil {
		return tensor.Shape{}, nil, nil, fmt.Errorf("%s: %v: %w", tag, err, ErrShape)
	}

	return shape, mass, stiff, nil
}

// SetMatrices replaces all pairs and returns the operator to Uninitialized.
// The dimension count may change. On error nothing is modified.
func (s *SymmetricSum) SetMatrices(pairs []Pair) error {
	shape, mass, stiff, err := copyPairs(opSetMatrices, pairs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.shape, s.mass, s.stiff = shape, mass, stiff
	s.decs, s.scale = nil, 0
	s.state = StateUninitialized
	s.mu.Unlock()

	return nil
}

// Reinit replaces all pairs and factorizes them at once. It is atomic: if
// validation or any decomposition fails, the previous matrices, decompositions
// and state are kept.
func (s *SymmetricSum) Reinit(pairs []Pair) error {
	shape, mass, stiff, err := copyPairs(opReinit, pairs)
	if err != nil {
		return err
	}
	s.mu.RLock()
	solver, logger := s.opts.solver, s.opts.logger
	s.mu.RUnlock()

	decs, scale, err := decompose(opReinit, solver, logger, mass, stiff)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.shape, s.mass, s.stiff = shape, mass, stiff
	s.decs, s.scale = decs, scale
	s.state = StateReady
	s.mu.Unlock()

	return nil
}

// Factorize computes the per-dimension generalized eigendecompositions if the
// operator is Uninitialized. It is a no-op when already Ready. On error the
// operator stays Uninitialized.
func (s *SymmetricSum) Factorize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateReady {
		return nil
	}
	decs, scale, err := decompose(opFactorize, s.opts.solver, s.opts.logger, s.mass, s.stiff)
	if err != nil {
		return err
	}
	s.decs, s.scale = decs, scale
	s.state = StateReady

	return nil
}

// decompose solves every per-dimension eigenproblem. It touches no receiver state.
func decompose(tag string, solver eigen.GeneralizedSolver, logger *zap.Logger,
	mass, stiff []*matrix.Dense) ([]eigen.Decomposition, float64, error) {
	start := time.Now()
	decs := make([]eigen.Decomposition, len(mass))
	var scale float64
	for d := range mass {
		dec, err := solver.Solve(mass[d], stiff[d])
		if err != nil {
			logger.Debug("generalized eigenproblem failed", zap.Int("dim", d), zap.Error(err))
			return nil, 0, fmt.Errorf("%s: dim %d: %w", tag, d, errors.Join(ErrIllConditionedInput, err))
		}
		decs[d] = dec
		var peak float64
		for _, v := range dec.Values {
			peak = math.Max(peak, math.Abs(v))
		}
		scale += peak
	}
	logger.Debug("factorized",
		zap.Int("dims", len(mass)),
		zap.Float64("eigenvalue_scale", scale),
		zap.Duration("took", time.Since(start)))

	return decs, scale, nil
}

// acquireReady returns with the read lock held on a Ready operator,
// factorizing first if needed. Callers must RUnlock.
func (s *SymmetricSum) acquireReady() error {
	for {
		s.mu.RLock()
		if s.state == StateReady {
			return nil
		}
		s.mu.RUnlock()
		// A concurrent SetMatrices may reset the state between Factorize and
		// RLock; loop until a Ready snapshot is observed.
		if err := s.Factorize(); err != nil {
			return err
		}
	}
}

// State reports the current lifecycle state.
func (s *SymmetricSum) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Dim returns the number of dimensions D.
func (s *SymmetricSum) Dim() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.shape.Rank()
}

// Shape returns the tensor shape (n_0, …, n_{D-1}) of operand vectors.
func (s *SymmetricSum) Shape() tensor.Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.shape
}

// Size returns Π_d n_d, the length of operand vectors.
func (s *SymmetricSum) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.shape.Size()
}

// Eigenvalues returns a copy of the ascending generalized eigenvalues of dimension d.
// Factorizes first when Uninitialized.
func (s *SymmetricSum) Eigenvalues(d int) ([]float64, error) {
	if err := s.acquireReady(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	if d < 0 || d >= len(s.decs) {
		return nil, fmt.Errorf("%s(%d): %w", opEigenvalues, d, tensor.ErrOutOfRange)
	}

	return append([]float64(nil), s.decs[d].Values...), nil
}

// Eigenvectors returns a copy of the M_d-orthonormal eigenvector matrix of
// dimension d; column k pairs with Eigenvalues(d)[k].
func (s *SymmetricSum) Eigenvectors(d int) (*matrix.Dense, error) {
	if err := s.acquireReady(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()
	if d < 0 || d >= len(s.decs) {
		return nil, fmt.Errorf("%s(%d): %w", opEigenvecs, d, tensor.ErrOutOfRange)
	}

	return s.decs[d].Vectors.CloneDense(), nil
}

// JointEigenvalue returns Σ_d λ_d[idx_d], the eigenvalue of L for the tensor
// product of per-axis eigenvectors selected by idx.
//
// Errors: tensor.ErrShapeMismatch when idx.Rank() != Dim(), tensor.ErrOutOfRange
// when a component reaches its extent.
func (s *SymmetricSum) JointEigenvalue(idx tensor.Index) (float64, error) {
	if err := s.acquireReady(); err != nil {
		return 0, err
	}
	defer s.mu.RUnlock()
	if _, err := s.shape.Offset(idx); err != nil {
		return 0, fmt.Errorf("%s: %w", opJoint, err)
	}
	var sum float64
	for d := range s.decs {
		i, _ := idx.At(d)
		sum += s.decs[d].Values[i]
	}

	return sum, nil
}
