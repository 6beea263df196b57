// SPDX-License-Identifier: MIT

package tensorproduct

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/katalvlaran/tensorfdm/tensor"
	"go.uber.org/zap"
)

const (
	opApply        = "SymmetricSum.Apply"
	opApplyInverse = "SymmetricSum.ApplyInverse"
	opAssemble     = "SymmetricSum.Assemble"
)

// MaxAssembleSize bounds Size() for Assemble; the dense result has Size()² entries.
const MaxAssembleSize = 4096

// Apply returns L·src in a new slice.
func (s *SymmetricSum) Apply(src []float64) ([]float64, error) {
	dst := make([]float64, len(src))
	if err := s.ApplyTo(dst, src); err != nil {
		return nil, err
	}

	return dst, nil
}

// ApplyTo computes dst = L·src by sum factorization.
//
// Stage 1: for each d, push src through the first D-1 per-axis factors
// (A_d on axis d, M_e on every other axis) using two scratch buffers.
// Stage 2: the last factor accumulates straight into acc, which is then
// copied into dst.
//
// dst and src may alias. On error dst is not modified.
//
// Complexity: O(D² · n · Size) time, O(Size) scratch.
func (s *SymmetricSum) ApplyTo(dst, src []float64) error {
	if err := s.acquireReady(); err != nil {
		return err
	}
	defer s.mu.RUnlock()
	if err := s.checkVectors(opApply, dst, src); err != nil {
		return err
	}

	size, dim := s.shape.Size(), s.shape.Rank()
	last := dim - 1
	acc := make([]float64, size)
	bufs := [2][]float64{make([]float64, size), make([]float64, size)}
	for d := 0; d < dim; d++ {
		cur := src
		for axis := 0; axis < dim; axis++ {
			factor := s.mass[axis]
			if axis == d {
				factor = s.stiff[axis]
			}
			if axis == last {
				if err := tensor.AddApplyAxis(acc, cur, s.shape, axis, factor.RawData(), false); err != nil {
					return fmt.Errorf("%s: %w", opApply, err)
				}
				break
			}
			out := bufs[axis%2]
			if err := tensor.ApplyAxis(out, cur, s.shape, axis, factor.RawData(), false); err != nil {
				return fmt.Errorf("%s: %w", opApply, err)
			}
			cur = out
		}
	}
	copy(dst, acc)

	return nil
}

// ApplyInverse returns L⁻¹·src in a new slice.
func (s *SymmetricSum) ApplyInverse(src []float64) ([]float64, error) {
	dst := make([]float64, len(src))
	if err := s.ApplyInverseTo(dst, src); err != nil {
		return nil, err
	}

	return dst, nil
}

// ApplyInverseTo computes dst = L⁻¹·src by fast diagonalization.
//
// Since V_dᵀ·M_d·V_d = I and V_dᵀ·A_d·V_d = Λ_d,
//
//	L⁻¹ = (V_{D-1} ⊗ … ⊗ V_0) · (Σ_d I ⊗ … ⊗ Λ_d ⊗ … ⊗ I)⁻¹ · (V_{D-1} ⊗ … ⊗ V_0)ᵀ.
//
// Stage 1: apply V_dᵀ along every axis.
// Stage 2: divide entry (i_0, …, i_{D-1}) by Σ_d λ_d[i_d]. A sum with
// |λ| ≤ ε·Σ_d max|λ_d| is singular: rejected with ErrSingularOperator, or its
// reciprocal replaced by the regularization value when one is configured.
// Stage 3: apply V_d along every axis.
//
// dst and src may alias. On error dst is not modified.
//
// Complexity: O(2D · n · Size) time, O(Size) scratch.
func (s *SymmetricSum) ApplyInverseTo(dst, src []float64) error {
	if err := s.acquireReady(); err != nil {
		return err
	}
	defer s.mu.RUnlock()
	if err := s.checkVectors(opApplyInverse, dst, src); err != nil {
		return err
	}

	size, dim := s.shape.Size(), s.shape.Rank()
	bufs := [2][]float64{make([]float64, size), make([]float64, size)}
	step := 0
	cur := src
	transform := func(transpose bool) error {
		for axis := 0; axis < dim; axis++ {
			out := bufs[step%2]
			step++
			if err := tensor.ApplyAxis(out, cur, s.shape, axis, s.decs[axis].Vectors.RawData(), transpose); err != nil {
				return fmt.Errorf("%s: %w", opApplyInverse, err)
			}
			cur = out
		}
		return nil
	}

	// Stage 1
	if err := transform(true); err != nil {
		return err
	}

	// Stage 2
	thresh := s.opts.eps * s.scale
	singular, firstSingular := 0, -1
	var firstLambda float64
	s.shape.Walk(func(off int, idx []int) {
		var lambda float64
		for d, i := range idx {
			lambda += s.decs[d].Values[i]
		}
		if math.Abs(lambda) > thresh {
			cur[off] /= lambda
			return
		}
		if singular == 0 {
			firstSingular, firstLambda = off, lambda
		}
		singular++
		if s.opts.regularize {
			cur[off] *= s.opts.regValue
		}
	})
	if singular > 0 {
		if !s.opts.regularize {
			idx, _ := s.shape.IndexOf(firstSingular)
			s.opts.logger.Debug("singular joint eigenvalue",
				zap.Stringer("index", idx), zap.Float64("lambda", firstLambda), zap.Int("count", singular))
			return fmt.Errorf("%s: joint eigenvalue %g at %s within %g of zero (%d modes): %w",
				opApplyInverse, firstLambda, idx, thresh, singular, ErrSingularOperator)
		}
		s.opts.logger.Warn("regularized singular joint eigenvalues",
			zap.Int("count", singular), zap.Float64("value", s.opts.regValue))
	}

	// Stage 3
	if err := transform(false); err != nil {
		return err
	}
	copy(dst, cur)

	return nil
}

func (s *SymmetricSum) checkVectors(tag string, dst, src []float64) error {
	size := s.shape.Size()
	if len(src) != size || len(dst) != size {
		return fmt.Errorf("%s: len(src)=%d len(dst)=%d, want %d: %w", tag, len(src), len(dst), size, ErrVectorSize)
	}

	return nil
}

// Assemble builds the dense Size()×Size() matrix of L from Kronecker products.
// It is meant for verification on small problems and does not need the
// decompositions.
//
// Errors: ErrTooLarge when Size() > MaxAssembleSize.
func (s *SymmetricSum) Assemble() (*matrix.Dense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	size, dim := s.shape.Size(), s.shape.Rank()
	if size > MaxAssembleSize {
		return nil, fmt.Errorf("%s: size %d > %d: %w", opAssemble, size, MaxAssembleSize, ErrTooLarge)
	}

	total, err := matrix.NewZeros(size, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAssemble, err)
	}
	sum := total.RawData()
	for d := 0; d < dim; d++ {
		// Slowest axis leftmost: M_{D-1} ⊗ … ⊗ M_0 with A_d in slot d.
		var term *matrix.Dense
		for axis := dim - 1; axis >= 0; axis-- {
			factor := s.mass[axis]
			if axis == d {
				factor = s.stiff[axis]
			}
			if term == nil {
				term = factor
				continue
			}
			if term, err = matrix.Kron(term, factor); err != nil {
				return nil, fmt.Errorf("%s: %w", opAssemble, err)
			}
		}
		for i, v := range term.RawData() {
			sum[i] += v
		}
	}

	return total, nil
}
