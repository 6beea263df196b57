// SPDX-License-Identifier: MIT

// Package tensorproduct: functional configuration.
//
// Defaults:
//   - epsilon 1e-12: a joint eigenvalue λ is numerically zero when
//     |λ| ≤ ε · Σ_d max_i |λ_d[i]|.
//   - singular policy: reject with ErrSingularOperator.
//   - solver: eigen.Gonum{}.
//   - logger: zap.NewNop().
//
// WithX constructors panic only on nonsensical values (programmer error).
package tensorproduct

import (
	"math"

	"github.com/katalvlaran/tensorfdm/eigen"
	"go.uber.org/zap"
)

// DefaultEpsilon is the relative threshold below which a joint eigenvalue counts as zero.
const DefaultEpsilon = 1e-12

const (
	panicEpsilonInvalid = "tensorproduct: WithEpsilon: eps must be finite and non-negative"
	panicRegInvalid     = "tensorproduct: WithRegularization: value must be finite"
	panicSolverNil      = "tensorproduct: WithSolver: solver must not be nil"
)

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps        float64
	regularize bool
	regValue   float64
	solver     eigen.GeneralizedSolver
	logger     *zap.Logger
}

// WithEpsilon sets the relative zero threshold for joint eigenvalues.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithRegularization switches the singular policy from reject to substitute:
// whenever a joint eigenvalue is numerically zero, its reciprocal is replaced
// by value. value = 0 drops that mode (pseudo-inverse on the null space).
// Every substitution is logged at warn level.
func WithRegularization(value float64) Option {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		panic(panicRegInvalid)
	}
	return func(o *Options) {
		o.regularize = true
		o.regValue = value
	}
}

// WithSolver selects the generalized eigensolver backend.
func WithSolver(s eigen.GeneralizedSolver) Option {
	if s == nil {
		panic(panicSolverNil)
	}
	return func(o *Options) { o.solver = s }
}

// WithLogger sets a logger for factorization and singular-mode events.
// A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() Options {
	return Options{
		eps:    DefaultEpsilon,
		solver: eigen.Gonum{},
		logger: zap.NewNop(),
	}
}

// gatherOptions applies user options on top of the defaults.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
