// SPDX-License-Identifier: MIT

// Package config loads fdmsolve problem files: the per-axis matrices (given
// explicitly or generated from a finite element), the right-hand side and the
// solver settings.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/katalvlaran/tensorfdm/eigen"
	"github.com/katalvlaran/tensorfdm/fe"
	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/katalvlaran/tensorfdm/tensorproduct"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration that parses but cannot describe a problem.
var ErrInvalid = errors.New("config: invalid configuration")

// Backend names accepted in solver.backend.
const (
	BackendGonum  = "gonum"
	BackendJacobi = "jacobi"
)

// Config is a complete problem description.
type Config struct {
	Debug   bool           `yaml:"debug"`
	Dims    []DimConfig    `yaml:"dims"`
	Element *ElementConfig `yaml:"element"`
	RHS     []float64      `yaml:"rhs"`
	Solver  SolverConfig   `yaml:"solver"`
}

// DimConfig holds explicit matrices for one axis, row by row.
type DimConfig struct {
	Mass      [][]float64 `yaml:"mass"`
	Stiffness [][]float64 `yaml:"stiffness"`
}

// ElementConfig generates per-axis matrices from a registered element.
type ElementConfig struct {
	Name  string    `yaml:"name"`  // e.g. "FE_Q(2)" or "FE_DGQ<3>(1)"
	Dim   int       `yaml:"dim"`   // overrides the <dim> in Name when set
	H     []float64 `yaml:"h"`     // cell size per axis; default 1
	Shift float64   `yaml:"shift"` // stiffness += shift·mass
}

// SolverConfig selects the eigensolver and the singular policy.
type SolverConfig struct {
	Backend        string   `yaml:"backend"`
	Epsilon        *float64 `yaml:"epsilon"`        // nil selects tensorproduct.DefaultEpsilon
	Regularization *float64 `yaml:"regularization"` // nil rejects singular operators
	Tol            float64  `yaml:"tol"`            // jacobi only
	MaxIter        int      `yaml:"max_iter"`       // jacobi only
}

// Load reads, parses, defaults and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse is Load without the file system.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset values: gonum backend, tensorproduct.DefaultEpsilon,
// element dimension from its name (else 1) and unit cell sizes. An explicit
// epsilon of 0 is kept.
func ApplyDefaults(cfg *Config) error {
	if cfg.Solver.Backend == "" {
		cfg.Solver.Backend = BackendGonum
	}
	if cfg.Solver.Epsilon == nil {
		eps := tensorproduct.DefaultEpsilon
		cfg.Solver.Epsilon = &eps
	}
	if el := cfg.Element; el != nil {
		if el.Dim == 0 {
			_, dim, _, err := fe.ParseName(el.Name)
			if err != nil {
				return fmt.Errorf("element: %w", err)
			}
			el.Dim = max(dim, 1)
		}
		if len(el.H) == 0 {
			el.H = make([]float64, el.Dim)
			for i := range el.H {
				el.H[i] = 1
			}
		}
	}

	return nil
}

// Validate checks the structural constraints that do not need numerics.
func (c *Config) Validate() error {
	switch {
	case len(c.Dims) == 0 && c.Element == nil:
		return fmt.Errorf("either dims or element is required: %w", ErrInvalid)
	case len(c.Dims) > 0 && c.Element != nil:
		return fmt.Errorf("dims and element are mutually exclusive: %w", ErrInvalid)
	case len(c.Dims) > tensorproduct.MaxDim:
		return fmt.Errorf("%d dims, at most %d: %w", len(c.Dims), tensorproduct.MaxDim, ErrInvalid)
	}
	if c.Element != nil {
		if c.Element.Dim < 1 || c.Element.Dim > tensorproduct.MaxDim {
			return fmt.Errorf("element.dim=%d: %w", c.Element.Dim, ErrInvalid)
		}
		if len(c.Element.H) != c.Element.Dim {
			return fmt.Errorf("element.h has %d entries, want %d: %w", len(c.Element.H), c.Element.Dim, ErrInvalid)
		}
		for d, h := range c.Element.H {
			if !isFinite(h) || h <= 0 {
				return fmt.Errorf("element.h[%d]=%g must be finite and positive: %w", d, h, ErrInvalid)
			}
		}
		if !isFinite(c.Element.Shift) {
			return fmt.Errorf("element.shift=%g must be finite: %w", c.Element.Shift, ErrInvalid)
		}
	}
	switch c.Solver.Backend {
	case BackendGonum, BackendJacobi:
	default:
		return fmt.Errorf("solver.backend %q: %w", c.Solver.Backend, ErrInvalid)
	}
	if eps := c.Solver.Epsilon; eps != nil && (!isFinite(*eps) || *eps < 0) {
		return fmt.Errorf("solver.epsilon=%g must be finite and non-negative: %w", *eps, ErrInvalid)
	}
	if !isFinite(c.Solver.Tol) || c.Solver.Tol < 0 || c.Solver.MaxIter < 0 {
		return fmt.Errorf("solver tolerances must be finite and non-negative: %w", ErrInvalid)
	}
	if r := c.Solver.Regularization; r != nil && !isFinite(*r) {
		return fmt.Errorf("solver.regularization=%g must be finite: %w", *r, ErrInvalid)
	}

	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Pairs builds the per-axis matrices described by the configuration.
func (c *Config) Pairs() ([]tensorproduct.Pair, error) {
	if c.Element != nil {
		family, _, degree, err := fe.ParseName(c.Element.Name)
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		el, err := fe.DefaultRegistry().GetByName(fmt.Sprintf("%s<%d>(%d)", family, c.Element.Dim, degree))
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}

		return fe.Pairs(el, c.Element.H, c.Element.Shift)
	}

	pairs := make([]tensorproduct.Pair, len(c.Dims))
	for d, dc := range c.Dims {
		m, err := matrix.NewFromRows(dc.Mass)
		if err != nil {
			return nil, fmt.Errorf("dims[%d].mass: %w", d, err)
		}
		a, err := matrix.NewFromRows(dc.Stiffness)
		if err != nil {
			return nil, fmt.Errorf("dims[%d].stiffness: %w", d, err)
		}
		pairs[d] = tensorproduct.Pair{Mass: m, Stiffness: a}
	}

	return pairs, nil
}

// Options translates the solver section into tensorproduct options.
func (c *Config) Options(logger *zap.Logger) []tensorproduct.Option {
	var solver eigen.GeneralizedSolver = eigen.Gonum{}
	if c.Solver.Backend == BackendJacobi {
		solver = eigen.Jacobi{Tol: c.Solver.Tol, MaxIter: c.Solver.MaxIter}
	}
	opts := []tensorproduct.Option{
		tensorproduct.WithSolver(solver),
		tensorproduct.WithLogger(logger),
	}
	if c.Solver.Epsilon != nil {
		opts = append(opts, tensorproduct.WithEpsilon(*c.Solver.Epsilon))
	}
	if c.Solver.Regularization != nil {
		opts = append(opts, tensorproduct.WithRegularization(*c.Solver.Regularization))
	}

	return opts
}

// RHSFor returns the right-hand side for an operator of the given size:
// the configured vector, or all ones when none is set.
func (c *Config) RHSFor(size int) ([]float64, error) {
	if len(c.RHS) == 0 {
		b := make([]float64, size)
		for i := range b {
			b[i] = 1
		}
		return b, nil
	}
	if len(c.RHS) != size {
		return nil, fmt.Errorf("rhs has %d entries, operator size is %d: %w", len(c.RHS), size, ErrInvalid)
	}

	return append([]float64(nil), c.RHS...), nil
}
