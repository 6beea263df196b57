// SPDX-License-Identifier: MIT

package fe

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tensorfdm/matrix"
)

// Kind identifies an element family.
type Kind int

const (
	// KindQ is the continuous tensor-product Lagrange family on Gauss–Lobatto
	// support points. Degree ≥ 1.
	KindQ Kind = iota
	// KindDGQ is the discontinuous tensor-product Lagrange family on Gauss
	// support points. Degree ≥ 0.
	KindDGQ
)

// String returns the family name used in element names.
func (k Kind) String() string {
	switch k {
	case KindQ:
		return "FE_Q"
	case KindDGQ:
		return "FE_DGQ"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Element is a tensor-product element on the unit cell [0,1]^dim whose shape
// functions are products of a one-dimensional Lagrange basis.
type Element interface {
	Name() string
	Kind() Kind
	Degree() int
	Dim() int
	// DofsPerCell is (Degree()+1)^Dim().
	DofsPerCell() int
	// Nodes returns the ascending 1D support points on [0,1].
	Nodes() []float64
	// Mass1D returns M_ij = ∫ φ_i φ_j on a cell of size h.
	Mass1D(h float64) (*matrix.Dense, error)
	// Stiffness1D returns A_ij = ∫ φ_i' φ_j' on a cell of size h.
	Stiffness1D(h float64) (*matrix.Dense, error)
}

// lagrange implements Element for both families; only the nodes differ.
type lagrange struct {
	kind   Kind
	dim    int
	degree int
	basis  Basis
}

var _ Element = (*lagrange)(nil)

// NewQ returns FE_Q<dim>(degree).
func NewQ(dim, degree int) (Element, error) {
	if dim < 1 || dim > 3 {
		return nil, fmt.Errorf("NewQ: dim=%d: %w", dim, ErrBadDim)
	}
	if degree < 1 {
		return nil, fmt.Errorf("NewQ: degree=%d: %w", degree, ErrBadDegree)
	}
	q, err := GaussLobatto(degree + 1)
	if err != nil {
		return nil, fmt.Errorf("NewQ: %w", err)
	}

	return &lagrange{kind: KindQ, dim: dim, degree: degree, basis: NewBasis(q.Points)}, nil
}

// NewDGQ returns FE_DGQ<dim>(degree).
func NewDGQ(dim, degree int) (Element, error) {
	if dim < 1 || dim > 3 {
		return nil, fmt.Errorf("NewDGQ: dim=%d: %w", dim, ErrBadDim)
	}
	if degree < 0 {
		return nil, fmt.Errorf("NewDGQ: degree=%d: %w", degree, ErrBadDegree)
	}
	q, err := GaussLegendre(degree + 1)
	if err != nil {
		return nil, fmt.Errorf("NewDGQ: %w", err)
	}

	return &lagrange{kind: KindDGQ, dim: dim, degree: degree, basis: NewBasis(q.Points)}, nil
}

func (e *lagrange) Name() string     { return fmt.Sprintf("%s<%d>(%d)", e.kind, e.dim, e.degree) }
func (e *lagrange) Kind() Kind       { return e.kind }
func (e *lagrange) Degree() int      { return e.degree }
func (e *lagrange) Dim() int         { return e.dim }
func (e *lagrange) Nodes() []float64 { return e.basis.Nodes() }

func (e *lagrange) DofsPerCell() int {
	n := 1
	for d := 0; d < e.dim; d++ {
		n *= e.degree + 1
	}

	return n
}

func (e *lagrange) Mass1D(h float64) (*matrix.Dense, error) {
	if err := checkSpacing(h); err != nil {
		return nil, fmt.Errorf("%s.Mass1D: %w", e.Name(), err)
	}

	return e.assemble(h, false)
}

func (e *lagrange) Stiffness1D(h float64) (*matrix.Dense, error) {
	if err := checkSpacing(h); err != nil {
		return nil, fmt.Errorf("%s.Stiffness1D: %w", e.Name(), err)
	}

	return e.assemble(1/h, true)
}

// assemble integrates products of basis values (or derivatives) with a Gauss
// rule of degree+1 points, exact for the degree-2p integrands, scaled by factor.
func (e *lagrange) assemble(factor float64, derivative bool) (*matrix.Dense, error) {
	n := e.degree + 1
	q, err := GaussLegendre(n)
	if err != nil {
		return nil, err
	}
	res, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	out := res.RawData()
	vals := make([]float64, n)
	for k, x := range q.Points {
		for i := 0; i < n; i++ {
			if derivative {
				vals[i] = e.basis.Derivative(i, x)
			} else {
				vals[i] = e.basis.Value(i, x)
			}
		}
		w := q.Weights[k] * factor
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out[i*n+j] += w * vals[i] * vals[j]
			}
		}
	}

	return res, nil
}

func checkSpacing(h float64) error {
	if !(h > 0) || math.IsInf(h, 0) {
		return fmt.Errorf("h=%g: %w", h, ErrBadSpacing)
	}

	return nil
}
