// SPDX-License-Identifier: MIT

package fe

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

// Quadrature is a rule Σ_q w_q f(x_q) ≈ ∫_0^1 f with points ascending.
type Quadrature struct {
	Points  []float64
	Weights []float64
}

// Size returns the number of points.
func (q Quadrature) Size() int { return len(q.Points) }

// Integrate applies the rule to f.
func (q Quadrature) Integrate(f func(x float64) float64) float64 {
	var sum float64
	for i, x := range q.Points {
		sum += q.Weights[i] * f(x)
	}

	return sum
}

const (
	newtonMaxIter = 100
	newtonTol     = 1e-15
)

// GaussLegendre returns the n-point Gauss rule on [0,1], exact for
// polynomials of degree 2n-1.
func GaussLegendre(n int) (Quadrature, error) {
	if n < 1 {
		return Quadrature{}, fmt.Errorf("GaussLegendre(%d): %w", n, ErrBadDegree)
	}
	q := Quadrature{Points: make([]float64, n), Weights: make([]float64, n)}
	quad.Legendre{}.FixedLocations(q.Points, q.Weights, 0, 1)
	q.sort()

	return q, nil
}

// GaussLobatto returns the n-point Gauss–Lobatto rule on [0,1] (n ≥ 2). Both
// end points are included; the rule is exact for degree 2n-3.
//
// Interior points are the roots of P'_{n-1}, found by Newton iteration from
// Chebyshev–Gauss–Lobatto guesses; weights are 2/(n(n-1)·P_{n-1}(x)²) on
// [-1,1] before mapping.
func GaussLobatto(n int) (Quadrature, error) {
	if n < 2 {
		return Quadrature{}, fmt.Errorf("GaussLobatto(%d): %w", n, ErrBadDegree)
	}
	k := n - 1
	pts := make([]float64, n)
	wts := make([]float64, n)
	pts[0], pts[k] = -1, 1
	for j := 1; j < k; j++ {
		x := -math.Cos(math.Pi * float64(j) / float64(k))
		for it := 0; it < newtonMaxIter; it++ {
			p, dp := legendre(k, x)
			// Legendre ODE: (1-x²)P'' = 2xP' - k(k+1)P.
			ddp := (2*x*dp - float64(k*(k+1))*p) / (1 - x*x)
			dx := dp / ddp
			x -= dx
			if math.Abs(dx) < newtonTol {
				break
			}
		}
		pts[j] = x
	}
	norm := 2 / float64(n*k)
	for j, x := range pts {
		p, _ := legendre(k, x)
		wts[j] = norm / (p * p)
	}

	q := Quadrature{Points: make([]float64, n), Weights: make([]float64, n)}
	for j := range pts {
		q.Points[j] = 0.5 * (pts[j] + 1)
		q.Weights[j] = 0.5 * wts[j]
	}
	// Pin the end points and the symmetry exactly.
	for j := 0; j < n/2; j++ {
		q.Points[n-1-j] = 1 - q.Points[j]
		w := 0.5 * (q.Weights[j] + q.Weights[n-1-j])
		q.Weights[j], q.Weights[n-1-j] = w, w
	}
	if n%2 == 1 {
		q.Points[n/2] = 0.5
	}

	return q, nil
}

// legendre evaluates P_k and P'_k at x by the three-term recurrence.
func legendre(k int, x float64) (p, dp float64) {
	if k == 0 {
		return 1, 0
	}
	p0, p1 := 1.0, x
	for i := 1; i < k; i++ {
		fi := float64(i)
		p0, p1 = p1, ((2*fi+1)*x*p1-fi*p0)/(fi+1)
	}
	if x == 1 || x == -1 {
		// P'_k(±1) = (±1)^{k+1} k(k+1)/2
		dp = float64(k*(k+1)) / 2
		if x < 0 && k%2 == 0 {
			dp = -dp
		}
		return p1, dp
	}

	return p1, float64(k) * (x*p1 - p0) / (x*x - 1)
}

func (q *Quadrature) sort() {
	idx := make([]int, len(q.Points))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return q.Points[idx[a]] < q.Points[idx[b]] })
	pts := make([]float64, len(idx))
	wts := make([]float64, len(idx))
	for i, j := range idx {
		pts[i], wts[i] = q.Points[j], q.Weights[j]
	}
	q.Points, q.Weights = pts, wts
}
