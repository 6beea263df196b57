// SPDX-License-Identifier: MIT

package fe

// Basis is the one-dimensional Lagrange basis on distinct nodes z_0..z_p:
// φ_i(z_j) = δ_ij.
type Basis struct {
	nodes []float64
	denom []float64 // Π_{j≠i} (z_i - z_j)
}

// NewBasis copies nodes and precomputes the barycentric denominators.
// Nodes must be distinct.
func NewBasis(nodes []float64) Basis {
	z := append([]float64(nil), nodes...)
	denom := make([]float64, len(z))
	for i := range z {
		d := 1.0
		for j := range z {
			if j != i {
				d *= z[i] - z[j]
			}
		}
		denom[i] = d
	}

	return Basis{nodes: z, denom: denom}
}

// Size returns the number of basis functions.
func (b Basis) Size() int { return len(b.nodes) }

// Nodes returns a copy of the support points.
func (b Basis) Nodes() []float64 { return append([]float64(nil), b.nodes...) }

// Value evaluates φ_i(x).
func (b Basis) Value(i int, x float64) float64 {
	v := 1.0
	for j, z := range b.nodes {
		if j != i {
			v *= x - z
		}
	}

	return v / b.denom[i]
}

// Derivative evaluates φ_i'(x) = Σ_{k≠i} Π_{j≠i,k} (x - z_j) / Π_{j≠i} (z_i - z_j).
func (b Basis) Derivative(i int, x float64) float64 {
	var sum float64
	for k := range b.nodes {
		if k == i {
			continue
		}
		p := 1.0
		for j, z := range b.nodes {
			if j != i && j != k {
				p *= x - z
			}
		}
		sum += p
	}

	return sum / b.denom[i]
}
