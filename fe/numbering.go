// SPDX-License-Identifier: MIT

package fe

import "fmt"

// HierarchicToLexicographic returns h2l for FE_Q<dim>(degree): the DoF with
// hierarchic number i sits at lexicographic position h2l[i].
//
// Hierarchic order lists vertices, then line interiors, then face interiors,
// then the cell interior, each lexicographic within its entity. Lexicographic
// order runs over (x, y, z) with x fastest. Degree 0 yields the single DoF [0].
//
// Errors: ErrBadDim, ErrBadDegree.
func HierarchicToLexicographic(dim, degree int) ([]int, error) {
	if dim < 1 || dim > 3 {
		return nil, fmt.Errorf("HierarchicToLexicographic: dim=%d: %w", dim, ErrBadDim)
	}
	if degree < 0 {
		return nil, fmt.Errorf("HierarchicToLexicographic: degree=%d: %w", degree, ErrBadDegree)
	}
	if degree == 0 {
		return []int{0}, nil
	}

	n := degree + 1
	inner := degree - 1
	size := n
	for d := 1; d < dim; d++ {
		size *= n
	}
	h2l := make([]int, 0, size)
	line := func(start, step int) {
		for i := 0; i < inner; i++ {
			h2l = append(h2l, start+(i+1)*step)
		}
	}
	face := func(start, stepI, stepJ int) {
		for i := 0; i < inner; i++ {
			for j := 0; j < inner; j++ {
				h2l = append(h2l, start+(i+1)*stepI+(j+1)*stepJ)
			}
		}
	}

	switch dim {
	case 1:
		h2l = append(h2l, 0, degree)
		line(0, 1)

	case 2:
		h2l = append(h2l, 0, degree, n*degree, (n+1)*degree)
		line(0, n)       // x = 0
		line(n-1, n)     // x = 1
		line(0, 1)       // y = 0
		line(n*(n-1), 1) // y = 1
		face(0, n, 1)    // interior

	case 3:
		n2 := n * n
		h2l = append(h2l,
			0, degree, n*degree, (n+1)*degree,
			n2*degree, (n2+1)*degree, (n2+n)*degree, (n2+n+1)*degree)
		// Bottom face z = 0.
		line(0, n)
		line(n-1, n)
		line(0, 1)
		line(n*(n-1), 1)
		// Top face z = 1.
		top := n2 * (n - 1)
		line(top, n)
		line(top+n-1, n)
		line(top, 1)
		line(top+n*(n-1), 1)
		// Vertical lines.
		line(0, n2)
		line(n-1, n2)
		line(n*(n-1), n2)
		line(n*(n-1)+n-1, n2)
		// Faces x = 0, x = 1, y = 0, y = 1, z = 0, z = 1; the second
		// step runs fastest.
		face(0, n2, n)
		face(n-1, n2, n)
		face(0, n2, 1)
		face(n*(n-1), n2, 1)
		face(0, n, 1)
		face(top, n, 1)
		// Cell interior.
		for i := 0; i < inner; i++ {
			face(n2*(i+1), n, 1)
		}
	}

	return h2l, nil
}

// LexicographicToHierarchic returns the inverse permutation l2h.
func LexicographicToHierarchic(dim, degree int) ([]int, error) {
	h2l, err := HierarchicToLexicographic(dim, degree)
	if err != nil {
		return nil, err
	}

	return Invert(h2l)
}

// Invert returns q with q[p[i]] = i.
// Errors: ErrPermutation when p is not a bijection on [0, len(p)).
func Invert(p []int) ([]int, error) {
	q := make([]int, len(p))
	seen := make([]bool, len(p))
	for i, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return nil, fmt.Errorf("Invert: entry %d = %d: %w", i, v, ErrPermutation)
		}
		seen[v] = true
		q[v] = i
	}

	return q, nil
}

// Permute scatters src through perm: dst[perm[i]] = src[i]. With perm = h2l
// it turns a hierarchic vector into a lexicographic one; with l2h it goes back.
// dst and src must not alias.
//
// Errors: ErrPermutation on length mismatch or a non-bijective perm.
func Permute(dst, src []float64, perm []int) error {
	if len(dst) != len(src) || len(src) != len(perm) {
		return fmt.Errorf("Permute: len(dst)=%d len(src)=%d len(perm)=%d: %w",
			len(dst), len(src), len(perm), ErrPermutation)
	}
	seen := make([]bool, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return fmt.Errorf("Permute: entry %d = %d: %w", i, p, ErrPermutation)
		}
		seen[p] = true
	}
	for i, p := range perm {
		dst[p] = src[i]
	}

	return nil
}
