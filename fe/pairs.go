// SPDX-License-Identifier: MIT

package fe

import (
	"fmt"

	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/katalvlaran/tensorfdm/tensorproduct"
)

// Pairs builds one (mass, stiffness) pair per axis for a cell with sizes h,
// ready for tensorproduct.New. len(h) must equal el.Dim().
//
// shift adds shift·M_d to every stiffness, which makes the otherwise
// singular FE_Q operator (constant null mode) invertible for shift > 0.
func Pairs(el Element, h []float64, shift float64) ([]tensorproduct.Pair, error) {
	if el == nil {
		return nil, fmt.Errorf("Pairs: nil element: %w", ErrUnknownElement)
	}
	if len(h) != el.Dim() {
		return nil, fmt.Errorf("Pairs(%s): %d cell sizes: %w", el.Name(), len(h), ErrBadSpacing)
	}
	pairs := make([]tensorproduct.Pair, len(h))
	for d, hd := range h {
		m, err := el.Mass1D(hd)
		if err != nil {
			return nil, fmt.Errorf("Pairs: axis %d: %w", d, err)
		}
		a, err := el.Stiffness1D(hd)
		if err != nil {
			return nil, fmt.Errorf("Pairs: axis %d: %w", d, err)
		}
		if shift != 0 {
			if a, err = addScaled(a, m, shift); err != nil {
				return nil, fmt.Errorf("Pairs: axis %d: %w", d, err)
			}
		}
		pairs[d] = tensorproduct.Pair{Mass: m, Stiffness: a}
	}

	return pairs, nil
}

// addScaled returns a + s·b.
func addScaled(a, b *matrix.Dense, s float64) (*matrix.Dense, error) {
	if err := matrix.ValidateSameShape(a, b); err != nil {
		return nil, err
	}
	res := a.CloneDense()
	out := res.RawData()
	for i, v := range b.RawData() {
		out[i] += s * v
	}

	return res, nil
}
