// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"unsafe"
)

// Operation tags for error wrapping.
const (
	opApplyAxis    = "ApplyAxis"
	opAddApplyAxis = "AddApplyAxis"
)

// ApplyAxis computes dst = (I ⊗ … ⊗ B ⊗ … ⊗ I)·src, with B acting on axis.
//
// b is the row-major n×n matrix B where n is the extent of axis; with
// transpose set, Bᵀ is applied instead without forming it.
//
// Implementation:
//   - View src as blocks of shape [inner, n, outer] where inner = stride(axis)
//     and outer = Size/(inner·n); each block is an n×inner matrix and B
//     multiplies it from the left.
//
// Zero entries of B are multiplied like any other, so NaN and Inf in src
// propagate.
//
// Errors:
//   - ErrOutOfRange (axis), ErrShapeMismatch (lengths), ErrAliased when dst
//     and src share any element.
//
// Complexity:
//   - Time O(n · Size), no allocations.
func ApplyAxis(dst, src []float64, shape Shape, axis int, b []float64, transpose bool) error {
	if err := checkAxisOperands(opApplyAxis, dst, src, shape, axis, b); err != nil {
		return err
	}
	applyAxis(dst, src, shape, axis, b, transpose, false)

	return nil
}

// AddApplyAxis is ApplyAxis accumulating into dst: dst += (I ⊗ … ⊗ B ⊗ … ⊗ I)·src.
func AddApplyAxis(dst, src []float64, shape Shape, axis int, b []float64, transpose bool) error {
	if err := checkAxisOperands(opAddApplyAxis, dst, src, shape, axis, b); err != nil {
		return err
	}
	applyAxis(dst, src, shape, axis, b, transpose, true)

	return nil
}

func checkAxisOperands(tag string, dst, src []float64, shape Shape, axis int, b []float64) error {
	n, err := shape.Extent(axis)
	if err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if len(src) != shape.Size() || len(dst) != shape.Size() {
		return fmt.Errorf("%s: len(src)=%d len(dst)=%d, want %d: %w", tag, len(src), len(dst), shape.Size(), ErrShapeMismatch)
	}
	if len(b) != n*n {
		return fmt.Errorf("%s: matrix has %d entries, want %d×%d: %w", tag, len(b), n, n, ErrShapeMismatch)
	}
	if overlaps(dst, src) {
		return fmt.Errorf("%s: %w", tag, ErrAliased)
	}

	return nil
}

// overlaps reports whether x and y share any element. Both are non-empty.
func overlaps(x, y []float64) bool {
	xStart := uintptr(unsafe.Pointer(&x[0]))
	xEnd := uintptr(unsafe.Pointer(&x[len(x)-1]))
	yStart := uintptr(unsafe.Pointer(&y[0]))
	yEnd := uintptr(unsafe.Pointer(&y[len(y)-1]))

	return xStart <= yEnd && yStart <= xEnd
}

// applyAxis is the unchecked kernel shared by the public helpers.
func applyAxis(dst, src []float64, shape Shape, axis int, b []float64, transpose, accumulate bool) {
	n := shape.ext[axis]
	inner := shape.stride(axis)
	block := inner * n
	outer := shape.size / block

	var o, i, j, k, base, dRow, sRow int
	var bij float64
	for o = 0; o < outer; o++ {
		base = o * block
		for i = 0; i < n; i++ {
			dRow = base + i*inner
			if !accumulate {
				for k = 0; k < inner; k++ {
					dst[dRow+k] = 0
				}
			}
			for j = 0; j < n; j++ {
				if transpose {
					bij = b[j*n+i]
				} else {
					bij = b[i*n+j]
				}
				sRow = base + j*inner
				for k = 0; k < inner; k++ {
					dst[dRow+k] += bij * src[sRow+k]
				}
			}
		}
	}
}

// Walk visits every flat offset in increasing order together with its
// multi-index components. The idx slice is reused between calls and must not
// be retained by fn.
// Complexity: O(Size) amortized.
func (s Shape) Walk(fn func(offset int, idx []int)) {
	idx := make([]int, s.rank)
	for off := 0; off < s.size; off++ {
		fn(off, idx)
		for d := 0; d < s.rank; d++ { // odometer, axis 0 fastest
			idx[d]++
			if idx[d] < s.ext[d] {
				break
			}
			idx[d] = 0
		}
	}
}
