// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRank is the largest supported rank of an Index.
const MaxRank = 4

// Index is an immutable multi-index of rank 1..MaxRank.
//
// One type serves every rank: the components live in a fixed-size array and
// rank records how many are meaningful. The zero value is not a valid Index;
// build one with NewIndex1..NewIndex4 or NewIndex.
type Index struct {
	vals [MaxRank]int
	rank int
}

// NewIndex1 returns the rank-1 index (i0).
func NewIndex1(i0 int) (Index, error) { return NewIndex(i0) }

// NewIndex2 returns the rank-2 index (i0, i1).
func NewIndex2(i0, i1 int) (Index, error) { return NewIndex(i0, i1) }

// NewIndex3 returns the rank-3 index (i0, i1, i2).
func NewIndex3(i0, i1, i2 int) (Index, error) { return NewIndex(i0, i1, i2) }

// NewIndex4 returns the rank-4 index (i0, i1, i2, i3).
func NewIndex4(i0, i1, i2, i3 int) (Index, error) { return NewIndex(i0, i1, i2, i3) }

// NewIndex stores vals in order. The rank is len(vals).
//
// Errors:
//   - ErrRank when len(vals) is outside 1..MaxRank.
//   - ErrNegative when a component is negative.
func NewIndex(vals ...int) (Index, error) {
	var idx Index
	if len(vals) < 1 || len(vals) > MaxRank {
		return idx, fmt.Errorf("NewIndex: rank %d: %w", len(vals), ErrRank)
	}
	for n, v := range vals {
		if v < 0 {
			return idx, fmt.Errorf("NewIndex: component %d = %d: %w", n, v, ErrNegative)
		}
		idx.vals[n] = v
	}
	idx.rank = len(vals)

	return idx, nil
}

// MustIndex is NewIndex for literals known to be valid; it panics otherwise.
func MustIndex(vals ...int) Index {
	idx, err := NewIndex(vals...)
	if err != nil {
		panic(err)
	}

	return idx
}

// Rank returns the number of components.
func (x Index) Rank() int { return x.rank }

// At returns component n.
// Errors: ErrOutOfRange when n < 0 or n ≥ Rank().
func (x Index) At(n int) (int, error) {
	if n < 0 || n >= x.rank {
		return 0, fmt.Errorf("Index.At(%d): higher than maximum %d: %w", n, x.rank-1, ErrOutOfRange)
	}

	return x.vals[n], nil
}

// Values returns a copy of the components.
func (x Index) Values() []int {
	out := make([]int, x.rank)
	copy(out, x.vals[:x.rank])

	return out
}

// String renders the index as "(i0,i1,...)".
func (x Index) String() string {
	parts := make([]string, x.rank)
	for n := 0; n < x.rank; n++ {
		parts[n] = strconv.Itoa(x.vals[n])
	}

	return "(" + strings.Join(parts, ",") + ")"
}
