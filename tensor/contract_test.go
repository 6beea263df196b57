package tensor_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/katalvlaran/tensorfdm/tensor"
	"github.com/stretchr/testify/require"
)

func TestShapeOffsets(t *testing.T) {
	s, err := tensor.NewShape(2, 3, 4)
	require.NoError(t, err)
	require.Equal(t, 24, s.Size())
	require.Equal(t, 3, s.Rank())
	require.Equal(t, []int{2, 3, 4}, s.Extents())

	// axis 0 varies fastest
	off, err := s.Offset(tensor.MustIndex(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, 1+2*(2+3*3), off)

	st, err := s.Stride(2)
	require.NoError(t, err)
	require.Equal(t, 6, st)

	for o := 0; o < s.Size(); o++ {
		idx, err := s.IndexOf(o)
		require.NoError(t, err)
		back, err := s.Offset(idx)
		require.NoError(t, err)
		require.Equal(t, o, back)
	}

	_, err = s.Offset(tensor.MustIndex(2, 0, 0))
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
	_, err = s.Offset(tensor.MustIndex(0, 0))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = s.IndexOf(24)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
	_, err = s.Extent(3)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
}

func TestNewShapeInvalid(t *testing.T) {
	_, err := tensor.NewShape()
	require.ErrorIs(t, err, tensor.ErrRank)
	_, err = tensor.NewShape(2, 0)
	require.ErrorIs(t, err, tensor.ErrNegative)
}

func TestWalkMatchesIndexOf(t *testing.T) {
	s, err := tensor.NewShape(3, 2, 2)
	require.NoError(t, err)
	visits := 0
	s.Walk(func(off int, idx []int) {
		want, err := s.IndexOf(off)
		require.NoError(t, err)
		require.Equal(t, want.Values(), idx)
		require.Equal(t, visits, off)
		visits++
	})
	require.Equal(t, s.Size(), visits)
}

// kronAlong builds I ⊗ … ⊗ B ⊗ … ⊗ I for axis, with the slowest axis leftmost.
func kronAlong(t *testing.T, s tensor.Shape, axis int, b *matrix.Dense) *matrix.Dense {
	t.Helper()
	var full *matrix.Dense
	for d := s.Rank() - 1; d >= 0; d-- {
		n, _ := s.Extent(d)
		factor, err := matrix.NewIdentity(n)
		require.NoError(t, err)
		if d == axis {
			factor = b
		}
		if full == nil {
			full = factor
			continue
		}
		full, err = matrix.Kron(full, factor)
		require.NoError(t, err)
	}

	return full
}

func randomSquare(rng *rand.Rand, n int) *matrix.Dense {
	m, _ := matrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			_ = m.Set(i, j, rng.NormFloat64())
		}
	}

	return m
}

// TestApplyAxisMatchesKronecker compares the sum-factorized contraction with
// the explicitly assembled Kronecker operator for every axis of 1-D..3-D shapes.
func TestApplyAxisMatchesKronecker(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, ext := range [][]int{{4}, {3, 2}, {2, 3, 4}} {
		s, err := tensor.NewShape(ext...)
		require.NoError(t, err)
		src := make([]float64, s.Size())
		for i := range src {
			src[i] = rng.NormFloat64()
		}
		for axis := 0; axis < s.Rank(); axis++ {
			n, _ := s.Extent(axis)
			b := randomSquare(rng, n)
			bt, err := matrix.Transpose(b)
			require.NoError(t, err)

			for _, transpose := range []bool{false, true} {
				want := b
				if transpose {
					want = bt
				}
				full := kronAlong(t, s, axis, want)
				expected, err := matrix.MatVec(full, src)
				require.NoError(t, err)

				dst := make([]float64, s.Size())
				require.NoError(t, tensor.ApplyAxis(dst, src, s, axis, b.RawData(), transpose))
				require.InDeltaSlice(t, expected, dst, 1e-12, "shape %v axis %d T=%v", ext, axis, transpose)

				// accumulate on top of the first result doubles it
				require.NoError(t, tensor.AddApplyAxis(dst, src, s, axis, b.RawData(), transpose))
				for i := range expected {
					expected[i] *= 2
				}
				require.InDeltaSlice(t, expected, dst, 1e-12)
			}
		}
	}
}

func TestApplyAxisErrors(t *testing.T) {
	s, _ := tensor.NewShape(2, 2)
	buf := make([]float64, 4)
	other := make([]float64, 4)
	b := []float64{1, 0, 0, 1}

	require.ErrorIs(t, tensor.ApplyAxis(buf, buf, s, 0, b, false), tensor.ErrAliased)
	require.ErrorIs(t, tensor.ApplyAxis(other, buf, s, 2, b, false), tensor.ErrOutOfRange)
	require.ErrorIs(t, tensor.ApplyAxis(other[:3], buf, s, 0, b, false), tensor.ErrShapeMismatch)
	require.ErrorIs(t, tensor.ApplyAxis(other, buf, s, 0, b[:3], false), tensor.ErrShapeMismatch)

	// Partially overlapping windows of one backing array.
	wide := make([]float64, 6)
	require.ErrorIs(t, tensor.ApplyAxis(wide[:4], wide[1:5], s, 0, b, false), tensor.ErrAliased)
	require.ErrorIs(t, tensor.AddApplyAxis(wide[2:6], wide[:4], s, 1, b, false), tensor.ErrAliased)
	require.NoError(t, tensor.ApplyAxis(wide[:2], wide[2:4], mustShape(t, 2), 0, b, false))
}

func TestApplyAxisPropagatesNonFinite(t *testing.T) {
	s := mustShape(t, 2, 2)
	src := []float64{math.Inf(1), 1, 1, math.NaN()}
	dst := make([]float64, 4)
	require.NoError(t, tensor.ApplyAxis(dst, src, s, 0, []float64{1, 0, 0, 1}, false))
	require.True(t, math.IsInf(dst[0], 1))
	require.True(t, math.IsNaN(dst[1]), "0·Inf contributes NaN")
	require.True(t, math.IsNaN(dst[2]), "0·NaN contributes NaN")
	require.True(t, math.IsNaN(dst[3]))
}

func mustShape(t *testing.T, extents ...int) tensor.Shape {
	t.Helper()
	s, err := tensor.NewShape(extents...)
	require.NoError(t, err)

	return s
}

func BenchmarkApplyAxis3D(b *testing.B) {
	s, _ := tensor.NewShape(8, 8, 8)
	rng := rand.New(rand.NewSource(1))
	m := randomSquare(rng, 8).RawData()
	src := make([]float64, s.Size())
	dst := make([]float64, s.Size())
	for i := range src {
		src[i] = rng.Float64()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tensor.ApplyAxis(dst, src, s, i%3, m, false)
	}
}
