package eigen_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/tensorfdm/eigen"
	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/stretchr/testify/require"
)

var backends = map[string]eigen.GeneralizedSolver{
	"gonum":  eigen.Gonum{},
	"jacobi": eigen.Jacobi{},
}

func randomSPD(t *testing.T, rng *rand.Rand, n int) *matrix.Dense {
	t.Helper()
	b, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.NoError(t, b.Set(i, j, rng.Float64()*2-1))
		}
	}
	bt, _ := matrix.Transpose(b)
	spd, err := matrix.Mul(b, bt)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		v, _ := spd.At(i, i)
		require.NoError(t, spd.Set(i, i, v+1))
	}

	return spd
}

func randomSym(t *testing.T, rng *rand.Rand, n int) *matrix.Dense {
	t.Helper()
	s, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rng.NormFloat64()
			require.NoError(t, s.Set(i, j, v))
			require.NoError(t, s.Set(j, i, v))
		}
	}

	return s
}

// TestGeneralizedEigenProperties checks A·V = M·V·Λ, Vᵀ·M·V = I and ascending order.
func TestGeneralizedEigenProperties(t *testing.T) {
	for name, solver := range backends {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			for _, n := range []int{1, 2, 3, 6, 10} {
				m := randomSPD(t, rng, n)
				a := randomSym(t, rng, n)
				dec, err := solver.Solve(m, a)
				require.NoError(t, err, "n=%d", n)
				require.Equal(t, n, dec.Size())
				for i := 1; i < n; i++ {
					require.LessOrEqual(t, dec.Values[i-1], dec.Values[i])
				}
				require.NoError(t, eigen.Verify(m, a, dec, 1e-8), "n=%d", n)
			}
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	m := randomSPD(t, rng, 7)
	a := randomSym(t, rng, 7)

	g, err := eigen.Gonum{}.Solve(m, a)
	require.NoError(t, err)
	j, err := eigen.Jacobi{}.Solve(m, a)
	require.NoError(t, err)
	require.InDeltaSlice(t, g.Values, j.Values, 1e-9)
}

// TestIdentityMass reduces to the standard symmetric eigenproblem.
func TestIdentityMass(t *testing.T) {
	id, _ := matrix.NewIdentity(2)
	a, _ := matrix.NewDiagonal([]float64{4, 1})
	for name, solver := range backends {
		dec, err := solver.Solve(id, a)
		require.NoError(t, err, name)
		require.InDeltaSlice(t, []float64{1, 4}, dec.Values, 1e-12, name)
	}
}

func TestSolveRejectsBadInput(t *testing.T) {
	negDiag, _ := matrix.NewFromRows([][]float64{{1, 0}, {0, -2}})
	indefinite, _ := matrix.NewFromRows([][]float64{{1, 3}, {3, 1}})
	asym, _ := matrix.NewFromRows([][]float64{{2, 1}, {0, 2}})
	id2, _ := matrix.NewIdentity(2)
	id3, _ := matrix.NewIdentity(3)
	rect, _ := matrix.NewDense(2, 3)

	for name, solver := range backends {
		t.Run(name, func(t *testing.T) {
			_, err := solver.Solve(negDiag, id2)
			require.ErrorIs(t, err, eigen.ErrNotPositiveDefinite)

			_, err = solver.Solve(indefinite, id2)
			require.ErrorIs(t, err, eigen.ErrNotPositiveDefinite)

			_, err = solver.Solve(id2, asym)
			require.ErrorIs(t, err, eigen.ErrNotSymmetric)

			_, err = solver.Solve(id2, id3)
			require.ErrorIs(t, err, eigen.ErrShape)

			_, err = solver.Solve(rect, id2)
			require.ErrorIs(t, err, eigen.ErrShape)

			_, err = solver.Solve(nil, id2)
			require.ErrorIs(t, err, eigen.ErrShape)
		})
	}
}

func TestSolveDoesNotMutateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := randomSPD(t, rng, 4)
	a := randomSym(t, rng, 4)
	mCopy, aCopy := m.CloneDense(), a.CloneDense()
	for _, solver := range backends {
		_, err := solver.Solve(m, a)
		require.NoError(t, err)
	}
	require.Equal(t, mCopy.RawData(), m.RawData())
	require.Equal(t, aCopy.RawData(), a.RawData())
}

func TestVerifyDetectsWrongVectors(t *testing.T) {
	id, _ := matrix.NewIdentity(2)
	a, _ := matrix.NewDiagonal([]float64{1, 4})
	dec, err := eigen.Gonum{}.Solve(id, a)
	require.NoError(t, err)

	bad := dec.Clone()
	bad.Values[0] = 2
	require.ErrorIs(t, eigen.Verify(id, a, bad, 1e-10), eigen.ErrVerification)

	scaled := dec.Clone()
	for i := range scaled.Vectors.RawData() {
		scaled.Vectors.RawData()[i] *= 2
	}
	require.ErrorIs(t, eigen.Verify(id, a, scaled, 1e-10), eigen.ErrVerification)

	require.NoError(t, eigen.Verify(id, a, dec, 1e-10))
}
