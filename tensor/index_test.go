package tensor_test

import (
	"testing"

	"github.com/katalvlaran/tensorfdm/tensor"
	"github.com/stretchr/testify/require"
)

// TestIndexRank3 stores (2,0,1) and rejects component 3.
func TestIndexRank3(t *testing.T) {
	idx, err := tensor.NewIndex3(2, 0, 1)
	require.NoError(t, err)
	require.Equal(t, 3, idx.Rank())

	for n, want := range []int{2, 0, 1} {
		got, err := idx.At(n)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err = idx.At(3)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
	_, err = idx.At(-1)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
}

func TestIndexConstructorsPerRank(t *testing.T) {
	i1, err := tensor.NewIndex1(7)
	require.NoError(t, err)
	i2, err := tensor.NewIndex2(7, 8)
	require.NoError(t, err)
	i4, err := tensor.NewIndex4(1, 2, 3, 4)
	require.NoError(t, err)

	require.Equal(t, []int{7}, i1.Values())
	require.Equal(t, []int{7, 8}, i2.Values())
	require.Equal(t, []int{1, 2, 3, 4}, i4.Values())
	require.Equal(t, "(1,2,3,4)", i4.String())

	_, err = i1.At(1)
	require.ErrorIs(t, err, tensor.ErrOutOfRange)
	v, err := i4.At(3)
	require.NoError(t, err)
	require.Equal(t, 4, v)
}

func TestIndexInvalid(t *testing.T) {
	_, err := tensor.NewIndex()
	require.ErrorIs(t, err, tensor.ErrRank)
	_, err = tensor.NewIndex(1, 2, 3, 4, 5)
	require.ErrorIs(t, err, tensor.ErrRank)
	_, err = tensor.NewIndex2(0, -1)
	require.ErrorIs(t, err, tensor.ErrNegative)

	require.Panics(t, func() { tensor.MustIndex() })
}

// TestIndexValuesIsCopy ensures an Index cannot be mutated through Values.
func TestIndexValuesIsCopy(t *testing.T) {
	idx := tensor.MustIndex(3, 4)
	vals := idx.Values()
	vals[0] = 100
	got, _ := idx.At(0)
	require.Equal(t, 3, got)
}
