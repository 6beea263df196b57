package tensorproduct_test

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/tensorfdm/matrix"
	"github.com/katalvlaran/tensorfdm/tensor"
	"github.com/katalvlaran/tensorfdm/tensorproduct"
)

// ExampleSymmetricSum_ApplyInverse inverts L = M⊗A + A⊗M for M = I and
// A = diag(1, 4): the joint eigenvalues are 2, 5, 5 and 8.
func ExampleSymmetricSum_ApplyInverse() {
	mass, _ := matrix.NewIdentity(2)
	stiff, _ := matrix.NewDiagonal([]float64{1, 4})
	op, err := tensorproduct.NewUniform(2, tensorproduct.Pair{Mass: mass, Stiffness: stiff})
	if err != nil {
		fmt.Println(err)
		return
	}

	x, _ := op.ApplyInverse([]float64{1, 1, 1, 1})
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = strconv.FormatFloat(v, 'g', 4, 64)
	}
	fmt.Println(strings.Join(parts, " "))

	lam, _ := op.JointEigenvalue(tensor.MustIndex(0, 1))
	fmt.Printf("λ(0,1) = %.4g\n", lam)
	// Output:
	// 0.5 0.2 0.2 0.125
	// λ(0,1) = 5
}
