// Package tensorfdm solves separable elliptic problems on tensor-product
// cells by the fast diagonalization method.
//
// An operator of the form
//
//	L = Σ_d M_{D-1} ⊗ … ⊗ A_d ⊗ … ⊗ M_0,   D ≤ 3,
//
// arises from discretizing a Laplace-type problem with tensor-product shape
// functions on a single rectangular cell. Solving one small generalized
// eigenproblem A_d v = λ M_d v per direction diagonalizes L, so L⁻¹ applies
// exactly in O(D·n^{D+1}) operations instead of the O(n^{3D}) a dense solve
// would cost.
//
// Packages:
//
//	matrix/        — dense row-major matrices, Kronecker product, Cholesky, Jacobi eigen
//	tensor/        — rank-1..4 multi-indices, shapes and per-axis contractions
//	eigen/         — generalized symmetric-definite eigensolvers (gonum and Jacobi backends)
//	tensorproduct/ — the SymmetricSum operator: Apply, ApplyInverse, Assemble
//	fe/            — quadrature, 1D Lagrange elements, element registry, DoF numbering
//	config/        — YAML problem files for the fdmsolve command
//	cmd/fdmsolve/  — command-line solver with residual check
//
// Quick start:
//
//	el, _ := fe.DefaultRegistry().GetByName("FE_Q<3>(2)")
//	pairs, _ := fe.Pairs(el, []float64{1, 1, 1}, 1)
//	op, _ := tensorproduct.New(pairs)
//	x, _ := op.ApplyInverse(b)
package tensorfdm
