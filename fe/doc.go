// SPDX-License-Identifier: MIT

// Package fe provides the one-dimensional finite element building blocks that
// feed a tensorproduct.SymmetricSum: quadrature rules on [0,1], Lagrange bases
// on Gauss–Lobatto or Gauss nodes, per-axis mass and stiffness matrices, a
// registry of element families, and the hierarchic ↔ lexicographic DoF
// numbering of tensor-product Lagrange elements.
//
// Matrices are returned in lexicographic order (nodes ascending), which is the
// ordering the tensorproduct operator expects along each axis.
package fe
