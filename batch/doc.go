// SPDX-License-Identifier: MIT

// Package batch provides batched dense linear algebra over stacks of
// matrices.
//
// An Array holds k independent r×c slices (the leading "product" index k is
// always explicit, k=1 included) in real or complex form. Every kernel
// applies the same operation to each slice:
//
//   - element-wise: Add, Sub, Scale, ScaleSlices, AxpySlices, Hadamard, Div,
//     Map, Dot, Norm and the column helpers used by sphere products;
//   - structural: Mul, Transpose, HConj, Sym, Herm, Trace, TraceProduct, Eye;
//   - factorizations and solves: Solve, Cholesky, InvCongruence, QR, Det,
//     EigvalsH;
//   - matrix functions: Expm, Logm, Sqrtm, each with a Hermitian
//     (positive-definite) fast path through the eigen decomposition;
//   - sampling: Normal, ComplexNormal, Uniform from an explicit rand.Source.
//
// Real kernels are backed by gonum/mat. Complex kernels use the real block
// embedding A+iB ↦ [[A,-B],[B,A]] wherever gonum has no complex routine,
// and small dedicated kernels (Cholesky, Householder QR, determinant)
// otherwise.
//
// Errors:
//
//	Shape problems return ErrBadShape / ErrDimensionMismatch / ErrNonSquare.
//	Numerical failures (ErrSingular, ErrNotPositiveDefinite, ErrEigenFailed,
//	ErrNoConvergence) are wrapped in *IndexError naming the failing slice.
//
// Concurrency:
//
//	Kernels are pure. Slices of one call are processed in parallel on a
//	bounded worker group; distinct calls share no state.
package batch
