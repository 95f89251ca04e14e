// SPDX-License-Identifier: MIT

// Package definite implements the positive-definite matrix manifolds with
// the affine-invariant metric ⟨U, V⟩_X = Re tr(X⁻¹ U X⁻¹ V):
//
//   - SymmetricPositiveDefinite: real symmetric positive definite n×n;
//   - HermitianPositiveDefinite: complex Hermitian positive definite n×n;
//   - SpecialHermitianPositiveDefinite: the HPD matrices of unit determinant.
//
// Each accepts WithProduct(k) for a product of k copies; points are k×n×n
// arrays. The three share one unexported geometry core:
//
//	Projection(X, V)  = herm(V)
//	Exp(X, U)         = X · expm(X⁻¹U)
//	Retraction(X, U)  = herm(X + U + U X⁻¹ U / 2)       (second order)
//	Log(X, Y)         = C · logm(C⁻¹ Y C⁻ᴴ) · Cᴴ,  X = C Cᴴ
//	Dist(X, Y)        = ‖logm(C⁻¹ Y C⁻ᴴ)‖_F
//
// Log and Dist factor X with Cholesky and never form an inverse, so a
// non positive definite point fails fast with batch.ErrNotPositiveDefinite.
//
// The unit-determinant variant layers a trace-removing projection on top
// and rescales exp, retraction and random points by |det|^{1/n}. Its
// Euclidean-to-Riemannian Hessian conversion is not defined and returns
// manifold.ErrNotImplemented.
package definite
