// Package riemann is a geometry engine for Riemannian optimization over
// matrix manifolds: one contract, several manifold families, and the
// batched linear algebra underneath them.
//
// What is inside?
//
//	A small, deterministic library that brings together:
//		• The manifold contract: metric, projection, gradient/Hessian conversion,
//		  exp/log, retraction, distance, sampling, transport, pair mean
//		• Embedded submanifolds: Frobenius metric, gradient = projection
//		• Oblique OB(m,n): matrices with unit-norm columns
//		• Positive: entrywise-positive matrices, log-Euclidean geometry
//		• SPD / HPD / SHPD: (Hermitian) positive definite matrices with the
//		  affine-invariant metric, optionally of unit determinant
//		• Batched kernels over k×n×n stacks, real and complex
//
// Why this layout?
//
//   - Optimizers depend only on manifold.Manifold, never on a concrete type
//   - Every numerical failure is an error value naming the failing slice
//   - Randomness is always an explicit rand.Source: same seed, same samples
//   - Pure Go on top of gonum; no cgo
//
// Packages:
//
//	batch/       k-fold stacks of matrices and their kernels (Mul, Solve, Cholesky, QR, Expm, Logm …)
//	manifold/    the Manifold contract, Descriptor, Embedded, randomness helpers
//	manifold/manifoldtest/ the shared property suite every manifold passes
//	oblique/     OB(m,n)
//	positive/    Positive(m,n) with WithProduct / WithTransport
//	definite/    SymmetricPositiveDefinite, HermitianPositiveDefinite,
//	             SpecialHermitianPositiveDefinite
//	examples/karchermean one gradient-descent solver run on several families
//
// Quick example:
//
//	m, _ := definite.NewSymmetricPositiveDefinite(3)
//	src := manifold.NewSource(42)
//	x, _ := m.RandomPoint(src)
//	y, _ := m.RandomPoint(src)
//	d, _ := m.Dist(x, y) // affine-invariant distance
//
//	go get github.com/katalvlaran/riemann
package riemann
