// SPDX-License-Identifier: MIT

package manifold

import (
	"math/rand/v2"

	"github.com/katalvlaran/riemann/batch"
)

// Manifold is the capability set every matrix manifold implements.
//
// Points and tangent vectors are *batch.Array values of shape k×m×n; a
// tangent vector is only meaningful together with the point it was produced
// at. Implementations never mutate their arguments and never validate
// manifold membership: passing a point that is off the manifold is undefined
// behaviour, except where a formula guards itself (clipping, epsilon-guarded
// division, Cholesky failing fast on non-positive-definite input).
//
// Shape mismatches return batch.ErrDimensionMismatch. Numerical failures
// propagate the batch sentinels wrapped in *batch.IndexError. Operations that
// are mathematically undefined for a manifold return ErrNotImplemented.
type Manifold interface {
	// Name returns a human-readable description of the manifold.
	Name() string

	// Dim returns the intrinsic real dimension.
	Dim() int

	// TypicalDist returns a distance scale for step-size heuristics.
	TypicalDist() float64

	// Inner returns the Riemannian metric g_point(u, v).
	Inner(point, u, v *batch.Array) (float64, error)

	// Norm returns sqrt(Inner(point, u, u)).
	Norm(point, u *batch.Array) (float64, error)

	// Projection orthogonally projects an ambient vector onto the tangent
	// space at point. It is idempotent.
	Projection(point, vector *batch.Array) (*batch.Array, error)

	// EuclideanToRiemannianGradient converts an ambient gradient into the
	// Riemannian gradient at point.
	EuclideanToRiemannianGradient(point, egrad *batch.Array) (*batch.Array, error)

	// EuclideanToRiemannianHessian converts an ambient Hessian-vector product
	// ehess (along u) into the Riemannian one.
	EuclideanToRiemannianHessian(point, egrad, ehess, u *batch.Array) (*batch.Array, error)

	// Exp follows the geodesic from point along u. Exp(point, 0) == point.
	Exp(point, u *batch.Array) (*batch.Array, error)

	// Log returns the tangent vector at a whose geodesic reaches b.
	// Defined only when b lies in the injectivity domain of Exp at a.
	Log(a, b *batch.Array) (*batch.Array, error)

	// Retraction is a first-order (or better) approximation of Exp.
	Retraction(point, u *batch.Array) (*batch.Array, error)

	// Dist returns the geodesic distance, equal to Norm(a, Log(a, b)).
	Dist(a, b *batch.Array) (float64, error)

	// RandomPoint samples a point using src.
	RandomPoint(src rand.Source) (*batch.Array, error)

	// RandomTangentVector samples a unit-norm tangent vector at point using src.
	RandomTangentVector(point *batch.Array, src rand.Source) (*batch.Array, error)

	// Transport maps u from the tangent space at a to the one at b
	// (possibly approximately).
	Transport(a, b, u *batch.Array) (*batch.Array, error)

	// PairMean returns an approximate midpoint of a and b.
	PairMean(a, b *batch.Array) (*batch.Array, error)

	// ZeroVector returns the zero tangent vector at point.
	ZeroVector(point *batch.Array) *batch.Array
}
