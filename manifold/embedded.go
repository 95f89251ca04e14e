// SPDX-License-Identifier: MIT

package manifold

import "github.com/katalvlaran/riemann/batch"

// ProjectionFunc projects an ambient vector onto the tangent space at point.
type ProjectionFunc func(point, vector *batch.Array) (*batch.Array, error)

// Embedded supplies the defaults of a Riemannian submanifold of Euclidean
// (or Hermitian) matrix space with the trace inner product: the metric is
// the ambient Frobenius inner product and the Riemannian gradient is the
// projected Euclidean gradient. The shape and the projection are bound once
// at construction; concrete manifolds embed Embedded and override only their
// geometry-specific operations.
type Embedded struct {
	Descriptor
	shape   Shape
	project ProjectionFunc
}

// NewEmbedded binds a descriptor, the operand shape and the concrete
// manifold's projection.
func NewEmbedded(d Descriptor, shape Shape, project ProjectionFunc) Embedded {
	return Embedded{Descriptor: d, shape: shape, project: project}
}

// Shape returns the layout of points and tangent vectors.
func (e Embedded) Shape() Shape { return e.shape }

// Inner returns Re Σ conj(u)·v.
func (e Embedded) Inner(point, u, v *batch.Array) (float64, error) {
	if err := e.shape.Check(point, u, v); err != nil {
		return 0, Errorf(e.Name(), "Inner", err)
	}

	return batch.Dot(u, v)
}

// Norm returns the Frobenius norm of u.
func (e Embedded) Norm(point, u *batch.Array) (float64, error) {
	if err := e.shape.Check(point, u); err != nil {
		return 0, Errorf(e.Name(), "Norm", err)
	}

	return batch.Norm(u), nil
}

// EuclideanToRiemannianGradient projects egrad onto the tangent space.
func (e Embedded) EuclideanToRiemannianGradient(point, egrad *batch.Array) (*batch.Array, error) {
	return e.project(point, egrad)
}
