// SPDX-License-Identifier: MIT

package positive

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
)

const tag = "Positive"

// transportFunc is resolved once from TransportMode at construction.
type transportFunc func(a, b, u *batch.Array) (*batch.Array, error)

// Positive is the (product) manifold of k entrywise-positive m×n matrices.
// Points and tangent vectors are real k×m×n arrays.
type Positive struct {
	manifold.Descriptor
	m, n, k   int
	shape     manifold.Shape
	transport transportFunc
}

var _ manifold.Manifold = (*Positive)(nil)

// New returns the Positive manifold of m×n matrices.
// Returns batch.ErrBadShape unless m, n > 0.
func New(m, n int, opts ...Option) (*Positive, error) {
	if m <= 0 || n <= 0 {
		return nil, manifold.Errorf(tag, "New", fmt.Errorf("m=%d n=%d: %w", m, n, batch.ErrBadShape))
	}
	o := gatherOptions(opts...)

	name := fmt.Sprintf("Manifold of positive %dx%d matrices", m, n)
	if o.k > 1 {
		name = fmt.Sprintf("Product manifold of %d positive %dx%d matrices", o.k, m, n)
	}
	dim := o.k * m * n
	p := &Positive{
		Descriptor: manifold.NewDescriptor(name, dim, math.Sqrt(float64(dim))),
		m:          m,
		n:          n,
		k:          o.k,
		shape:      manifold.Shape{K: o.k, R: m, C: n},
	}
	switch o.transport {
	case TransportParallel:
		p.transport = parallelTransport
	default:
		p.transport = identityTransport
	}

	return p, nil
}

// Inner returns Σ (u/x) ⊙ (v/x).
func (p *Positive) Inner(x, u, v *batch.Array) (float64, error) {
	if err := p.shape.Check(x, u, v); err != nil {
		return 0, manifold.Errorf(tag, "Inner", err)
	}
	ux, err := batch.Div(u, x)
	if err != nil {
		return 0, manifold.Errorf(tag, "Inner", err)
	}
	vx, err := batch.Div(v, x)
	if err != nil {
		return 0, manifold.Errorf(tag, "Inner", err)
	}

	return batch.Dot(ux, vx)
}

// Norm returns sqrt(Inner(x, u, u)).
func (p *Positive) Norm(x, u *batch.Array) (float64, error) {
	s, err := p.Inner(x, u, u)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(s), nil
}

// Projection is the identity: every real matrix is tangent.
func (p *Positive) Projection(x, v *batch.Array) (*batch.Array, error) {
	if err := p.shape.Check(x, v); err != nil {
		return nil, manifold.Errorf(tag, "Projection", err)
	}

	return v.Clone(), nil
}

// EuclideanToRiemannianGradient returns egrad ⊙ x².
func (p *Positive) EuclideanToRiemannianGradient(x, egrad *batch.Array) (*batch.Array, error) {
	if err := p.shape.Check(x, egrad); err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianGradient", err)
	}
	gx, err := batch.Hadamard(egrad, x)
	if err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianGradient", err)
	}

	return batch.Hadamard(gx, x)
}

// EuclideanToRiemannianHessian returns ehess ⊙ x² + u ⊙ egrad ⊙ x.
func (p *Positive) EuclideanToRiemannianHessian(x, egrad, ehess, u *batch.Array) (*batch.Array, error) {
	if err := p.shape.Check(x, egrad, ehess, u); err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianHessian", err)
	}
	hx, err := p.EuclideanToRiemannianGradient(x, ehess)
	if err != nil {
		return nil, err
	}
	ug, err := batch.Hadamard(u, egrad)
	if err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianHessian", err)
	}
	ugx, err := batch.Hadamard(ug, x)
	if err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianHessian", err)
	}

	return batch.Add(hx, ugx)
}

// Exp returns x ⊙ exp(u/x).
func (p *Positive) Exp(x, u *batch.Array) (*batch.Array, error) {
	if err := p.shape.Check(x, u); err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}
	ux, err := batch.Div(u, x)
	if err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}
	e, err := batch.Map(ux, math.Exp)
	if err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}

	return batch.Hadamard(x, e)
}

// Retraction is Exp.
func (p *Positive) Retraction(x, u *batch.Array) (*batch.Array, error) {
	return p.Exp(x, u)
}

// logRatio returns log b − log a.
func logRatio(a, b *batch.Array) (*batch.Array, error) {
	la, err := batch.Map(a, math.Log)
	if err != nil {
		return nil, err
	}
	lb, err := batch.Map(b, math.Log)
	if err != nil {
		return nil, err
	}

	return batch.Sub(lb, la)
}

// Log returns a ⊙ (log b − log a).
func (p *Positive) Log(a, b *batch.Array) (*batch.Array, error) {
	if err := p.shape.Check(a, b); err != nil {
		return nil, manifold.Errorf(tag, "Log", err)
	}
	r, err := logRatio(a, b)
	if err != nil {
		return nil, manifold.Errorf(tag, "Log", err)
	}

	return batch.Hadamard(a, r)
}

// Dist returns ‖log a − log b‖_F.
func (p *Positive) Dist(a, b *batch.Array) (float64, error) {
	if err := p.shape.Check(a, b); err != nil {
		return 0, manifold.Errorf(tag, "Dist", err)
	}
	r, err := logRatio(a, b)
	if err != nil {
		return 0, manifold.Errorf(tag, "Dist", err)
	}

	return batch.Norm(r), nil
}

// RandomPoint returns exp(N(0,1)) entrywise. A nil src draws from
// batch.DefaultSource.
func (p *Positive) RandomPoint(src rand.Source) (*batch.Array, error) {
	g, err := batch.Normal(batch.SourceOrDefault(src), p.k, p.m, p.n)
	if err != nil {
		return nil, manifold.Errorf(tag, "RandomPoint", err)
	}

	return batch.Map(g, math.Exp)
}

// RandomTangentVector returns N(0,1) ⊙ x rescaled to unit Riemannian norm.
func (p *Positive) RandomTangentVector(x *batch.Array, src rand.Source) (*batch.Array, error) {
	if err := p.shape.Check(x); err != nil {
		return nil, manifold.Errorf(tag, "RandomTangentVector", err)
	}
	g, err := batch.Normal(batch.SourceOrDefault(src), p.k, p.m, p.n)
	if err != nil {
		return nil, manifold.Errorf(tag, "RandomTangentVector", err)
	}
	u, err := batch.Hadamard(g, x)
	if err != nil {
		return nil, manifold.Errorf(tag, "RandomTangentVector", err)
	}
	nu, err := p.Norm(x, u)
	if err != nil {
		return nil, err
	}

	return batch.Scale(1/nu, u), nil
}

// Transport applies the mode chosen with WithTransport.
func (p *Positive) Transport(a, b, u *batch.Array) (*batch.Array, error) {
	if err := p.shape.Check(a, b, u); err != nil {
		return nil, manifold.Errorf(tag, "Transport", err)
	}

	return p.transport(a, b, u)
}

func identityTransport(_, _, u *batch.Array) (*batch.Array, error) {
	return u.Clone(), nil
}

// parallelTransport returns u ⊙ b / a.
func parallelTransport(a, b, u *batch.Array) (*batch.Array, error) {
	ub, err := batch.Hadamard(u, b)
	if err != nil {
		return nil, err
	}

	return batch.Div(ub, a)
}

// PairMean returns sqrt(a ⊙ b), the geodesic midpoint.
func (p *Positive) PairMean(a, b *batch.Array) (*batch.Array, error) {
	if err := p.shape.Check(a, b); err != nil {
		return nil, manifold.Errorf(tag, "PairMean", err)
	}
	ab, err := batch.Hadamard(a, b)
	if err != nil {
		return nil, manifold.Errorf(tag, "PairMean", err)
	}

	return batch.Map(ab, math.Sqrt)
}

// ZeroVector returns zeros shaped like x.
func (p *Positive) ZeroVector(x *batch.Array) *batch.Array { return batch.ZerosLike(x) }
