// SPDX-License-Identifier: MIT

package definite

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
)

// affine carries the affine-invariant geometry shared by the definite
// manifolds. Variants embed it and override what they change.
type affine struct {
	manifold.Descriptor
	tag  string // error prefix, the variant's type name
	n, k int
	cplx bool // complex field (HPD family)
}

func newAffine(tag, name string, n, k, dim int, cplx bool) affine {
	return affine{
		Descriptor: manifold.NewDescriptor(name, dim, math.Sqrt(float64(dim))),
		tag:        tag,
		n:          n,
		k:          k,
		cplx:       cplx,
	}
}

// checkN rejects n ≤ 0 for the constructors.
func checkN(tag string, n int) error {
	if n <= 0 {
		return manifold.Errorf(tag, "New", fmt.Errorf("n=%d: %w", n, batch.ErrBadShape))
	}

	return nil
}

// check verifies that every operand is k×n×n.
func (a affine) check(op string, xs ...*batch.Array) error {
	if err := (manifold.Shape{K: a.k, R: a.n, C: a.n}).Check(xs...); err != nil {
		return manifold.Errorf(a.tag, op, err)
	}

	return nil
}

func (a affine) wrap(op string, err error) error { return manifold.Errorf(a.tag, op, err) }

// Inner returns Re tr(X⁻¹U · X⁻¹V) summed over the product.
func (a affine) Inner(x, u, v *batch.Array) (float64, error) {
	if err := a.check("Inner", x, u, v); err != nil {
		return 0, err
	}
	xu, err := batch.Solve(x, u)
	if err != nil {
		return 0, a.wrap("Inner", err)
	}
	xv, err := batch.Solve(x, v)
	if err != nil {
		return 0, a.wrap("Inner", err)
	}
	s, err := batch.TraceProduct(xu, xv)
	if err != nil {
		return 0, a.wrap("Inner", err)
	}

	return s, nil
}

// Norm returns sqrt(Inner(x, u, u)).
func (a affine) Norm(x, u *batch.Array) (float64, error) {
	s, err := a.Inner(x, u, u)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(math.Max(s, 0)), nil
}

// Projection returns the Hermitian part of v.
func (a affine) Projection(x, v *batch.Array) (*batch.Array, error) {
	if err := a.check("Projection", x, v); err != nil {
		return nil, err
	}
	h, err := batch.Herm(v)
	if err != nil {
		return nil, a.wrap("Projection", err)
	}

	return h, nil
}

// EuclideanToRiemannianGradient returns X · herm(G) · X.
func (a affine) EuclideanToRiemannianGradient(x, egrad *batch.Array) (*batch.Array, error) {
	if err := a.check("EuclideanToRiemannianGradient", x, egrad); err != nil {
		return nil, err
	}
	g, err := sandwich(x, egrad)
	if err != nil {
		return nil, a.wrap("EuclideanToRiemannianGradient", err)
	}

	return g, nil
}

// sandwich returns X · herm(M) · X.
func sandwich(x, m *batch.Array) (*batch.Array, error) {
	h, err := batch.Herm(m)
	if err != nil {
		return nil, err
	}
	xh, err := batch.Mul(x, h)
	if err != nil {
		return nil, err
	}

	return batch.Mul(xh, x)
}

// EuclideanToRiemannianHessian returns X·herm(H)·X + herm(U·herm(G)·X).
func (a affine) EuclideanToRiemannianHessian(x, egrad, ehess, u *batch.Array) (*batch.Array, error) {
	const op = "EuclideanToRiemannianHessian"
	if err := a.check(op, x, egrad, ehess, u); err != nil {
		return nil, err
	}
	xhx, err := sandwich(x, ehess)
	if err != nil {
		return nil, a.wrap(op, err)
	}
	g, err := batch.Herm(egrad)
	if err != nil {
		return nil, a.wrap(op, err)
	}
	ug, err := batch.Mul(u, g)
	if err != nil {
		return nil, a.wrap(op, err)
	}
	ugx, err := batch.Mul(ug, x)
	if err != nil {
		return nil, a.wrap(op, err)
	}
	curv, err := batch.Herm(ugx)
	if err != nil {
		return nil, a.wrap(op, err)
	}
	out, err := batch.Add(xhx, curv)
	if err != nil {
		return nil, a.wrap(op, err)
	}

	return out, nil
}

// Exp returns X · expm(X⁻¹U). X⁻¹U is not Hermitian, so the general
// exponential is used.
func (a affine) Exp(x, u *batch.Array) (*batch.Array, error) {
	if err := a.check("Exp", x, u); err != nil {
		return nil, err
	}
	xu, err := batch.Solve(x, u)
	if err != nil {
		return nil, a.wrap("Exp", err)
	}
	e, err := batch.Expm(xu, false)
	if err != nil {
		return nil, a.wrap("Exp", err)
	}
	out, err := batch.Mul(x, e)
	if err != nil {
		return nil, a.wrap("Exp", err)
	}

	return out, nil
}

// Retraction returns herm(X + U + U·X⁻¹U/2), a second-order retraction.
func (a affine) Retraction(x, u *batch.Array) (*batch.Array, error) {
	if err := a.check("Retraction", x, u); err != nil {
		return nil, err
	}
	xu, err := batch.Solve(x, u)
	if err != nil {
		return nil, a.wrap("Retraction", err)
	}
	uxu, err := batch.Mul(u, xu)
	if err != nil {
		return nil, a.wrap("Retraction", err)
	}
	s, err := batch.Add(x, u)
	if err != nil {
		return nil, a.wrap("Retraction", err)
	}
	s, err = batch.AxpySlices(halves(a.k), uxu, s)
	if err != nil {
		return nil, a.wrap("Retraction", err)
	}
	out, err := batch.Herm(s)
	if err != nil {
		return nil, a.wrap("Retraction", err)
	}

	return out, nil
}

func halves(k int) []float64 {
	h := make([]float64, k)
	for i := range h {
		h[i] = 0.5
	}

	return h
}

// whitenedLog factors x = C·Cᴴ and returns C together with
// logm(C⁻¹·y·C⁻ᴴ). Non positive definite x fails in Cholesky.
func whitenedLog(x, y *batch.Array) (c, l *batch.Array, err error) {
	c, err = batch.Cholesky(x)
	if err != nil {
		return nil, nil, err
	}
	w, err := batch.InvCongruence(c, y)
	if err != nil {
		return nil, nil, err
	}
	l, err = batch.Logm(w, true)
	if err != nil {
		return nil, nil, err
	}

	return c, l, nil
}

// Log returns C · logm(C⁻¹ Y C⁻ᴴ) · Cᴴ where X = C·Cᴴ.
func (a affine) Log(x, y *batch.Array) (*batch.Array, error) {
	if err := a.check("Log", x, y); err != nil {
		return nil, err
	}
	c, l, err := whitenedLog(x, y)
	if err != nil {
		return nil, a.wrap("Log", err)
	}
	cl, err := batch.Mul(c, l)
	if err != nil {
		return nil, a.wrap("Log", err)
	}
	out, err := batch.Mul(cl, batch.HConj(c))
	if err != nil {
		return nil, a.wrap("Log", err)
	}

	return out, nil
}

// Dist returns ‖logm(C⁻¹ Y C⁻ᴴ)‖_F over the whole product.
func (a affine) Dist(x, y *batch.Array) (float64, error) {
	if err := a.check("Dist", x, y); err != nil {
		return 0, err
	}
	_, l, err := whitenedLog(x, y)
	if err != nil {
		return 0, a.wrap("Dist", err)
	}

	return batch.Norm(l), nil
}

// randomPoint returns Q·diag(d)·Qᴴ per slice with d ~ U[1,2) and Q the
// unitary factor of a Gaussian matrix, drawn independently for every slice.
func (a affine) randomPoint(src rand.Source) (*batch.Array, error) {
	src = batch.SourceOrDefault(src)
	d, err := batch.Uniform(src, a.k, 1, a.n, 1, 2)
	if err != nil {
		return nil, err
	}
	var g *batch.Array
	if a.cplx {
		g, err = batch.ComplexNormal(src, a.k, a.n, a.n)
	} else {
		g, err = batch.Normal(src, a.k, a.n, a.n)
	}
	if err != nil {
		return nil, err
	}
	q, _, err := batch.QR(g)
	if err != nil {
		return nil, err
	}

	diag, err := batch.New(a.k, a.n, a.n)
	if err != nil {
		return nil, err
	}
	var p, i int
	for p = 0; p < a.k; p++ {
		for i = 0; i < a.n; i++ {
			v, _ := d.At(p, 0, i)
			if err = diag.Set(p, i, i, v); err != nil {
				return nil, err
			}
		}
	}
	qd, err := batch.Mul(q, diag)
	if err != nil {
		return nil, err
	}
	x, err := batch.Mul(qd, batch.HConj(q))
	if err != nil {
		return nil, err
	}

	return batch.Herm(x)
}

// RandomPoint samples a point with eigenvalues in [1, 2). A nil src draws
// from batch.DefaultSource.
func (a affine) RandomPoint(src rand.Source) (*batch.Array, error) {
	x, err := a.randomPoint(src)
	if err != nil {
		return nil, a.wrap("RandomPoint", err)
	}

	return x, nil
}

// randomDirection returns herm(N(0,1)) with the field of the manifold.
func (a affine) randomDirection(src rand.Source) (*batch.Array, error) {
	var g *batch.Array
	var err error
	if a.cplx {
		g, err = batch.ComplexNormal(src, a.k, a.n, a.n)
	} else {
		g, err = batch.Normal(src, a.k, a.n, a.n)
	}
	if err != nil {
		return nil, err
	}

	return batch.Herm(g)
}

// RandomTangentVector returns herm(N(0,1)) rescaled to unit norm at x.
func (a affine) RandomTangentVector(x *batch.Array, src rand.Source) (*batch.Array, error) {
	if err := a.check("RandomTangentVector", x); err != nil {
		return nil, err
	}
	u, err := a.randomDirection(batch.SourceOrDefault(src))
	if err != nil {
		return nil, a.wrap("RandomTangentVector", err)
	}
	nu, err := a.Norm(x, u)
	if err != nil {
		return nil, err
	}

	return batch.Scale(1/nu, u), nil
}

// Transport is the identity transporter: every tangent space is the
// space of Hermitian matrices.
func (a affine) Transport(x, y, u *batch.Array) (*batch.Array, error) {
	if err := a.check("Transport", x, y, u); err != nil {
		return nil, err
	}

	return u.Clone(), nil
}

// PairMean returns Exp(x, Log(x, y)/2), the midpoint of the geodesic.
func (a affine) PairMean(x, y *batch.Array) (*batch.Array, error) {
	u, err := a.Log(x, y)
	if err != nil {
		return nil, err
	}

	return a.Exp(x, batch.Scale(0.5, u))
}

// ZeroVector returns a zero k×n×n array in the manifold's field.
func (a affine) ZeroVector(_ *batch.Array) *batch.Array {
	var z *batch.Array
	if a.cplx {
		z, _ = batch.NewComplex(a.k, a.n, a.n)
	} else {
		z, _ = batch.New(a.k, a.n, a.n)
	}

	return z
}
