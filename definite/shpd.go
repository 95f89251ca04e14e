// SPDX-License-Identifier: MIT

package definite

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
)

// SpecialHermitianPositiveDefinite is the manifold of Hermitian positive
// definite n×n matrices with unit determinant (or a product of k of them).
//
// It layers on the HPD geometry: tangent vectors additionally satisfy
// Re tr(X⁻¹U) = 0, and exp, retraction and sampling renormalize each slice
// by det^{1/n}. Hessian conversion is not available.
type SpecialHermitianPositiveDefinite struct {
	affine
}

var _ manifold.Manifold = (*SpecialHermitianPositiveDefinite)(nil)

// NewSpecialHermitianPositiveDefinite returns the SHPD manifold of n×n
// matrices, of real dimension k·n(n+1) − k. Returns batch.ErrBadShape
// unless n > 0.
func NewSpecialHermitianPositiveDefinite(n int, opts ...Option) (*SpecialHermitianPositiveDefinite, error) {
	const tag = "SpecialHermitianPositiveDefinite"
	if err := checkN(tag, n); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	name := fmt.Sprintf("Manifold of special Hermitian positive definite (%d x %d) matrices", n, n)
	if o.k > 1 {
		name = fmt.Sprintf("Product manifold of %d (%d x %d) special Hermitian positive definite", o.k, n, n)
	}

	return &SpecialHermitianPositiveDefinite{
		affine: newAffine(tag, name, n, o.k, o.k*n*(n+1)-o.k, true),
	}, nil
}

// Projection returns H − (Re tr(X⁻¹H)/n)·X with H = herm(V).
func (s *SpecialHermitianPositiveDefinite) Projection(x, v *batch.Array) (*batch.Array, error) {
	h, err := s.affine.Projection(x, v)
	if err != nil {
		return nil, err
	}
	xh, err := batch.Solve(x, h)
	if err != nil {
		return nil, s.wrap("Projection", err)
	}
	tr, err := batch.Trace(xh)
	if err != nil {
		return nil, s.wrap("Projection", err)
	}
	alpha := make([]float64, s.k)
	for p, t := range tr {
		alpha[p] = -real(t) / float64(s.n)
	}
	out, err := batch.AxpySlices(alpha, x, h)
	if err != nil {
		return nil, s.wrap("Projection", err)
	}

	return out, nil
}

// EuclideanToRiemannianGradient projects the HPD gradient X·herm(G)·X.
func (s *SpecialHermitianPositiveDefinite) EuclideanToRiemannianGradient(x, egrad *batch.Array) (*batch.Array, error) {
	g, err := s.affine.EuclideanToRiemannianGradient(x, egrad)
	if err != nil {
		return nil, err
	}

	return s.Projection(x, g)
}

// EuclideanToRiemannianHessian always returns manifold.ErrNotImplemented.
func (s *SpecialHermitianPositiveDefinite) EuclideanToRiemannianHessian(_, _, _, _ *batch.Array) (*batch.Array, error) {
	return nil, s.wrap("EuclideanToRiemannianHessian", manifold.ErrNotImplemented)
}

// unitDet rescales every slice of x by exp(−log det/n), with log det taken
// from the Cholesky factor.
func (s *SpecialHermitianPositiveDefinite) unitDet(x *batch.Array) (*batch.Array, error) {
	logDets, err := batch.LogDetPD(x)
	if err != nil {
		return nil, err
	}
	scale := make([]float64, s.k)
	for p, ld := range logDets {
		if math.IsNaN(ld) || math.IsInf(ld, 0) {
			return nil, &batch.IndexError{Index: p, Err: fmt.Errorf("log det %v: %w", ld, batch.ErrSingular)}
		}
		scale[p] = math.Exp(-ld / float64(s.n))
	}

	return batch.ScaleSlices(x, scale)
}

// Exp is the HPD exponential normalized to unit determinant.
func (s *SpecialHermitianPositiveDefinite) Exp(x, u *batch.Array) (*batch.Array, error) {
	e, err := s.affine.Exp(x, u)
	if err != nil {
		return nil, err
	}
	out, err := s.unitDet(e)
	if err != nil {
		return nil, s.wrap("Exp", err)
	}

	return out, nil
}

// Retraction is the HPD retraction normalized to unit determinant.
func (s *SpecialHermitianPositiveDefinite) Retraction(x, u *batch.Array) (*batch.Array, error) {
	r, err := s.affine.Retraction(x, u)
	if err != nil {
		return nil, err
	}
	out, err := s.unitDet(r)
	if err != nil {
		return nil, s.wrap("Retraction", err)
	}

	return out, nil
}

// RandomPoint samples an HPD point and normalizes it to unit determinant.
func (s *SpecialHermitianPositiveDefinite) RandomPoint(src rand.Source) (*batch.Array, error) {
	x, err := s.affine.RandomPoint(src)
	if err != nil {
		return nil, err
	}
	out, err := s.unitDet(x)
	if err != nil {
		return nil, s.wrap("RandomPoint", err)
	}

	return out, nil
}

// RandomTangentVector projects a Hermitian Gaussian draw onto the tangent
// space at x and rescales it to unit norm.
func (s *SpecialHermitianPositiveDefinite) RandomTangentVector(x *batch.Array, src rand.Source) (*batch.Array, error) {
	if err := s.check("RandomTangentVector", x); err != nil {
		return nil, err
	}
	g, err := s.randomDirection(batch.SourceOrDefault(src))
	if err != nil {
		return nil, s.wrap("RandomTangentVector", err)
	}
	u, err := s.Projection(x, g)
	if err != nil {
		return nil, err
	}
	nu, err := s.Norm(x, u)
	if err != nil {
		return nil, err
	}

	return batch.Scale(1/nu, u), nil
}

// Transport projects u onto the tangent space at y.
func (s *SpecialHermitianPositiveDefinite) Transport(x, y, u *batch.Array) (*batch.Array, error) {
	if err := s.check("Transport", x, y, u); err != nil {
		return nil, err
	}

	return s.Projection(y, u)
}

// PairMean returns Exp(x, Log(x, y)/2) with the unit-determinant Exp.
func (s *SpecialHermitianPositiveDefinite) PairMean(x, y *batch.Array) (*batch.Array, error) {
	u, err := s.Log(x, y)
	if err != nil {
		return nil, err
	}

	return s.Exp(x, batch.Scale(0.5, u))
}
