// SPDX-License-Identifier: MIT

package oblique

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
)

const tag = "Oblique"

// eps guards the 0/0 case of Log when both points coincide.
var eps = math.Nextafter(1, 2) - 1

// Oblique is the manifold OB(m,n) of m×n matrices with unit-norm columns,
// i.e. the product of n unit spheres in R^m, as a Riemannian submanifold of
// R^{m×n} with the trace inner product. Points are 1×m×n arrays.
type Oblique struct {
	manifold.Embedded
	m, n int
}

var _ manifold.Manifold = (*Oblique)(nil)

// New returns OB(m,n). Returns batch.ErrBadShape unless m, n > 0.
func New(m, n int) (*Oblique, error) {
	if m <= 0 || n <= 0 {
		return nil, manifold.Errorf(tag, "New", fmt.Errorf("m=%d n=%d: %w", m, n, batch.ErrBadShape))
	}
	o := &Oblique{m: m, n: n}
	d := manifold.NewDescriptor(
		fmt.Sprintf("Oblique manifold OB(%d,%d)", m, n),
		(m-1)*n,
		math.Pi*math.Sqrt(float64(n)),
	)
	o.Embedded = manifold.NewEmbedded(d, manifold.Shape{K: 1, R: m, C: n}, o.Projection)

	return o, nil
}

// Projection returns V − X ⊙ colsum(X ⊙ V): each column loses its radial part.
func (o *Oblique) Projection(x, v *batch.Array) (*batch.Array, error) {
	if err := o.Shape().Check(x, v); err != nil {
		return nil, manifold.Errorf(tag, "Projection", err)
	}
	dots, err := batch.ColumnDots(x, v)
	if err != nil {
		return nil, manifold.Errorf(tag, "Projection", err)
	}
	radial, err := batch.ScaleColumns(x, dots)
	if err != nil {
		return nil, manifold.Errorf(tag, "Projection", err)
	}

	return batch.Sub(v, radial)
}

// EuclideanToRiemannianHessian returns P_X(ehess) − U ⊙ colsum(X ⊙ egrad).
func (o *Oblique) EuclideanToRiemannianHessian(x, egrad, ehess, u *batch.Array) (*batch.Array, error) {
	if err := o.Shape().Check(x, egrad, ehess, u); err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianHessian", err)
	}
	ph, err := o.Projection(x, ehess)
	if err != nil {
		return nil, err
	}
	dots, err := batch.ColumnDots(x, egrad)
	if err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianHessian", err)
	}
	curv, err := batch.ScaleColumns(u, dots)
	if err != nil {
		return nil, manifold.Errorf(tag, "EuclideanToRiemannianHessian", err)
	}

	return batch.Sub(ph, curv)
}

// Exp follows each column's great circle: cos(‖u‖)·x + sin(‖u‖)/‖u‖·u.
func (o *Oblique) Exp(x, u *batch.Array) (*batch.Array, error) {
	if err := o.Shape().Check(x, u); err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}
	norms, err := batch.ColumnNorms(u)
	if err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}
	cosines, err := batch.Map(norms, math.Cos)
	if err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}
	sincs, err := batch.Map(norms, sinc)
	if err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}
	a, err := batch.ScaleColumns(x, cosines)
	if err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}
	b, err := batch.ScaleColumns(u, sincs)
	if err != nil {
		return nil, manifold.Errorf(tag, "Exp", err)
	}

	return batch.Add(a, b)
}

// sinc returns sin(t)/t with sinc(0) = 1.
func sinc(t float64) float64 {
	if t == 0 {
		return 1
	}

	return math.Sin(t) / t
}

// Retraction normalizes the columns of X + U.
func (o *Oblique) Retraction(x, u *batch.Array) (*batch.Array, error) {
	if err := o.Shape().Check(x, u); err != nil {
		return nil, manifold.Errorf(tag, "Retraction", err)
	}
	s, err := batch.Add(x, u)
	if err != nil {
		return nil, manifold.Errorf(tag, "Retraction", err)
	}

	return batch.NormalizeColumns(s)
}

// clip1 restricts a cosine to [−1, 1] before arccos.
func clip1(v float64) float64 { return math.Max(-1, math.Min(1, v)) }

// columnAngles returns arccos(clip(colsum(a ⊙ b))), the per-column geodesic distances.
func columnAngles(a, b *batch.Array) (*batch.Array, error) {
	dots, err := batch.ColumnDots(a, b)
	if err != nil {
		return nil, err
	}
	clipped, err := batch.Map(dots, clip1)
	if err != nil {
		return nil, err
	}

	return batch.Map(clipped, math.Acos)
}

// Log projects b − a onto the tangent space at a and rescales every column
// to its geodesic length. The ε in (θ+ε)/(‖v‖+ε) keeps a ≈ b finite.
func (o *Oblique) Log(a, b *batch.Array) (*batch.Array, error) {
	if err := o.Shape().Check(a, b); err != nil {
		return nil, manifold.Errorf(tag, "Log", err)
	}
	diff, err := batch.Sub(b, a)
	if err != nil {
		return nil, manifold.Errorf(tag, "Log", err)
	}
	v, err := o.Projection(a, diff)
	if err != nil {
		return nil, err
	}
	angles, err := columnAngles(a, b)
	if err != nil {
		return nil, manifold.Errorf(tag, "Log", err)
	}
	norms, err := batch.ColumnNorms(v)
	if err != nil {
		return nil, manifold.Errorf(tag, "Log", err)
	}
	_, _, n := angles.Dims()
	th, nv, f := angles.RawReal(), norms.RawReal(), make([]float64, n)
	var j int
	for j = range f {
		f[j] = (th[j] + eps) / (nv[j] + eps)
	}
	factors, err := batch.NewFromData(1, 1, n, f, nil)
	if err != nil {
		return nil, manifold.Errorf(tag, "Log", err)
	}

	return batch.ScaleColumns(v, factors)
}

// Dist returns ‖arccos(clip(colsum(a ⊙ b)))‖.
func (o *Oblique) Dist(a, b *batch.Array) (float64, error) {
	if err := o.Shape().Check(a, b); err != nil {
		return 0, manifold.Errorf(tag, "Dist", err)
	}
	angles, err := columnAngles(a, b)
	if err != nil {
		return 0, manifold.Errorf(tag, "Dist", err)
	}

	return batch.Norm(angles), nil
}

// RandomPoint normalizes the columns of an i.i.d. standard normal matrix.
// A nil src draws from batch.DefaultSource.
func (o *Oblique) RandomPoint(src rand.Source) (*batch.Array, error) {
	g, err := batch.Normal(batch.SourceOrDefault(src), 1, o.m, o.n)
	if err != nil {
		return nil, manifold.Errorf(tag, "RandomPoint", err)
	}

	return batch.NormalizeColumns(g)
}

// RandomTangentVector projects a normal draw onto the tangent space at x
// and rescales it to unit norm. OB(1,n) has only the zero tangent vector.
func (o *Oblique) RandomTangentVector(x *batch.Array, src rand.Source) (*batch.Array, error) {
	if err := o.Shape().Check(x); err != nil {
		return nil, manifold.Errorf(tag, "RandomTangentVector", err)
	}
	if o.m == 1 {
		return batch.ZerosLike(x), nil
	}
	g, err := batch.Normal(batch.SourceOrDefault(src), 1, o.m, o.n)
	if err != nil {
		return nil, manifold.Errorf(tag, "RandomTangentVector", err)
	}
	u, err := o.Projection(x, g)
	if err != nil {
		return nil, err
	}

	return batch.Scale(1/batch.Norm(u), u), nil
}

// Transport projects u onto the tangent space at b.
func (o *Oblique) Transport(a, b, u *batch.Array) (*batch.Array, error) {
	if err := o.Shape().Check(a, b, u); err != nil {
		return nil, manifold.Errorf(tag, "Transport", err)
	}

	return o.Projection(b, u)
}

// PairMean normalizes the columns of a + b.
func (o *Oblique) PairMean(a, b *batch.Array) (*batch.Array, error) {
	if err := o.Shape().Check(a, b); err != nil {
		return nil, manifold.Errorf(tag, "PairMean", err)
	}
	s, err := batch.Add(a, b)
	if err != nil {
		return nil, manifold.Errorf(tag, "PairMean", err)
	}

	return batch.NormalizeColumns(s)
}

// ZeroVector returns zeros shaped like x.
func (o *Oblique) ZeroVector(x *batch.Array) *batch.Array { return batch.ZerosLike(x) }
