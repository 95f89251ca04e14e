// SPDX-License-Identifier: MIT
// Package manifoldtest checks the laws every manifold.Manifold must obey.
//
// Purpose:
//   - One property suite shared by all manifold packages, so each family is
//     held to the same contract (zero step, inverse laws, distance
//     consistency, first-order agreement, projection idempotence, sampling).
//   - Deterministic: every run draws from manifold.NewSource(Config.Seed),
//     and a nil source behaves like manifold.NewSource(0).
//
// Usage:
//
//	manifoldtest.Run(t, m, manifoldtest.Config{Seed: 7, Contains: isUnitColumns})
package manifoldtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
)

// Default tolerances, relative to 1 + ‖reference‖.
const (
	DefaultTol     = 1e-6
	DefaultStep    = 1e-6
	DefaultTangent = 0.5
)

// Config tunes Run for one manifold.
type Config struct {
	// Seed feeds manifold.NewSource; 0 means the package default.
	Seed uint64
	// Tol is the relative tolerance of the inverse and consistency laws.
	Tol float64
	// TangentScale is the norm of the tangent vectors used by Log(Exp(u)).
	// It must keep Exp inside the injectivity radius.
	TangentScale float64
	// Contains asserts that x lies on the manifold. Optional.
	Contains func(t require.TestingT, x *batch.Array)
}

func (c Config) withDefaults() Config {
	if c.Tol == 0 {
		c.Tol = DefaultTol
	}
	if c.TangentScale == 0 {
		c.TangentScale = DefaultTangent
	}

	return c
}

// RequireClose fails unless ‖got − want‖ ≤ tol·(1 + ‖want‖).
func RequireClose(t require.TestingT, want, got *batch.Array, tol float64, msgAndArgs ...interface{}) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	diff, err := batch.Sub(got, want)
	require.NoError(t, err, msgAndArgs...)
	require.LessOrEqual(t, batch.Norm(diff), tol*(1+batch.Norm(want)), msgAndArgs...)
}

// Run executes the contract property suite against m as subtests of t.
func Run(t *testing.T, m manifold.Manifold, cfg Config) {
	t.Helper()
	cfg = cfg.withDefaults()
	src := manifold.NewSource(cfg.Seed)

	sample := func(t *testing.T) (x, y *batch.Array) {
		var err error
		x, err = m.RandomPoint(src)
		require.NoError(t, err)
		y, err = m.RandomPoint(src)
		require.NoError(t, err)

		return x, y
	}

	t.Run("Descriptor", func(t *testing.T) {
		require.NotEmpty(t, m.Name())
		require.Positive(t, m.Dim())
		require.Positive(t, m.TypicalDist())
	})

	t.Run("Membership", func(t *testing.T) {
		if cfg.Contains == nil {
			t.Skip("no membership check")
		}
		x, _ := sample(t)
		cfg.Contains(t, x)

		u, err := m.RandomTangentVector(x, src)
		require.NoError(t, err)
		e, err := m.Exp(x, u)
		require.NoError(t, err)
		cfg.Contains(t, e)
		r, err := m.Retraction(x, u)
		require.NoError(t, err)
		cfg.Contains(t, r)
	})

	t.Run("ZeroStep", func(t *testing.T) {
		x, _ := sample(t)
		z := m.ZeroVector(x)

		e, err := m.Exp(x, z)
		require.NoError(t, err)
		RequireClose(t, x, e, 1e-12, "exp(x, 0)")

		r, err := m.Retraction(x, z)
		require.NoError(t, err)
		RequireClose(t, x, r, 1e-12, "retraction(x, 0)")
	})

	t.Run("ExpOfLog", func(t *testing.T) {
		x, y := sample(t)
		u, err := m.Log(x, y)
		require.NoError(t, err)
		got, err := m.Exp(x, u)
		require.NoError(t, err)
		RequireClose(t, y, got, cfg.Tol, "exp(x, log(x, y))")
	})

	t.Run("LogOfExp", func(t *testing.T) {
		x, _ := sample(t)
		u, err := m.RandomTangentVector(x, src)
		require.NoError(t, err)
		u = batch.Scale(cfg.TangentScale, u)
		y, err := m.Exp(x, u)
		require.NoError(t, err)
		got, err := m.Log(x, y)
		require.NoError(t, err)
		RequireClose(t, u, got, cfg.Tol, "log(x, exp(x, u))")
	})

	t.Run("DistanceConsistency", func(t *testing.T) {
		x, y := sample(t)
		d, err := m.Dist(x, y)
		require.NoError(t, err)
		u, err := m.Log(x, y)
		require.NoError(t, err)
		n, err := m.Norm(x, u)
		require.NoError(t, err)
		require.InDelta(t, d, n, cfg.Tol*(1+d))

		self, err := m.Dist(x, x)
		require.NoError(t, err)
		require.InDelta(t, 0, self, cfg.Tol)
	})

	t.Run("FirstOrderAgreement", func(t *testing.T) {
		x, _ := sample(t)
		u, err := m.RandomTangentVector(x, src)
		require.NoError(t, err)
		u = batch.Scale(DefaultStep, u)
		lin, err := batch.Add(x, u)
		require.NoError(t, err)

		// Second-order remainder is O(‖u‖²) = 1e-12; allow rounding on top.
		e, err := m.Exp(x, u)
		require.NoError(t, err)
		RequireClose(t, lin, e, 1e-9, "exp(x, u) ≈ x + u")
		r, err := m.Retraction(x, u)
		require.NoError(t, err)
		RequireClose(t, lin, r, 1e-9, "retraction(x, u) ≈ x + u")
	})

	t.Run("ProjectionIdempotent", func(t *testing.T) {
		x, _ := sample(t)
		k, r, c := x.Dims()
		var v *batch.Array
		var err error
		if x.IsComplex() {
			v, err = batch.ComplexNormal(src, k, r, c)
		} else {
			v, err = batch.Normal(src, k, r, c)
		}
		require.NoError(t, err)

		p1, err := m.Projection(x, v)
		require.NoError(t, err)
		p2, err := m.Projection(x, p1)
		require.NoError(t, err)
		RequireClose(t, p1, p2, 1e-10, "projection twice")
	})

	t.Run("RandomTangentUnitNorm", func(t *testing.T) {
		x, _ := sample(t)
		u, err := m.RandomTangentVector(x, src)
		require.NoError(t, err)
		n, err := m.Norm(x, u)
		require.NoError(t, err)
		require.InDelta(t, 1, n, 1e-10)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := m.RandomPoint(manifold.NewSource(cfg.Seed + 1))
		require.NoError(t, err)
		b, err := m.RandomPoint(manifold.NewSource(cfg.Seed + 1))
		require.NoError(t, err)
		require.Equal(t, a.RawReal(), b.RawReal())
		require.Equal(t, a.RawImag(), b.RawImag())
	})

	t.Run("NilSourceIsDefault", func(t *testing.T) {
		a, err := m.RandomPoint(nil)
		require.NoError(t, err)
		b, err := m.RandomPoint(nil)
		require.NoError(t, err)
		want, err := m.RandomPoint(manifold.NewSource(0))
		require.NoError(t, err)
		require.Equal(t, a.RawReal(), b.RawReal())
		require.Equal(t, a.RawImag(), b.RawImag())
		require.Equal(t, want.RawReal(), a.RawReal())
		require.Equal(t, want.RawImag(), a.RawImag())

		u, err := m.RandomTangentVector(a, nil)
		require.NoError(t, err)
		v, err := m.RandomTangentVector(a, nil)
		require.NoError(t, err)
		require.Equal(t, u.RawReal(), v.RawReal())
		require.Equal(t, u.RawImag(), v.RawImag())
	})

	t.Run("TransportIsTangent", func(t *testing.T) {
		x, y := sample(t)
		u, err := m.RandomTangentVector(x, src)
		require.NoError(t, err)
		w, err := m.Transport(x, y, u)
		require.NoError(t, err)
		pw, err := m.Projection(y, w)
		require.NoError(t, err)
		RequireClose(t, w, pw, 1e-8, "transported vector is tangent at y")
	})
}
