// SPDX-License-Identifier: MIT

package positive_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/manifold/manifoldtest"
	"github.com/katalvlaran/riemann/positive"
)

func allPositive(t require.TestingT, x *batch.Array) {
	for _, v := range x.RawReal() {
		require.Greater(t, v, 0.0)
	}
}

func TestPositive_Contract(t *testing.T) {
	cases := []struct {
		name string
		opts []positive.Option
	}{
		{"Single", nil},
		{"Product", []positive.Option{positive.WithProduct(3)}},
		{"Parallel", []positive.Option{positive.WithProduct(2), positive.WithTransport(positive.TransportParallel)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := positive.New(3, 4, tc.opts...)
			require.NoError(t, err)
			manifoldtest.Run(t, m, manifoldtest.Config{Seed: 5, Contains: allPositive})
		})
	}
}

func TestPositive_Descriptor(t *testing.T) {
	m, err := positive.New(2, 3)
	require.NoError(t, err)
	assert.Equal(t, "Manifold of positive 2x3 matrices", m.Name())
	assert.Equal(t, 6, m.Dim())
	assert.InDelta(t, math.Sqrt(6), m.TypicalDist(), 1e-15)

	p, err := positive.New(2, 3, positive.WithProduct(4))
	require.NoError(t, err)
	assert.Equal(t, "Product manifold of 4 positive 2x3 matrices", p.Name())
	assert.Equal(t, 24, p.Dim())

	x, err := p.RandomPoint(manifold.NewSource(1))
	require.NoError(t, err)
	k, r, c := x.Dims()
	assert.Equal(t, []int{4, 2, 3}, []int{k, r, c})
}

func TestPositive_Options(t *testing.T) {
	assert.PanicsWithValue(t, "positive: WithProduct: k must be positive", func() { positive.WithProduct(0) })
	assert.Panics(t, func() { positive.WithTransport(positive.TransportMode(9)) })
	assert.Equal(t, "parallel", positive.TransportParallel.String())
	assert.Equal(t, "TransportMode(9)", positive.TransportMode(9).String())

	_, err := positive.New(0, 1)
	assert.True(t, errors.Is(err, batch.ErrBadShape))
}

func TestPositive_Formulas(t *testing.T) {
	m, err := positive.New(1, 2)
	require.NoError(t, err)
	x := mustArray(t, 1, 1, 2, 2, 4)
	y := mustArray(t, 1, 1, 2, 2*math.E, 4)
	u := mustArray(t, 1, 1, 2, 2, 0)

	ip, err := m.Inner(x, u, u)
	require.NoError(t, err)
	assert.InDelta(t, 1, ip, 1e-15)

	e, err := m.Exp(x, u)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, y, e, 1e-15)

	l, err := m.Log(x, y)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, u, l, 1e-15)

	d, err := m.Dist(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1, d, 1e-15)

	mid, err := m.PairMean(x, y)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, mustArray(t, 1, 1, 2, 2*math.Sqrt(math.E), 4), mid, 1e-15)
}

func TestPositive_GradientAndHessian(t *testing.T) {
	m, err := positive.New(1, 2)
	require.NoError(t, err)
	x := mustArray(t, 1, 1, 2, 2, 3)
	g := mustArray(t, 1, 1, 2, 1, -1)
	h := mustArray(t, 1, 1, 2, 0.5, 2)
	u := mustArray(t, 1, 1, 2, 1, 1)

	rg, err := m.EuclideanToRiemannianGradient(x, g)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, mustArray(t, 1, 1, 2, 4, -9), rg, 1e-15)

	// h⊙x² + u⊙g⊙x = (2+2, 18−3).
	rh, err := m.EuclideanToRiemannianHessian(x, g, h, u)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, mustArray(t, 1, 1, 2, 4, 15), rh, 1e-15)
}

func TestPositive_Transport(t *testing.T) {
	a := mustArray(t, 1, 1, 2, 1, 2)
	b := mustArray(t, 1, 1, 2, 3, 1)
	u := mustArray(t, 1, 1, 2, 1, 1)

	id, err := positive.New(1, 2)
	require.NoError(t, err)
	got, err := id.Transport(a, b, u)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, u, got, 0)

	par, err := positive.New(1, 2, positive.WithTransport(positive.TransportParallel))
	require.NoError(t, err)
	got, err = par.Transport(a, b, u)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, mustArray(t, 1, 1, 2, 3, 0.5), got, 1e-15)

	// Parallel transport is an isometry.
	na, err := par.Norm(a, u)
	require.NoError(t, err)
	nb, err := par.Norm(b, got)
	require.NoError(t, err)
	assert.InDelta(t, na, nb, 1e-15)
}

func TestPositive_RejectsForeignShape(t *testing.T) {
	m, err := positive.New(3, 4)
	require.NoError(t, err)
	x, err := m.RandomPoint(manifold.NewSource(1))
	require.NoError(t, err)
	other, err := positive.New(4, 2, positive.WithProduct(2))
	require.NoError(t, err)
	y, err := other.RandomPoint(manifold.NewSource(1))
	require.NoError(t, err)

	_, err = m.Exp(y, other.ZeroVector(y))
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
	_, err = m.Dist(y, y)
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
	_, err = m.PairMean(y, y)
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
	_, err = m.RandomTangentVector(y, manifold.NewSource(2))
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)

	_, err = m.RandomTangentVector(nil, manifold.NewSource(2))
	require.ErrorIs(t, err, batch.ErrBadShape)
	_, err = m.Exp(x, nil)
	require.ErrorIs(t, err, batch.ErrBadShape)
}

func mustArray(t *testing.T, k, r, c int, data ...float64) *batch.Array {
	t.Helper()
	a, err := batch.NewFromData(k, r, c, data, nil)
	require.NoError(t, err)

	return a
}
