// SPDX-License-Identifier: MIT

package oblique_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/manifold/manifoldtest"
	"github.com/katalvlaran/riemann/oblique"
)

// unitColumns asserts every column of x has norm 1.
func unitColumns(t require.TestingT, x *batch.Array) {
	norms, err := batch.ColumnNorms(x)
	require.NoError(t, err)
	for _, v := range norms.RawReal() {
		require.InDelta(t, 1, v, 1e-10)
	}
}

func TestOblique_Contract(t *testing.T) {
	m, err := oblique.New(5, 3)
	require.NoError(t, err)
	manifoldtest.Run(t, m, manifoldtest.Config{Seed: 11, Contains: unitColumns})
}

func TestOblique_Descriptor(t *testing.T) {
	m, err := oblique.New(5, 2)
	require.NoError(t, err)
	require.Equal(t, "Oblique manifold OB(5,2)", m.Name())
	require.Equal(t, 8, m.Dim())
	require.InDelta(t, math.Pi*math.Sqrt2, m.TypicalDist(), 1e-15)
}

func TestOblique_NewRejectsBadShape(t *testing.T) {
	_, err := oblique.New(0, 2)
	require.True(t, errors.Is(err, batch.ErrBadShape))
}

// TestOblique_SampleScenario samples X and a tangent U on OB(5,2) and checks
// unit columns and column-wise orthogonality.
func TestOblique_SampleScenario(t *testing.T) {
	m, err := oblique.New(5, 2)
	require.NoError(t, err)
	src := manifold.NewSource(2024)

	x, err := m.RandomPoint(src)
	require.NoError(t, err)
	k, r, c := x.Dims()
	require.Equal(t, []int{1, 5, 2}, []int{k, r, c})
	unitColumns(t, x)

	u, err := m.RandomTangentVector(x, src)
	require.NoError(t, err)
	dots, err := batch.ColumnDots(x, u)
	require.NoError(t, err)
	for _, d := range dots.RawReal() {
		require.InDelta(t, 0, d, 1e-10)
	}
}

func TestOblique_DistClipsNearlyEqualColumns(t *testing.T) {
	m, err := oblique.New(3, 2)
	require.NoError(t, err)
	// Columns with dot product slightly above 1 after rounding.
	s := 1 / math.Sqrt(3)
	x, err := batch.NewFromData(1, 3, 2, []float64{s, 1, s, 0, s, 0}, nil)
	require.NoError(t, err)

	d, err := m.Dist(x, x)
	require.NoError(t, err)
	require.False(t, math.IsNaN(d))
	require.InDelta(t, 0, d, 1e-7)

	u, err := m.Log(x, x)
	require.NoError(t, err)
	for _, v := range u.RawReal() {
		require.False(t, math.IsNaN(v))
	}
}

func TestOblique_AntipodalDistance(t *testing.T) {
	m, err := oblique.New(2, 1)
	require.NoError(t, err)
	a, _ := batch.NewFromData(1, 2, 1, []float64{1, 0}, nil)
	b, _ := batch.NewFromData(1, 2, 1, []float64{-1, 0}, nil)

	d, err := m.Dist(a, b)
	require.NoError(t, err)
	require.InDelta(t, math.Pi, d, 1e-12)
}

func TestOblique_ExpQuarterTurn(t *testing.T) {
	m, err := oblique.New(2, 1)
	require.NoError(t, err)
	x, _ := batch.NewFromData(1, 2, 1, []float64{1, 0}, nil)
	u, _ := batch.NewFromData(1, 2, 1, []float64{0, math.Pi / 2}, nil)

	y, err := m.Exp(x, u)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, mustArray(t, 1, 2, 1, 0, 1), y, 1e-15)

	r, err := m.Retraction(x, u)
	require.NoError(t, err)
	unitColumns(t, r)
}

func TestOblique_Hessian(t *testing.T) {
	m, err := oblique.New(3, 1)
	require.NoError(t, err)
	x := mustArray(t, 1, 3, 1, 1, 0, 0)
	g := mustArray(t, 1, 3, 1, 2, 1, 0)
	h := mustArray(t, 1, 3, 1, 5, 0, 1)
	u := mustArray(t, 1, 3, 1, 0, 1, 0)

	// P(h) = (0,0,1); colsum(x⊙g) = 2, so the result is (0,-2,1).
	got, err := m.EuclideanToRiemannianHessian(x, g, h, u)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, mustArray(t, 1, 3, 1, 0, -2, 1), got, 1e-15)

	rg, err := m.EuclideanToRiemannianGradient(x, g)
	require.NoError(t, err)
	manifoldtest.RequireClose(t, mustArray(t, 1, 3, 1, 0, 1, 0), rg, 1e-15)
}

func TestOblique_PairMean(t *testing.T) {
	m, err := oblique.New(2, 1)
	require.NoError(t, err)
	a := mustArray(t, 1, 2, 1, 1, 0)
	b := mustArray(t, 1, 2, 1, 0, 1)

	mid, err := m.PairMean(a, b)
	require.NoError(t, err)
	da, _ := m.Dist(a, mid)
	db, _ := m.Dist(b, mid)
	require.InDelta(t, math.Pi/4, da, 1e-12)
	require.InDelta(t, da, db, 1e-12)
}

func TestOblique_ShapeMismatch(t *testing.T) {
	m, err := oblique.New(3, 2)
	require.NoError(t, err)
	x, err := m.RandomPoint(manifold.NewSource(1))
	require.NoError(t, err)
	bad, _ := batch.New(1, 2, 3)

	_, err = m.Projection(x, bad)
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
	_, err = m.Inner(x, x, bad)
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
}

func TestOblique_RejectsForeignShape(t *testing.T) {
	m, err := oblique.New(5, 3)
	require.NoError(t, err)
	// Mutually consistent operands of the wrong layout.
	x, err := batch.Normal(manifold.NewSource(3), 2, 4, 2)
	require.NoError(t, err)
	x, err = batch.NormalizeColumns(x)
	require.NoError(t, err)

	_, err = m.Exp(x, m.ZeroVector(x))
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
	_, err = m.Inner(x, x, x)
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
	_, err = m.PairMean(x, x)
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)
	_, err = m.RandomTangentVector(x, manifold.NewSource(1))
	require.ErrorIs(t, err, batch.ErrDimensionMismatch)

	_, err = m.RandomTangentVector(nil, manifold.NewSource(1))
	require.ErrorIs(t, err, batch.ErrBadShape)
}

func TestOblique_ExpRejectsComplexOperands(t *testing.T) {
	m, err := oblique.New(2, 1)
	require.NoError(t, err)
	x, err := batch.NewFromData(1, 2, 1, []float64{1, 0}, []float64{0, 0})
	require.NoError(t, err)

	_, err = m.Exp(x, x)
	require.ErrorIs(t, err, batch.ErrComplexUnsupported)
	require.Contains(t, err.Error(), "Oblique.Exp")
}

// TestOblique_SingleRowHasNoTangents covers OB(1,n) = {±1}ⁿ, of dimension 0.
func TestOblique_SingleRowHasNoTangents(t *testing.T) {
	m, err := oblique.New(1, 3)
	require.NoError(t, err)
	require.Equal(t, 0, m.Dim())

	x, err := m.RandomPoint(manifold.NewSource(8))
	require.NoError(t, err)
	unitColumns(t, x)

	u, err := m.RandomTangentVector(x, manifold.NewSource(8))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, u.RawReal())
}

func TestOblique_NilSourceIsDeterministic(t *testing.T) {
	m, err := oblique.New(4, 2)
	require.NoError(t, err)
	a, err := m.RandomPoint(nil)
	require.NoError(t, err)
	b, err := m.RandomPoint(nil)
	require.NoError(t, err)
	require.Equal(t, a.RawReal(), b.RawReal())
}

func mustArray(t *testing.T, k, r, c int, data ...float64) *batch.Array {
	t.Helper()
	a, err := batch.NewFromData(k, r, c, data, nil)
	require.NoError(t, err)

	return a
}
