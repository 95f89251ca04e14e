// SPDX-License-Identifier: MIT

package batch_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
)

func TestCholesky_Reconstructs(t *testing.T) {
	t.Parallel()
	src := manifold.NewSource(17)
	for _, complexField := range []bool{false, true} {
		var g *batch.Array
		var err error
		if complexField {
			g, err = batch.ComplexNormal(src, 3, 5, 5)
		} else {
			g, err = batch.Normal(src, 3, 5, 5)
		}
		require.NoError(t, err)
		x := hermitianPD(t, g)

		l, err := batch.Cholesky(x)
		require.NoError(t, err)
		llh, err := batch.Mul(l, batch.HConj(l))
		require.NoError(t, err)
		RequireClose(t, x, llh, 1e-10, "complex=%v", complexField)

		// strictly upper part is zero
		for p := 0; p < 3; p++ {
			for i := 0; i < 5; i++ {
				for j := i + 1; j < 5; j++ {
					v, _ := l.At(p, i, j)
					assert.Equal(t, complex(0, 0), v)
				}
			}
		}
	}
}

func TestCholesky_NotPositiveDefinite(t *testing.T) {
	t.Parallel()
	real2 := MustReal(t, 2, 2, 2, 2, 0, 0, 2, 1, 2, 2, 1)
	_, err := batch.Cholesky(real2)
	require.ErrorIs(t, err, batch.ErrNotPositiveDefinite)
	var ie *batch.IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Index)

	cplx := MustComplex(t, 1, 2, 2, []float64{1, 0, 0, -1}, []float64{0, 0, 0, 0})
	_, err = batch.Cholesky(cplx)
	assert.ErrorIs(t, err, batch.ErrNotPositiveDefinite)
}

func TestQR_UnitaryAndTriangular(t *testing.T) {
	t.Parallel()
	src := manifold.NewSource(23)
	for _, complexField := range []bool{false, true} {
		var a *batch.Array
		var err error
		if complexField {
			a, err = batch.ComplexNormal(src, 2, 5, 3)
		} else {
			a, err = batch.Normal(src, 2, 5, 3)
		}
		require.NoError(t, err)

		q, r, err := batch.QR(a)
		require.NoError(t, err)
		k, m, mm := q.Dims()
		assert.Equal(t, []int{2, 5, 5}, []int{k, m, mm})

		qr, err := batch.Mul(q, r)
		require.NoError(t, err)
		RequireClose(t, a, qr, 1e-12, "A = QR (complex=%v)", complexField)

		qhq, err := batch.Mul(batch.HConj(q), q)
		require.NoError(t, err)
		eye, err := batch.Eye(2, 5)
		require.NoError(t, err)
		RequireClose(t, eye, qhq, 1e-12, "QᴴQ = I (complex=%v)", complexField)

		for p := 0; p < 2; p++ {
			for i := 1; i < 5; i++ {
				for j := 0; j < i && j < 3; j++ {
					v, _ := r.At(p, i, j)
					assert.InDelta(t, 0, real(v), 1e-14)
					assert.InDelta(t, 0, imag(v), 1e-14)
				}
			}
		}
	}

	_, _, err := batch.QR(MustReal(t, 1, 2, 3, 1, 2, 3, 4, 5, 6))
	assert.ErrorIs(t, err, batch.ErrBadShape)
}

func TestEigvalsH(t *testing.T) {
	t.Parallel()
	// [[2, i], [−i, 2]] has eigenvalues 1 and 3.
	h := MustComplex(t, 1, 2, 2, []float64{2, 0, 0, 2}, []float64{0, 1, -1, 0})
	vals, err := batch.EigvalsH(h)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.InDeltaSlice(t, []float64{1, 3}, vals[0], 1e-12)

	r := MustReal(t, 2, 2, 2, 4, 0, 0, 1, 0, 1, 1, 0)
	vals, err = batch.EigvalsH(r)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 4}, vals[0], 1e-12)
	assert.InDeltaSlice(t, []float64{-1, 1}, vals[1], 1e-12)
}

func TestExpm_HermitianMatchesGeneral(t *testing.T) {
	t.Parallel()
	src := manifold.NewSource(5)
	g, err := batch.ComplexNormal(src, 2, 4, 4)
	require.NoError(t, err)
	h, err := batch.Herm(g)
	require.NoError(t, err)

	fast, err := batch.Expm(h, true)
	require.NoError(t, err)
	general, err := batch.Expm(h, false)
	require.NoError(t, err)
	RequireClose(t, general, fast, 1e-9*(1+batch.Norm(general)))

	// expm(diag(0, log 2)) = diag(1, 2)
	d := MustReal(t, 1, 2, 2, 0, 0, 0, math.Ln2)
	e, err := batch.Expm(d, false)
	require.NoError(t, err)
	RequireClose(t, MustReal(t, 1, 2, 2, 1, 0, 0, 2), e, 1e-14)
}

func TestLogm_RoundTripAndPaths(t *testing.T) {
	t.Parallel()
	src := manifold.NewSource(6)
	g, err := batch.ComplexNormal(src, 2, 3, 3)
	require.NoError(t, err)
	x := hermitianPD(t, g)

	fast, err := batch.Logm(x, true)
	require.NoError(t, err)
	general, err := batch.Logm(x, false)
	require.NoError(t, err)
	RequireClose(t, fast, general, 1e-8)

	back, err := batch.Expm(fast, true)
	require.NoError(t, err)
	RequireClose(t, x, back, 1e-10*(1+batch.Norm(x)))

	// General path on a non-normal matrix: logm(expm(A)) = A for small A.
	a := MustReal(t, 1, 2, 2, 0.1, 0.5, 0, -0.2)
	ea, err := batch.Expm(a, false)
	require.NoError(t, err)
	la, err := batch.Logm(ea, false)
	require.NoError(t, err)
	RequireClose(t, a, la, 1e-10)

	_, err = batch.Logm(MustReal(t, 1, 2, 2, -1, 0, 0, 1), true)
	assert.ErrorIs(t, err, batch.ErrNotPositiveDefinite)
}

func TestSqrtm(t *testing.T) {
	t.Parallel()
	src := manifold.NewSource(7)
	g, err := batch.Normal(src, 2, 4, 4)
	require.NoError(t, err)
	x := hermitianPD(t, g)

	for _, pd := range []bool{true, false} {
		s, err := batch.Sqrtm(x, pd)
		require.NoError(t, err)
		ss, err := batch.Mul(s, s)
		require.NoError(t, err)
		RequireClose(t, x, ss, 1e-9*(1+batch.Norm(x)), "positiveDefinite=%v", pd)
	}
}

func TestDenseKernels(t *testing.T) {
	t.Parallel()
	a := mat.NewDense(2, 2, []float64{4, 1, 0, 9})
	s, err := batch.ExportedSqrtmDenmanBeavers(a)
	require.NoError(t, err)
	var ss mat.Dense
	ss.Mul(s, s)
	assert.True(t, mat.EqualApprox(a, &ss, 1e-12))

	l, err := batch.ExportedLogmInverseScaling(mat.NewDense(2, 2, []float64{math.E, 0, 0, 1}))
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(mat.NewDense(2, 2, []float64{1, 0, 0, 0}), l, 1e-12))

	// −I has no real square root: the first step hits a singular iterate.
	_, err = batch.ExportedSqrtmDenmanBeavers(mat.NewDense(2, 2, []float64{-1, 0, 0, -1}))
	assert.ErrorIs(t, err, batch.ErrSingular)
}

func TestLogDetPD(t *testing.T) {
	t.Parallel()
	src := manifold.NewSource(31)
	for _, complexField := range []bool{false, true} {
		var g *batch.Array
		var err error
		if complexField {
			g, err = batch.ComplexNormal(src, 2, 4, 4)
		} else {
			g, err = batch.Normal(src, 2, 4, 4)
		}
		require.NoError(t, err)
		x := hermitianPD(t, g)

		got, err := batch.LogDetPD(x)
		require.NoError(t, err)
		dets, err := batch.Det(x)
		require.NoError(t, err)
		for p := range dets {
			assert.InDelta(t, math.Log(real(dets[p])), got[p], 1e-10, "complex=%v", complexField)
		}
	}

	// det = 1e800 overflows float64; its logarithm does not.
	big := MustReal(t, 1, 4, 4,
		1e200, 0, 0, 0,
		0, 1e200, 0, 0,
		0, 0, 1e200, 0,
		0, 0, 0, 1e200,
	)
	dets, err := batch.Det(big)
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(dets[0]), 1))
	got, err := batch.LogDetPD(big)
	require.NoError(t, err)
	assert.InDelta(t, 800*math.Ln10, got[0], 1e-9)

	_, err = batch.LogDetPD(MustReal(t, 1, 2, 2, -1, 0, 0, 1))
	assert.ErrorIs(t, err, batch.ErrNotPositiveDefinite)
}
