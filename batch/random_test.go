// SPDX-License-Identifier: MIT

package batch_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/riemann/batch"
	"github.com/katalvlaran/riemann/manifold"
)

func TestNormal_Deterministic(t *testing.T) {
	t.Parallel()
	a, err := batch.Normal(manifold.NewSource(99), 2, 3, 4)
	require.NoError(t, err)
	b, err := batch.Normal(manifold.NewSource(99), 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, a.RawReal(), b.RawReal())

	c, err := batch.Normal(manifold.NewSource(100), 2, 3, 4)
	require.NoError(t, err)
	assert.NotEqual(t, a.RawReal(), c.RawReal())
}

func TestNormal_Moments(t *testing.T) {
	t.Parallel()
	a, err := batch.Normal(manifold.NewSource(1), 1, 100, 100)
	require.NoError(t, err)
	mean, std := stat.MeanStdDev(a.RawReal(), nil)
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, std, 0.05)
}

func TestComplexNormal_FillsBothPlanes(t *testing.T) {
	t.Parallel()
	a, err := batch.ComplexNormal(manifold.NewSource(2), 1, 10, 10)
	require.NoError(t, err)
	require.True(t, a.IsComplex())
	assert.Greater(t, floats.Norm(a.RawImag(), 2), 0.0)
	assert.NotEqual(t, a.RawReal(), a.RawImag())
}

func TestUniform_Range(t *testing.T) {
	t.Parallel()
	a, err := batch.Uniform(manifold.NewSource(3), 3, 5, 5, 1, 2)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, floats.Min(a.RawReal()), 1.0)
	assert.Less(t, floats.Max(a.RawReal()), 2.0)

	_, err = batch.Uniform(manifold.NewSource(3), 0, 5, 5, 1, 2)
	assert.ErrorIs(t, err, batch.ErrBadShape)
	assert.False(t, math.IsNaN(floats.Sum(a.RawReal())))
}

func TestSampling_NilSourceUsesDefaultStream(t *testing.T) {
	t.Parallel()
	a, err := batch.Normal(nil, 2, 3, 3)
	require.NoError(t, err)
	b, err := batch.Normal(nil, 2, 3, 3)
	require.NoError(t, err)
	want, err := batch.Normal(batch.DefaultSource(), 2, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, a.RawReal(), b.RawReal())
	assert.Equal(t, want.RawReal(), a.RawReal())

	c, err := batch.ComplexNormal(nil, 1, 2, 2)
	require.NoError(t, err)
	d, err := batch.ComplexNormal(nil, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, c.RawImag(), d.RawImag())

	u, err := batch.Uniform(nil, 1, 4, 4, 1, 2)
	require.NoError(t, err)
	v, err := batch.Uniform(nil, 1, 4, 4, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, u.RawReal(), v.RawReal())
}
