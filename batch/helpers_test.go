// SPDX-License-Identifier: MIT
// Package batch_test contains test helpers.
//
// Purpose:
//   - Small deterministic fixtures (real and complex) for kernel tests.
//   - A single closeness assertion so tolerances stay uniform.

package batch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/riemann/batch"
)

// MustReal wraps row-major data as a real k×r×c array or fails the test.
func MustReal(t *testing.T, k, r, c int, data ...float64) *batch.Array {
	t.Helper()
	a, err := batch.NewFromData(k, r, c, data, nil)
	require.NoError(t, err)

	return a
}

// MustComplex wraps real and imaginary planes as a complex array.
func MustComplex(t *testing.T, k, r, c int, re, im []float64) *batch.Array {
	t.Helper()
	a, err := batch.NewFromData(k, r, c, re, im)
	require.NoError(t, err)

	return a
}

// RequireClose fails unless ‖got − want‖_F ≤ tol.
func RequireClose(t *testing.T, want, got *batch.Array, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	d, err := batch.Sub(got, want)
	require.NoError(t, err, msgAndArgs...)
	require.LessOrEqual(t, batch.Norm(d), tol, msgAndArgs...)
}

// hermitianPD returns k random well-conditioned Hermitian (or symmetric)
// positive definite n×n slices: G·Gᴴ + n·I.
func hermitianPD(t *testing.T, g *batch.Array) *batch.Array {
	t.Helper()
	k, n, _ := g.Dims()
	gg, err := batch.Mul(g, batch.HConj(g))
	require.NoError(t, err)
	eye, err := batch.Eye(k, n)
	require.NoError(t, err)
	s := make([]float64, k)
	for i := range s {
		s[i] = float64(n)
	}
	out, err := batch.AxpySlices(s, eye, gg)
	require.NoError(t, err)
	h, err := batch.Herm(out)
	require.NoError(t, err)

	return h
}
