// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Cholesky returns the lower-triangular factor L with a[p] = L·Lᴴ for every
// slice. Real slices are factorized by gonum (upper triangle read); complex
// slices by a Hermitian Cholesky–Crout sweep (lower triangle read).
// A slice that is not positive definite fails fast with
// ErrNotPositiveDefinite wrapped in *IndexError.
func Cholesky(a *Array) (*Array, error) {
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opCholesky, err)
	}
	out := alloc(a.k, a.r, a.c, a.im != nil)
	err := forEach(a.k, func(p int) error {
		if a.im != nil {
			return complexCholesky(a, out, p)
		}
		var ch mat.Cholesky
		if ok := ch.Factorize(symView(realView(a, p))); !ok {
			return ErrNotPositiveDefinite
		}
		var l mat.TriDense
		ch.LTo(&l)
		storeSlice(out, p, &l)

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opCholesky, err)
	}

	return out, nil
}

// complexCholesky factorizes slice p of a into slice p of out.
func complexCholesky(a, out *Array, p int) error {
	n := a.r
	lo, _ := a.sliceRange(p)
	l := make([]complex128, n*n)
	var i, j, k int
	var d float64
	var s complex128
	for j = 0; j < n; j++ {
		d = a.re[lo+j*n+j]
		for k = 0; k < j; k++ {
			d -= real(l[j*n+k] * cmplx.Conj(l[j*n+k]))
		}
		if !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("pivot %d = %g: %w", j, d, ErrNotPositiveDefinite)
		}
		l[j*n+j] = complex(math.Sqrt(d), 0)
		for i = j + 1; i < n; i++ {
			s = complex(a.re[lo+i*n+j], a.im[lo+i*n+j])
			for k = 0; k < j; k++ {
				s -= l[i*n+k] * cmplx.Conj(l[j*n+k])
			}
			l[i*n+j] = s / l[j*n+j]
		}
	}
	for i = range l {
		out.re[lo+i] = real(l[i])
		out.im[lo+i] = imag(l[i])
	}

	return nil
}

// LogDetPD returns log det(a[p]) for every Hermitian positive definite
// slice, computed as 2·Σ log L_ii from the Cholesky factor so that large
// well-conditioned matrices do not overflow. Non-definite slices fail like
// Cholesky.
func LogDetPD(a *Array) ([]float64, error) {
	l, err := Cholesky(a)
	if err != nil {
		return nil, batchErrorf(opLogDet, err)
	}
	n := a.r
	out := make([]float64, a.k)
	var p, i, lo int
	for p = 0; p < a.k; p++ {
		lo, _ = l.sliceRange(p)
		for i = 0; i < n; i++ {
			out[p] += 2 * math.Log(l.re[lo+i*n+i])
		}
	}

	return out, nil
}
