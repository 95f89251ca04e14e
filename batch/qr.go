// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// QR computes a[p] = Q[p]·R[p] for every slice, with Q unitary (orthogonal
// for real input, m×m) and R upper triangular (m×n). Slices must satisfy m >= n.
// Real slices use gonum; complex slices use Householder reflections.
// Complexity: O(k·m²·n) time.
func QR(a *Array) (q, r *Array, err error) {
	if a == nil {
		return nil, nil, batchErrorf(opQR, ErrBadShape)
	}
	if a.r < a.c {
		return nil, nil, batchErrorf(opQR, fmt.Errorf("%dx%d slices need rows >= cols: %w", a.r, a.c, ErrBadShape))
	}
	q = alloc(a.k, a.r, a.r, a.im != nil)
	r = alloc(a.k, a.r, a.c, a.im != nil)
	err = forEach(a.k, func(p int) error {
		if a.im != nil {
			householderQR(a, q, r, p)
			return nil
		}
		var f mat.QR
		f.Factorize(realView(a, p))
		f.QTo(realView(q, p))
		f.RTo(realView(r, p))

		return nil
	})
	if err != nil {
		return nil, nil, batchErrorf(opQR, err)
	}

	return q, r, nil
}

// householderQR factorizes complex slice p of a into slice p of q and r.
func householderQR(a, q, r *Array, p int) {
	// Stage 1: Prepare working copy A and reflector accumulator H = I
	m, n := a.r, a.c
	lo, _ := a.sliceRange(p)
	A := make([]complex128, m*n)
	H := make([]complex128, m*m)
	var i, j, k int
	for i = range A {
		A[i] = complex(a.re[lo+i], a.im[lo+i])
	}
	for i = 0; i < m; i++ {
		H[i*m+i] = 1
	}
	v := make([]complex128, m) // Householder vector, allocated once

	// Stage 2: Execute reflections column by column
	var (
		norm, beta, tau float64
		alpha, phase, s complex128
	)
	for k = 0; k < n && k < m; k++ {
		// 2.1: norm of A[k:m, k]
		norm = 0
		for i = k; i < m; i++ {
			norm += real(A[i*n+k] * cmplx.Conj(A[i*n+k]))
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue // zero column: nothing to annihilate
		}
		// 2.2: alpha = -e^{i·arg(A[k,k])}·norm avoids cancellation in v[k]
		phase = 1
		if ak := cmplx.Abs(A[k*n+k]); ak != 0 {
			phase = A[k*n+k] / complex(ak, 0)
		}
		alpha = -phase * complex(norm, 0)
		// 2.3: v = A[k:m, k] - alpha·e_k
		for i = 0; i < m; i++ {
			v[i] = 0
		}
		for i = k; i < m; i++ {
			v[i] = A[i*n+k]
		}
		v[k] -= alpha
		// 2.4: beta = vᴴv, tau = 2/beta
		beta = 0
		for i = k; i < m; i++ {
			beta += real(v[i] * cmplx.Conj(v[i]))
		}
		if beta == 0 {
			continue
		}
		tau = 2 / beta

		// 2.5: A ← (I - tau·v·vᴴ)·A
		for j = k; j < n; j++ {
			s = 0
			for i = k; i < m; i++ {
				s += cmplx.Conj(v[i]) * A[i*n+j]
			}
			for i = k; i < m; i++ {
				A[i*n+j] -= complex(tau, 0) * v[i] * s
			}
		}
		for i = k + 1; i < m; i++ {
			A[i*n+k] = 0 // annihilated by construction
		}
		// 2.6: H ← (I - tau·v·vᴴ)·H
		for j = 0; j < m; j++ {
			s = 0
			for i = k; i < m; i++ {
				s += cmplx.Conj(v[i]) * H[i*m+j]
			}
			for i = k; i < m; i++ {
				H[i*m+j] -= complex(tau, 0) * v[i] * s
			}
		}
	}

	// Stage 3: H·a = R, so Q = Hᴴ
	qlo, _ := q.sliceRange(p)
	for i = 0; i < m; i++ {
		for j = 0; j < m; j++ {
			q.re[qlo+i*m+j] = real(H[j*m+i])
			q.im[qlo+i*m+j] = -imag(H[j*m+i])
		}
	}
	rlo, _ := r.sliceRange(p)
	for i = range A {
		r.re[rlo+i] = real(A[i])
		r.im[rlo+i] = imag(A[i])
	}
}
