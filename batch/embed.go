// SPDX-License-Identifier: MIT
// Package batch: real embedding of complex slices.
//
// gonum/lapack only ships real routines, so complex kernels work on the
// real representation
//
//	A + iB  ↦  [[A, -B],
//	            [B,  A]]
//
// which is an injective *-algebra homomorphism: products, inverses, solves,
// matrix exponentials and logarithms of the embedding are embeddings of the
// complex results, and a Hermitian (PD) matrix maps to a symmetric (PD) one.

package batch

import "gonum.org/v1/gonum/mat"

// realView returns the real plane of slice p as a Dense sharing storage.
// The view must be treated as read-only.
func realView(a *Array, p int) *mat.Dense {
	lo, hi := a.sliceRange(p)

	return mat.NewDense(a.r, a.c, a.re[lo:hi])
}

// imagView returns the imaginary plane of slice p as a Dense sharing storage.
// a must be complex.
func imagView(a *Array, p int) *mat.Dense {
	lo, hi := a.sliceRange(p)

	return mat.NewDense(a.r, a.c, a.im[lo:hi])
}

// embed returns slice p as a real matrix. Without cplx it is the real slice
// itself; with cplx it is the 2r×2c block embedding (a real array embeds
// with a zero imaginary part).
func embed(a *Array, p int, cplx bool) *mat.Dense {
	if !cplx {
		return realView(a, p)
	}
	lo, _ := a.sliceRange(p)
	r, c := a.r, a.c
	out := mat.NewDense(2*r, 2*c, nil)
	var i, j int
	var re, im float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			re, im = a.re[lo+i*c+j], 0
			if a.im != nil {
				im = a.im[lo+i*c+j]
			}
			out.Set(i, j, re)
			out.Set(i, c+j, -im)
			out.Set(r+i, j, im)
			out.Set(r+i, c+j, re)
		}
	}

	return out
}

// embedColumns returns slice p as [A; B] (2r×c) when cplx is set and the
// real slice itself otherwise. It is the first block column of embed.
func embedColumns(a *Array, p int, cplx bool) *mat.Dense {
	if !cplx {
		return realView(a, p)
	}
	lo, _ := a.sliceRange(p)
	r, c := a.r, a.c
	out := mat.NewDense(2*r, c, nil)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.Set(i, j, a.re[lo+i*c+j])
			if a.im != nil {
				out.Set(r+i, j, a.im[lo+i*c+j])
			}
		}
	}

	return out
}

// storeSlice writes d into slice p of dst. For real dst, d is r×c. For
// complex dst, d is either an embedding (2r×2c) or a block column (2r×c);
// both carry the real part in rows [0,r) and the imaginary part in rows
// [r,2r) of the first c columns.
func storeSlice(dst *Array, p int, d mat.Matrix) {
	lo, _ := dst.sliceRange(p)
	r, c := dst.r, dst.c
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			dst.re[lo+i*c+j] = d.At(i, j)
			if dst.im != nil {
				dst.im[lo+i*c+j] = d.At(r+i, j)
			}
		}
	}
}

// symView wraps a square real matrix as gonum Symmetric (upper triangle is read).
func symView(d *mat.Dense) *mat.SymDense {
	n, _ := d.Dims()
	raw := d.RawMatrix()
	data := make([]float64, n*n)
	var i int
	for i = 0; i < n; i++ {
		copy(data[i*n:(i+1)*n], raw.Data[i*raw.Stride:i*raw.Stride+n])
	}

	return mat.NewSymDense(n, data)
}
