// SPDX-License-Identifier: MIT
// Package batch: element-wise kernels.
//
// All kernels accept real and complex operands unless stated otherwise; a
// mixed pair promotes to complex with the real operand's imaginary plane
// taken as zero. Operands are never mutated.

package batch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// addSub computes a + sign*b.
func addSub(a, b *Array, sign float64, tag string) (*Array, error) {
	if err := SameShape(a, b); err != nil {
		return nil, batchErrorf(tag, err)
	}
	out := alloc(a.k, a.r, a.c, a.im != nil || b.im != nil)
	floats.AddScaledTo(out.re, a.re, sign, b.re)
	if out.im != nil {
		floats.AddScaledTo(out.im, a.imagOrZero(), sign, b.imagOrZero())
	}

	return out, nil
}

// Add returns a + b.
func Add(a, b *Array) (*Array, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a - b.
func Sub(a, b *Array) (*Array, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha*a.
func Scale(alpha float64, a *Array) *Array {
	out := alloc(a.k, a.r, a.c, a.im != nil)
	floats.ScaleTo(out.re, alpha, a.re)
	if a.im != nil {
		floats.ScaleTo(out.im, alpha, a.im)
	}

	return out
}

// ScaleSlices returns a with slice p multiplied by s[p].
func ScaleSlices(a *Array, s []float64) (*Array, error) {
	if len(s) != a.k {
		return nil, batchErrorf(opScaleSlices, fmt.Errorf("%d scalars for k=%d: %w", len(s), a.k, ErrDimensionMismatch))
	}
	out := alloc(a.k, a.r, a.c, a.im != nil)
	var p int
	for p = 0; p < a.k; p++ {
		lo, hi := a.sliceRange(p)
		floats.ScaleTo(out.re[lo:hi], s[p], a.re[lo:hi])
		if a.im != nil {
			floats.ScaleTo(out.im[lo:hi], s[p], a.im[lo:hi])
		}
	}

	return out, nil
}

// AxpySlices returns y + alpha[p]*x for every slice p.
func AxpySlices(alpha []float64, x, y *Array) (*Array, error) {
	if err := SameShape(x, y); err != nil {
		return nil, batchErrorf(opAxpy, err)
	}
	if len(alpha) != x.k {
		return nil, batchErrorf(opAxpy, fmt.Errorf("%d scalars for k=%d: %w", len(alpha), x.k, ErrDimensionMismatch))
	}
	out := alloc(x.k, x.r, x.c, x.im != nil || y.im != nil)
	var xi, yi []float64
	if out.im != nil {
		xi, yi = x.imagOrZero(), y.imagOrZero()
	}
	var p int
	for p = 0; p < x.k; p++ {
		lo, hi := x.sliceRange(p)
		floats.AddScaledTo(out.re[lo:hi], y.re[lo:hi], alpha[p], x.re[lo:hi])
		if out.im != nil {
			floats.AddScaledTo(out.im[lo:hi], yi[lo:hi], alpha[p], xi[lo:hi])
		}
	}

	return out, nil
}

// Hadamard returns the element-wise product a ⊙ b.
func Hadamard(a, b *Array) (*Array, error) {
	if err := SameShape(a, b); err != nil {
		return nil, batchErrorf(opHadamard, err)
	}
	if a.im == nil && b.im == nil {
		out := alloc(a.k, a.r, a.c, false)
		floats.MulTo(out.re, a.re, b.re)

		return out, nil
	}
	out := alloc(a.k, a.r, a.c, true)
	ai, bi := a.imagOrZero(), b.imagOrZero()
	var idx int
	for idx = range out.re {
		out.re[idx] = a.re[idx]*b.re[idx] - ai[idx]*bi[idx]
		out.im[idx] = a.re[idx]*bi[idx] + ai[idx]*b.re[idx]
	}

	return out, nil
}

// Div returns the element-wise quotient a ⊘ b.
func Div(a, b *Array) (*Array, error) {
	if err := SameShape(a, b); err != nil {
		return nil, batchErrorf(opDiv, err)
	}
	if a.im == nil && b.im == nil {
		out := alloc(a.k, a.r, a.c, false)
		floats.DivTo(out.re, a.re, b.re)

		return out, nil
	}
	out := alloc(a.k, a.r, a.c, true)
	ai, bi := a.imagOrZero(), b.imagOrZero()
	var idx int
	var q complex128
	for idx = range out.re {
		q = complex(a.re[idx], ai[idx]) / complex(b.re[idx], bi[idx])
		out.re[idx], out.im[idx] = real(q), imag(q)
	}

	return out, nil
}

// Map applies f to every entry of a real array.
func Map(a *Array, f func(float64) float64) (*Array, error) {
	if a.im != nil {
		return nil, batchErrorf(opMap, ErrComplexUnsupported)
	}
	out := alloc(a.k, a.r, a.c, false)
	var idx int
	for idx = range a.re {
		out.re[idx] = f(a.re[idx])
	}

	return out, nil
}

// Dot returns Re Σ conj(a)·b, the Frobenius (Hermitian) inner product of
// the flattened arrays.
func Dot(a, b *Array) (float64, error) {
	if err := SameShape(a, b); err != nil {
		return 0, batchErrorf(opDot, err)
	}
	s := floats.Dot(a.re, b.re)
	if a.im != nil && b.im != nil {
		s += floats.Dot(a.im, b.im)
	}

	return s, nil
}

// Norm returns the Frobenius norm of the whole array.
func Norm(a *Array) float64 {
	n := floats.Norm(a.re, 2)
	if a.im != nil {
		n = math.Hypot(n, floats.Norm(a.im, 2))
	}

	return n
}

// ColumnDots returns the k×1×c array of column-wise dot products
// Σ_i a[p,i,j]·b[p,i,j]. Real arrays only.
func ColumnDots(a, b *Array) (*Array, error) {
	if err := SameShape(a, b); err != nil {
		return nil, batchErrorf(opColumns, err)
	}
	if a.im != nil || b.im != nil {
		return nil, batchErrorf(opColumns, ErrComplexUnsupported)
	}
	out := alloc(a.k, 1, a.c, false)
	var p, i, j int
	for p = 0; p < a.k; p++ {
		lo, _ := a.sliceRange(p)
		for i = 0; i < a.r; i++ {
			for j = 0; j < a.c; j++ {
				out.re[p*a.c+j] += a.re[lo+i*a.c+j] * b.re[lo+i*a.c+j]
			}
		}
	}

	return out, nil
}

// ColumnNorms returns the k×1×c array of column Euclidean norms. Real arrays only.
func ColumnNorms(a *Array) (*Array, error) {
	out, err := ColumnDots(a, a)
	if err != nil {
		return nil, err
	}
	var idx int
	for idx = range out.re {
		out.re[idx] = math.Sqrt(out.re[idx])
	}

	return out, nil
}

// ScaleColumns multiplies column j of slice p by s[p,0,j], where s is k×1×c.
// Real arrays only.
func ScaleColumns(a, s *Array) (*Array, error) {
	if s == nil || s.k != a.k || s.r != 1 || s.c != a.c {
		return nil, batchErrorf(opColumns, ErrDimensionMismatch)
	}
	if a.im != nil || s.im != nil {
		return nil, batchErrorf(opColumns, ErrComplexUnsupported)
	}
	out := alloc(a.k, a.r, a.c, false)
	var p, i, j int
	for p = 0; p < a.k; p++ {
		lo, _ := a.sliceRange(p)
		for i = 0; i < a.r; i++ {
			for j = 0; j < a.c; j++ {
				out.re[lo+i*a.c+j] = a.re[lo+i*a.c+j] * s.re[p*a.c+j]
			}
		}
	}

	return out, nil
}

// NormalizeColumns rescales every column to unit Euclidean norm. Real arrays only.
// A zero column yields NaN entries; callers decide whether that can happen.
func NormalizeColumns(a *Array) (*Array, error) {
	norms, err := ColumnNorms(a)
	if err != nil {
		return nil, err
	}
	var idx int
	for idx = range norms.re {
		norms.re[idx] = 1 / norms.re[idx]
	}

	return ScaleColumns(a, norms)
}
