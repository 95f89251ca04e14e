// SPDX-License-Identifier: MIT
// Package batch: matrix products, transposes, symmetrization, traces,
// linear solves and determinants, each applied slice by slice over the
// leading product index.

package batch

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Mul returns the slice-wise matrix product a[p]·b[p].
// Requires equal k and a.c == b.r.
func Mul(a, b *Array) (*Array, error) {
	if a == nil || b == nil {
		return nil, batchErrorf(opMul, ErrBadShape)
	}
	if a.k != b.k || a.c != b.r {
		return nil, batchErrorf(opMul, fmt.Errorf("%dx%dx%d × %dx%dx%d: %w", a.k, a.r, a.c, b.k, b.r, b.c, ErrDimensionMismatch))
	}
	cplx := a.im != nil || b.im != nil
	out := alloc(a.k, a.r, b.c, cplx)
	err := forEach(a.k, func(p int) error {
		dre := realView(out, p)
		dre.Mul(realView(a, p), realView(b, p))
		if !cplx {
			return nil
		}
		// (Ar + iAi)(Br + iBi) = (ArBr − AiBi) + i(ArBi + AiBr)
		var tmp mat.Dense
		if a.im != nil && b.im != nil {
			tmp.Mul(imagView(a, p), imagView(b, p))
			dre.Sub(dre, &tmp)
		}
		dim := imagView(out, p)
		if b.im != nil {
			dim.Mul(realView(a, p), imagView(b, p))
		}
		if a.im != nil {
			tmp.Reset()
			tmp.Mul(imagView(a, p), realView(b, p))
			dim.Add(dim, &tmp)
		}

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opMul, err)
	}

	return out, nil
}

// transposeWith returns the slice-wise transpose, conjugating when conj is set.
func transposeWith(a *Array, conj bool) *Array {
	out := alloc(a.k, a.c, a.r, a.im != nil)
	var p, i, j int
	for p = 0; p < a.k; p++ {
		lo, _ := a.sliceRange(p)
		for i = 0; i < a.r; i++ {
			for j = 0; j < a.c; j++ {
				out.re[lo+j*a.r+i] = a.re[lo+i*a.c+j]
				if a.im != nil {
					if conj {
						out.im[lo+j*a.r+i] = -a.im[lo+i*a.c+j]
					} else {
						out.im[lo+j*a.r+i] = a.im[lo+i*a.c+j]
					}
				}
			}
		}
	}

	return out
}

// Transpose returns aᵀ slice-wise.
func Transpose(a *Array) *Array { return transposeWith(a, false) }

// HConj returns the conjugate transpose aᴴ slice-wise. For real arrays it
// equals Transpose.
func HConj(a *Array) *Array { return transposeWith(a, true) }

// Sym returns (a + aᵀ)/2 slice-wise. Slices must be square.
func Sym(a *Array) (*Array, error) {
	if err := a.requireSquare(); err != nil {
		return nil, err
	}

	return symmetrize(a, false), nil
}

// Herm returns (a + aᴴ)/2 slice-wise. Slices must be square. For real
// arrays it equals Sym.
func Herm(a *Array) (*Array, error) {
	if err := a.requireSquare(); err != nil {
		return nil, err
	}

	return symmetrize(a, true), nil
}

func symmetrize(a *Array, conj bool) *Array {
	n := a.r
	out := alloc(a.k, n, n, a.im != nil)
	sign := 1.0
	if conj {
		sign = -1
	}
	var p, i, j, ij, ji int
	for p = 0; p < a.k; p++ {
		lo, _ := a.sliceRange(p)
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				ij, ji = lo+i*n+j, lo+j*n+i
				out.re[ij] = (a.re[ij] + a.re[ji]) / 2
				if a.im != nil {
					out.im[ij] = (a.im[ij] + sign*a.im[ji]) / 2
				}
			}
		}
	}

	return out
}

// Trace returns tr(a[p]) for every slice.
func Trace(a *Array) ([]complex128, error) {
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opTrace, err)
	}
	n := a.r
	out := make([]complex128, a.k)
	var p, i int
	for p = 0; p < a.k; p++ {
		lo, _ := a.sliceRange(p)
		for i = 0; i < n; i++ {
			if a.im == nil {
				out[p] += complex(a.re[lo+i*n+i], 0)
			} else {
				out[p] += complex(a.re[lo+i*n+i], a.im[lo+i*n+i])
			}
		}
	}

	return out, nil
}

// TraceProduct returns Σ_p Re tr(a[p]·b[p]) without forming the products.
// Requires a to be r×c and b to be c×r with equal k.
func TraceProduct(a, b *Array) (float64, error) {
	if a == nil || b == nil {
		return 0, batchErrorf(opTrace, ErrBadShape)
	}
	if a.k != b.k || a.r != b.c || a.c != b.r {
		return 0, batchErrorf(opTrace, fmt.Errorf("%dx%dx%d · %dx%dx%d: %w", a.k, a.r, a.c, b.k, b.r, b.c, ErrDimensionMismatch))
	}
	var s float64
	var p, i, j, ij, ji int
	for p = 0; p < a.k; p++ {
		lo, _ := a.sliceRange(p)
		for i = 0; i < a.r; i++ {
			for j = 0; j < a.c; j++ {
				ij, ji = lo+i*a.c+j, lo+j*a.r+i
				s += a.re[ij] * b.re[ji]
				if a.im != nil && b.im != nil {
					s -= a.im[ij] * b.im[ji]
				}
			}
		}
	}

	return s, nil
}

// Solve returns x with a[p]·x[p] = b[p] for every slice, using an LU
// factorization (real embedding for complex operands). Singular and
// numerically singular slices fail with ErrSingular wrapped in *IndexError.
func Solve(a, b *Array) (*Array, error) {
	if a == nil || b == nil {
		return nil, batchErrorf(opSolve, ErrBadShape)
	}
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opSolve, err)
	}
	if a.k != b.k || a.c != b.r {
		return nil, batchErrorf(opSolve, fmt.Errorf("%dx%dx%d \\ %dx%dx%d: %w", a.k, a.r, a.c, b.k, b.r, b.c, ErrDimensionMismatch))
	}
	cplx := a.im != nil || b.im != nil
	out := alloc(b.k, b.r, b.c, cplx)
	err := forEach(a.k, func(p int) error {
		var x mat.Dense
		if err := x.Solve(embed(a, p, cplx), embedColumns(b, p, cplx)); err != nil {
			return solveErr(err)
		}
		storeSlice(out, p, &x)

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opSolve, err)
	}

	return out, nil
}

// solveErr maps gonum's singularity reports onto ErrSingular.
func solveErr(err error) error {
	var cond mat.Condition
	switch {
	case errors.Is(err, mat.ErrSingular):
		return ErrSingular
	case errors.As(err, &cond):
		return fmt.Errorf("%w: condition number %.4e", ErrSingular, float64(cond))
	}

	return err
}

// InvCongruence returns c[p]⁻¹·b[p]·c[p]⁻ᴴ using two solves with c and no
// explicit inverse. c is typically a Cholesky factor.
func InvCongruence(c, b *Array) (*Array, error) {
	if err := SameShape(c, b); err != nil {
		return nil, batchErrorf(opCongruence, err)
	}
	// y = c⁻¹·bᴴ, then c⁻¹·yᴴ = c⁻¹·b·c⁻ᴴ.
	y, err := Solve(c, HConj(b))
	if err != nil {
		return nil, batchErrorf(opCongruence, err)
	}
	z, err := Solve(c, HConj(y))
	if err != nil {
		return nil, batchErrorf(opCongruence, err)
	}

	return z, nil
}

// Det returns det(a[p]) for every slice. Real slices use gonum; complex
// slices use Gaussian elimination with partial pivoting.
func Det(a *Array) ([]complex128, error) {
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opDet, err)
	}
	out := make([]complex128, a.k)
	err := forEach(a.k, func(p int) error {
		if a.im == nil {
			out[p] = complex(mat.Det(realView(a, p)), 0)
			return nil
		}
		out[p] = complexDet(a, p)

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opDet, err)
	}

	return out, nil
}

// complexDet eliminates a copy of slice p; a zero pivot column yields 0.
func complexDet(a *Array, p int) complex128 {
	n := a.r
	lo, _ := a.sliceRange(p)
	m := make([]complex128, n*n)
	var i, j, col, piv int
	for i = range m {
		m[i] = complex(a.re[lo+i], a.im[lo+i])
	}

	det := complex(1, 0)
	var best float64
	var f complex128
	for col = 0; col < n; col++ {
		// partial pivoting on |m[i,col]|
		piv, best = col, cmplx.Abs(m[col*n+col])
		for i = col + 1; i < n; i++ {
			if v := cmplx.Abs(m[i*n+col]); v > best {
				piv, best = i, v
			}
		}
		if best == 0 {
			return 0
		}
		if piv != col {
			for j = 0; j < n; j++ {
				m[col*n+j], m[piv*n+j] = m[piv*n+j], m[col*n+j]
			}
			det = -det
		}
		det *= m[col*n+col]
		for i = col + 1; i < n; i++ {
			f = m[i*n+col] / m[col*n+col]
			for j = col; j < n; j++ {
				m[i*n+j] -= f * m[col*n+j]
			}
		}
	}

	return det
}
