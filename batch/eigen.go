// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// eigenSym decomposes the Hermitian part of slice p through its real
// embedding. Complex slices yield 2n eigenvalues that come in equal pairs.
func eigenSym(a *Array, p int, vectors bool) ([]float64, *mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(symView(embed(a, p, a.im != nil)), vectors); !ok {
		return nil, nil, ErrEigenFailed
	}
	vals := es.Values(nil)
	if !vectors {
		return vals, nil, nil
	}
	var v mat.Dense
	es.VectorsTo(&v)

	return vals, &v, nil
}

// EigvalsH returns the eigenvalues of the Hermitian part of every slice in
// ascending order.
func EigvalsH(a *Array) ([][]float64, error) {
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opEigvalsH, err)
	}
	h := symmetrize(a, true)
	out := make([][]float64, a.k)
	err := forEach(a.k, func(p int) error {
		vals, _, err := eigenSym(h, p, false)
		if err != nil {
			return err
		}
		if h.im == nil {
			out[p] = vals
			return nil
		}
		// embedding duplicates every eigenvalue; average each pair
		out[p] = make([]float64, a.r)
		var i int
		for i = range out[p] {
			out[p][i] = (vals[2*i] + vals[2*i+1]) / 2
		}

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opEigvalsH, err)
	}

	return out, nil
}

// hermFunc evaluates the spectral function f on the Hermitian part of every
// slice: V·diag(f(λ))·Vᴴ. With positive set, any eigenvalue <= 0 fails with
// ErrNotPositiveDefinite.
func hermFunc(a *Array, f func(float64) float64, positive bool) (*Array, error) {
	if err := a.requireSquare(); err != nil {
		return nil, err
	}
	h := symmetrize(a, true)
	out := alloc(a.k, a.r, a.c, a.im != nil)
	err := forEach(a.k, func(p int) error {
		vals, v, err := eigenSym(h, p, true)
		if err != nil {
			return err
		}
		fv := mat.DenseCopyOf(v)
		var i, j int
		rows, _ := fv.Dims()
		for j = range vals {
			if positive && !(vals[j] > 0) {
				return fmt.Errorf("eigenvalue %g: %w", vals[j], ErrNotPositiveDefinite)
			}
			fj := f(vals[j])
			for i = 0; i < rows; i++ {
				fv.Set(i, j, fv.At(i, j)*fj)
			}
		}
		var res mat.Dense
		res.Mul(fv, v.T())
		storeSlice(out, p, &res)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Expm returns the matrix exponential of every slice. With hermitian set,
// slices are treated as Hermitian and exponentiated through their eigen
// decomposition; otherwise gonum's Padé approximant is used.
func Expm(a *Array, hermitian bool) (*Array, error) {
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opExpm, err)
	}
	if hermitian {
		out, err := hermFunc(a, math.Exp, false)
		if err != nil {
			return nil, batchErrorf(opExpm, err)
		}

		return out, nil
	}
	cplx := a.im != nil
	out := alloc(a.k, a.r, a.c, cplx)
	err := forEach(a.k, func(p int) error {
		var e mat.Dense
		e.Exp(embed(a, p, cplx))
		storeSlice(out, p, &e)

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opExpm, err)
	}

	return out, nil
}

// Sqrtm returns the principal square root of every slice. With
// positiveDefinite set, slices are treated as Hermitian positive definite.
func Sqrtm(a *Array, positiveDefinite bool) (*Array, error) {
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opSqrtm, err)
	}
	if positiveDefinite {
		out, err := hermFunc(a, math.Sqrt, true)
		if err != nil {
			return nil, batchErrorf(opSqrtm, err)
		}

		return out, nil
	}
	cplx := a.im != nil
	out := alloc(a.k, a.r, a.c, cplx)
	err := forEach(a.k, func(p int) error {
		s, err := sqrtmDenmanBeavers(embed(a, p, cplx))
		if err != nil {
			return err
		}
		storeSlice(out, p, s)

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opSqrtm, err)
	}

	return out, nil
}

// Logm returns the principal matrix logarithm of every slice. With
// positiveDefinite set, slices are treated as Hermitian positive definite
// and the logarithm is taken through their eigen decomposition (non-positive
// eigenvalues fail with ErrNotPositiveDefinite). Otherwise inverse scaling
// and squaring is used.
func Logm(a *Array, positiveDefinite bool) (*Array, error) {
	if err := a.requireSquare(); err != nil {
		return nil, batchErrorf(opLogm, err)
	}
	if positiveDefinite {
		out, err := hermFunc(a, math.Log, true)
		if err != nil {
			return nil, batchErrorf(opLogm, err)
		}

		return out, nil
	}
	cplx := a.im != nil
	out := alloc(a.k, a.r, a.c, cplx)
	err := forEach(a.k, func(p int) error {
		l, err := logmInverseScaling(embed(a, p, cplx))
		if err != nil {
			return err
		}
		storeSlice(out, p, l)

		return nil
	})
	if err != nil {
		return nil, batchErrorf(opLogm, err)
	}

	return out, nil
}
