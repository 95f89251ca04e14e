// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Array is a k-fold stack of r×c matrices stored row-major.
// Real arrays keep only the real plane; complex arrays also carry an
// imaginary plane of the same length. Slice p occupies the flat range
// [p*r*c, (p+1)*r*c) of each plane.
//
// Arrays are values: kernels never mutate their operands and always
// allocate their results.
type Array struct {
	k, r, c int
	re      []float64 // real plane, len == k*r*c
	im      []float64 // imaginary plane, nil for real arrays
}

// New allocates a real k×r×c array of zeros.
// Returns ErrBadShape if any dimension is non-positive.
func New(k, r, c int) (*Array, error) {
	if k <= 0 || r <= 0 || c <= 0 {
		return nil, batchErrorf(opNew, fmt.Errorf("%dx%dx%d: %w", k, r, c, ErrBadShape))
	}

	return &Array{k: k, r: r, c: c, re: make([]float64, k*r*c)}, nil
}

// NewComplex allocates a complex k×r×c array of zeros.
func NewComplex(k, r, c int) (*Array, error) {
	a, err := New(k, r, c)
	if err != nil {
		return nil, err
	}
	a.im = make([]float64, len(a.re))

	return a, nil
}

// NewFromData wraps existing planes without copying. im may be nil for a
// real array; otherwise both planes must have length k*r*c.
func NewFromData(k, r, c int, re, im []float64) (*Array, error) {
	if k <= 0 || r <= 0 || c <= 0 {
		return nil, batchErrorf(opNew, fmt.Errorf("%dx%dx%d: %w", k, r, c, ErrBadShape))
	}
	n := k * r * c
	if len(re) != n || (im != nil && len(im) != n) {
		return nil, batchErrorf(opNew, fmt.Errorf("data length %d for %dx%dx%d: %w", len(re), k, r, c, ErrBadShape))
	}

	return &Array{k: k, r: r, c: c, re: re, im: im}, nil
}

// FromDense stacks real matrices of identical shape into an Array.
func FromDense(ms ...mat.Matrix) (*Array, error) {
	if len(ms) == 0 {
		return nil, batchErrorf(opNew, ErrBadShape)
	}
	r, c := ms[0].Dims()
	a, err := New(len(ms), r, c)
	if err != nil {
		return nil, err
	}
	var p, i, j int
	for p = range ms {
		if mr, mc := ms[p].Dims(); mr != r || mc != c {
			return nil, batchErrorf(opNew, fmt.Errorf("slice %d is %dx%d, want %dx%d: %w", p, mr, mc, r, c, ErrDimensionMismatch))
		}
		off := p * r * c
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				a.re[off+i*c+j] = ms[p].At(i, j)
			}
		}
	}

	return a, nil
}

// FromCDense stacks complex matrices of identical shape into an Array.
func FromCDense(ms ...*mat.CDense) (*Array, error) {
	if len(ms) == 0 {
		return nil, batchErrorf(opNew, ErrBadShape)
	}
	r, c := ms[0].Dims()
	a, err := NewComplex(len(ms), r, c)
	if err != nil {
		return nil, err
	}
	var p, i, j int
	for p = range ms {
		if mr, mc := ms[p].Dims(); mr != r || mc != c {
			return nil, batchErrorf(opNew, fmt.Errorf("slice %d is %dx%d, want %dx%d: %w", p, mr, mc, r, c, ErrDimensionMismatch))
		}
		off := p * r * c
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				v := ms[p].At(i, j)
				a.re[off+i*c+j] = real(v)
				a.im[off+i*c+j] = imag(v)
			}
		}
	}

	return a, nil
}

// Dims returns the product size k and the slice shape r×c.
func (a *Array) Dims() (k, r, c int) { return a.k, a.r, a.c }

// Len returns the number of entries per plane (k*r*c).
func (a *Array) Len() int { return len(a.re) }

// IsComplex reports whether the array carries an imaginary plane.
func (a *Array) IsComplex() bool { return a.im != nil }

// RawReal returns the backing real plane. Callers must not modify it.
func (a *Array) RawReal() []float64 { return a.re }

// RawImag returns the backing imaginary plane (nil for real arrays).
// Callers must not modify it.
func (a *Array) RawImag() []float64 { return a.im }

func (a *Array) index(p, i, j int) (int, error) {
	if p < 0 || p >= a.k || i < 0 || i >= a.r || j < 0 || j >= a.c {
		return 0, fmt.Errorf("(%d,%d,%d) in %dx%dx%d: %w", p, i, j, a.k, a.r, a.c, ErrOutOfRange)
	}

	return (p*a.r+i)*a.c + j, nil
}

// At returns entry (i,j) of slice p. Real arrays return a zero imaginary part.
func (a *Array) At(p, i, j int) (complex128, error) {
	idx, err := a.index(p, i, j)
	if err != nil {
		return 0, err
	}
	if a.im == nil {
		return complex(a.re[idx], 0), nil
	}

	return complex(a.re[idx], a.im[idx]), nil
}

// Set assigns entry (i,j) of slice p. Assigning a value with a non-zero
// imaginary part to a real array returns ErrComplexUnsupported.
func (a *Array) Set(p, i, j int, v complex128) error {
	idx, err := a.index(p, i, j)
	if err != nil {
		return err
	}
	if a.im == nil {
		if imag(v) != 0 {
			return ErrComplexUnsupported
		}
		a.re[idx] = real(v)

		return nil
	}
	a.re[idx] = real(v)
	a.im[idx] = imag(v)

	return nil
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	out := &Array{k: a.k, r: a.r, c: a.c, re: append([]float64(nil), a.re...)}
	if a.im != nil {
		out.im = append([]float64(nil), a.im...)
	}

	return out
}

// Dense returns a copy of the real part of slice p.
func (a *Array) Dense(p int) *mat.Dense {
	n := a.r * a.c

	return mat.NewDense(a.r, a.c, append([]float64(nil), a.re[p*n:(p+1)*n]...))
}

// CDense returns a copy of slice p as a complex matrix.
func (a *Array) CDense(p int) *mat.CDense {
	n := a.r * a.c
	data := make([]complex128, n)
	var idx int
	for idx = 0; idx < n; idx++ {
		if a.im == nil {
			data[idx] = complex(a.re[p*n+idx], 0)
		} else {
			data[idx] = complex(a.re[p*n+idx], a.im[p*n+idx])
		}
	}

	return mat.NewCDense(a.r, a.c, data)
}

// String implements fmt.Stringer for debugging.
func (a *Array) String() string {
	var sb strings.Builder
	var p, i, j int
	for p = 0; p < a.k; p++ {
		fmt.Fprintf(&sb, "[%d]\n", p)
		for i = 0; i < a.r; i++ {
			sb.WriteString("[")
			for j = 0; j < a.c; j++ {
				idx := (p*a.r+i)*a.c + j
				if a.im == nil {
					fmt.Fprintf(&sb, "%g", a.re[idx])
				} else {
					fmt.Fprintf(&sb, "%g", complex(a.re[idx], a.im[idx]))
				}
				if j < a.c-1 {
					sb.WriteString(", ")
				}
			}
			sb.WriteString("]\n")
		}
	}

	return sb.String()
}

// SameShape returns ErrDimensionMismatch unless a and b have identical k, r, c.
// Nil operands are reported as ErrBadShape.
func SameShape(a, b *Array) error {
	if a == nil || b == nil {
		return ErrBadShape
	}
	if a.k != b.k || a.r != b.r || a.c != b.c {
		return fmt.Errorf("%dx%dx%d vs %dx%dx%d: %w", a.k, a.r, a.c, b.k, b.r, b.c, ErrDimensionMismatch)
	}

	return nil
}

// ZerosLike returns a zero array with the shape and field (real/complex) of a.
func ZerosLike(a *Array) *Array {
	out := &Array{k: a.k, r: a.r, c: a.c, re: make([]float64, len(a.re))}
	if a.im != nil {
		out.im = make([]float64, len(a.re))
	}

	return out
}

// Eye returns k stacked real n×n identity matrices.
func Eye(k, n int) (*Array, error) {
	a, err := New(k, n, n)
	if err != nil {
		return nil, err
	}
	var p, i int
	for p = 0; p < k; p++ {
		for i = 0; i < n; i++ {
			a.re[(p*n+i)*n+i] = 1
		}
	}

	return a, nil
}

// alloc returns a zero array of shape k×r×c, complex when cplx is set.
func alloc(k, r, c int, cplx bool) *Array {
	out := &Array{k: k, r: r, c: c, re: make([]float64, k*r*c)}
	if cplx {
		out.im = make([]float64, k*r*c)
	}

	return out
}

// imagOrZero returns the imaginary plane or a shared zero plane of the same length.
func (a *Array) imagOrZero() []float64 {
	if a.im != nil {
		return a.im
	}

	return make([]float64, len(a.re))
}

// sliceRange returns the flat bounds of slice p.
func (a *Array) sliceRange(p int) (lo, hi int) {
	n := a.r * a.c

	return p * n, (p + 1) * n
}

// requireSquare returns ErrNonSquare unless slices are square.
func (a *Array) requireSquare() error {
	if a.r != a.c {
		return fmt.Errorf("%dx%d slices: %w", a.r, a.c, ErrNonSquare)
	}

	return nil
}
