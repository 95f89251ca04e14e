// SPDX-License-Identifier: MIT

package batch

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// logmSeriesRadius bounds ‖A − I‖₁ before the log(I+X) series is summed.
	logmSeriesRadius = 0.25

	// maxSqrtSteps caps the number of square roots taken by inverse scaling.
	maxSqrtSteps = 64

	// maxSeriesTerms caps the log(I+X) series; at radius 0.25 about 25 terms
	// reach double precision.
	maxSeriesTerms = 100

	// maxDenmanBeavers caps the Denman–Beavers square-root iteration.
	maxDenmanBeavers = 100

	// sqrtTol is the relative step size at which Denman–Beavers stops.
	sqrtTol = 1e-13

	// sqrtStallTol accepts a stagnating iteration whose step is already this small.
	sqrtStallTol = 1e-8
)

func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	var i int
	for i = 0; i < n; i++ {
		d.Set(i, i, 1)
	}

	return d
}

// sqrtmDenmanBeavers computes the principal square root of a through the
// coupled iteration Y ← (Y + Z⁻¹)/2, Z ← (Z + Y⁻¹)/2 with Y₀ = a, Z₀ = I.
func sqrtmDenmanBeavers(a *mat.Dense) (*mat.Dense, error) {
	n, _ := a.Dims()
	y := mat.DenseCopyOf(a)
	z := identity(n)
	prev := math.Inf(1)
	var iter int
	for iter = 0; iter < maxDenmanBeavers; iter++ {
		var yInv, zInv mat.Dense
		if err := yInv.Inverse(y); err != nil {
			return nil, solveErr(err)
		}
		if err := zInv.Inverse(z); err != nil {
			return nil, solveErr(err)
		}
		var yNext, zNext, step mat.Dense
		yNext.Add(y, &zInv)
		yNext.Scale(0.5, &yNext)
		zNext.Add(z, &yInv)
		zNext.Scale(0.5, &zNext)

		step.Sub(&yNext, y)
		rel := mat.Norm(&step, 1) / mat.Norm(&yNext, 1)
		y, z = &yNext, &zNext
		if rel < sqrtTol {
			return y, nil
		}
		if rel >= prev && rel < sqrtStallTol {
			return y, nil // rounding floor reached
		}
		prev = rel
	}

	return nil, ErrNoConvergence
}

// logmInverseScaling computes the principal logarithm of a by repeated
// square roots until ‖a^(1/2^s) − I‖₁ <= logmSeriesRadius, summing the
// log(I+X) series there and scaling back by 2^s.
func logmInverseScaling(a *mat.Dense) (*mat.Dense, error) {
	n, _ := a.Dims()
	eye := identity(n)
	x := mat.DenseCopyOf(a)

	// Stage 1: take square roots until x is close to I
	var (
		s   int
		d   mat.Dense
		err error
	)
	for s = 0; ; s++ {
		d.Sub(x, eye)
		if mat.Norm(&d, 1) <= logmSeriesRadius {
			break
		}
		if s == maxSqrtSteps {
			return nil, ErrNoConvergence
		}
		if x, err = sqrtmDenmanBeavers(x); err != nil {
			return nil, err
		}
	}

	// Stage 2: log(I + d) = Σ_{j>=1} (-1)^{j+1} d^j / j
	acc := mat.NewDense(n, n, nil)
	term := mat.DenseCopyOf(&d)
	var j int
	var coef float64
	for j = 1; j <= maxSeriesTerms; j++ {
		coef = 1 / float64(j)
		if j%2 == 0 {
			coef = -coef
		}
		var scaled mat.Dense
		scaled.Scale(coef, term)
		acc.Add(acc, &scaled)
		if mat.Norm(term, 1)/float64(j) <= 1e-17*math.Max(mat.Norm(acc, 1), 1) {
			break
		}
		var next mat.Dense
		next.Mul(term, &d)
		term = &next
	}

	// Stage 3: undo the square roots
	acc.Scale(math.Ldexp(1, s), acc)

	return acc, nil
}
