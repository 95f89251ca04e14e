// SPDX-License-Identifier: MIT

package batch

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed seeds the stream used when a caller passes a nil source.
const DefaultSeed uint64 = 1

// MixSeed mixes a parent seed and a stream identifier with the SplitMix64
// finalizer so that neighbouring inputs give uncorrelated outputs.
//
// Complexity: O(1).
func MixSeed(parent, stream uint64) uint64 {
	var x uint64
	x = parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// DefaultSource returns a fresh PCG source seeded with DefaultSeed.
func DefaultSource() rand.Source {
	return rand.NewPCG(DefaultSeed, MixSeed(DefaultSeed, 0))
}

// SourceOrDefault returns src, or a fresh DefaultSource when src is nil.
// Sampling never falls back to the global generator.
func SourceOrDefault(src rand.Source) rand.Source {
	if src == nil {
		return DefaultSource()
	}

	return src
}

// Normal returns a real k×r×c array of independent N(0,1) draws from src.
// Entries are drawn in flat row-major order, so a fixed source state always
// yields the same array. A nil src means DefaultSource.
func Normal(src rand.Source, k, r, c int) (*Array, error) {
	a, err := New(k, r, c)
	if err != nil {
		return nil, err
	}
	d := distuv.Normal{Mu: 0, Sigma: 1, Src: SourceOrDefault(src)}
	var idx int
	for idx = range a.re {
		a.re[idx] = d.Rand()
	}

	return a, nil
}

// ComplexNormal returns a complex k×r×c array whose real and imaginary
// parts are independent N(0,1) draws (real plane first, then imaginary).
func ComplexNormal(src rand.Source, k, r, c int) (*Array, error) {
	a, err := NewComplex(k, r, c)
	if err != nil {
		return nil, err
	}
	d := distuv.Normal{Mu: 0, Sigma: 1, Src: SourceOrDefault(src)}
	var idx int
	for idx = range a.re {
		a.re[idx] = d.Rand()
	}
	for idx = range a.im {
		a.im[idx] = d.Rand()
	}

	return a, nil
}

// Uniform returns a real k×r×c array of independent U[lo,hi) draws from src.
func Uniform(src rand.Source, k, r, c int, lo, hi float64) (*Array, error) {
	a, err := New(k, r, c)
	if err != nil {
		return nil, err
	}
	d := distuv.Uniform{Min: lo, Max: hi, Src: SourceOrDefault(src)}
	var idx int
	for idx = range a.re {
		a.re[idx] = d.Rand()
	}

	return a, nil
}
