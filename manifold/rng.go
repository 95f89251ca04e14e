// SPDX-License-Identifier: MIT
// Package manifold - randomness sources shared by the sampling operations.
//
// Sampling never touches a global generator: every RandomPoint /
// RandomTangentVector call draws from the rand.Source its caller passes in.
// This file centralizes how such sources are created.
//
// Goals:
//   - Determinism: same seed ⇒ identical samples across platforms.
//   - Independence: parallel optimization runs derive their own streams.
//
// Concurrency:
//   - A rand.Source is NOT goroutine-safe. Never share one across goroutines;
//     use DeriveSource / Streams to hand each worker its own stream.
package manifold

import (
	"math/rand/v2"

	"github.com/katalvlaran/riemann/batch"
)

// defaultSeed is the fixed seed used when callers pass seed==0. A nil
// source passed to any sampling call starts the same stream.
const defaultSeed = batch.DefaultSeed

// NewSource returns a deterministic PCG source.
// Policy: seed==0 ⇒ defaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.NewPCG(seed, deriveSeed(seed, 0))
}

// deriveSeed is batch.MixSeed; sources built here and batch's nil fallback
// share one derivation.
func deriveSeed(parent, stream uint64) uint64 { return batch.MixSeed(parent, stream) }

// DeriveSource creates an independent deterministic stream from parent and
// a stream identifier. If parent==nil, defaultSeed is the parent seed.
// Otherwise parent.Uint64() is consumed once, so deriving twice with the same
// stream id still yields different children.
//
// Complexity: O(1).
func DeriveSource(parent rand.Source, stream uint64) rand.Source {
	var p uint64
	if parent == nil {
		p = defaultSeed
	} else {
		p = parent.Uint64()
	}
	s := deriveSeed(p, stream)

	return rand.NewPCG(s, deriveSeed(s, stream+1))
}

// Streams returns n independent sources derived from parent, one per worker.
//
// Complexity: O(n).
func Streams(parent rand.Source, n int) []rand.Source {
	out := make([]rand.Source, n)
	var i int
	for i = 0; i < n; i++ {
		out[i] = DeriveSource(parent, uint64(i))
	}

	return out
}
