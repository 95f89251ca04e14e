// SPDX-License-Identifier: MIT

// Package positive: functional configuration for the Positive manifold.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies them in order.
package positive

import "fmt"

// TransportMode selects how Transport moves tangent vectors between points.
type TransportMode int

const (
	// TransportIdentity returns the vector unchanged. Tangent spaces are all
	// copies of R^{m×n}, so this is a valid (cheap) transporter.
	TransportIdentity TransportMode = iota

	// TransportParallel is the exact parallel transport U ⊙ Xb / Xa.
	TransportParallel
)

// String implements fmt.Stringer.
func (m TransportMode) String() string {
	switch m {
	case TransportIdentity:
		return "identity"
	case TransportParallel:
		return "parallel"
	default:
		return fmt.Sprintf("TransportMode(%d)", int(m))
	}
}

// Defaults.
const (
	// DefaultProduct is the number of matrices in the product (k).
	DefaultProduct = 1

	// DefaultTransport matches the historical behaviour: identity transporter.
	DefaultTransport = TransportIdentity
)

const (
	panicProductInvalid   = "positive: WithProduct: k must be positive"
	panicTransportInvalid = "positive: WithTransport: unknown transport mode"
)

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	k         int           // DefaultProduct
	transport TransportMode // DefaultTransport
}

// WithProduct sets the number k of matrices in the product manifold.
// Panics if k ≤ 0.
func WithProduct(k int) Option {
	if k <= 0 {
		panic(panicProductInvalid)
	}

	return func(o *Options) { o.k = k }
}

// WithTransport selects the vector transport.
// Panics on a mode other than TransportIdentity or TransportParallel.
func WithTransport(mode TransportMode) Option {
	if mode != TransportIdentity && mode != TransportParallel {
		panic(panicTransportInvalid)
	}

	return func(o *Options) { o.transport = mode }
}

// gatherOptions applies user options over the defaults, last writer wins.
func gatherOptions(user ...Option) Options {
	o := Options{
		k:         DefaultProduct,
		transport: DefaultTransport,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
