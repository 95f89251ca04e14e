// SPDX-License-Identifier: MIT

package definite

// DefaultProduct is the number of matrices in the product (k).
const DefaultProduct = 1

const panicProductInvalid = "definite: WithProduct: k must be positive"

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	k int // DefaultProduct
}

// WithProduct sets the number k of matrices in the product manifold.
// Panics if k ≤ 0.
func WithProduct(k int) Option {
	if k <= 0 {
		panic(panicProductInvalid)
	}

	return func(o *Options) { o.k = k }
}

func gatherOptions(user ...Option) Options {
	o := Options{k: DefaultProduct}
	for _, set := range user {
		set(&o)
	}

	return o
}
