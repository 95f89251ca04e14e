// SPDX-License-Identifier: MIT

package definite

import (
	"fmt"

	"github.com/katalvlaran/riemann/manifold"
)

// SymmetricPositiveDefinite is the manifold of real symmetric positive
// definite n×n matrices (or a product of k of them).
type SymmetricPositiveDefinite struct {
	affine
}

var _ manifold.Manifold = (*SymmetricPositiveDefinite)(nil)

// NewSymmetricPositiveDefinite returns the SPD manifold of n×n matrices,
// of dimension k·n(n+1)/2. Returns batch.ErrBadShape unless n > 0.
func NewSymmetricPositiveDefinite(n int, opts ...Option) (*SymmetricPositiveDefinite, error) {
	const tag = "SymmetricPositiveDefinite"
	if err := checkN(tag, n); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	name := fmt.Sprintf("Manifold of positive definite %dx%d matrices", n, n)
	if o.k > 1 {
		name = fmt.Sprintf("Product manifold of %d positive definite %dx%d matrices", o.k, n, n)
	}

	return &SymmetricPositiveDefinite{
		affine: newAffine(tag, name, n, o.k, o.k*n*(n+1)/2, false),
	}, nil
}
