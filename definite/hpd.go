// SPDX-License-Identifier: MIT

package definite

import (
	"fmt"

	"github.com/katalvlaran/riemann/manifold"
)

// HermitianPositiveDefinite is the manifold of complex Hermitian positive
// definite n×n matrices (or a product of k of them). Random points,
// tangent vectors and zero vectors are complex arrays.
type HermitianPositiveDefinite struct {
	affine
}

var _ manifold.Manifold = (*HermitianPositiveDefinite)(nil)

// NewHermitianPositiveDefinite returns the HPD manifold of n×n matrices,
// of real dimension k·n(n+1). Returns batch.ErrBadShape unless n > 0.
func NewHermitianPositiveDefinite(n int, opts ...Option) (*HermitianPositiveDefinite, error) {
	const tag = "HermitianPositiveDefinite"
	if err := checkN(tag, n); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	return &HermitianPositiveDefinite{
		affine: newAffine(tag, hpdName(n, o.k), n, o.k, o.k*n*(n+1), true),
	}, nil
}

func hpdName(n, k int) string {
	if k > 1 {
		return fmt.Sprintf("Product manifold of %d (%d x %d) Hermitian positive definite", k, n, n)
	}

	return fmt.Sprintf("Manifold of Hermitian positive definite (%d x %d) matrices", n, n)
}
