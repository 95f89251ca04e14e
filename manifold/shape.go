// SPDX-License-Identifier: MIT

package manifold

import (
	"fmt"

	"github.com/katalvlaran/riemann/batch"
)

// Shape is the k×r×c layout every point and tangent vector of a manifold
// must have.
type Shape struct {
	K, R, C int
}

// Check returns batch.ErrBadShape for a nil operand and
// batch.ErrDimensionMismatch for any operand not shaped like s.
func (s Shape) Check(xs ...*batch.Array) error {
	for _, x := range xs {
		if x == nil {
			return batch.ErrBadShape
		}
		if k, r, c := x.Dims(); k != s.K || r != s.R || c != s.C {
			return fmt.Errorf("%dx%dx%d, want %dx%dx%d: %w", k, r, c, s.K, s.R, s.C, batch.ErrDimensionMismatch)
		}
	}

	return nil
}
