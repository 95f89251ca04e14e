// SPDX-License-Identifier: MIT

package manifold

import (
	"errors"
	"fmt"
)

// ErrNotImplemented marks an operation that is undefined for a manifold
// (e.g. the Hessian conversion on the unit-determinant HPD manifold). It is
// returned immediately and deterministically and never wraps a numerical
// failure.
var ErrNotImplemented = errors.New("manifold: operation not implemented")

// Errorf wraps err with a "<manifold>.<op>" tag for uniform reporting across
// manifold packages. Call only with a non-nil err.
func Errorf(manifold, op string, err error) error {
	return fmt.Errorf("%s.%s: %w", manifold, op, err)
}
