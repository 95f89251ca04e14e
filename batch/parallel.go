// SPDX-License-Identifier: MIT

package batch

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEach runs fn for every product index p in [0,k).
// Slices are independent, so they run on a bounded worker group; k == 1
// runs inline. Failures are wrapped in *IndexError and the lowest failing
// index wins, which keeps the reported error deterministic.
func forEach(k int, fn func(p int) error) error {
	if k == 1 {
		if err := fn(0); err != nil {
			return &IndexError{Index: 0, Err: err}
		}

		return nil
	}

	errs := make([]error, k)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for p := 0; p < k; p++ {
		g.Go(func() error {
			errs[p] = fn(p)
			return nil
		})
	}
	_ = g.Wait() // workers report through errs

	for p, err := range errs {
		if err != nil {
			return &IndexError{Index: p, Err: err}
		}
	}

	return nil
}
