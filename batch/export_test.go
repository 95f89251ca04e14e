// SPDX-License-Identifier: MIT

package batch

// Test bridge for unexported kernels, visible to batch_test only.

// ForEach_TestOnly forwards to the private worker-group driver.
func ForEach_TestOnly(k int, fn func(p int) error) error { return forEach(k, fn) }

// Dense-level matrix function kernels, exercised directly on gonum matrices.
var (
	ExportedSqrtmDenmanBeavers = sqrtmDenmanBeavers
	ExportedLogmInverseScaling = logmInverseScaling
)
