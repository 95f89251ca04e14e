// SPDX-License-Identifier: MIT

package manifold

import "fmt"

// Descriptor is the immutable identity of a manifold: its name, intrinsic
// real dimension and typical distance. Concrete manifolds embed it to
// satisfy Name, Dim and TypicalDist.
type Descriptor struct {
	name        string
	dim         int
	typicalDist float64
}

// NewDescriptor builds a Descriptor.
func NewDescriptor(name string, dim int, typicalDist float64) Descriptor {
	return Descriptor{name: name, dim: dim, typicalDist: typicalDist}
}

// Name returns the manifold name.
func (d Descriptor) Name() string { return d.name }

// Dim returns the intrinsic real dimension.
func (d Descriptor) Dim() int { return d.dim }

// TypicalDist returns the distance scale used by step-size heuristics.
func (d Descriptor) TypicalDist() float64 { return d.typicalDist }

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s (dim=%d)", d.name, d.dim)
}
