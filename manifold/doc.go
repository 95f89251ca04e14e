// SPDX-License-Identifier: MIT

// Package manifold defines the contract shared by every matrix manifold in
// riemann, together with the pieces concrete manifolds compose:
//
//   - Manifold: metric, projection, gradient/Hessian conversion, exp/log,
//     retraction, distance, sampling, transport, pair mean and zero vector;
//   - Descriptor: immutable name, intrinsic dimension and typical distance;
//   - Embedded: defaults for submanifolds of Euclidean matrix space with
//     the trace inner product (metric = Frobenius, gradient = projection);
//   - ErrNotImplemented: the explicit "unsupported operation" signal;
//   - NewSource / DeriveSource / Streams: reproducible randomness handles
//     threaded through RandomPoint and RandomTangentVector.
//
// Optimizers (gradient descent, trust regions, conjugate gradients) depend
// only on Manifold, never on a concrete type, so one solver runs unchanged
// on every manifold family.
package manifold
