// SPDX-License-Identifier: MIT

// Package positive implements the manifold of entrywise-positive m×n
// matrices (optionally a product of k of them) with the bi-invariant metric
// applied to every scalar coordinate:
//
//	⟨U, V⟩_X = Σ (U/X) ⊙ (V/X)
//	Exp(X, U) = X ⊙ exp(U/X)          (also the retraction)
//	Log(X, Y) = X ⊙ (log Y − log X)
//	Dist(X, Y) = ‖log X − log Y‖_F
//
// Tangent spaces are copies of R^{m×n}, so Projection is the identity.
// Transport is configurable with WithTransport: the identity transporter
// (default) or the exact parallel transport U ⊙ Xb / Xa.
package positive
