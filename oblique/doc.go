// SPDX-License-Identifier: MIT

// Package oblique implements the oblique manifold OB(m,n): m×n real
// matrices whose n columns each have unit Euclidean norm, i.e. a product of
// n spheres S^{m-1}, with the metric inherited from R^{m×n}.
//
// Geometry is column-wise:
//
//	Projection(X, V)  = V − X ⊙ colsum(X ⊙ V)
//	Exp(X, U)         = X·cos(‖u_j‖) + U·sin(‖u_j‖)/‖u_j‖   per column
//	Retraction(X, U)  = normalize_columns(X + U)
//	Dist(X, Y)        = ‖arccos(clip(colsum(X ⊙ Y)))‖
//
// Dot products are clipped to [−1, 1] before arccos so nearly identical
// columns never yield NaN. Points are single 1×m×n arrays.
package oblique
