// SPDX-License-Identifier: MIT
// Package batch: sentinel error set.
// Every kernel returns one of these sentinels (possibly wrapped with an
// operation tag and, for per-slice failures, an *IndexError). Callers match
// them with errors.Is / errors.As. No kernel panics on user-triggered input.

package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid (k, r or c <= 0)
	// or when backing data does not match the declared shape.
	ErrBadShape = errors.New("batch: invalid shape")

	// ErrOutOfRange indicates that a (slice, row, col) index is outside bounds.
	ErrOutOfRange = errors.New("batch: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("batch: dimension mismatch")

	// ErrNonSquare signals that square slices were required.
	ErrNonSquare = errors.New("batch: matrix is not square")

	// ErrSingular is returned when a linear solve meets a singular or
	// numerically singular matrix.
	ErrSingular = errors.New("batch: singular matrix")

	// ErrNotPositiveDefinite is returned by Cholesky and by the
	// positive-definite fast path of Logm.
	ErrNotPositiveDefinite = errors.New("batch: matrix is not positive definite")

	// ErrEigenFailed indicates that a symmetric eigen decomposition failed.
	ErrEigenFailed = errors.New("batch: eigen decomposition failed")

	// ErrNoConvergence is returned by iterative matrix functions (square
	// root, general logarithm) that exhaust their iteration budget.
	ErrNoConvergence = errors.New("batch: iteration did not converge")

	// ErrComplexUnsupported marks kernels that are only defined for real arrays.
	ErrComplexUnsupported = errors.New("batch: complex arrays not supported")
)

// IndexError attributes a numerical failure to one slice of the batch.
type IndexError struct {
	Index int   // product index p of the failing slice
	Err   error // underlying sentinel or gonum error
}

// Error implements error.
func (e *IndexError) Error() string {
	return fmt.Sprintf("slice %d: %v", e.Index, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *IndexError) Unwrap() error { return e.Err }

// Operation name constants for uniform error wrapping.
const (
	opNew         = "New"
	opAdd         = "Add"
	opSub         = "Sub"
	opHadamard    = "Hadamard"
	opDiv         = "Div"
	opMap         = "Map"
	opDot         = "Dot"
	opAxpy        = "AxpySlices"
	opScaleSlices = "ScaleSlices"
	opColumns     = "Columns"
	opMul         = "Mul"
	opSolve       = "Solve"
	opCholesky    = "Cholesky"
	opCongruence  = "InvCongruence"
	opTrace       = "Trace"
	opDet         = "Det"
	opLogDet      = "LogDetPD"
	opQR          = "QR"
	opEigvalsH    = "EigvalsH"
	opExpm        = "Expm"
	opLogm        = "Logm"
	opSqrtm       = "Sqrtm"
)

// batchErrorf wraps err with an operation tag, preserving it for errors.Is/As.
// Call only with a non-nil err.
func batchErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
