package increment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConverged indicates the iteration cap was reached above tolerance.
	ErrNotConverged = errors.New("increment: maximum number of iterations reached")

	// ErrSingularTangent indicates a singular or ill-conditioned tangent block.
	ErrSingularTangent = errors.New("increment: singular tangent")

	// ErrInvalidConfig indicates a non-positive iteration cap, tolerance or dt.
	ErrInvalidConfig = errors.New("increment: invalid solver configuration")

	// ErrInvalidState indicates a NaN or Inf in the residual or the correction.
	ErrInvalidState = errors.New("increment: invalid state (NaN or Inf detected)")
)

// ConvergenceError reports exhaustion of the iteration cap.
type ConvergenceError struct {
	Iterations int
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v: %d iterations, last error %.3e", ErrNotConverged, e.Iterations, e.Residual)
}

func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }

// SingularTangentError reports the tangent block that could not be solved.
type SingularTangentError struct {
	Iteration int
	Size      int     // dimension of the sub-block
	Cond      float64 // condition number estimate
}

func (e *SingularTangentError) Error() string {
	return fmt.Sprintf("%v: %dx%d block at iteration %d (cond %.3e)", ErrSingularTangent, e.Size, e.Size, e.Iteration, e.Cond)
}

func (e *SingularTangentError) Unwrap() error { return ErrSingularTangent }
