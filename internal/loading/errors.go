package loading

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPath   = errors.New("loading: empty path")
	ErrUnknownKind = errors.New("loading: unknown step kind")
	ErrInvalidStep = errors.New("loading: invalid step")
)

// StepError wraps a failure with the step that produced it.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
