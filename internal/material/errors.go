package material

import "errors"

var (
	// ErrNoPrediction indicates a commit without a pending integration result.
	ErrNoPrediction = errors.New("material: no prediction to commit")

	// ErrInvalidParameter indicates a material parameter outside its valid range.
	ErrInvalidParameter = errors.New("material: parameter out of valid bounds")

	// ErrInvalidIncrement indicates a non-positive time increment or non-finite strain.
	ErrInvalidIncrement = errors.New("material: invalid driving increment")

	// ErrUnknownModel indicates a model name missing from the registry.
	ErrUnknownModel = errors.New("material: unknown model")
)
