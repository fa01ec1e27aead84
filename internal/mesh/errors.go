package mesh

import "errors"

// Domain errors for lattice construction.
var (
	// ErrInvalidParams indicates a parameter set that cannot produce a lattice.
	ErrInvalidParams = errors.New("mesh: invalid parameters")
)

// ParamError names the offending parameter.
type ParamError struct {
	Field   string
	Value   float64
	Message string
}

func (e *ParamError) Error() string {
	return "mesh: " + e.Field + " " + e.Message
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}
