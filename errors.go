package qsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a qubit count falls outside [1, MaxQubits].
	ErrInvalidSize = errors.New("qubit count out of supported range")
	// ErrInvalidTarget is returned when a marked index does not fit the register.
	ErrInvalidTarget = errors.New("target index out of range")
	// ErrEmptyTargetSet is returned when a search is built without marked states.
	ErrEmptyTargetSet = errors.New("target set is empty")
	// ErrInvalidShots is returned when a sample is requested with shots < 1.
	ErrInvalidShots = errors.New("shot count must be at least 1")
	// ErrPhase is returned when a Grover run is driven out of order.
	ErrPhase = errors.New("grover run driven out of order")
)

/*
InvariantError reports a broken internal invariant, such as probability mass
drifting away from 1 after a unitary. It is never caused by user input and
must not be retried.
*/
type InvariantError struct {
	Stage string
	Norm  float64
	Tol   float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf(
		"invariant violated at %s: norm %.12f outside 1±%g", e.Stage, e.Norm, e.Tol,
	)
}
