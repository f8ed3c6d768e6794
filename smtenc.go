// Package smtenc encodes the types of a Solidity-style contract language
// into the sort algebra of an SMT solver and creates solver-backed symbolic
// variables for program values. Types the solver cannot model precisely are
// abstracted to unconstrained 256-bit integers with an explicit flag.
package smtenc

import (
	"errors"
	"fmt"
)

// Common integer widths of the encoded language.
const (
	WidthAddress = 160
	WidthWord    = 256
)

var (
	ErrSolverTimeout       = errors.New("Solver timeout")
	ErrSolverCanceled      = errors.New("Solver canceled")
	ErrSolverResourceLimit = errors.New("Solver resource limit")
	ErrSolverUnknown       = errors.New("Solver unknown error")
)

// assert panics if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert: "+format, args...))
	}
}
