package node

import (
	"errors"
	"fmt"

	"tis/isa"
)

// ErrUnknownLabel is the sentinel wrapped by UnknownLabelError, for
// errors.Is checks that don't care which label was missing.
var ErrUnknownLabel = errors.New("node: unknown label")

// UnknownLabelError is returned when a jump instruction names a label that
// isn't in the node's label table. It is raised at execution, never at
// parse time (see asm.Parse).
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("node: unknown label %q", e.Label)
}

func (e *UnknownLabelError) Unwrap() error { return ErrUnknownLabel }

// ErrUnknownDirection is the sentinel wrapped by UnknownDirectionError.
var ErrUnknownDirection = errors.New("node: unknown direction")

// UnknownDirectionError is raised if a direction-keyed lookup (neighbor
// wiring) receives ANY, LAST, or another unrecognized tag where a concrete
// port was required. This is an internal invariant: it should never arise
// from a well-formed program, only from a caller wiring a grid incorrectly.
type UnknownDirectionError struct {
	Direction isa.Direction
}

func (e *UnknownDirectionError) Error() string {
	return fmt.Sprintf("node: unknown direction %v", e.Direction)
}

func (e *UnknownDirectionError) Unwrap() error { return ErrUnknownDirection }
