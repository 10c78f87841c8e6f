package board

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched by every MalformedInputError.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError describes the offending value of a rejected board.
// Row and Col are -1 when the problem is not tied to a cell.
type MalformedInputError struct {
	Reason string
	Value  string
	Row    int
	Col    int
}

func (e *MalformedInputError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed input: %s %q", e.Reason, e.Value)
	}
	if e.Col < 0 {
		return fmt.Sprintf("malformed input: %s %q at row %d", e.Reason, e.Value, e.Row)
	}
	return fmt.Sprintf("malformed input: %s %q at (%d, %d)", e.Reason, e.Value, e.Col, e.Row)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
