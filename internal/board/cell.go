package board

import (
	"fmt"
	"strings"
)

// Color is one of the three team colors.
type Color byte

const (
	Blue Color = iota
	Green
	Red
)

// Colors lists the team colors in their fixed tie-break order.
var Colors = [3]Color{Blue, Green, Red}

func (c Color) Letter() byte {
	return "bgr"[c]
}

func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// ParseColor accepts a bare color letter ("b") or a controlled team code ("cb").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 2 && s[0] == 'c' {
		s = s[1:]
	}
	switch s {
	case "b":
		return Blue, nil
	case "g":
		return Green, nil
	case "r":
		return Red, nil
	}
	return 0, &MalformedInputError{Reason: "unknown team", Value: s, Row: -1, Col: -1}
}

// Code is one of the seven cell codes. The zero value is Empty (ux).
type Code byte

const (
	Empty Code = iota // ux
	ControlledBlue
	ControlledGreen
	ControlledRed
	UncontrolledBlue
	UncontrolledGreen
	UncontrolledRed

	NumCodes = 7
)

// Codes lists all codes in counter order.
var Codes = [NumCodes]Code{
	ControlledBlue, UncontrolledBlue,
	ControlledGreen, UncontrolledGreen,
	ControlledRed, UncontrolledRed,
	Empty,
}

var codeNames = [NumCodes]string{"ux", "cb", "cg", "cr", "ub", "ug", "ur"}

func (c Code) String() string {
	if int(c) >= NumCodes {
		return fmt.Sprintf("Code(%d)", c)
	}
	return codeNames[c]
}

// ParseCode maps a two-character tag to its Code.
func ParseCode(s string) (Code, bool) {
	for i, name := range codeNames {
		if name == s {
			return Code(i), true
		}
	}
	return 0, false
}

// Controlled builds the code of a cell owned by color.
func Controlled(c Color) Code {
	return ControlledBlue + Code(c)
}

// Uncontrolled builds the code of a cell painted color but not held.
func Uncontrolled(c Color) Code {
	return UncontrolledBlue + Code(c)
}

// IsControlled reports whether the cell is held by any team.
func (c Code) IsControlled() bool {
	return c >= ControlledBlue && c <= ControlledRed
}

// IsEmpty reports whether the cell is neutral (ux).
func (c Code) IsEmpty() bool {
	return c == Empty
}

// Color returns the cell color; ok is false for the neutral cell.
func (c Code) Color() (Color, bool) {
	switch {
	case c.IsControlled():
		return Color(c - ControlledBlue), true
	case c >= UncontrolledBlue && c <= UncontrolledRed:
		return Color(c - UncontrolledBlue), true
	}
	return 0, false
}
