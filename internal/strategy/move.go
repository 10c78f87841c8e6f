package strategy

import (
	"fmt"

	"gitlandbot/internal/board"
)

// Move is the single action an agent emits per cycle.
type Move int

const (
	Idle Move = iota
	Up
	Down
	Left
	Right
)

// Moves lists every move.
var Moves = [5]Move{Idle, Up, Down, Left, Right}

func (m Move) String() string {
	switch m {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "idle"
	}
}

// ParseMove reads a move token.
func ParseMove(s string) (Move, error) {
	for _, m := range Moves {
		if m.String() == s {
			return m, nil
		}
	}
	return Idle, fmt.Errorf("unknown move %q", s)
}

// Delta is the displacement a move applies to a position.
func (m Move) Delta() board.Position {
	switch m {
	case Up:
		return board.Position{X: 0, Y: -1}
	case Down:
		return board.Position{X: 0, Y: 1}
	case Left:
		return board.Position{X: -1, Y: 0}
	case Right:
		return board.Position{X: 1, Y: 0}
	}
	return board.Position{}
}

// Apply returns p displaced by m.
func (m Move) Apply(p board.Position) board.Position {
	d := m.Delta()
	return board.Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// ToMove converts a step from current to an orthogonal neighbor into a Move.
// Any other relation, including current itself or a cell further away, is Idle.
func ToMove(current, target board.Position) Move {
	dx, dy := target.X-current.X, target.Y-current.Y
	switch {
	case dx == 0 && dy == 1:
		return Down
	case dx == 0 && dy == -1:
		return Up
	case dy == 0 && dx == 1:
		return Right
	case dy == 0 && dx == -1:
		return Left
	}
	return Idle
}
