package strategy

import (
	"gitlandbot/internal/board"
	"gitlandbot/internal/pathfind"
)

// Strategy is a named pair of search predicates. Ordering, when set, overrides
// the context's neighbor ordering for this strategy only.
type Strategy struct {
	Name       string
	Predicates func(c CycleContext) (isTarget, isTraversable pathfind.Predicate)
	Ordering   pathfind.Ordering
}

// Attempt records what a strategy found during one cycle.
type Attempt struct {
	Strategy string
	Move     Move
	Target   *board.Position
	Step     *board.Position
}

// Run searches from the agent position and converts the first step into a Move.
// A strategy whose target is the start cell, or that finds nothing, yields Idle.
func (s Strategy) Run(c CycleContext) Attempt {
	isTarget, isTraversable := s.Predicates(c)
	neighbors := c.Neighbors
	if s.Ordering != nil {
		ord := s.Ordering
		neighbors = func(p board.Position) []board.Position {
			return pathfind.Neighbors(p, c.Grid, c.Decay, c.Team, ord)
		}
	}

	res := pathfind.NearestReachable(c.Position, isTarget, isTraversable, neighbors)
	a := Attempt{Strategy: s.Name, Move: Idle}
	if !res.Found {
		return a
	}
	match := res.Match
	a.Target = &match

	step, ok := res.FirstStep()
	if !ok {
		return a
	}
	a.Step = &step
	a.Move = ToMove(c.Position, step)
	return a
}

// OffenseColor picks the rival whose uncontrolled cells are most numerous.
// Ties go to the color listed first in b, g, r order.
func OffenseColor(c CycleContext) board.Color {
	enemies := c.Enemies()
	best := enemies[0]
	for _, col := range enemies[1:] {
		if c.Counters.Get(board.Uncontrolled(col)) > c.Counters.Get(board.Uncontrolled(best)) {
			best = col
		}
	}
	return best
}

// Offense heads for the nearest uncontrolled cell of the leading rival color,
// crossing only cells this team could capture.
var Offense = Strategy{
	Name: "offense",
	Predicates: func(c CycleContext) (pathfind.Predicate, pathfind.Predicate) {
		target := board.Uncontrolled(OffenseColor(c))
		isTarget := func(p board.Position) bool { return c.Grid.CellAt(p) == target }
		isTraversable := func(p board.Position) bool { return c.Capturable(c.Grid.CellAt(p)) }
		return isTarget, isTraversable
	},
}

// FastestCapture heads for the nearest capturable cell of any color,
// crossing any cell no team controls.
var FastestCapture = Strategy{
	Name: "fastest-capture",
	Predicates: func(c CycleContext) (pathfind.Predicate, pathfind.Predicate) {
		isTarget := func(p board.Position) bool { return c.Capturable(c.Grid.CellAt(p)) }
		isTraversable := func(p board.Position) bool { return !c.Grid.CellAt(p).IsControlled() }
		return isTarget, isTraversable
	},
}
