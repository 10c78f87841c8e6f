package strategy

import (
	"fmt"

	"gitlandbot/internal/board"
	"gitlandbot/internal/pathfind"
)

// CycleContext is everything one decision depends on. It is built fresh every
// cycle and never modified afterwards.
type CycleContext struct {
	Grid     *board.Grid
	Decay    *board.Decay
	Team     board.Color
	Position board.Position
	Counters board.Counters
	Ordering pathfind.Ordering
}

// NewCycleContext validates the agent position and tallies the grid.
// A nil ordering selects PriorityOrdering.
func NewCycleContext(g *board.Grid, d *board.Decay, team board.Color, p board.Position, ord pathfind.Ordering) (CycleContext, error) {
	if !g.In(p) {
		w, h := g.Bounds()
		return CycleContext{}, &board.MalformedInputError{
			Reason: fmt.Sprintf("position outside %dx%d grid", w, h),
			Value:  p.String(),
			Row:    -1,
			Col:    -1,
		}
	}
	if ord == nil {
		ord = pathfind.PriorityOrdering{}
	}
	return CycleContext{
		Grid:     g,
		Decay:    d,
		Team:     team,
		Position: p,
		Counters: board.Count(g),
		Ordering: ord,
	}, nil
}

// Neighbors expands p with the context's ordering policy.
func (c CycleContext) Neighbors(p board.Position) []board.Position {
	return pathfind.Neighbors(p, c.Grid, c.Decay, c.Team, c.Ordering)
}

// Enemies returns the two rival colors in fixed b, g, r order.
func (c CycleContext) Enemies() []board.Color {
	out := make([]board.Color, 0, 2)
	for _, col := range board.Colors {
		if col != c.Team {
			out = append(out, col)
		}
	}
	return out
}

// Capturable reports whether code is an uncontrolled cell this team can take:
// a neutral cell or a rival's uncontrolled cell.
func (c CycleContext) Capturable(code board.Code) bool {
	return !code.IsControlled() && code != board.Uncontrolled(c.Team)
}
