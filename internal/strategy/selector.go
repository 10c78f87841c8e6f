package strategy

import "gitlandbot/internal/board"

// Decision is the outcome of a cycle. Strategy, Target and Step describe the
// winning attempt and are empty when the move is Idle.
type Decision struct {
	Move     Move
	Strategy string
	Target   *board.Position
	Step     *board.Position
	Attempts []Attempt
}

// Selector runs strategies in priority order until one produces a non-idle move.
type Selector struct {
	Strategies []Strategy
}

// DefaultSelector tries offense first and falls back to the fastest capture.
func DefaultSelector() Selector {
	return Selector{Strategies: []Strategy{Offense, FastestCapture}}
}

func (s Selector) Decide(c CycleContext) Decision {
	d := Decision{Move: Idle}
	for _, st := range s.Strategies {
		a := st.Run(c)
		d.Attempts = append(d.Attempts, a)
		if a.Move != Idle {
			d.Move = a.Move
			d.Strategy = a.Strategy
			d.Target = a.Target
			d.Step = a.Step
			return d
		}
	}
	return d
}

// Decide is DefaultSelector().Decide(c).
func Decide(c CycleContext) Decision {
	return DefaultSelector().Decide(c)
}
