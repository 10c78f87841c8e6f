// Package render draws boards, counters and the roster as emoji text.
package render

import (
	"fmt"
	"strings"
	"time"

	"gitlandbot/internal/board"
	"gitlandbot/internal/world"
)

const PlayerEmoji = "😺"

var cellEmoji = map[board.Code]string{
	board.ControlledBlue:    "🔵",
	board.ControlledGreen:   "🟢",
	board.ControlledRed:     "🔴",
	board.UncontrolledBlue:  "🟦",
	board.UncontrolledGreen: "🟩",
	board.UncontrolledRed:   "🟥",
	board.Empty:             "⬛️",
}

// Cell returns the emoji for a cell code.
func Cell(c board.Code) string {
	return cellEmoji[c]
}

// Team returns the emoji of a team's controlled cell.
func Team(c board.Color) string {
	return cellEmoji[board.Controlled(c)]
}

// Board draws one framed line per row, with the agent drawn at self.
func Board(g *board.Grid, self board.Position) string {
	var sb strings.Builder
	w, h := g.Bounds()
	for y := 0; y < h; y++ {
		sb.WriteString("| ")
		for x := 0; x < w; x++ {
			p := board.Position{X: x, Y: y}
			if p == self {
				sb.WriteString(PlayerEmoji)
				continue
			}
			sb.WriteString(Cell(g.CellAt(p)))
		}
		sb.WriteString(" |\n")
	}
	return sb.String()
}

// Stats lists every non-zero counter.
func Stats(c board.Counters) string {
	var sb strings.Builder
	for _, code := range board.Codes {
		if v := c.Get(code); v > 0 {
			fmt.Fprintf(&sb, "| %s %d ", Cell(code), v)
		}
	}
	sb.WriteString("|\n")
	return sb.String()
}

// Roster renders one line per player.
func Roster(players []world.Player, now time.Time) string {
	var sb strings.Builder
	for _, p := range players {
		fmt.Fprintf(&sb, "%s %s (%d, %d) %s\n", Team(p.Team), p.Name, p.Position.X, p.Position.Y, p.LastSeen(now))
	}
	return sb.String()
}

// Summary is the header printed above the board each cycle.
func Summary(player string, team board.Color, p board.Position, move string) string {
	rule := strings.Repeat("=", 50)
	return fmt.Sprintf("%s\n| Player:    %s\n| Team:      %s\n| Position:  %d, %d\n| Next move: %s\n%s\n",
		rule, player, Team(team), p.X, p.Y, move, rule)
}
