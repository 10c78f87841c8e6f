package main

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"gitlandbot/internal/board"
	"gitlandbot/internal/protocol"
)

// View holds the latest report of every agent and which one is on screen.
type View struct {
	spectatorID string
	reports     map[string]*protocol.CycleReport
	agents      []string
	selected    int
	status      string
}

func NewView() *View {
	return &View{reports: make(map[string]*protocol.CycleReport)}
}

// Apply folds one hub message into the view.
func (v *View) Apply(msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeWelcome:
		v.spectatorID = msg.SpectatorID
		v.status = fmt.Sprintf("connected as %s", msg.SpectatorID)
	case protocol.TypeCycle:
		if msg.Report == nil {
			return
		}
		if _, known := v.reports[msg.Report.Agent]; !known {
			current := v.Current()
			v.agents = append(v.agents, msg.Report.Agent)
			sort.Strings(v.agents)
			if current != nil {
				v.selectAgent(current.Agent)
			}
		}
		v.reports[msg.Report.Agent] = msg.Report
	}
}

func (v *View) selectAgent(name string) {
	for i, a := range v.agents {
		if a == name {
			v.selected = i
			return
		}
	}
}

// Next moves the selection to the following agent, wrapping around.
func (v *View) Next() {
	if len(v.agents) == 0 {
		return
	}
	v.selected = (v.selected + 1) % len(v.agents)
}

// Current returns the report on screen, or nil before the first cycle.
func (v *View) Current() *protocol.CycleReport {
	if len(v.agents) == 0 {
		return nil
	}
	return v.reports[v.agents[v.selected]]
}

var cellColor = map[board.Color]tcell.Color{
	board.Blue:  tcell.ColorBlue,
	board.Green: tcell.ColorGreen,
	board.Red:   tcell.ColorRed,
}

// cellGlyph maps a cell to its rune and style. Controlled cells are solid,
// uncontrolled cells shaded and empty cells a dim dot.
func cellGlyph(c board.Code) (rune, tcell.Style) {
	color, ok := c.Color()
	if !ok {
		return '·', tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	style := tcell.StyleDefault.Foreground(cellColor[color])
	if c.IsControlled() {
		return '█', style
	}
	return '░', style
}

// Draw renders the current agent's board with a header and a key line.
func (v *View) Draw(s tcell.Screen) {
	s.Clear()
	header := tcell.StyleDefault.Bold(true)

	r := v.Current()
	if r == nil {
		drawText(s, 0, 0, header, "waiting for the first cycle...")
		drawText(s, 0, 1, tcell.StyleDefault, v.status)
		s.Show()
		return
	}

	drawText(s, 0, 0, header, fmt.Sprintf("%s [%d/%d]  team %s  at %v  next %s",
		r.Agent, v.selected+1, len(v.agents), r.Team, r.Position, r.Move))
	if r.Strategy != "" && r.Target != nil {
		drawText(s, 0, 1, tcell.StyleDefault, fmt.Sprintf("%s toward %v", r.Strategy, *r.Target))
	} else {
		drawText(s, 0, 1, tcell.StyleDefault, "no reachable target")
	}

	grid, _, err := board.Parse([]byte(r.Board), nil)
	if err != nil {
		drawText(s, 0, 3, tcell.StyleDefault.Foreground(tcell.ColorRed), err.Error())
		s.Show()
		return
	}

	w, h := grid.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := board.Position{X: x, Y: y}
			ch, style := cellGlyph(grid.CellAt(p))
			if p == r.Position {
				ch, style = '@', tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
			}
			s.SetContent(x, y+3, ch, nil, style)
		}
	}

	line := h + 4
	for _, code := range board.Codes {
		if n := r.Counters.Get(code); n > 0 {
			ch, style := cellGlyph(code)
			drawText(s, 0, line, style, fmt.Sprintf("%c %s %d", ch, code, n))
			line++
		}
	}
	drawText(s, 0, line+1, tcell.StyleDefault.Foreground(tcell.ColorGray), "tab: next agent  q/esc: quit")
	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, style)
		x++
	}
}
