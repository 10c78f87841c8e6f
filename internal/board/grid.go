package board

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Position is a 0-indexed cell coordinate, X is the column and Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Grid is a rectangular board of cell codes, stored row-major.
// A Grid is never modified after Parse returns it.
type Grid struct {
	width, height int
	cells         []Code
}

// Decay holds the per-cell staleness counters in the same shape as its Grid.
type Decay struct {
	width, height int
	values        []int
}

// NewGrid builds a grid from rows of codes, enforcing the rectangular invariant.
func NewGrid(rows [][]Code) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &MalformedInputError{Reason: "empty grid", Row: -1, Col: -1}
	}
	g := &Grid{width: len(rows[0]), height: len(rows)}
	g.cells = make([]Code, 0, g.width*g.height)
	for y, row := range rows {
		if len(row) != g.width {
			return nil, &MalformedInputError{
				Reason: "row length mismatch",
				Value:  strconv.Itoa(len(row)),
				Row:    y,
				Col:    -1,
			}
		}
		for x, c := range row {
			if int(c) >= NumCodes {
				return nil, &MalformedInputError{Reason: "unknown cell code", Value: c.String(), Row: y, Col: x}
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Bounds returns the grid width and height.
func (g *Grid) Bounds() (width, height int) {
	return g.width, g.height
}

// In reports whether p lies inside the grid.
func (g *Grid) In(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// CellAt returns the code at p. It panics when p is out of bounds.
func (g *Grid) CellAt(p Position) Code {
	if !g.In(p) {
		panic(fmt.Sprintf("board: position %v outside %dx%d grid", p, g.width, g.height))
	}
	return g.cells[p.Y*g.width+p.X]
}

// Rows returns a copy of the grid as rows of codes.
func (g *Grid) Rows() [][]Code {
	rows := make([][]Code, g.height)
	for y := range rows {
		rows[y] = append([]Code(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return rows
}

// CSV renders the grid back into the comma-separated form it was read from.
func (g *Grid) CSV() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(g.cells[y*g.width+x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ZeroDecay returns an all-zero decay grid shaped like g.
func ZeroDecay(g *Grid) *Decay {
	return &Decay{width: g.width, height: g.height, values: make([]int, g.width*g.height)}
}

// At returns the decay at p. It panics when p is out of bounds.
func (d *Decay) At(p Position) int {
	if p.X < 0 || p.X >= d.width || p.Y < 0 || p.Y >= d.height {
		panic(fmt.Sprintf("board: position %v outside %dx%d decay grid", p, d.width, d.height))
	}
	return d.values[p.Y*d.width+p.X]
}

// Parse reads the comma-separated board and decay grids.
// An empty decay input yields an all-zero decay grid.
func Parse(rawBoard, rawDecay []byte) (*Grid, *Decay, error) {
	records, err := readCSV(rawBoard)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]Code, len(records))
	for y, rec := range records {
		rows[y] = make([]Code, len(rec))
		for x, field := range rec {
			code, ok := ParseCode(strings.TrimSpace(field))
			if !ok {
				return nil, nil, &MalformedInputError{Reason: "unknown cell code", Value: field, Row: y, Col: x}
			}
			rows[y][x] = code
		}
	}
	grid, err := NewGrid(rows)
	if err != nil {
		return nil, nil, err
	}

	if len(bytes.TrimSpace(rawDecay)) == 0 {
		return grid, ZeroDecay(grid), nil
	}
	decay, err := parseDecay(rawDecay, grid)
	if err != nil {
		return nil, nil, err
	}
	return grid, decay, nil
}

func parseDecay(raw []byte, g *Grid) (*Decay, error) {
	records, err := readCSV(raw)
	if err != nil {
		return nil, err
	}
	if len(records) != g.height {
		return nil, &MalformedInputError{
			Reason: "decay height mismatch",
			Value:  strconv.Itoa(len(records)),
			Row:    -1,
			Col:    -1,
		}
	}
	d := ZeroDecay(g)
	for y, rec := range records {
		if len(rec) != g.width {
			return nil, &MalformedInputError{Reason: "decay row length mismatch", Value: strconv.Itoa(len(rec)), Row: y, Col: -1}
		}
		for x, field := range rec {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 {
				return nil, &MalformedInputError{Reason: "invalid decay value", Value: field, Row: y, Col: x}
			}
			d.values[y*g.width+x] = v
		}
	}
	return d, nil
}

func readCSV(raw []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	// Ragged rows are reported as MalformedInputError by the callers.
	r.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Reason: "unreadable csv", Value: err.Error(), Row: len(records), Col: -1}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &MalformedInputError{Reason: "empty grid", Row: -1, Col: -1}
	}
	return records, nil
}
