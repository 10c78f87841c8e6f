package board

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	g, d, err := Parse([]byte("ub,ug\nur,cb\n"), []byte("1,2\n3,4\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w, h := g.Bounds()
	if w != 2 || h != 2 {
		t.Fatalf("Bounds = %dx%d, want 2x2", w, h)
	}
	if got := g.CellAt(Position{X: 1, Y: 0}); got != UncontrolledGreen {
		t.Errorf("CellAt(1,0) = %v, want ug", got)
	}
	if got := g.CellAt(Position{X: 1, Y: 1}); got != ControlledBlue {
		t.Errorf("CellAt(1,1) = %v, want cb", got)
	}
	if got := d.At(Position{X: 0, Y: 1}); got != 3 {
		t.Errorf("decay At(0,1) = %d, want 3", got)
	}
	if got := g.CSV(); got != "ub,ug\nur,cb\n" {
		t.Errorf("CSV = %q", got)
	}
}

func TestParseEmptyDecay(t *testing.T) {
	g, d, err := Parse([]byte("ux,cr\n"), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.At(Position{X: 1, Y: 0}) != 0 {
		t.Error("missing decay should read as zero")
	}
	if w, _ := g.Bounds(); w != 2 {
		t.Errorf("width = %d, want 2", w)
	}
}

func TestParseBlankDecayCells(t *testing.T) {
	_, d, err := Parse([]byte("ux,cr\n"), []byte(",7\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.At(Position{X: 0, Y: 0}) != 0 || d.At(Position{X: 1, Y: 0}) != 7 {
		t.Errorf("decay = %d,%d, want 0,7", d.At(Position{X: 0, Y: 0}), d.At(Position{X: 1, Y: 0}))
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		decay  string
		reason string
	}{
		{"ragged rows", "ub,ug\nur\n", "", "row length mismatch"},
		{"unknown code", "ub,zz\n", "", "unknown cell code"},
		{"empty board", "", "", "empty grid"},
		{"decay height", "ub\nug\n", "1\n", "decay height mismatch"},
		{"decay width", "ub,ug\n", "1\n", "decay row length mismatch"},
		{"negative decay", "ub\n", "-1\n", "invalid decay value"},
		{"non numeric decay", "ub\n", "abc\n", "invalid decay value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tc.board), []byte(tc.decay))
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("err = %v, want ErrMalformedInput", err)
			}
			var mie *MalformedInputError
			if !errors.As(err, &mie) {
				t.Fatalf("err = %T, want *MalformedInputError", err)
			}
			if mie.Reason != tc.reason {
				t.Errorf("reason = %q, want %q", mie.Reason, tc.reason)
			}
		})
	}
}

func TestCellAtOutOfBoundsPanics(t *testing.T) {
	g, _, err := Parse([]byte("ux\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-bounds CellAt")
		}
	}()
	g.CellAt(Position{X: 1, Y: 0})
}

func TestCount(t *testing.T) {
	boards := []string{
		"ux\n",
		"ub,ux,cb\n",
		"ub,ug\nur,cb\n",
		"cb,cg,cr\nub,ug,ur\nux,ux,ux\n",
	}
	for _, raw := range boards {
		g, _, err := Parse([]byte(raw), nil)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		c := Count(g)
		w, h := g.Bounds()
		if c.Total() != w*h {
			t.Errorf("%q: total = %d, want %d", raw, c.Total(), w*h)
		}
		if m := c.Map(); len(m) != NumCodes {
			t.Errorf("%q: %d keys, want %d", raw, len(m), NumCodes)
		}
	}

	g, _, _ := Parse([]byte("cb,cg,cr\nub,ug,ur\nux,ux,ux\n"), nil)
	c := Count(g)
	if c.Get(Empty) != 3 || c.Get(ControlledRed) != 1 {
		t.Errorf("counts = %v", c.Map())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"b", Blue},
		{"cg", Green},
		{"cr\n", Red},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseColor("ux"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("ParseColor(ux) err = %v", err)
	}
}

func TestCodeDecomposition(t *testing.T) {
	for _, col := range Colors {
		cc := Controlled(col)
		if !cc.IsControlled() {
			t.Errorf("%v should be controlled", cc)
		}
		if got, ok := cc.Color(); !ok || got != col {
			t.Errorf("%v.Color() = %v, %v", cc, got, ok)
		}
		uc := Uncontrolled(col)
		if uc.IsControlled() || uc.IsEmpty() {
			t.Errorf("%v should be uncontrolled and colored", uc)
		}
		if uc.String() != "u"+string(col.Letter()) {
			t.Errorf("Uncontrolled(%v) = %v", col, uc)
		}
	}
	if _, ok := Empty.Color(); ok {
		t.Error("ux has no color")
	}
}
