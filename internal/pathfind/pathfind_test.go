package pathfind

import (
	"reflect"
	"testing"

	"gitlandbot/internal/board"
)

func mustParse(t *testing.T, rawBoard, rawDecay string) (*board.Grid, *board.Decay) {
	t.Helper()
	g, d, err := board.Parse([]byte(rawBoard), []byte(rawDecay))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return g, d
}

func pos(x, y int) board.Position { return board.Position{X: x, Y: y} }

func TestNeighborsStayInBounds(t *testing.T) {
	boards := []string{
		"ux\n",
		"ux,ux,ux\n",
		"ux\nux\nux\n",
		"ux,ux,ux\nux,ux,ux\nux,ux,ux\n",
		"cb,ug,ur,ux\nub,cg,cr,ux\n",
	}
	orderings := []Ordering{PriorityOrdering{}, HashOrdering{}, nil}

	for _, raw := range boards {
		g, d := mustParse(t, raw, "")
		w, h := g.Bounds()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				for _, ord := range orderings {
					ns := Neighbors(pos(x, y), g, d, board.Blue, ord)
					if len(ns) > 4 {
						t.Errorf("%q (%d,%d): %d neighbors", raw, x, y, len(ns))
					}
					for _, n := range ns {
						if !g.In(n) {
							t.Errorf("%q (%d,%d): neighbor %v out of bounds", raw, x, y, n)
						}
					}
				}
			}
		}
	}

	g, d := mustParse(t, "ux\n", "")
	if ns := Neighbors(pos(0, 0), g, d, board.Blue, PriorityOrdering{}); len(ns) != 0 {
		t.Errorf("1x1 grid neighbors = %v, want none", ns)
	}
}

func TestNeighborsInsertionOrder(t *testing.T) {
	g, d := mustParse(t, "ux,ux,ux\nux,ux,ux\nux,ux,ux\n", "")
	got := Neighbors(pos(1, 1), g, d, board.Blue, nil)
	want := []board.Position{pos(2, 1), pos(0, 1), pos(1, 2), pos(1, 0)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors = %v, want %v", got, want)
	}
}

func TestPriorityOrdering(t *testing.T) {
	// Centre (1,1) is surrounded by: right cb (own, decay 5), left cg (enemy, decay 2),
	// down ux, up cr (enemy, decay 9).
	g, d := mustParse(t,
		"ux,cr,ux\ncg,ux,cb\nux,ux,ux\n",
		"0,9,0\n2,0,5\n0,0,0\n")

	got := Neighbors(pos(1, 1), g, d, board.Blue, PriorityOrdering{})
	want := []board.Position{pos(1, 0), pos(0, 1), pos(1, 2), pos(2, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("priority order = %v, want %v", got, want)
	}
}

func TestPriorityOrderingOwnLowDecayFirst(t *testing.T) {
	g, d := mustParse(t,
		"ux,cb,ux\ncb,ux,cb\nux,cb,ux\n",
		"0,4,0\n3,0,8\n0,1,0\n")

	got := Neighbors(pos(1, 1), g, d, board.Blue, PriorityOrdering{})
	want := []board.Position{pos(1, 2), pos(0, 1), pos(1, 0), pos(2, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("priority order = %v, want %v", got, want)
	}
}

func TestPriorityOrderingUncontrolledOwnColorIsForeign(t *testing.T) {
	// ub is not held by blue, so it ranks like an enemy cell.
	g, d := mustParse(t, "ux,ub\n", "0,3\n")
	got := Neighbors(pos(0, 0), g, d, board.Blue, PriorityOrdering{})
	if len(got) != 1 || got[0] != pos(1, 0) {
		t.Fatalf("neighbors = %v", got)
	}
	ns := []board.Position{pos(0, 0), pos(1, 0)}
	PriorityOrdering{}.Order(ns, g, d, board.Blue)
	if ns[0] != pos(1, 0) {
		t.Errorf("ub with decay 3 should sort before ux, got %v", ns)
	}
}

func TestHashOrderingDeterministic(t *testing.T) {
	g, d := mustParse(t, "ux,ux,ux\nux,ux,ux\nux,ux,ux\n", "")
	first := Neighbors(pos(1, 1), g, d, board.Red, HashOrdering{})
	for i := 0; i < 10; i++ {
		again := Neighbors(pos(1, 1), g, d, board.Green, HashOrdering{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("hash ordering changed: %v vs %v", first, again)
		}
	}
	if len(first) != 4 {
		t.Errorf("len = %d, want 4", len(first))
	}
}

func TestOrderingByName(t *testing.T) {
	for _, name := range []string{"", "priority", "hash"} {
		if _, ok := OrderingByName(name); !ok {
			t.Errorf("OrderingByName(%q) not found", name)
		}
	}
	if _, ok := OrderingByName("random"); ok {
		t.Error("unknown ordering accepted")
	}
}

func TestNearestReachable(t *testing.T) {
	g, d := mustParse(t,
		"ux,ux,ux,ux\nux,cr,cr,ux\nux,ux,ux,ug\n",
		"")
	isTarget := func(p board.Position) bool { return g.CellAt(p) == board.UncontrolledGreen }
	traversable := func(p board.Position) bool { return !g.CellAt(p).IsControlled() }
	neighbors := func(p board.Position) []board.Position {
		return Neighbors(p, g, d, board.Blue, nil)
	}

	res := NearestReachable(pos(0, 0), isTarget, traversable, neighbors)
	if !res.Found || res.Match != pos(3, 2) {
		t.Fatalf("match = %v (found %v), want (3, 2)", res.Match, res.Found)
	}
	step, ok := res.FirstStep()
	if !ok {
		t.Fatal("no first step")
	}
	if step != pos(1, 0) && step != pos(0, 1) {
		t.Errorf("first step = %v, want a neighbor of the start", step)
	}

	// Path length must be the BFS distance: 5 moves.
	n := 0
	for p := res.Match; p != res.Start; p = res.CameFrom[p] {
		if g.CellAt(p).IsControlled() {
			t.Errorf("path crosses controlled cell %v", p)
		}
		n++
	}
	if n != 5 {
		t.Errorf("path length = %d, want 5", n)
	}
}

func TestNearestReachableStartIsTarget(t *testing.T) {
	g, d := mustParse(t, "ug,ux\n", "")
	res := NearestReachable(pos(0, 0),
		func(p board.Position) bool { return g.CellAt(p) == board.UncontrolledGreen },
		func(board.Position) bool { return true },
		func(p board.Position) []board.Position { return Neighbors(p, g, d, board.Blue, nil) })
	if !res.Found || res.Match != pos(0, 0) {
		t.Fatalf("match = %v, want start", res.Match)
	}
	if _, ok := res.FirstStep(); ok {
		t.Error("a match on the start has no first step")
	}
}

func TestNearestReachableBlocked(t *testing.T) {
	g, d := mustParse(t, "ux,cr,ug\n", "")
	res := NearestReachable(pos(0, 0),
		func(p board.Position) bool { return g.CellAt(p) == board.UncontrolledGreen },
		func(p board.Position) bool { return !g.CellAt(p).IsControlled() },
		func(p board.Position) []board.Position { return Neighbors(p, g, d, board.Blue, nil) })
	if res.Found {
		t.Errorf("found %v through a controlled wall", res.Match)
	}
	if _, ok := res.FirstStep(); ok {
		t.Error("no first step expected")
	}
}

func TestNearestReachableDeterministic(t *testing.T) {
	g, d := mustParse(t,
		"ux,ux,ux,ux\nux,ux,ux,ux\nux,ux,ux,ux\nug,ux,ux,ug\n",
		"1,2,3,4\n4,3,2,1\n0,0,0,0\n5,5,5,5\n")
	run := func() (board.Position, board.Position) {
		res := NearestReachable(pos(1, 1),
			func(p board.Position) bool { return g.CellAt(p) == board.UncontrolledGreen },
			func(board.Position) bool { return true },
			func(p board.Position) []board.Position { return Neighbors(p, g, d, board.Blue, PriorityOrdering{}) })
		step, _ := res.FirstStep()
		return res.Match, step
	}
	m1, s1 := run()
	for i := 0; i < 20; i++ {
		m2, s2 := run()
		if m1 != m2 || s1 != s2 {
			t.Fatalf("run %d: (%v,%v) != (%v,%v)", i, m2, s2, m1, s1)
		}
	}
}

func TestFirstStepChain(t *testing.T) {
	cameFrom := map[board.Position]board.Position{
		pos(0, 0): pos(0, 0),
		pos(1, 0): pos(0, 0),
		pos(2, 0): pos(1, 0),
		pos(2, 1): pos(2, 0),
	}
	step, ok := FirstStep(pos(0, 0), pos(2, 1), cameFrom)
	if !ok || step != pos(1, 0) {
		t.Errorf("FirstStep = %v, %v; want (1, 0)", step, ok)
	}
	if _, ok := FirstStep(pos(0, 0), pos(0, 0), cameFrom); ok {
		t.Error("FirstStep(start, start) should fail")
	}
	if _, ok := FirstStep(pos(0, 0), pos(5, 5), cameFrom); ok {
		t.Error("FirstStep to an undiscovered cell should fail")
	}
}
