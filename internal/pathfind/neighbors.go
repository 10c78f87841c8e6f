package pathfind

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"gitlandbot/internal/board"
)

// Candidate offsets in insertion order: right, left, down, up.
var offsets = [4]board.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// Ordering sorts the in-bounds neighbors of a cell in place.
type Ordering interface {
	Name() string
	Order(ns []board.Position, g *board.Grid, d *board.Decay, team board.Color)
}

// PriorityOrdering visits high-decay enemy cells first, then empty cells,
// then our own cells from the lowest decay up. Ties keep insertion order.
type PriorityOrdering struct{}

func (PriorityOrdering) Name() string { return "priority" }

func (PriorityOrdering) Order(ns []board.Position, g *board.Grid, d *board.Decay, team board.Color) {
	own := board.Controlled(team)
	key := func(p board.Position) int {
		switch g.CellAt(p) {
		case own:
			return d.At(p)
		case board.Empty:
			return 0
		default:
			return -d.At(p)
		}
	}
	sort.SliceStable(ns, func(i, j int) bool {
		return key(ns[i]) < key(ns[j])
	})
}

// HashOrdering sorts neighbors by a hash of their coordinates, giving an
// order that is deterministic but carries no directional bias.
type HashOrdering struct{}

func (HashOrdering) Name() string { return "hash" }

func (HashOrdering) Order(ns []board.Position, _ *board.Grid, _ *board.Decay, _ board.Color) {
	sort.SliceStable(ns, func(i, j int) bool {
		return positionHash(ns[i]) < positionHash(ns[j])
	})
}

func positionHash(p board.Position) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(int64(p.X)))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(p.Y)))
	h := fnv.New64a()
	h.Write(buf[:])
	return h.Sum64()
}

// OrderingByName resolves a configured ordering policy.
func OrderingByName(name string) (Ordering, bool) {
	switch name {
	case "", "priority":
		return PriorityOrdering{}, true
	case "hash":
		return HashOrdering{}, true
	}
	return nil, false
}

// Neighbors returns the orthogonal neighbors of p that lie inside g, sorted by ord.
func Neighbors(p board.Position, g *board.Grid, d *board.Decay, team board.Color, ord Ordering) []board.Position {
	ns := make([]board.Position, 0, len(offsets))
	for _, off := range offsets {
		n := board.Position{X: p.X + off.X, Y: p.Y + off.Y}
		if g.In(n) {
			ns = append(ns, n)
		}
	}
	if ord != nil {
		ord.Order(ns, g, d, team)
	}
	return ns
}
