package pathfind

import "gitlandbot/internal/board"

// Predicate classifies a cell position.
type Predicate func(board.Position) bool

// NeighborFunc expands a position during the search.
type NeighborFunc func(board.Position) []board.Position

// Result is the outcome of a single search. CameFrom maps every discovered
// position to its predecessor; the start maps to itself.
type Result struct {
	Start    board.Position
	Match    board.Position
	Found    bool
	CameFrom map[board.Position]board.Position
}

// NearestReachable runs a breadth-first search from start and stops at the first
// dequeued position satisfying isTarget. The start is checked before anything else.
// Positions rejected by isTraversable are never enqueued.
func NearestReachable(start board.Position, isTarget, isTraversable Predicate, neighbors NeighborFunc) Result {
	res := Result{
		Start:    start,
		CameFrom: map[board.Position]board.Position{start: start},
	}

	frontier := []board.Position{start}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		if isTarget(current) {
			res.Match = current
			res.Found = true
			return res
		}

		for _, next := range neighbors(current) {
			if !isTraversable(next) {
				continue
			}
			if _, seen := res.CameFrom[next]; seen {
				continue
			}
			res.CameFrom[next] = current
			frontier = append(frontier, next)
		}
	}
	return res
}

// FirstStep walks the predecessor chain back from the match and returns the
// position adjacent to the start. ok is false when nothing was found or the
// match is the start itself.
func (r Result) FirstStep() (board.Position, bool) {
	if !r.Found || r.Match == r.Start {
		return board.Position{}, false
	}
	return FirstStep(r.Start, r.Match, r.CameFrom)
}

// FirstStep returns the node on the path start..matched whose predecessor is start.
func FirstStep(start, matched board.Position, cameFrom map[board.Position]board.Position) (board.Position, bool) {
	if matched == start {
		return board.Position{}, false
	}
	pos := matched
	for {
		prev, ok := cameFrom[pos]
		if !ok || prev == pos {
			return board.Position{}, false
		}
		if prev == start {
			return pos, true
		}
		pos = prev
	}
}
