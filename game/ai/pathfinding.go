package ai

import (
	"container/heap"

	"github.com/kasuganosora/topdownrpg/sim/game/grid"
)

// Path is an ordered list of waypoints, consumed front to back. It never
// contains the tile the search started from; its last element is the goal.
type Path []grid.Coord

// Empty reports whether the path has no waypoints left.
func (p Path) Empty() bool { return len(p) == 0 }

// Head returns the next waypoint.
func (p Path) Head() (grid.Coord, bool) {
	if len(p) == 0 {
		return grid.Coord{}, false
	}
	return p[0], true
}

// Goal returns the final waypoint.
func (p Path) Goal() (grid.Coord, bool) {
	if len(p) == 0 {
		return grid.Coord{}, false
	}
	return p[len(p)-1], true
}

// Pop drops the head waypoint.
func (p Path) Pop() Path {
	if len(p) == 0 {
		return p
	}
	return p[1:]
}

// dirs is the 4-connected neighbourhood, expanded in this order.
var dirs = [4]grid.Coord{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}

type openItem struct {
	idx int // y*width + x
	f   int
	seq int // insertion order, breaks f ties
}

type openSet []openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x any) { *o = append(*o, x.(openItem)) }
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	it := old[n-1]
	*o = old[:n-1]
	return it
}

// FindPath runs a 4-connected A* with unit edge cost and a Manhattan
// heuristic from start to goal, never entering tiles whose kind is in
// blocked. The returned path excludes start and ends at goal.
//
// An empty path means there is nothing to walk: start == goal, the goal is
// blocked or off-grid, or the open set was exhausted. Callers fall back to
// straight-line movement.
//
// Equal f-scores are expanded in insertion order, so identical inputs
// always produce the identical path.
func FindPath(g *grid.Grid, start, goal grid.Coord, blocked grid.KindSet) Path {
	if g == nil || start == goal {
		return nil
	}
	if !g.InBounds(start) || !g.InBounds(goal) || g.Blocked(goal, blocked) {
		return nil
	}

	w := g.Width()
	n := w * g.Height()
	index := func(c grid.Coord) int { return c.Y*w + c.X }
	coord := func(i int) grid.Coord { return grid.Coord{X: i % w, Y: i / w} }
	heuristic := func(c grid.Coord) int { return abs(c.X-goal.X) + abs(c.Y-goal.Y) }

	const unseen = -1
	gScore := make([]int, n)
	cameFrom := make([]int, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = unseen
		cameFrom[i] = unseen
	}

	startIdx, goalIdx := index(start), index(goal)
	gScore[startIdx] = 0
	open := &openSet{{idx: startIdx, f: heuristic(start)}}
	seq := 1

	for open.Len() > 0 {
		cur := heap.Pop(open).(openItem)
		if closed[cur.idx] {
			continue
		}
		closed[cur.idx] = true

		if cur.idx == goalIdx {
			var path Path
			for i := goalIdx; i != startIdx; i = cameFrom[i] {
				path = append(path, coord(i))
			}
			for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
				path[l], path[r] = path[r], path[l]
			}
			return path
		}

		c := coord(cur.idx)
		for _, d := range dirs {
			nc := grid.Coord{X: c.X + d.X, Y: c.Y + d.Y}
			if !g.InBounds(nc) || g.Blocked(nc, blocked) {
				continue
			}
			ni := index(nc)
			if closed[ni] {
				continue
			}
			ng := gScore[cur.idx] + 1
			if prev := gScore[ni]; prev != unseen && ng >= prev {
				continue
			}
			gScore[ni] = ng
			cameFrom[ni] = cur.idx
			heap.Push(open, openItem{idx: ni, f: ng + heuristic(nc), seq: seq})
			seq++
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
