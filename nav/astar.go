package nav

import (
	"container/heap"
	"math"

	"github.com/pthm-cable/gadots/geom"
)

// Planner runs A* searches over a Grid. It is not safe for concurrent use.
type Planner struct {
	grid *Grid

	// Reused between searches
	open     nodeHeap
	closed   []bool
	cameFrom []int
	gScore   []float64
}

// astarNode is a node in the A* search.
type astarNode struct {
	id    int
	f     float64 // f = g + h (priority)
	index int     // Heap index
}

// nodeHeap implements heap.Interface for the open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// 8-connected neighbour offsets; the last four are diagonals.
var neighbours = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// NewPlanner creates a planner over grid.
func NewPlanner(grid *Grid) *Planner {
	n := grid.width * grid.height
	return &Planner{
		grid:     grid,
		closed:   make([]bool, n),
		cameFrom: make([]int, n),
		gScore:   make([]float64, n),
	}
}

// FindPath returns waypoints from start to goal, beginning and ending at
// the exact points, with collinear cells removed. It returns nil when the
// goal cannot be reached.
func (p *Planner) FindPath(start, goal geom.Vec2) []geom.Vec2 {
	grid := p.grid
	sx, sy := grid.WorldToGrid(start)
	gx, gy := grid.WorldToGrid(goal)

	if grid.IsBlocked(sx, sy) {
		if sx, sy = p.findNearestOpen(sx, sy); sx < 0 {
			return nil
		}
	}
	if grid.IsBlocked(gx, gy) {
		if gx, gy = p.findNearestOpen(gx, gy); gx < 0 {
			return nil
		}
	}

	startID := sy*grid.width + sx
	goalID := gy*grid.width + gx
	if startID == goalID {
		return []geom.Vec2{start, goal}
	}

	p.open = p.open[:0]
	for i := range p.closed {
		p.closed[i] = false
		p.cameFrom[i] = -1
		p.gScore[i] = math.Inf(1)
	}

	p.gScore[startID] = 0
	heap.Push(&p.open, &astarNode{id: startID, f: p.heuristic(startID, goalID)})

	for p.open.Len() > 0 {
		current := heap.Pop(&p.open).(*astarNode)
		if current.id == goalID {
			return p.reconstructPath(startID, goalID, start, goal)
		}
		if p.closed[current.id] {
			continue
		}
		p.closed[current.id] = true

		cx, cy := current.id%grid.width, current.id/grid.width
		for i, n := range neighbours {
			nx, ny := cx+n[0], cy+n[1]
			if grid.IsBlocked(nx, ny) {
				continue
			}
			// Diagonal moves may not cut corners.
			if i >= 4 && (grid.IsBlocked(nx, cy) || grid.IsBlocked(cx, ny)) {
				continue
			}

			nid := ny*grid.width + nx
			if p.closed[nid] {
				continue
			}

			cost := 1.0
			if i >= 4 {
				cost = math.Sqrt2
			}
			tentative := p.gScore[current.id] + cost
			if tentative >= p.gScore[nid] {
				continue
			}
			p.cameFrom[nid] = current.id
			p.gScore[nid] = tentative
			heap.Push(&p.open, &astarNode{id: nid, f: tentative + p.heuristic(nid, goalID)})
		}
	}

	return nil
}

// heuristic is the Euclidean distance in cells.
func (p *Planner) heuristic(a, b int) float64 {
	w := p.grid.width
	dx := float64(b%w - a%w)
	dy := float64(b/w - a/w)
	return math.Sqrt(dx*dx + dy*dy)
}

func (p *Planner) reconstructPath(startID, goalID int, start, goal geom.Vec2) []geom.Vec2 {
	var ids []int
	for id := goalID; id != startID && id >= 0; id = p.cameFrom[id] {
		ids = append(ids, id)
	}

	w := p.grid.width
	path := make([]geom.Vec2, 0, len(ids)+2)
	path = append(path, start)
	// ids runs goal to start; skip the goal cell, the exact goal replaces it.
	for i := len(ids) - 1; i >= 1; i-- {
		path = append(path, p.grid.GridToWorld(ids[i]%w, ids[i]/w))
	}
	path = append(path, goal)

	return p.simplifyPath(path)
}

// simplifyPath greedily drops waypoints that the path can see past.
func (p *Planner) simplifyPath(path []geom.Vec2) []geom.Vec2 {
	if len(path) <= 2 {
		return path
	}

	out := []geom.Vec2{path[0]}
	anchor := 0
	for i := 2; i < len(path); i++ {
		if !p.hasLineOfSight(path[anchor], path[i]) {
			anchor = i - 1
			out = append(out, path[anchor])
		}
	}
	return append(out, path[len(path)-1])
}

// hasLineOfSight samples the segment at half-cell intervals.
func (p *Planner) hasLineOfSight(a, b geom.Vec2) bool {
	d := geom.Diff(a, b)
	dist := d.Magnitude()
	if dist < 0.01 {
		return true
	}

	step := p.grid.cellSize * 0.5
	n := int(dist/step) + 1
	dir := d.Scale(1 / dist)
	for i := 0; i <= n; i++ {
		q := a.Add(dir.Scale(math.Min(float64(i)*step, dist)))
		if p.grid.IsBlockedWorld(q) {
			return false
		}
	}
	return true
}

// findNearestOpen searches outward in square rings for an open cell.
// It returns (-1, -1) if none is found within ten rings.
func (p *Planner) findNearestOpen(gx, gy int) (int, int) {
	for radius := 1; radius < 10; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				if !p.grid.IsBlocked(gx+dx, gy+dy) {
					return gx + dx, gy + dy
				}
			}
		}
	}
	return -1, -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PathLength returns the total length of a polyline.
func PathLength(path []geom.Vec2) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += geom.Distance(path[i-1], path[i])
	}
	return total
}

// MinSteps estimates the fewest steps of length stepSize that lead from
// start to goal around the obstacles on grid. It is never less than the
// straight-line count. ok is false when no path exists.
func MinSteps(grid *Grid, start, goal geom.Vec2, stepSize float64) (steps int, ok bool) {
	path := NewPlanner(grid).FindPath(start, goal)
	if path == nil {
		return 0, false
	}
	length := max(PathLength(path), geom.Distance(start, goal))
	return int(math.Ceil(length / stepSize)), true
}
