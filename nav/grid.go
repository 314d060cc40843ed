// Package nav estimates the shortest obstacle-free path between two
// points on the plane, for scoring how close evolved paths come to it.
package nav

import (
	"math"

	"github.com/pthm-cable/gadots/geom"
	"github.com/pthm-cable/gadots/sim"
)

// Grid stores a navigation grid for A* pathfinding.
// Cells are marked as blocked (true) or open (false).
type Grid struct {
	cells    []bool // true = blocked
	cellSize float64
	width    int // grid width in cells
	height   int // grid height in cells
}

// NewGrid rasterises obstacles onto a width x height plane. A cell is
// blocked when its centre lies inside an obstacle grown by inflation.
func NewGrid(width, height, cellSize float64, obstacles []sim.Circle, inflation float64) *Grid {
	w := max(int(math.Ceil(width/cellSize)), 1)
	h := max(int(math.Ceil(height/cellSize)), 1)

	g := &Grid{
		cells:    make([]bool, w*h),
		cellSize: cellSize,
		width:    w,
		height:   h,
	}

	for _, o := range obstacles {
		r := o.Radius + inflation
		minX, minY := g.WorldToGrid(geom.New(o.Center.X-r, o.Center.Y-r))
		maxX, maxY := g.WorldToGrid(geom.New(o.Center.X+r, o.Center.Y+r))
		grown := sim.Circle{Center: o.Center, Radius: r}
		for gy := minY; gy <= maxY; gy++ {
			for gx := minX; gx <= maxX; gx++ {
				if grown.Contains(g.GridToWorld(gx, gy)) {
					g.cells[gy*w+gx] = true
				}
			}
		}
	}
	return g
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (w, h int) { return g.width, g.height }

// CellSize returns the side of one cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// WorldToGrid converts a world position to clamped grid coordinates.
func (g *Grid) WorldToGrid(p geom.Vec2) (gx, gy int) {
	gx = int(p.X / g.cellSize)
	gy = int(p.Y / g.cellSize)
	return min(max(gx, 0), g.width-1), min(max(gy, 0), g.height-1)
}

// GridToWorld returns the world position of a cell centre.
func (g *Grid) GridToWorld(gx, gy int) geom.Vec2 {
	return geom.New((float64(gx)+0.5)*g.cellSize, (float64(gy)+0.5)*g.cellSize)
}

// IsBlocked reports whether a cell is blocked. Cells off the grid count
// as blocked.
func (g *Grid) IsBlocked(gx, gy int) bool {
	if gx < 0 || gx >= g.width || gy < 0 || gy >= g.height {
		return true
	}
	return g.cells[gy*g.width+gx]
}

// IsBlockedWorld reports whether the cell containing p is blocked.
func (g *Grid) IsBlockedWorld(p geom.Vec2) bool {
	if p.X < 0 || p.Y < 0 {
		return true
	}
	return g.IsBlocked(int(p.X/g.cellSize), int(p.Y/g.cellSize))
}
